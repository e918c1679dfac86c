package domain

// DailyWorkoutCount is one day of workout activity. Date is formatted as
// "YYYY-MM-DD"; days without workouts are omitted from listings.
type DailyWorkoutCount struct {
	Date  string `bson:"date" json:"date"`
	Count int    `bson:"count" json:"count"`
}

// ProgressStats is the aggregate returned by the stats endpoint.
type ProgressStats struct {
	TotalWorkouts       int64               `json:"totalWorkouts"`
	TotalDuration       int64               `json:"totalDuration"` // Minutes
	MostUsedMuscleGroup string              `json:"mostUsedMuscleGroup"`
	WeeklyWorkouts      []DailyWorkoutCount `json:"weeklyWorkouts"`
}
