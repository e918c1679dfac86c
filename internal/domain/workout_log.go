package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetLog is one completed set within an exercise log entry.
type SetLog struct {
	Weight float64 `bson:"weight" json:"weight"`
	Reps   int     `bson:"reps" json:"reps"`
}

// ExerciseLog is one exercise performed during a logged workout.
// ExerciseName is denormalized so the log survives library edits.
type ExerciseLog struct {
	ExerciseID   *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	ExerciseName string              `bson:"exerciseName" json:"exerciseName"`
	Sets         []SetLog            `bson:"sets" json:"sets"`
}

// WorkoutLog is a completed workout. Logs belong to exactly one user and
// are never visible to anyone else.
type WorkoutLog struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Date             time.Time           `bson:"date" json:"date"`
	WorkoutPlanID    *primitive.ObjectID `bson:"workoutPlanId,omitempty" json:"workoutPlanId,omitempty"`
	WorkoutPlanTitle string              `bson:"workoutPlanTitle" json:"workoutPlanTitle"`
	Exercises        []ExerciseLog       `bson:"exercises" json:"exercises"`
	Duration         int                 `bson:"duration" json:"duration"` // Minutes
	Notes            string              `bson:"notes,omitempty" json:"notes,omitempty"`
	UserID           primitive.ObjectID  `bson:"userId" json:"userId"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}
