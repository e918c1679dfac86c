package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanCategory is the closed set of workout plan categories.
type PlanCategory string

const (
	CategoryStrength    PlanCategory = "Strength"
	CategoryHypertrophy PlanCategory = "Hypertrophy"
	CategoryEndurance   PlanCategory = "Endurance"
	CategoryWeightLoss  PlanCategory = "Weight Loss"
	CategoryFullBody    PlanCategory = "Full Body"
	CategoryUpperBody   PlanCategory = "Upper Body"
	CategoryLowerBody   PlanCategory = "Lower Body"
	CategoryCore        PlanCategory = "Core"
	CategoryOther       PlanCategory = "Other"
)

// DefaultRestSeconds is applied when a plan exercise omits its rest time.
const DefaultRestSeconds = 60

// PlanExercise is one prescribed exercise within a workout plan.
// Name is denormalized from the referenced Exercise.
type PlanExercise struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name       string             `bson:"name" json:"name"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Rest       int                `bson:"rest" json:"rest"` // Seconds between sets
}

// WorkoutPlan is a user-authored training plan. Private plans are only
// visible to their owner; public plans are readable by anyone.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    PlanCategory       `bson:"category" json:"category"`
	Difficulty  Difficulty         `bson:"difficulty" json:"difficulty"`
	Duration    int                `bson:"duration" json:"duration"` // Minutes
	Exercises   []PlanExercise     `bson:"exercises" json:"exercises"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	IsPublic    bool               `bson:"isPublic" json:"isPublic"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutPlanPatch carries a partial update for a plan. Nil fields are left
// untouched. String and numeric fields additionally treat zero values as
// "no change"; IsPublic is applied whenever the pointer is set so the flag
// can be flipped to false.
type WorkoutPlanPatch struct {
	Title       *string
	Description *string
	Category    *PlanCategory
	Difficulty  *Difficulty
	Duration    *int
	Exercises   []PlanExercise
	IsPublic    *bool
}

// Apply merges the patch into the plan.
func (p WorkoutPlanPatch) Apply(plan *WorkoutPlan) {
	if p.Title != nil && *p.Title != "" {
		plan.Title = *p.Title
	}
	if p.Description != nil && *p.Description != "" {
		plan.Description = *p.Description
	}
	if p.Category != nil && *p.Category != "" {
		plan.Category = *p.Category
	}
	if p.Difficulty != nil && *p.Difficulty != "" {
		plan.Difficulty = *p.Difficulty
	}
	if p.Duration != nil && *p.Duration > 0 {
		plan.Duration = *p.Duration
	}
	if p.Exercises != nil {
		plan.Exercises = p.Exercises
	}
	if p.IsPublic != nil {
		plan.IsPublic = *p.IsPublic
	}
}
