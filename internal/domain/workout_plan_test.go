package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func basePlan() WorkoutPlan {
	return WorkoutPlan{
		ID:          primitive.NewObjectID(),
		Title:       "Push Pull Legs",
		Description: "Six day split",
		Category:    CategoryHypertrophy,
		Difficulty:  DifficultyIntermediate,
		Duration:    75,
		Exercises: []PlanExercise{
			{ExerciseID: primitive.NewObjectID(), Name: "Bench Press", Sets: 4, Reps: 8, Rest: 90},
		},
		IsPublic: true,
	}
}

func TestWorkoutPlanPatchApply(t *testing.T) {
	t.Run("empty patch changes nothing", func(t *testing.T) {
		plan := basePlan()
		original := plan

		WorkoutPlanPatch{}.Apply(&plan)
		assert.Equal(t, original, plan)
	})

	t.Run("set fields are merged", func(t *testing.T) {
		plan := basePlan()
		title := "Upper Lower"
		duration := 60

		WorkoutPlanPatch{Title: &title, Duration: &duration}.Apply(&plan)
		assert.Equal(t, "Upper Lower", plan.Title)
		assert.Equal(t, 60, plan.Duration)
		assert.Equal(t, "Six day split", plan.Description)
	})

	t.Run("empty strings and zero duration are ignored", func(t *testing.T) {
		plan := basePlan()
		empty := ""
		zero := 0

		WorkoutPlanPatch{Title: &empty, Description: &empty, Duration: &zero}.Apply(&plan)
		assert.Equal(t, "Push Pull Legs", plan.Title)
		assert.Equal(t, "Six day split", plan.Description)
		assert.Equal(t, 75, plan.Duration)
	})

	t.Run("isPublic false is applied", func(t *testing.T) {
		plan := basePlan()
		isPublic := false

		WorkoutPlanPatch{IsPublic: &isPublic}.Apply(&plan)
		assert.False(t, plan.IsPublic)
	})

	t.Run("exercise list is replaced wholesale", func(t *testing.T) {
		plan := basePlan()
		replacement := []PlanExercise{
			{ExerciseID: primitive.NewObjectID(), Name: "Squat", Sets: 5, Reps: 5, Rest: 120},
			{ExerciseID: primitive.NewObjectID(), Name: "Row", Sets: 3, Reps: 10, Rest: 60},
		}

		WorkoutPlanPatch{Exercises: replacement}.Apply(&plan)
		assert.Equal(t, replacement, plan.Exercises)
	})

	t.Run("nil exercises keep the current list", func(t *testing.T) {
		plan := basePlan()
		before := plan.Exercises

		WorkoutPlanPatch{Exercises: nil}.Apply(&plan)
		assert.Equal(t, before, plan.Exercises)
	})
}
