package service

import (
	"context"
	"testing"

	"fitnessfreaks/api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPlanServiceFixture(plans ...domain.WorkoutPlan) (WorkoutPlanService, *fakePlanRepo, *fakeUserRepo) {
	planRepo := newFakePlanRepo(plans...)
	userRepo := newFakeUserRepo()
	svc := NewWorkoutPlanService(planRepo, userRepo, newFakeExerciseRepo())
	return svc, planRepo, userRepo
}

func TestListPlansVisibility(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	public := domain.WorkoutPlan{ID: primitive.NewObjectID(), Title: "Starting Strength", CreatedBy: owner, IsPublic: true}
	private := domain.WorkoutPlan{ID: primitive.NewObjectID(), Title: "My Secret Routine", CreatedBy: owner, IsPublic: false}
	svc, _, userRepo := newPlanServiceFixture(public, private)
	userRepo.users[owner] = domain.User{ID: owner, Name: "Alex"}

	t.Run("anonymous sees public only", func(t *testing.T) {
		plans, err := svc.ListPlans(ctx, nil, PlanListOptions{})
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "Starting Strength", plans[0].Plan.Title)
		assert.Equal(t, "Alex", plans[0].AuthorName)
	})

	t.Run("owner sees own private plans too", func(t *testing.T) {
		plans, err := svc.ListPlans(ctx, &owner, PlanListOptions{})
		require.NoError(t, err)
		assert.Len(t, plans, 2)
	})

	t.Run("other users do not see private plans", func(t *testing.T) {
		plans, err := svc.ListPlans(ctx, &stranger, PlanListOptions{})
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "Starting Strength", plans[0].Plan.Title)
	})
}

func TestGetPlanByIDAccess(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	private := domain.WorkoutPlan{ID: primitive.NewObjectID(), Title: "Private", CreatedBy: owner, IsPublic: false}
	svc, _, _ := newPlanServiceFixture(private)

	_, err := svc.GetPlanByID(ctx, nil, private.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	_, err = svc.GetPlanByID(ctx, &stranger, private.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	detail, err := svc.GetPlanByID(ctx, &owner, private.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", detail.Plan.Title)

	_, err = svc.GetPlanByID(ctx, &owner, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestGetPlanByIDExpandsExercises(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()

	bench := domain.Exercise{
		ID:          primitive.NewObjectID(),
		Name:        "Bench Press",
		VideoURL:    "https://www.youtube.com/watch?v=rT7DgCr-3pg",
		MuscleGroup: domain.MuscleChest,
	}
	gone := primitive.NewObjectID() // Exercise deleted from the library.

	plan := domain.WorkoutPlan{
		ID:        primitive.NewObjectID(),
		Title:     "Push Day",
		CreatedBy: owner,
		IsPublic:  true,
		Exercises: []domain.PlanExercise{
			{ExerciseID: bench.ID, Name: "Bench Press", Sets: 3, Reps: 8, Rest: 90},
			{ExerciseID: gone, Name: "Cable Fly", Sets: 3, Reps: 12, Rest: 60},
		},
	}

	svc := NewWorkoutPlanService(newFakePlanRepo(plan), newFakeUserRepo(), newFakeExerciseRepo(bench))

	detail, err := svc.GetPlanByID(ctx, nil, plan.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 2)

	assert.Equal(t, "https://www.youtube.com/watch?v=rT7DgCr-3pg", detail.Exercises[0].VideoURL)
	assert.Equal(t, domain.MuscleChest, detail.Exercises[0].MuscleGroup)

	// Dangling references keep the denormalized name and no library data.
	assert.Equal(t, "Cable Fly", detail.Exercises[1].Name)
	assert.Empty(t, detail.Exercises[1].VideoURL)
}

func TestCreatePlanDefaults(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	svc, _, _ := newPlanServiceFixture()

	plan, err := svc.CreatePlan(ctx, owner, CreatePlanInput{
		Title:       "5x5",
		Description: "Three lifts, five sets",
		Category:    domain.CategoryStrength,
		Difficulty:  domain.DifficultyBeginner,
		Duration:    60,
	})
	require.NoError(t, err)
	assert.True(t, plan.IsPublic, "plans default to public")
	assert.Equal(t, owner, plan.CreatedBy)

	isPublic := false
	private, err := svc.CreatePlan(ctx, owner, CreatePlanInput{
		Title:       "Hidden",
		Description: "Not for sharing",
		Category:    domain.CategoryOther,
		Difficulty:  domain.DifficultyBeginner,
		Duration:    30,
		IsPublic:    &isPublic,
	})
	require.NoError(t, err)
	assert.False(t, private.IsPublic)
}

func TestUpdatePlan(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	plan := domain.WorkoutPlan{
		ID:          primitive.NewObjectID(),
		Title:       "Old Title",
		Description: "Old description",
		Duration:    45,
		CreatedBy:   owner,
		IsPublic:    true,
	}
	svc, planRepo, _ := newPlanServiceFixture(plan)

	t.Run("non-owner is rejected", func(t *testing.T) {
		title := "Hijacked"
		_, err := svc.UpdatePlan(ctx, stranger, plan.ID, domain.WorkoutPlanPatch{Title: &title})
		assert.ErrorIs(t, err, ErrPlanAccessDenied)
	})

	t.Run("owner patch merges fields", func(t *testing.T) {
		title := "New Title"
		isPublic := false
		updated, err := svc.UpdatePlan(ctx, owner, plan.ID, domain.WorkoutPlanPatch{
			Title:    &title,
			IsPublic: &isPublic,
		})
		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "Old description", updated.Description)
		assert.False(t, updated.IsPublic)

		stored, err := planRepo.GetByID(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Title", stored.Title)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := svc.UpdatePlan(ctx, owner, primitive.NewObjectID(), domain.WorkoutPlanPatch{})
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestDeletePlan(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	plan := domain.WorkoutPlan{ID: primitive.NewObjectID(), Title: "Doomed", CreatedBy: owner}
	svc, planRepo, _ := newPlanServiceFixture(plan)

	err := svc.DeletePlan(ctx, stranger, plan.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	err = svc.DeletePlan(ctx, owner, plan.ID)
	require.NoError(t, err)

	_, err = planRepo.GetByID(ctx, plan.ID)
	assert.Error(t, err)

	err = svc.DeletePlan(ctx, owner, plan.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
