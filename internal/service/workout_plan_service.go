package service

import (
	"context"
	"errors"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrPlanAccessDenied = errors.New("not authorized to access this workout plan")
)

// PlanListOptions are the optional narrowing filters for a listing.
type PlanListOptions struct {
	Category   string
	Difficulty string
	Search     string
}

// CreatePlanInput carries the fields for a new plan. IsPublic defaults to
// true when nil.
type CreatePlanInput struct {
	Title       string
	Description string
	Category    domain.PlanCategory
	Difficulty  domain.Difficulty
	Duration    int
	Exercises   []domain.PlanExercise
	IsPublic    *bool
}

// PlanWithAuthor pairs a plan with its resolved author name for listings.
type PlanWithAuthor struct {
	Plan       domain.WorkoutPlan
	AuthorName string
}

// ExpandedPlanExercise is a plan entry joined with library details.
type ExpandedPlanExercise struct {
	domain.PlanExercise
	VideoURL    string
	MuscleGroup domain.MuscleGroup
}

// PlanDetail is a single plan with all references resolved.
type PlanDetail struct {
	Plan       domain.WorkoutPlan
	AuthorName string
	Exercises  []ExpandedPlanExercise
}

// WorkoutPlanService enforces the plan visibility and ownership rules.
// The viewer parameter is the resolved caller identity, nil for anonymous.
type WorkoutPlanService interface {
	ListPlans(ctx context.Context, viewer *primitive.ObjectID, opts PlanListOptions) ([]PlanWithAuthor, error)
	GetPlanByID(ctx context.Context, viewer *primitive.ObjectID, id primitive.ObjectID) (*PlanDetail, error)
	CreatePlan(ctx context.Context, owner primitive.ObjectID, input CreatePlanInput) (*domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, caller, id primitive.ObjectID, patch domain.WorkoutPlanPatch) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, caller, id primitive.ObjectID) error
}

type workoutPlanService struct {
	planRepo     repository.WorkoutPlanRepository
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutPlanService creates a new instance of workoutPlanService.
func NewWorkoutPlanService(
	planRepo repository.WorkoutPlanRepository,
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
) WorkoutPlanService {
	return &workoutPlanService{
		planRepo:     planRepo,
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
	}
}

// ListPlans returns the plans visible to the viewer, newest first, with
// author names resolved. Anonymous viewers see public plans only.
func (s *workoutPlanService) ListPlans(ctx context.Context, viewer *primitive.ObjectID, opts PlanListOptions) ([]PlanWithAuthor, error) {
	plans, err := s.planRepo.List(ctx, repository.PlanFilter{
		Viewer:     viewer,
		Category:   opts.Category,
		Difficulty: opts.Difficulty,
		Search:     opts.Search,
	})
	if err != nil {
		return nil, err
	}

	authorIDs := make([]primitive.ObjectID, 0, len(plans))
	for _, plan := range plans {
		authorIDs = append(authorIDs, plan.CreatedBy)
	}
	names, err := s.resolveUserNames(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]PlanWithAuthor, len(plans))
	for i, plan := range plans {
		result[i] = PlanWithAuthor{
			Plan:       plan,
			AuthorName: names[plan.CreatedBy],
		}
	}
	return result, nil
}

// GetPlanByID resolves a single plan with its exercise entries expanded.
// Private plans are only readable by their owner.
func (s *workoutPlanService) GetPlanByID(ctx context.Context, viewer *primitive.ObjectID, id primitive.ObjectID) (*PlanDetail, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if !plan.IsPublic && (viewer == nil || *viewer != plan.CreatedBy) {
		return nil, ErrPlanAccessDenied
	}

	names, err := s.resolveUserNames(ctx, []primitive.ObjectID{plan.CreatedBy})
	if err != nil {
		return nil, err
	}

	exercises, err := s.expandExercises(ctx, plan.Exercises)
	if err != nil {
		return nil, err
	}

	return &PlanDetail{
		Plan:       *plan,
		AuthorName: names[plan.CreatedBy],
		Exercises:  exercises,
	}, nil
}

// CreatePlan persists a new plan owned by the caller.
func (s *workoutPlanService) CreatePlan(ctx context.Context, owner primitive.ObjectID, input CreatePlanInput) (*domain.WorkoutPlan, error) {
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	plan := &domain.WorkoutPlan{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		Duration:    input.Duration,
		Exercises:   input.Exercises,
		CreatedBy:   owner,
		IsPublic:    isPublic,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	return s.planRepo.GetByID(ctx, planID)
}

// UpdatePlan merges the patch into an existing plan after verifying the
// caller owns it.
func (s *workoutPlanService) UpdatePlan(ctx context.Context, caller, id primitive.ObjectID, patch domain.WorkoutPlanPatch) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if plan.CreatedBy != caller {
		return nil, ErrPlanAccessDenied
	}

	patch.Apply(plan)

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan after verifying the caller owns it.
func (s *workoutPlanService) DeletePlan(ctx context.Context, caller, id primitive.ObjectID) error {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	if plan.CreatedBy != caller {
		return ErrPlanAccessDenied
	}

	if err := s.planRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// resolveUserNames maps the given user IDs to display names. Unknown IDs
// simply stay absent from the map.
func (s *workoutPlanService) resolveUserNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	users, err := s.userRepo.GetManyByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// expandExercises joins plan entries with their library records. Entries
// whose exercise no longer exists keep the denormalized name only.
func (s *workoutPlanService) expandExercises(ctx context.Context, entries []domain.PlanExercise) ([]ExpandedPlanExercise, error) {
	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ExerciseID)
	}

	expanded := make([]ExpandedPlanExercise, len(entries))
	byID := make(map[primitive.ObjectID]domain.Exercise)
	for _, id := range dedupeIDs(ids) {
		ex, err := s.exerciseRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		byID[ex.ID] = *ex
	}

	for i, entry := range entries {
		expanded[i] = ExpandedPlanExercise{PlanExercise: entry}
		if ex, ok := byID[entry.ExerciseID]; ok {
			expanded[i].Name = ex.Name
			expanded[i].VideoURL = ex.VideoURL
			expanded[i].MuscleGroup = ex.MuscleGroup
		}
	}
	return expanded, nil
}

// dedupeIDs removes duplicate ObjectIDs preserving order.
func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
