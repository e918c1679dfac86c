package repository

import (
	"context"
	"time"

	"fitnessfreaks/api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter narrows an exercise listing. Empty fields are ignored.
// Search matches the name as a case-insensitive substring.
type ExerciseFilter struct {
	MuscleGroup string
	Difficulty  string
	Equipment   string
	Search      string
}

// PlanFilter narrows a workout plan listing. Viewer is the caller, or nil
// for anonymous; it drives the visibility predicate (public plans plus the
// viewer's own). Search matches title or description case-insensitively.
type PlanFilter struct {
	Viewer     *primitive.ObjectID
	Category   string
	Difficulty string
	Search     string
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ExerciseRepository defines the interface for the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)
}

// WorkoutPlanRepository defines the interface for workout plan data.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	List(ctx context.Context, filter PlanFilter) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutLogRepository defines the interface for workout log data, including
// the aggregation primitives used by the stats engine.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	TotalDurationByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DailyCountsSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.DailyWorkoutCount, error)
	MostUsedMuscleGroup(ctx context.Context, userID primitive.ObjectID) (string, error)
}

// PostRepository defines the interface for community posts. AddComment and
// ToggleLike are single atomic document updates.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	GetAll(ctx context.Context) ([]domain.Post, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *domain.Comment) error
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) error
}
