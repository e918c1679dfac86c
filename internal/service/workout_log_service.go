package service

import (
	"context"
	"errors"
	"time"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogNotFound     = errors.New("workout log not found")
	ErrLogAccessDenied = errors.New("not authorized to access this workout log")
)

// statsWindowDays is the size of the rolling window for daily workout counts.
const statsWindowDays = 28

// CreateLogInput carries the fields for a new workout log.
type CreateLogInput struct {
	Date             time.Time
	WorkoutPlanID    *primitive.ObjectID
	WorkoutPlanTitle string
	Exercises        []domain.ExerciseLog
	Duration         int
	Notes            string
}

// WorkoutLogService manages the caller-scoped workout history and the
// progress statistics computed over it.
type WorkoutLogService interface {
	ListLogs(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	CreateLog(ctx context.Context, userID primitive.ObjectID, input CreateLogInput) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, caller, id primitive.ObjectID) error
	GetProgressStats(ctx context.Context, userID primitive.ObjectID) (*domain.ProgressStats, error)
}

type workoutLogService struct {
	logRepo repository.WorkoutLogRepository
}

// NewWorkoutLogService creates a new instance of workoutLogService.
func NewWorkoutLogService(logRepo repository.WorkoutLogRepository) WorkoutLogService {
	return &workoutLogService{
		logRepo: logRepo,
	}
}

// ListLogs returns the caller's own logs, most recent date first. Logs are
// never visible to anyone but their owner.
func (s *workoutLogService) ListLogs(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return s.logRepo.GetByUserID(ctx, userID)
}

// CreateLog persists a new log owned by the caller.
func (s *workoutLogService) CreateLog(ctx context.Context, userID primitive.ObjectID, input CreateLogInput) (*domain.WorkoutLog, error) {
	log := &domain.WorkoutLog{
		Date:             input.Date,
		WorkoutPlanID:    input.WorkoutPlanID,
		WorkoutPlanTitle: input.WorkoutPlanTitle,
		Exercises:        input.Exercises,
		Duration:         input.Duration,
		Notes:            input.Notes,
		UserID:           userID,
	}

	logID, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = logID

	return s.logRepo.GetByID(ctx, logID)
}

// DeleteLog removes a log. The record is fetched first and ownership
// verified by identity equality before deletion.
func (s *workoutLogService) DeleteLog(ctx context.Context, caller, id primitive.ObjectID) error {
	log, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}

	if log.UserID != caller {
		return ErrLogAccessDenied
	}

	if err := s.logRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return nil
}

// GetProgressStats computes the caller's aggregate progress: total workout
// count, total duration, the busiest muscle group, and per-day counts for
// the rolling 28-day window. Days without workouts are omitted.
func (s *workoutLogService) GetProgressStats(ctx context.Context, userID primitive.ObjectID) (*domain.ProgressStats, error) {
	totalWorkouts, err := s.logRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalDuration, err := s.logRepo.TotalDurationByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -statsWindowDays)
	weekly, err := s.logRepo.DailyCountsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	muscleGroup, err := s.logRepo.MostUsedMuscleGroup(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.ProgressStats{
		TotalWorkouts:       totalWorkouts,
		TotalDuration:       totalDuration,
		MostUsedMuscleGroup: muscleGroup,
		WeeklyWorkouts:      weekly,
	}, nil
}
