package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseNameTaken = errors.New("exercise already exists")
)

// CreateExerciseInput carries the fields for a new library entry.
type CreateExerciseInput struct {
	Name         string
	Description  string
	VideoURL     string
	Instructions []string
	MuscleGroup  domain.MuscleGroup
	Equipment    domain.Equipment
	Difficulty   domain.Difficulty
	ThumbnailURL string
}

// ExerciseService manages the shared exercise library.
type ExerciseService interface {
	ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error)
	GetExerciseByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	CreateExercise(ctx context.Context, input CreateExerciseInput) (*domain.Exercise, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// ListExercises retrieves exercises matching the optional filters, ordered
// by name. No authentication is required to browse the library.
func (s *exerciseService) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, filter)
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// CreateExercise adds a new exercise to the library. Names are globally
// unique; creating a duplicate fails with ErrExerciseNameTaken.
func (s *exerciseService) CreateExercise(ctx context.Context, input CreateExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("exercise name is required")
	}

	_, err := s.exerciseRepo.GetByName(ctx, input.Name)
	if err == nil {
		return nil, ErrExerciseNameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	thumbnail := input.ThumbnailURL
	if thumbnail == "" {
		thumbnail = DefaultThumbnailURL(input.VideoURL)
	}

	exercise := &domain.Exercise{
		Name:         input.Name,
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		Instructions: input.Instructions,
		MuscleGroup:  input.MuscleGroup,
		Equipment:    input.Equipment,
		Difficulty:   input.Difficulty,
		ThumbnailURL: thumbnail,
	}
	if exercise.Instructions == nil {
		exercise.Instructions = []string{}
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		// The unique name index catches creations that raced past the
		// GetByName check.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseNameTaken
		}
		return nil, err
	}
	exercise.ID = exerciseID

	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// DefaultThumbnailURL derives a YouTube still frame from the video URL's
// "v=" parameter. Returns an empty string when the URL carries no video id,
// leaving the exercise without a thumbnail rather than failing creation.
func DefaultThumbnailURL(videoURL string) string {
	_, after, found := strings.Cut(videoURL, "v=")
	if !found {
		return ""
	}
	videoID, _, _ := strings.Cut(after, "&")
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", videoID)
}
