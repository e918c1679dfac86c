package api

import (
	"errors"
	"net/http"
	"time"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/repository"
	"fitnessfreaks/api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	VideoURL     string   `json:"videoUrl" binding:"required,url"`
	Instructions []string `json:"instructions" binding:"required"`
	MuscleGroup  string   `json:"muscleGroup" binding:"required,oneof=Chest Back Shoulders Arms Legs Core 'Full Body' Cardio"`
	Equipment    string   `json:"equipment" binding:"required,oneof=None Dumbbells Barbell Kettlebell Machine Cable 'Resistance Band' Bodyweight Other"`
	Difficulty   string   `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	ThumbnailURL string   `json:"thumbnailUrl" binding:"omitempty,url"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	Instructions []string  `json:"instructions"`
	MuscleGroup  string    `json:"muscleGroup"`
	Equipment    string    `json:"equipment"`
	Difficulty   string    `json:"difficulty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:           ex.ID.Hex(),
		Name:         ex.Name,
		Description:  ex.Description,
		VideoURL:     ex.VideoURL,
		Instructions: ex.Instructions,
		MuscleGroup:  string(ex.MuscleGroup),
		Equipment:    string(ex.Equipment),
		Difficulty:   string(ex.Difficulty),
		ThumbnailURL: ex.ThumbnailURL,
		CreatedAt:    ex.CreatedAt,
		UpdatedAt:    ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List the exercise library
// @Description Retrieves exercises, optionally filtered, ordered by name.
// @Tags Exercises
// @Produce json
// @Param muscleGroup query string false "Exact muscle group"
// @Param difficulty query string false "Exact difficulty"
// @Param equipment query string false "Exact equipment"
// @Param search query string false "Case-insensitive name substring"
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filter := repository.ExerciseFilter{
		MuscleGroup: c.Query("muscleGroup"),
		Difficulty:  c.Query("difficulty"),
		Equipment:   c.Query("equipment"),
		Search:      c.Query("search"),
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExerciseByID godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExerciseByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Exercise not found")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Adds an exercise to the library. Names are globally unique.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Validation error or duplicate name"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if _, err := callerIDFromContext(c); err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), service.CreateExerciseInput{
		Name:         req.Name,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		Instructions: req.Instructions,
		MuscleGroup:  domain.MuscleGroup(req.MuscleGroup),
		Equipment:    domain.Equipment(req.Equipment),
		Difficulty:   domain.Difficulty(req.Difficulty),
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		// Duplicate names map to 400, matching what clients already expect.
		if errors.Is(err, service.ErrExerciseNameTaken) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}
