package api

import (
	"errors"
	"net/http"
	"time"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLogHandler holds the workout log service dependency.
type WorkoutLogHandler struct {
	logService service.WorkoutLogService
}

// NewWorkoutLogHandler creates a new WorkoutLogHandler.
func NewWorkoutLogHandler(logService service.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{logService: logService}
}

// --- DTOs ---

// SetLogRequest is one performed set within a logged exercise.
type SetLogRequest struct {
	Weight float64 `json:"weight" binding:"min=0"`
	Reps   int     `json:"reps" binding:"min=0"`
}

// ExerciseLogRequest is one exercise entry in a create body. ExerciseID is
// optional so ad-hoc exercises can be logged by name only.
type ExerciseLogRequest struct {
	ExerciseID   string          `json:"exerciseId"`
	ExerciseName string          `json:"exerciseName" binding:"required"`
	Sets         []SetLogRequest `json:"sets" binding:"required,min=1,dive"`
}

// CreateWorkoutLogRequest defines the expected JSON for logging a workout.
type CreateWorkoutLogRequest struct {
	Date             *time.Time           `json:"date"`
	WorkoutPlanID    string               `json:"workoutPlanId"`
	WorkoutPlanTitle string               `json:"workoutPlanTitle"`
	Exercises        []ExerciseLogRequest `json:"exercises" binding:"required,min=1,dive"`
	Duration         int                  `json:"duration" binding:"required,min=1"`
	Notes            string               `json:"notes"`
}

// SetLogResponse mirrors a performed set.
type SetLogResponse struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// ExerciseLogResponse is one exercise entry of a returned log.
type ExerciseLogResponse struct {
	ExerciseID   string           `json:"exerciseId,omitempty"`
	ExerciseName string           `json:"exerciseName"`
	Sets         []SetLogResponse `json:"sets"`
}

// WorkoutLogResponse is the DTO for returning a workout log.
type WorkoutLogResponse struct {
	ID               string                `json:"id"`
	Date             time.Time             `json:"date"`
	WorkoutPlanID    string                `json:"workoutPlanId,omitempty"`
	WorkoutPlanTitle string                `json:"workoutPlanTitle,omitempty"`
	Exercises        []ExerciseLogResponse `json:"exercises"`
	Duration         int                   `json:"duration"`
	Notes            string                `json:"notes,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// ProgressStatsResponse is the DTO for the aggregated statistics endpoint.
type ProgressStatsResponse struct {
	TotalWorkouts       int64                      `json:"totalWorkouts"`
	TotalDuration       int64                      `json:"totalDuration"`
	MostUsedMuscleGroup string                     `json:"mostUsedMuscleGroup,omitempty"`
	WeeklyWorkouts      []domain.DailyWorkoutCount `json:"weeklyWorkouts"`
}

// MapWorkoutLogToResponse converts a domain.WorkoutLog to the DTO.
func MapWorkoutLogToResponse(log *domain.WorkoutLog) WorkoutLogResponse {
	if log == nil {
		return WorkoutLogResponse{}
	}
	resp := WorkoutLogResponse{
		ID:               log.ID.Hex(),
		Date:             log.Date,
		WorkoutPlanTitle: log.WorkoutPlanTitle,
		Duration:         log.Duration,
		Notes:            log.Notes,
		CreatedAt:        log.CreatedAt,
	}
	if log.WorkoutPlanID != nil {
		resp.WorkoutPlanID = log.WorkoutPlanID.Hex()
	}
	resp.Exercises = make([]ExerciseLogResponse, len(log.Exercises))
	for i, ex := range log.Exercises {
		entry := ExerciseLogResponse{
			ExerciseName: ex.ExerciseName,
			Sets:         make([]SetLogResponse, len(ex.Sets)),
		}
		if ex.ExerciseID != nil {
			entry.ExerciseID = ex.ExerciseID.Hex()
		}
		for j, set := range ex.Sets {
			entry.Sets[j] = SetLogResponse{Weight: set.Weight, Reps: set.Reps}
		}
		resp.Exercises[i] = entry
	}
	return resp
}

// --- Handler Methods ---

// ListLogs godoc
// @Summary List the caller's workout logs
// @Description Returns only the authenticated user's logs, newest date first.
// @Tags WorkoutLogs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutLogResponse
// @Router /workout-logs [get]
func (h *WorkoutLogHandler) ListLogs(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	logs, err := h.logService.ListLogs(c.Request.Context(), callerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapWorkoutLogToResponse(&logs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// CreateLog godoc
// @Summary Log a completed workout
// @Tags WorkoutLogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body CreateWorkoutLogRequest true "Workout details"
// @Success 201 {object} WorkoutLogResponse
// @Failure 400 {object} gin.H "Validation error"
// @Router /workout-logs [post]
func (h *WorkoutLogHandler) CreateLog(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req CreateWorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.CreateLogInput{
		WorkoutPlanTitle: req.WorkoutPlanTitle,
		Duration:         req.Duration,
		Notes:            req.Notes,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	if req.WorkoutPlanID != "" {
		planID, err := primitive.ObjectIDFromHex(req.WorkoutPlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid workout plan ID: "+req.WorkoutPlanID)
			return
		}
		input.WorkoutPlanID = &planID
	}

	input.Exercises = make([]domain.ExerciseLog, len(req.Exercises))
	for i, ex := range req.Exercises {
		entry := domain.ExerciseLog{
			ExerciseName: ex.ExerciseName,
			Sets:         make([]domain.SetLog, len(ex.Sets)),
		}
		if ex.ExerciseID != "" {
			exerciseID, err := primitive.ObjectIDFromHex(ex.ExerciseID)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, "invalid exercise ID: "+ex.ExerciseID)
				return
			}
			entry.ExerciseID = &exerciseID
		}
		for j, set := range ex.Sets {
			entry.Sets[j] = domain.SetLog{Weight: set.Weight, Reps: set.Reps}
		}
		input.Exercises[i] = entry
	}

	log, err := h.logService.CreateLog(c.Request.Context(), callerID, input)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutLogToResponse(log))
}

// DeleteLog godoc
// @Summary Delete a workout log
// @Description Only the owner of a log may delete it.
// @Tags WorkoutLogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 200 {object} gin.H
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Log not found"
// @Router /workout-logs/{id} [delete]
func (h *WorkoutLogHandler) DeleteLog(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout log not found")
		return
	}

	if err := h.logService.DeleteLog(c.Request.Context(), callerID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrLogNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrLogAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout log removed"})
}

// GetStats godoc
// @Summary Get the caller's progress statistics
// @Description Aggregates total workouts, total duration, the most trained muscle group and daily counts for the last 28 days.
// @Tags WorkoutLogs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProgressStatsResponse
// @Router /workout-logs/stats [get]
func (h *WorkoutLogHandler) GetStats(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	stats, err := h.logService.GetProgressStats(c.Request.Context(), callerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, ProgressStatsResponse{
		TotalWorkouts:       stats.TotalWorkouts,
		TotalDuration:       stats.TotalDuration,
		MostUsedMuscleGroup: stats.MostUsedMuscleGroup,
		WeeklyWorkouts:      stats.WeeklyWorkouts,
	})
}
