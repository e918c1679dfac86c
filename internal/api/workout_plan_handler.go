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

// WorkoutPlanHandler holds the workout plan service dependency.
type WorkoutPlanHandler struct {
	planService service.WorkoutPlanService
}

// NewWorkoutPlanHandler creates a new WorkoutPlanHandler.
func NewWorkoutPlanHandler(planService service.WorkoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{planService: planService}
}

// --- DTOs ---

// PlanExerciseRequest is one prescribed exercise in a create/update body.
type PlanExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Sets       int    `json:"sets" binding:"required,min=1"`
	Reps       int    `json:"reps" binding:"required,min=1"`
	Rest       *int   `json:"rest" binding:"omitempty,min=0"`
}

// CreateWorkoutPlanRequest defines the expected JSON for creating a plan.
type CreateWorkoutPlanRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Category    string                `json:"category" binding:"required,oneof=Strength Hypertrophy Endurance 'Weight Loss' 'Full Body' 'Upper Body' 'Lower Body' Core Other"`
	Difficulty  string                `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	Duration    int                   `json:"duration" binding:"required,min=1"`
	Exercises   []PlanExerciseRequest `json:"exercises" binding:"dive"`
	IsPublic    *bool                 `json:"isPublic"`
}

// UpdateWorkoutPlanRequest is a partial plan update. Absent fields are left
// unchanged; isPublic is applied whenever present, false included.
type UpdateWorkoutPlanRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Category    *string               `json:"category" binding:"omitempty,oneof=Strength Hypertrophy Endurance 'Weight Loss' 'Full Body' 'Upper Body' 'Lower Body' Core Other"`
	Difficulty  *string               `json:"difficulty" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Duration    *int                  `json:"duration" binding:"omitempty,min=1"`
	Exercises   []PlanExerciseRequest `json:"exercises" binding:"omitempty,dive"`
	IsPublic    *bool                 `json:"isPublic"`
}

// AuthorRef is a resolved user reference embedded in responses.
type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// PlanExerciseResponse is one plan entry; VideoURL and MuscleGroup are only
// populated on the detail endpoint where library data is joined in.
type PlanExerciseResponse struct {
	ExerciseID  string `json:"exerciseId"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	Rest        int    `json:"rest"`
	VideoURL    string `json:"videoUrl,omitempty"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
}

// WorkoutPlanResponse is the DTO for returning plan details.
type WorkoutPlanResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Difficulty  string                 `json:"difficulty"`
	Duration    int                    `json:"duration"`
	Exercises   []PlanExerciseResponse `json:"exercises"`
	CreatedBy   AuthorRef              `json:"createdBy"`
	IsPublic    bool                   `json:"isPublic"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

func mapPlanExercises(entries []domain.PlanExercise) []PlanExerciseResponse {
	out := make([]PlanExerciseResponse, len(entries))
	for i, e := range entries {
		out[i] = PlanExerciseResponse{
			ExerciseID: e.ExerciseID.Hex(),
			Name:       e.Name,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Rest:       e.Rest,
		}
	}
	return out
}

// MapPlanToResponse converts a plan (plus its author name) to the DTO.
func MapPlanToResponse(plan *domain.WorkoutPlan, authorName string) WorkoutPlanResponse {
	if plan == nil {
		return WorkoutPlanResponse{}
	}
	return WorkoutPlanResponse{
		ID:          plan.ID.Hex(),
		Title:       plan.Title,
		Description: plan.Description,
		Category:    string(plan.Category),
		Difficulty:  string(plan.Difficulty),
		Duration:    plan.Duration,
		Exercises:   mapPlanExercises(plan.Exercises),
		CreatedBy:   AuthorRef{ID: plan.CreatedBy.Hex(), Name: authorName},
		IsPublic:    plan.IsPublic,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// MapPlanDetailToResponse converts a fully expanded plan to the DTO.
func MapPlanDetailToResponse(detail *service.PlanDetail) WorkoutPlanResponse {
	resp := MapPlanToResponse(&detail.Plan, detail.AuthorName)
	resp.Exercises = make([]PlanExerciseResponse, len(detail.Exercises))
	for i, e := range detail.Exercises {
		resp.Exercises[i] = PlanExerciseResponse{
			ExerciseID:  e.ExerciseID.Hex(),
			Name:        e.Name,
			Sets:        e.Sets,
			Reps:        e.Reps,
			Rest:        e.Rest,
			VideoURL:    e.VideoURL,
			MuscleGroup: string(e.MuscleGroup),
		}
	}
	return resp
}

func planExercisesFromRequest(entries []PlanExerciseRequest) ([]domain.PlanExercise, error) {
	out := make([]domain.PlanExercise, len(entries))
	for i, e := range entries {
		exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
		if err != nil {
			return nil, errors.New("invalid exercise ID: " + e.ExerciseID)
		}
		rest := domain.DefaultRestSeconds
		if e.Rest != nil {
			rest = *e.Rest
		}
		out[i] = domain.PlanExercise{
			ExerciseID: exerciseID,
			Name:       e.Name,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Rest:       rest,
		}
	}
	return out, nil
}

// --- Handler Methods ---

// ListPlans godoc
// @Summary List workout plans visible to the caller
// @Description Anonymous callers see public plans; authenticated callers also see their own private plans.
// @Tags WorkoutPlans
// @Produce json
// @Param category query string false "Exact category"
// @Param difficulty query string false "Exact difficulty"
// @Param search query string false "Substring match on title or description"
// @Success 200 {array} WorkoutPlanResponse
// @Router /workout-plans [get]
func (h *WorkoutPlanHandler) ListPlans(c *gin.Context) {
	viewer := optionalCallerID(c)

	plans, err := h.planService.ListPlans(c.Request.Context(), viewer, service.PlanListOptions{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]WorkoutPlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = MapPlanToResponse(&p.Plan, p.AuthorName)
	}
	c.JSON(http.StatusOK, responses)
}

// GetPlanByID godoc
// @Summary Get one workout plan
// @Tags WorkoutPlans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} WorkoutPlanResponse
// @Failure 403 {object} gin.H "Private plan of another user"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /workout-plans/{id} [get]
func (h *WorkoutPlanHandler) GetPlanByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout plan not found")
		return
	}

	detail, err := h.planService.GetPlanByID(c.Request.Context(), optionalCallerID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapPlanDetailToResponse(detail))
}

// CreatePlan godoc
// @Summary Create a workout plan
// @Tags WorkoutPlans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreateWorkoutPlanRequest true "Plan details"
// @Success 201 {object} WorkoutPlanResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /workout-plans [post]
func (h *WorkoutPlanHandler) CreatePlan(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req CreateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercises, err := planExercisesFromRequest(req.Exercises)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), callerID, service.CreatePlanInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.PlanCategory(req.Category),
		Difficulty:  domain.Difficulty(req.Difficulty),
		Duration:    req.Duration,
		Exercises:   exercises,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan, ""))
}

// UpdatePlan godoc
// @Summary Update a workout plan
// @Description Partial update; only the owner may modify a plan.
// @Tags WorkoutPlans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param plan body UpdateWorkoutPlanRequest true "Fields to change"
// @Success 200 {object} WorkoutPlanResponse
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /workout-plans/{id} [put]
func (h *WorkoutPlanHandler) UpdatePlan(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout plan not found")
		return
	}

	var req UpdateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patch := domain.WorkoutPlanPatch{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		IsPublic:    req.IsPublic,
	}
	if req.Category != nil {
		category := domain.PlanCategory(*req.Category)
		patch.Category = &category
	}
	if req.Difficulty != nil {
		difficulty := domain.Difficulty(*req.Difficulty)
		patch.Difficulty = &difficulty
	}
	if req.Exercises != nil {
		exercises, err := planExercisesFromRequest(req.Exercises)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		patch.Exercises = exercises
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), callerID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan, ""))
}

// DeletePlan godoc
// @Summary Delete a workout plan
// @Tags WorkoutPlans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} gin.H
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /workout-plans/{id} [delete]
func (h *WorkoutPlanHandler) DeletePlan(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout plan not found")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), callerID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout plan removed"})
}
