package api

import (
	"net/http"

	"fitnessfreaks/api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the gin engine under /api.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	planService service.WorkoutPlanService,
	logService service.WorkoutLogService,
	postService service.PostService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	planHandler := NewWorkoutPlanHandler(planService)
	logHandler := NewWorkoutLogHandler(logService)
	postHandler := NewPostHandler(postService)

	authMiddleware := AuthMiddleware(jwtSecret)
	optionalAuth := OptionalAuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.GET("/me", authMiddleware, authHandler.GetProfile)
			users.PUT("/profile", authMiddleware, authHandler.UpdateProfile)
		}

		exercises := api.Group("/exercises")
		{
			exercises.GET("", exerciseHandler.ListExercises)
			exercises.GET("/:id", exerciseHandler.GetExerciseByID)
			exercises.POST("", authMiddleware, exerciseHandler.CreateExercise)
		}

		// Reads resolve the caller in best-effort mode so anonymous users
		// still see public plans.
		plans := api.Group("/workout-plans")
		{
			plans.GET("", optionalAuth, planHandler.ListPlans)
			plans.GET("/:id", optionalAuth, planHandler.GetPlanByID)
			plans.POST("", authMiddleware, planHandler.CreatePlan)
			plans.PUT("/:id", authMiddleware, planHandler.UpdatePlan)
			plans.DELETE("/:id", authMiddleware, planHandler.DeletePlan)
		}

		logs := api.Group("/workout-logs")
		logs.Use(authMiddleware)
		{
			logs.GET("", logHandler.ListLogs)
			logs.POST("", logHandler.CreateLog)
			logs.GET("/stats", logHandler.GetStats)
			logs.DELETE("/:id", logHandler.DeleteLog)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:id", postHandler.GetPostByID)
			posts.POST("", authMiddleware, postHandler.CreatePost)
			posts.POST("/:id/comments", authMiddleware, postHandler.AddComment)
			posts.PUT("/:id/like", authMiddleware, postHandler.ToggleLike)
		}
	}
}
