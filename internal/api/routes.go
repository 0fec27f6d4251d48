package api

import (
	"net/http"

	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler onto the router. Programs belong to
// coaches and trainers; logs, maxes and stats belong to athletes; the
// exercise catalog is readable by everyone signed in.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	programService service.ProgramService,
	athleteService service.AthleteService,
	logService service.LogService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	programHandler := NewProgramHandler(programService)
	athleteHandler := NewAthleteHandler(athleteService)
	logHandler := NewLogHandler(logService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", RoleMiddleware(domain.RoleCoach, domain.RoleTrainer), exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", RoleMiddleware(domain.RoleCoach, domain.RoleTrainer), exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", RoleMiddleware(domain.RoleCoach, domain.RoleTrainer), exerciseHandler.DeleteExercise)

			// Demonstration video flow: presigned upload, confirm, presigned download.
			exerciseGroup.POST("/:id/demo/upload", RoleMiddleware(domain.RoleCoach, domain.RoleTrainer), exerciseHandler.RequestDemoUpload)
			exerciseGroup.POST("/:id/demo/confirm", RoleMiddleware(domain.RoleCoach, domain.RoleTrainer), exerciseHandler.ConfirmDemoUpload)
			exerciseGroup.GET("/:id/demo", exerciseHandler.GetDemoDownloadURL)
		}

		// --- Program Authoring ---
		programGroup := protected.Group("/programs")
		programGroup.Use(RoleMiddleware(domain.RoleCoach, domain.RoleTrainer))
		{
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/:id", programHandler.GetProgram)
			programGroup.PUT("/:id", programHandler.UpdateProgram)
			programGroup.DELETE("/:id", programHandler.DeleteProgram)

			programGroup.PUT("/:id/days/:date", programHandler.SetWorkoutDay)
			programGroup.POST("/:id/move", programHandler.MoveProgram)
			programGroup.POST("/:id/publish", programHandler.Publish)
			programGroup.POST("/:id/unpublish", programHandler.Unpublish)
			programGroup.POST("/:id/teams", programHandler.AssignTeam)
			programGroup.DELETE("/:id/teams/:teamId", programHandler.UnassignTeam)
		}

		// --- Athlete Routes ---
		athleteGroup := protected.Group("/athlete")
		athleteGroup.Use(RoleMiddleware(domain.RoleAthlete))
		{
			athleteGroup.GET("/workouts", athleteHandler.GetTodayWorkouts)
			athleteGroup.PUT("/team", athleteHandler.JoinTeam)

			athleteGroup.GET("/maxes", athleteHandler.GetMaxes)
			athleteGroup.PUT("/maxes", athleteHandler.SetMax)

			athleteGroup.GET("/stats", athleteHandler.GetStatHistory)
			athleteGroup.POST("/stats", athleteHandler.LogStatEntry)

			athleteGroup.GET("/logs", logHandler.ListLogs)
			athleteGroup.GET("/logs/:date", logHandler.GetLog)
			athleteGroup.PUT("/logs/:date", logHandler.SaveLog)
		}
	}
}
