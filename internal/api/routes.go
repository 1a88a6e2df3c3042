package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runplan/internal/domain"
	"runplan/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	coachService service.CoachService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	coachHandler := NewCoachHandler(coachService)

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

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			// POST /api/v1/plans - generate and persist a new plan
			planGroup.POST("", planHandler.GeneratePlan)
			// GET /api/v1/plans - list the caller's plans (summaries)
			planGroup.GET("", planHandler.ListPlans)
			// GET /api/v1/plans/{id} - full plan with all weeks
			planGroup.GET("/:id", planHandler.GetPlan)
			// DELETE /api/v1/plans/{id}
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			// POST /api/v1/plans/{id}/export - render to markdown and store
			planGroup.POST("/:id/export", planHandler.ExportPlan)
			// GET /api/v1/plans/{id}/export - fresh download URL
			planGroup.GET("/:id/export", planHandler.GetExport)
		}

		// --- Coach Specific Routes ---
		// Require authentication AND the 'coach' role.
		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			// POST /api/v1/coach/runners
			coachGroup.POST("/runners", coachHandler.AddRunnerByEmail)
			// GET /api/v1/coach/runners
			coachGroup.GET("/runners", coachHandler.GetManagedRunners)
			// GET /api/v1/coach/runners/{runnerId}/plans
			coachGroup.GET("/runners/:runnerId/plans", coachHandler.GetPlansForRunner)
		}
	}
}
