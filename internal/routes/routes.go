package routes

import (
	"github.com/gin-gonic/gin"

	"maintdesk/internal/authz"
	"maintdesk/internal/handlers"
	"maintdesk/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtKey []byte,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	reminderHandler *handlers.ReminderHandler,
	userHandler *handlers.UserHandler,
	assetHandler *handlers.AssetHandler,
	contractorHandler *handlers.ContractorHandler,
	propertyHandler *handlers.PropertyHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtKey))

	adminOnly := middleware.RequireRoles(authz.RoleAdmin)

	// TASKS
	tasks := r.Group("/api/tasks")
	{
		tasks.GET("", taskHandler.List)
		tasks.POST("", adminOnly, taskHandler.Create)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PATCH("/:id", taskHandler.Update)
		tasks.POST("/:id/remarks", taskHandler.AddRemark)
		tasks.GET("/:id/remarks", taskHandler.ListRemarks)
	}

	// REMINDERS (admin)
	r.POST("/api/reminders/run", adminOnly, reminderHandler.Run)

	// USERS (admin)
	users := r.Group("/api/users", adminOnly)
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:id", userHandler.GetByID)
		users.PATCH("/:id", userHandler.Update)
	}

	// REGISTRY: categories / apartments / areas
	r.GET("/api/categories", propertyHandler.ListCategories)
	r.POST("/api/categories", adminOnly, propertyHandler.CreateCategory)
	r.GET("/api/apartments", propertyHandler.ListApartments)
	r.POST("/api/apartments", adminOnly, propertyHandler.CreateApartment)
	r.GET("/api/areas", propertyHandler.ListAreas)
	r.POST("/api/areas", adminOnly, propertyHandler.CreateArea)

	// CONTRACTORS
	contractors := r.Group("/api/contractors")
	{
		contractors.GET("", contractorHandler.List)
		contractors.POST("", adminOnly, contractorHandler.Create)
		contractors.GET("/:id", contractorHandler.GetByID)
		contractors.PATCH("/:id", adminOnly, contractorHandler.Update)
		contractors.POST("/:id/reviews", contractorHandler.AddReview)
		contractors.GET("/:id/reviews", contractorHandler.ListReviews)
	}

	// ASSETS
	assets := r.Group("/api/assets")
	{
		assets.GET("", assetHandler.List)
		assets.POST("", adminOnly, assetHandler.Create)
		assets.GET("/:id", assetHandler.GetByID)
		assets.PATCH("/:id", adminOnly, assetHandler.Update)
	}

	// REPORTS (admin)
	reports := r.Group("/api/reports", adminOnly)
	{
		reports.GET("/summary", reportHandler.GetSummary)
		reports.GET("/tasks.pdf", reportHandler.TaskReportPDF)
	}

	return r
}
