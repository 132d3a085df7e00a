package app

import (
	"quizdesk_backend/docs"
	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/middleware"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: registration, login, the published assignment list and
	// per-assignment results need no token.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/users/register", c.auth.Register)
		public.POST("/users/login", c.auth.Login)
		public.GET("/assignments", c.assignment.GetAll)
		public.GET("/users/results/:assignmentId", c.user.GetResults)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, repos.user))
	{
		// Users
		authGroup.GET("/users/profile", c.auth.GetProfile)
		authGroup.POST("/users/avatar", c.auth.UploadAvatar)
		authGroup.GET("/users", c.user.GetUsers)
		authGroup.DELETE("/users/:id", c.user.DeleteUser)

		// Assignments
		authGroup.GET("/assignments/:id", c.assignment.GetByID)
		lecturerOnly := middleware.RoleMiddleware(model.Lecturer)
		authGroup.POST("/assignments", lecturerOnly, c.assignment.Create)
		authGroup.PATCH("/assignments/:id", lecturerOnly, c.assignment.Update)
		authGroup.DELETE("/assignments/:id", lecturerOnly, c.assignment.Delete)

		// Questions
		questions := authGroup.Group("/questions")
		{
			questions.POST("", lecturerOnly, c.question.Create)
			questions.GET("/assignment/:assignmentId", c.question.GetByAssignment)
			questions.GET("/:id", c.question.GetByID)
			questions.PATCH("/:id", lecturerOnly, c.question.Update)
			questions.DELETE("/:id", lecturerOnly, c.question.Delete)
		}

		// Submissions
		submissions := authGroup.Group("/submissions")
		{
			submissions.POST("", c.submission.Submit)
			submissions.PATCH("/grade", lecturerOnly, c.submission.Regrade)
			submissions.GET("/submission/:assignmentId", c.submission.ListByAssignment)
			submissions.GET("/:id", c.submission.GetByID)
			submissions.DELETE("/:id", lecturerOnly, c.submission.Delete)
		}
	}
}
