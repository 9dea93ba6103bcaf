package app

import (
	"roadcode_backend/internal/config"
	"roadcode_backend/internal/middleware"
	"roadcode_backend/internal/model"
	"roadcode_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no login required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/questions", c.question.ListQuestions)
		public.GET("/questions/categories", c.question.ListCategories)
		public.GET("/signs", c.sign.ListSigns)
		public.GET("/signs/:id", c.sign.GetSign)
	}

	// Authenticated routes.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.GetProfile)

		authGroup.POST("/exam/start", c.exam.StartExam)
		authGroup.GET("/exam/:id", c.exam.GetExamDetail)
		authGroup.POST("/exam/:id/answer", c.exam.SubmitAnswer)
		authGroup.POST("/exam/:id/finish", c.exam.FinishExam)

		authGroup.POST("/training/check", c.exam.CheckTraining)

		authGroup.GET("/stats/summary", c.stats.GetSummary)
		authGroup.GET("/stats/activity", c.stats.GetActivity)

		// Content management, admin only.
		admin := authGroup.Group("/")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/questions", c.question.CreateQuestion)
			admin.PUT("/questions/:id", c.question.UpdateQuestion)
			admin.DELETE("/questions/:id", c.question.DeleteQuestion)
			admin.POST("/signs", c.sign.CreateSign)
			admin.POST("/signs/image", c.sign.UploadImage)
		}
	}
}
