package app

import (
	"akademisi_backend/docs"
	"akademisi_backend/internal/config"
	"akademisi_backend/internal/middleware"
	"akademisi_backend/internal/model"
	"akademisi_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		a.registerQuestionRoutes(authGroup, c)
		a.registerExamRoutes(authGroup, c)
		a.registerResultRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// 题库管理，仅教师可用
func (a *App) registerQuestionRoutes(group *gin.RouterGroup, c *controllers) {
	questions := group.Group("/questions")
	questions.Use(middleware.RoleMiddleware(model.Teacher))
	{
		questions.GET("", c.question.List)
		questions.GET("/:id", c.question.Get)
		questions.POST("", c.question.Create)
		questions.PUT("/:id", c.question.Update)
		questions.DELETE("/:id", c.question.Delete)
		questions.POST("/upload-image", c.question.UploadImage)
	}
}

func (a *App) registerExamRoutes(group *gin.RouterGroup, c *controllers) {
	exams := group.Group("/exams")
	{
		// 查询接口对所有登录用户开放，学生端靠 /active 拿到可作答的考试
		exams.GET("", c.exam.List)
		exams.GET("/active", c.exam.ListActive)
		exams.GET("/:id", c.exam.Get)

		teacherOnly := exams.Group("")
		teacherOnly.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacherOnly.GET("/mine", c.exam.ListMine)
			teacherOnly.POST("", c.exam.Create)
			teacherOnly.PUT("/:id", c.exam.Update)
			teacherOnly.DELETE("/:id", c.exam.Delete)
		}
	}
}

func (a *App) registerResultRoutes(group *gin.RouterGroup, c *controllers) {
	results := group.Group("/results")
	{
		results.POST("/:examId/submit", middleware.RoleMiddleware(model.Student), c.result.Submit)
		results.GET("/student/:studentId", c.result.StudentResults)

		teacherOnly := results.Group("")
		teacherOnly.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacherOnly.GET("/exam/:examId", c.result.ExamResults)
			teacherOnly.GET("/exam/:examId/summary", c.result.ExamSummary)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/raw-registrations", c.admin.ListRegistrationLogs)
		admin.PUT("/raw-registrations/:id", c.admin.UpdateRegistrationLog)
		admin.DELETE("/raw-registrations/:id", c.admin.DeleteRegistrationLog)
	}
}
