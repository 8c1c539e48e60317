package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/clinic-server/controllers"
	"github.com/vnkhanh/clinic-server/middleware"
	"github.com/vnkhanh/clinic-server/models"
)

// Các nhóm vai trò dùng cho route admin
var (
	editorUp  = []string{models.RoleEditor, models.RoleAdmin, models.RoleSuperAdmin}
	adminUp   = []string{models.RoleAdmin, models.RoleSuperAdmin}
	superOnly = []string{models.RoleSuperAdmin}
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimitLogin(), controllers.Login)
			auth.POST("/google/login", middleware.RateLimitLogin(), controllers.GoogleLoginHandler)
			auth.POST("/logout", controllers.Logout)
		}
		api.GET("/me", middleware.AuthJWT(), controllers.Me)

		// Dịch vụ: đọc public, ghi từ EDITOR trở lên
		services := api.Group("/services")
		{
			services.GET("", controllers.ListServices)
			services.GET("/by-slug/:slug", controllers.GetServiceBySlug)
			services.GET("/homepage", controllers.HomepageServices)

			services.POST("", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.CreateService)
			services.PUT("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.UpdateService)
			services.DELETE("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.DeleteService)
		}

		// Tin tức
		news := api.Group("/news")
		{
			news.GET("", controllers.ListNews)
			news.GET("/by-slug/:slug", controllers.GetNewsBySlug)
			news.GET("/homepage", controllers.HomepageNews)
			news.GET("/featured", controllers.FeaturedNews)

			news.POST("", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.CreateNews)
			news.PUT("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.UpdateNews)
			news.DELETE("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.DeleteNews)
			news.PUT("/:id/featured", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.ToggleFeaturedNews)
		}

		// Danh mục tin tức
		categories := api.Group("/categories")
		{
			categories.GET("", controllers.ListCategories)
			categories.POST("", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.CreateCategory)
			categories.PUT("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.UpdateCategory)
			categories.DELETE("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.DeleteCategory)
		}

		// Đội ngũ
		team := api.Group("/team")
		{
			team.GET("", controllers.ListTeam)
			team.POST("", middleware.AuthJWT(), middleware.RequireRole(editorUp...), middleware.RateLimitUpload(), controllers.CreateTeamMember)
			team.PUT("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.UpdateTeamMember)
			team.DELETE("/:id", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.DeleteTeamMember)
		}

		// Banner: đọc public qua /public, quản trị từ ADMIN trở lên
		banners := api.Group("/banners")
		{
			banners.GET("/public", controllers.PublicBanners)

			banners.GET("", middleware.AuthJWT(), middleware.RequireRole(adminUp...), controllers.ListBanners)
			banners.POST("", middleware.AuthJWT(), middleware.RequireRole(adminUp...), controllers.CreateBanner)
			banners.PUT("/:id", middleware.AuthJWT(), middleware.RequireRole(adminUp...), controllers.UpdateBanner)
			banners.DELETE("/:id", middleware.AuthJWT(), middleware.RequireRole(adminUp...), controllers.DeleteBanner)
		}

		// Liên hệ
		api.GET("/contact", controllers.GetContact)
		api.PUT("/contact", middleware.AuthJWT(), middleware.RequireRole(adminUp...), controllers.UpsertContact)

		// Upload & media
		api.POST("/upload_image", middleware.AuthJWT(), middleware.RequireRole(editorUp...), middleware.RateLimitUpload(), controllers.UploadImage)
		media := api.Group("/media")
		{
			media.POST("/upload", middleware.AuthJWT(), middleware.RequireRole(editorUp...), middleware.RateLimitUpload(), controllers.UploadImage)
			media.GET("", middleware.AuthJWT(), middleware.RequireRole(editorUp...), controllers.ListMedia)
			media.DELETE("/:id", middleware.AuthJWT(), middleware.RequireRole(adminUp...), controllers.DeleteMedia)
		}

		// Dashboard
		api.GET("/dashboard/stats", middleware.AuthJWT(), controllers.DashboardStats)

		// Nhật ký thao tác + export
		logs := api.Group("/logs")
		logs.Use(middleware.AuthJWT(), middleware.RequireRole(adminUp...))
		{
			logs.GET("", controllers.ListAuditLogs)
			logs.POST("/export", controllers.CreateAuditExport)
		}
		api.GET("/exports/:job_id", middleware.AuthJWT(), middleware.RequireRole(adminUp...), controllers.GetExport)

		// Quản lý tài khoản (chỉ SUPER_ADMIN)
		users := api.Group("/users")
		users.Use(middleware.AuthJWT(), middleware.RequireRole(superOnly...))
		{
			users.GET("", controllers.ListUsers)
			users.POST("", controllers.CreateUser)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}
	}
}
