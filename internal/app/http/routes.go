package routes

import (
	"net/http"

	"gallery-api/config"
	adminapi "gallery-api/internal/api/admin"
	authapi "gallery-api/internal/api/auth"
	blogapi "gallery-api/internal/api/blog"
	profileapi "gallery-api/internal/api/profile"
	uploadapi "gallery-api/internal/api/upload"
	"gallery-api/internal/api/users"
	worksapi "gallery-api/internal/api/works"
	"gallery-api/internal/app/http/middleware"
	domainusers "gallery-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const ServiceName = "gallery-api"

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
	})

	api := r.Group("/api")
	authed := []gin.HandlerFunc{middleware.AuthMiddleware(), middleware.RequireActiveUser()}

	registerAuth(api, authed)
	registerArtworks(api, authed)
	registerProfile(api, authed)
	registerBlog(api, authed)

	upload := api.Group("/upload", authed...)
	upload.POST("", uploadapi.Generic)
	upload.POST("/image", uploadapi.Image)
	upload.POST("/artwork", uploadapi.Artwork)
	upload.POST("/history", uploadapi.History)
	upload.POST("/temp", uploadapi.Temp)
	upload.DELETE("", uploadapi.Delete)
	upload.POST("/move-temp", uploadapi.MoveTemp)
	upload.POST("/cleanup-temp", uploadapi.CleanupTemp)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireActiveUser(), middleware.RequireRole(domainusers.RoleAdmin))
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/users/:id", adminapi.GetUserDetails)
	admin.POST("/cleanup/unverified", adminapi.CleanupUnverified)
	admin.GET("/storage/pending", adminapi.ListPendingDeletions)
}

func registerAuth(api *gin.RouterGroup, authed []gin.HandlerFunc) {
	// Sanitization applies to the public auth routes only
	public := api.Group("/auth")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/refresh", authapi.Refresh)
	public.GET("/verify-email", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)
	public.POST("/check-slug", users.CheckSlug)

	if config.GoogleEnabled() {
		public.GET("/google", authapi.GoogleStart)
		public.GET("/google/callback", authapi.GoogleCallback)
	}

	auth := api.Group("/auth", authed...)
	auth.POST("/logout", authapi.Logout)
	auth.GET("/me", users.GetCurrentUser)
	auth.PUT("/password", authapi.ChangePassword)
	auth.DELETE("/account", authapi.DeleteAccount)
}

func registerArtworks(api *gin.RouterGroup, authed []gin.HandlerFunc) {
	artworks := api.Group("/artworks")

	optional := artworks.Group("", middleware.OptionalAuth())
	optional.GET("/:id", worksapi.GetArtwork)
	optional.GET("/:id/adjacent", worksapi.GetAdjacent)
	optional.POST("/:id/like", worksapi.LikeArtwork)
	optional.GET("/user/:slug", worksapi.ListUserArtworks)
	optional.GET("/user/:slug/stats", worksapi.GetUserStats)
	optional.GET("/:id/histories", worksapi.ListHistories)
	optional.GET("/:id/histories/:history_id", worksapi.GetHistory)

	auth := artworks.Group("", authed...)
	auth.POST("", worksapi.CreateArtwork)
	auth.GET("/my", worksapi.ListMyArtworks)
	auth.GET("/stats", worksapi.GetMyStats)
	auth.PUT("/reorder", worksapi.ReorderArtworks)
	auth.PUT("/:id", worksapi.UpdateArtwork)
	auth.DELETE("/:id", worksapi.DeleteArtwork)

	auth.POST("/:id/histories", worksapi.CreateHistory)
	auth.PUT("/:id/histories/reorder", worksapi.ReorderHistories)
	auth.PUT("/:id/histories/:history_id", worksapi.UpdateHistory)
	auth.DELETE("/:id/histories/:history_id", worksapi.DeleteHistory)
}

func registerProfile(api *gin.RouterGroup, authed []gin.HandlerFunc) {
	prof := api.Group("/profile")
	prof.GET("/public/:slug", middleware.OptionalAuth(), profileapi.GetPublicProfile)

	auth := prof.Group("", authed...)
	auth.GET("", profileapi.GetProfile)
	auth.GET("/main", profileapi.GetMainProfile)
	auth.PUT("/basic", profileapi.UpdateBasic)
	auth.PUT("/about", profileapi.UpdateAbout)
	auth.PUT("/studio", profileapi.UpdateStudio)
	auth.PUT("/artist-statement", profileapi.UpdateStatement)
	auth.PUT("/qa", profileapi.ReplaceQA)

	auth.GET("/videos", profileapi.ListVideos)
	auth.POST("/videos", profileapi.AddVideo)
	auth.PUT("/videos/:id", profileapi.UpdateVideo)
	auth.DELETE("/videos/:id", profileapi.DeleteVideo)

	auth.GET("/exhibitions", profileapi.ListExhibitions)
	auth.POST("/exhibitions", profileapi.AddExhibition)
	auth.PUT("/exhibitions/:id", profileapi.UpdateExhibition)
	auth.DELETE("/exhibitions/:id", profileapi.DeleteExhibition)

	auth.GET("/awards", profileapi.ListAwards)
	auth.POST("/awards", profileapi.AddAward)
	auth.PUT("/awards/:id", profileapi.UpdateAward)
	auth.DELETE("/awards/:id", profileapi.DeleteAward)
}

func registerBlog(api *gin.RouterGroup, authed []gin.HandlerFunc) {
	blog := api.Group("/blog")

	optional := blog.Group("", middleware.OptionalAuth())
	optional.GET("/posts", blogapi.ListPosts)
	optional.GET("/posts/:id", blogapi.GetPost)
	optional.GET("/:slug/studio", blogapi.GetStudioPost)

	auth := blog.Group("", authed...)
	auth.GET("/my", blogapi.ListMyPosts)
	auth.POST("/posts", blogapi.CreatePost)
	auth.PUT("/posts/:id", blogapi.UpdatePost)
	auth.DELETE("/posts/:id", blogapi.DeletePost)
}
