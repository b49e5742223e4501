package routes

import (
	"yatube/api/handlers"
	"yatube/api/middleware"

	"github.com/gin-gonic/gin"
)

// PublicApi - страницы, доступные без входа; пользователь определяется, если передан токен
func PublicApi(router *gin.Engine, h *handlers.Handlers, users middleware.TokenResolver) *gin.RouterGroup {
	public := router.Group("/")
	public.Use(middleware.OptionalAuthMiddleware(users))
	{
		public.GET("", h.Index)
		public.GET("group/", h.GroupList)
		public.GET("group/:slug/", h.GroupPosts)
		public.GET("profile/:username/", h.Profile)
		public.GET("posts/:post_id/", h.PostDetail)
		public.GET("media/*key", h.Media)

		public.POST("auth/signup/", h.Signup)
		public.POST("auth/login/", h.Login)
	}
	return public
}

// PrivateApi - действия, требующие входа
func PrivateApi(router *gin.Engine, h *handlers.Handlers, users middleware.TokenResolver) *gin.RouterGroup {
	private := router.Group("/")
	private.Use(middleware.AuthMiddleware(users))
	{
		private.POST("create/", h.PostCreate)
		private.GET("posts/:post_id/edit/", h.PostEditForm)
		private.POST("posts/:post_id/edit/", h.PostEdit)
		private.POST("posts/:post_id/delete/", h.PostDelete)
		private.POST("posts/:post_id/comment/", h.AddComment)

		private.GET("follow/", h.FollowIndex)
		private.POST("profile/:username/follow/", h.ProfileFollow)
		private.POST("profile/:username/unfollow/", h.ProfileUnfollow)

		private.POST("auth/logout/", h.Logout)
		private.GET("ws/feed", h.WSFeed)

		staff := private.Group("/", middleware.StaffOnly())
		staff.POST("group/", h.GroupCreate)
		staff.POST("admin/cache/clear/", h.ClearCache)
	}
	return private
}

// Register собирает все маршруты приложения
func Register(router *gin.Engine, h *handlers.Handlers, users middleware.TokenResolver, serviceName string) {
	router.Use(middleware.PrometheusMiddleware(serviceName))
	router.GET("/health", handlers.Health)
	router.GET("/metrics", middleware.PrometheusHandler())

	PublicApi(router, h, users)
	PrivateApi(router, h, users)
}
