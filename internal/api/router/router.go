package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qaidjoharj53/Job-Portal/config"
	"github.com/qaidjoharj53/Job-Portal/internal/api/handler"
	"github.com/qaidjoharj53/Job-Portal/internal/api/middleware"
	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/service"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时限流降级关闭
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	resolver service.IdentityResolver,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admin := middleware.RoleAuth(model.RoleAdmin)
	student := middleware.RoleAuth(model.RoleStudent)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，按 IP 限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(limiter, cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow, logger))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.GET("/register", h.Auth.ListColleges)
			auth.POST("/check-admin-domain", h.Auth.CheckAdminDomain)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(resolver, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 岗位模块
			jobs := authorized.Group("/jobs")
			{
				jobs.GET("", h.Job.ListJobs)
				jobs.POST("", admin, h.Job.CreateJob)
				jobs.POST("/apply", student, h.Application.Apply)
				jobs.GET("/:id", h.Job.GetJob)
				jobs.GET("/:id/applications", admin, h.Application.ListForJob)
				jobs.GET("/:id/applications/export", admin, h.Export.ExportApplications)
			}

			// 投递模块
			applications := authorized.Group("/applications")
			{
				applications.GET("", student, h.Application.ListMine)
				applications.PUT("/:id/status", admin, h.Application.UpdateStatus)
			}

			// 日历订阅
			authorized.GET("/calendar/deadlines.ics", h.Export.DeadlineCalendar)
		}
	}

	return r
}
