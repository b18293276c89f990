package attendance

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware())
	att.Use(middleware.ExtractUserID())
	att.Use(middleware.ContextLogger(logger))
	{
		// Punch endpoints sit behind the idempotency middleware so client
		// retries cannot double-fire.
		att.POST("/check-in",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "attendance", "punch"),
			handler.CheckIn,
		)

		att.POST("/check-out",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "attendance", "punch"),
			handler.CheckOut,
		)

		att.POST("/breaks",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "attendance", "punch"),
			handler.RecordBreak,
		)

		att.POST("/photos",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "punch"),
			handler.UploadPhoto,
		)

		att.POST("/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "approve"),
			handler.Approve,
		)

		att.GET("/daily-status/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.DailyStatus,
		)

		att.GET("/summaries/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetSummary,
		)

		att.POST("/summaries/generate",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "attendance", "admin"),
			handler.GenerateSummary,
		)
	}
}
