package holiday

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	holidays := r.Group("/public-holidays")
	holidays.Use(middleware.AuthMiddleware())
	holidays.Use(middleware.ContextLogger(logger))
	{
		holidays.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "public_holiday", "read"),
			handler.GetByYear,
		)

		holidays.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "public_holiday", "create"),
			handler.Create,
		)

		holidays.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "public_holiday", "delete"),
			handler.Delete,
		)
	}
}
