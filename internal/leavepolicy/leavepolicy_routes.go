package leavepolicy

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
	policies := r.Group("/leave-policies")
	policies.Use(middleware.AuthMiddleware())
	policies.Use(middleware.ContextLogger(logger))
	{
		policies.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_policy", "read"),
			handler.GetAll,
		)

		policies.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_policy", "read"),
			handler.GetById,
		)

		policies.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_policy", "create"),
			handler.Create,
		)

		policies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_policy", "update"),
			handler.Update,
		)

		policies.PATCH("/:id/deactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_policy", "update"),
			handler.Deactivate,
		)

		policies.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "leave_policy", "delete"),
			handler.Delete,
		)
	}
}
