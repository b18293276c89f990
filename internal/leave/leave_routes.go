package leave

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
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware())
	leaves.Use(middleware.ExtractUserID())
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_request", "create"),
			handler.Create,
		)

		leaves.GET("/eligibility",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.CheckEligibility,
		)

		leaves.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetById,
		)

		leaves.GET("/employee/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetByEmployee,
		)

		leaves.PUT("/:id/workflow",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_workflow", "manage"),
			handler.SetupWorkflow,
		)

		leaves.POST("/approvals",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			handler.ProcessApproval,
		)

		leaves.PATCH("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_request", "update"),
			handler.Cancel,
		)

		leaves.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "leave_request", "delete"),
			handler.Delete,
		)

		leaves.POST("/attachments",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave_request", "create"),
			handler.UploadAttachment,
		)
	}

	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	balances.Use(middleware.ContextLogger(logger))
	{
		balances.GET("/employee/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_balance", "read"),
			handler.GetBalances,
		)

		balances.POST("/adjustments",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_balance", "adjust"),
			handler.AdjustBalance,
		)

		balances.POST("/initialize",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "leave_balance", "admin"),
			handler.InitializeBalances,
		)
	}
}
