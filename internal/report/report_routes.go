package report

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
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.GET("/attendance/daily",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.Daily,
		)

		reports.GET("/attendance/employee/:employeeId",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.EmployeeHistory,
		)

		reports.GET("/leave-balances/department/:departmentId",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.DepartmentLeaveBalances,
		)

		reports.GET("/leave-calendar",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.LeaveCalendar,
		)
	}
}
