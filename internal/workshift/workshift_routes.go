package workshift

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
	shifts := r.Group("/work-shifts")
	shifts.Use(middleware.AuthMiddleware())
	shifts.Use(middleware.ContextLogger(logger))
	{
		shifts.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "work_shift", "read"),
			handler.GetShifts,
		)

		shifts.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "work_shift", "read"),
			handler.GetShiftById,
		)

		shifts.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "work_shift", "create"),
			handler.CreateShift,
		)

		shifts.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "work_shift", "update"),
			handler.UpdateShift,
		)

		shifts.PATCH("/:id/deactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "work_shift", "update"),
			handler.DeactivateShift,
		)

		shifts.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "work_shift", "delete"),
			handler.DeleteShift,
		)
	}

	assignments := r.Group("/shift-assignments")
	assignments.Use(middleware.AuthMiddleware())
	assignments.Use(middleware.ContextLogger(logger))
	{
		assignments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "shift_assignment", "create"),
			handler.AssignShift,
		)

		assignments.GET("/employee/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "shift_assignment", "read"),
			handler.GetAssignmentsByEmployee,
		)
	}

	schedules := r.Group("/work-schedules")
	schedules.Use(middleware.AuthMiddleware())
	schedules.Use(middleware.ContextLogger(logger))
	{
		schedules.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "work_schedule", "create"),
			handler.CreateSchedule,
		)
	}
}
