package rbac

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", h.Enforce)
		group.GET("/roles", middleware.RBACAuthorize(service, "role", "read"), h.ListRoles)
		group.POST("/roles/assign", middleware.RBACAuthorize(service, "role", "manage"), h.AssignRole)
		group.GET("/permissions", middleware.RBACAuthorize(service, "role", "manage"), h.ListPermissions)
	}
}
