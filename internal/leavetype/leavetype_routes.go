package leavetype

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	types := r.Group("/leave-types")
	{
		types.GET("", middleware.Authorize(rbacService, "leave_type", "read"), handler.GetAll)
	}
}
