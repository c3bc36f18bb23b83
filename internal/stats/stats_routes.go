package stats

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
	users := r.Group("/user")
	{
		users.GET("/stats", middleware.Authorize(rbacService, "stats", "read"), handler.GetUserStats)
	}
}
