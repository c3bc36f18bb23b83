package leaverequest

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
	requests := r.Group("/leave-requests")
	{
		requests.POST("", middleware.Authorize(rbacService, "leave_request", "create"), handler.Create)
		requests.GET("", middleware.Authorize(rbacService, "leave_request", "read"), handler.List)
		requests.POST("/:id/approve", middleware.Authorize(rbacService, "leave_request", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.Authorize(rbacService, "leave_request", "approve"), handler.Reject)
		requests.POST("/:id/cancel", middleware.Authorize(rbacService, "leave_request", "cancel"), handler.Cancel)
	}

	manager := r.Group("/manager")
	{
		manager.GET("/pending-requests", middleware.Authorize(rbacService, "manager_queue", "read"), handler.PendingForManager)
	}
}
