package stats

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("stats.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetUserStats(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	fullName := c.GetString("full_name")

	resp, err := h.service.GetUserStats(c.Request.Context(), userID, role, fullName)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("user stats failed",
			zap.String("user_id", userID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
