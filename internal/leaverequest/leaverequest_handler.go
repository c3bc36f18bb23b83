package leaverequest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

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
	l := zap.L().Named("leaverequest.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request operation failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	callerID := c.GetString("user_id")

	var req CreateLeaveRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("create leave request validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := c.GetString("user_id")
	role := c.GetString("role")
	statusFilter := c.Query("status")

	resp, err := h.service.ListForRole(ctx, callerID, role, statusFilter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) PendingForManager(c *gin.Context) {
	callerID := c.GetString("user_id")

	resp, err := h.service.ListPendingForManager(c.Request.Context(), callerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// bindReview accepts an optional JSON body; an empty body means no
// comment.
func (h *Handler) bindReview(c *gin.Context) (ReviewInput, bool) {
	var req ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("review body validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid request body", err.Error())
		return ReviewInput{}, false
	}
	return req, true
}

func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("id")
	callerID := c.GetString("user_id")

	req, ok := h.bindReview(c)
	if !ok {
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), callerID, id, req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	callerID := c.GetString("user_id")

	req, ok := h.bindReview(c)
	if !ok {
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), callerID, id, req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	callerID := c.GetString("user_id")

	resp, err := h.service.Cancel(c.Request.Context(), callerID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
