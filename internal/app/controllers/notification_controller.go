package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/services"
	"github.com/unihire/unihire/internal/middleware"
)

// NotificationController exposes the per-user notification feed.
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

// ListNotifications handles GET /notifications
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	notifications, err := c.notificationService.ListForUser(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notifications, Timestamp: time.Now()})
}

// UnreadCount handles GET /notifications/unread-count
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	count, err := c.notificationService.UnreadCount(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"unread": count}, Timestamp: time.Now()})
}

// MarkRead handles PATCH /notifications/:id/read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id := ctx.Param("id")
	existing, err := c.notificationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if existing.UserID != ctx.GetString(middleware.ContextUserID) {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You can only manage your own notifications")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	notification, err := c.notificationService.MarkRead(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notification, Timestamp: time.Now()})
}

// MarkAllRead handles PATCH /notifications/read-all
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	updated, err := c.notificationService.MarkAllRead(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"updated": updated}, Timestamp: time.Now()})
}
