package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// notificationHandler handles HTTP requests for a user's own notifications.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

// registerNotificationRoutes registers all notification-related routes.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.PUT("/:id/read", h.markRead)
		notifications.PUT("/:id/unread", h.markUnread)
		notifications.DELETE("/:id", h.deleteNotification)
	}
}

// listNotifications godoc
// @Summary List own notifications
// @Description Lists the caller's notifications, newest first, optionally unread only.
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread notifications" default(false)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListNotificationsResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(notifications))
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.NotificationResponse
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (h *notificationHandler) markRead(c *gin.Context) {
	h.setRead(c, true)
}

// markUnread godoc
// @Summary Mark a notification as unread
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.NotificationResponse
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/unread [put]
func (h *notificationHandler) markUnread(c *gin.Context) {
	h.setRead(c, false)
}

func (h *notificationHandler) setRead(c *gin.Context, read bool) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.SetRead(c.Request.Context(), principal, c.Param("id"), read)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationResponse(notification))
}

// deleteNotification godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (h *notificationHandler) deleteNotification(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
