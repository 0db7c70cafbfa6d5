package handlers

import (
	"net/http"

	"bloodbridge_backend/internal/repositories"
	"bloodbridge_backend/internal/services"
	"bloodbridge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	notifications.Use(authMW)
	{
		notifications.GET("", h.GetDonorNotifications)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.GET("/unread-count", h.GetUnreadCount)
	}
}

// GetDonorNotifications - уведомления текущего донора, свежие первыми
func (h *NotificationHandler) GetDonorNotifications(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	criteria := repositories.NotificationCriteria{
		UnreadOnly: c.Query("unread_only") == "true",
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	resp, err := h.notificationService.GetDonorNotifications(donorID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MarkAsRead помечает уведомление прочитанным. Чужое уведомление
// отдает 404, как и несуществующее.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(donorID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead помечает все уведомления донора прочитанными
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(donorID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// GetUnreadCount - число непрочитанных уведомлений
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(donorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}
