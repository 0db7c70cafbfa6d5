package dto

import (
	"time"

	"gorm.io/datatypes"

	"bloodbridge_backend/internal/models"
)

// ========================
// Notification DTOs
// ========================

// NotificationResponse - уведомление донора
type NotificationResponse struct {
	ID             string                `json:"id"`
	Message        string                `json:"message"`
	Data           datatypes.JSON        `json:"data,omitempty"`
	IsRead         bool                  `json:"is_read"`
	ReadAt         *time.Time            `json:"read_at,omitempty"`
	BloodRequestID string                `json:"blood_request_id"`
	BloodRequest   *BloodRequestResponse `json:"blood_request,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// NotificationListResponse - страница уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// UnreadCountResponse - число непрочитанных
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// NewNotificationResponse строит NotificationResponse из модели
func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:             n.ID,
		Message:        n.Message,
		Data:           n.Data,
		IsRead:         n.IsRead,
		ReadAt:         n.ReadAt,
		BloodRequestID: n.BloodRequestID,
		CreatedAt:      n.CreatedAt,
	}
	if n.BloodRequest != nil {
		resp.BloodRequest = NewBloodRequestResponse(n.BloodRequest)
	}
	return resp
}
