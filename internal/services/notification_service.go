package services

import (
	"errors"

	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/repositories"
	"bloodbridge_backend/internal/services/dto"
	"bloodbridge_backend/pkg/apperrors"
)

type NotificationService interface {
	// In-app notification store
	CreateNotificationsForMatchingDonors(request *models.BloodRequest) (int, error)
	GetDonorNotifications(donorID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(donorID, notificationID string) error
	MarkAllAsRead(donorID string) error
	GetUnreadCount(donorID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	donorRepo        repositories.DonorRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	donorRepo repositories.DonorRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		donorRepo:        donorRepo,
	}
}

// CreateNotificationsForMatchingDonors создает in-app уведомления для всех
// доступных доноров с нужной группой крови в городе запроса. Фильтр
// намеренно шире, чем у подбора: без возраста, веса и паузы после донации.
// Дедупликации по запросу нет.
func (s *notificationService) CreateNotificationsForMatchingDonors(request *models.BloodRequest) (int, error) {
	donors, err := s.donorRepo.FindAvailableDonors(request.BloodGroup, request.City)
	if err != nil {
		return 0, err
	}

	return s.notificationRepo.CreateEmergencyNotifications(donors, request)
}

func (s *notificationService) GetDonorNotifications(donorID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindDonorNotifications(donorID, criteria)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.GetUnreadCount(donorID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, *dto.NewNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		UnreadCount:   unread,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

// MarkAsRead помечает уведомление прочитанным. Уведомление другого донора
// неотличимо от несуществующего: в обоих случаях not found.
func (s *notificationService) MarkAsRead(donorID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(donorID, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(donorID string) error {
	return s.notificationRepo.MarkAllAsRead(donorID)
}

func (s *notificationService) GetUnreadCount(donorID string) (int64, error) {
	return s.notificationRepo.GetUnreadCount(donorID)
}
