package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bloodbridge_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationRepository interface {
	// Notification operations
	CreateNotification(notification *models.Notification) error
	CreateBulkNotifications(notifications []*models.Notification) error
	FindNotificationByID(id string) (*models.Notification, error)
	FindDonorNotifications(donorID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(donorID, notificationID string) error
	MarkAllAsRead(donorID string) error
	GetUnreadCount(donorID string) (int64, error)
	DeleteDonorNotifications(donorID string) error

	// Factory methods
	CreateEmergencyNotifications(donors []models.Donor, request *models.BloodRequest) (int, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// Search criteria for notifications
type NotificationCriteria struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page" binding:"min=1"`
	PageSize   int  `form:"page_size" binding:"min=1,max=100"`
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// ---------------- Notification operations ----------------

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulkNotifications(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.CreateInBatches(notifications, 100).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindDonorNotifications(donorID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Model(&models.Notification{}).Where("donor_id = ?", donorID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("BloodRequest").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

// MarkAsRead помечает уведомление прочитанным строго в рамках владельца.
// Чужое или несуществующее уведомление неотличимы: ErrNotificationNotFound,
// без каких-либо изменений в базе. Повторный вызов идемпотентен и
// сохраняет исходный read_at.
func (r *NotificationRepositoryImpl) MarkAsRead(donorID, notificationID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var notification models.Notification
		err := tx.First(&notification, "id = ? AND donor_id = ?", notificationID, donorID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotificationNotFound
			}
			return err
		}

		if notification.IsRead {
			return nil
		}

		return tx.Model(&notification).Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
	})
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(donorID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("donor_id = ? AND is_read = ?", donorID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	return result.Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(donorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("donor_id = ? AND is_read = ?", donorID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) DeleteDonorNotifications(donorID string) error {
	return r.db.Where("donor_id = ?", donorID).Delete(&models.Notification{}).Error
}

// ---------------- Factory methods ----------------

// CreateEmergencyNotifications создает in-app уведомления о срочном запросе
// для каждого переданного донора. Дедупликации нет: повторный вызов для
// того же запроса создаст новые записи.
func (r *NotificationRepositoryImpl) CreateEmergencyNotifications(donors []models.Donor, request *models.BloodRequest) (int, error) {
	if len(donors) == 0 {
		return 0, nil
	}

	message := fmt.Sprintf(
		"Emergency blood request: %s needs %d units of %s blood at %s in %s. Urgency: %s",
		request.PatientName,
		request.UnitsNeeded,
		request.BloodGroup,
		request.HospitalName,
		request.City,
		request.Urgency,
	)

	data, err := json.Marshal(map[string]interface{}{
		"blood_request_id": request.ID,
		"blood_group":      request.BloodGroup,
		"urgency":          request.Urgency,
		"hospital_name":    request.HospitalName,
		"city":             request.City,
	})
	if err != nil {
		return 0, err
	}

	notifications := make([]*models.Notification, 0, len(donors))
	for _, donor := range donors {
		notifications = append(notifications, &models.Notification{
			DonorID:        donor.ID,
			BloodRequestID: request.ID,
			Message:        message,
			Data:           datatypes.JSON(data),
		})
	}

	if err := r.CreateBulkNotifications(notifications); err != nil {
		return 0, err
	}
	return len(notifications), nil
}
