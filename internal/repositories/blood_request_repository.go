package repositories

import (
	"errors"

	"bloodbridge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBloodRequestNotFound = errors.New("blood request not found")
)

type BloodRequestRepository interface {
	CreateBloodRequest(request *models.BloodRequest) error
	FindBloodRequestByID(id string) (*models.BloodRequest, error)
	FindActiveBloodRequests(page, pageSize int) ([]models.BloodRequest, int64, error)
	FindBloodRequestsByGroup(bloodGroup models.BloodGroup) ([]models.BloodRequest, error)
	CloseBloodRequest(id string) error
	CountActiveBloodRequests() (int64, error)
}

type BloodRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewBloodRequestRepository(db *gorm.DB) BloodRequestRepository {
	return &BloodRequestRepositoryImpl{db: db}
}

func (r *BloodRequestRepositoryImpl) CreateBloodRequest(request *models.BloodRequest) error {
	return r.db.Create(request).Error
}

func (r *BloodRequestRepositoryImpl) FindBloodRequestByID(id string) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBloodRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindActiveBloodRequests - активные запросы, свежие первыми
func (r *BloodRequestRepositoryImpl) FindActiveBloodRequests(page, pageSize int) ([]models.BloodRequest, int64, error) {
	var requests []models.BloodRequest
	query := r.db.Model(&models.BloodRequest{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&requests).Error

	return requests, total, err
}

func (r *BloodRequestRepositoryImpl) FindBloodRequestsByGroup(bloodGroup models.BloodGroup) ([]models.BloodRequest, error) {
	var requests []models.BloodRequest
	err := r.db.
		Where("blood_group = ? AND is_active = ?", bloodGroup, true).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *BloodRequestRepositoryImpl) CloseBloodRequest(id string) error {
	result := r.db.Model(&models.BloodRequest{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBloodRequestNotFound
	}
	return nil
}

func (r *BloodRequestRepositoryImpl) CountActiveBloodRequests() (int64, error) {
	var count int64
	err := r.db.Model(&models.BloodRequest{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
