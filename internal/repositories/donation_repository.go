package repositories

import (
	"errors"

	"bloodbridge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDonationRecordNotFound = errors.New("donation record not found")
)

type DonationRepository interface {
	CreateDonationRecord(record *models.DonationRecord) error
	FindDonationsByDonor(donorID string) ([]models.DonationRecord, error)
	FindLatestDonation(donorID string) (*models.DonationRecord, error)
	CountDonationsByDonor(donorID string) (int64, error)
	DeleteDonorDonations(donorID string) error
}

type DonationRepositoryImpl struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &DonationRepositoryImpl{db: db}
}

func (r *DonationRepositoryImpl) CreateDonationRecord(record *models.DonationRecord) error {
	return r.db.Create(record).Error
}

// FindDonationsByDonor - история донаций, свежие первыми
func (r *DonationRepositoryImpl) FindDonationsByDonor(donorID string) ([]models.DonationRecord, error) {
	var records []models.DonationRecord
	err := r.db.
		Where("donor_id = ?", donorID).
		Order("donation_date DESC").
		Find(&records).Error
	return records, err
}

func (r *DonationRepositoryImpl) FindLatestDonation(donorID string) (*models.DonationRecord, error) {
	var record models.DonationRecord
	err := r.db.
		Where("donor_id = ?", donorID).
		Order("donation_date DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *DonationRepositoryImpl) CountDonationsByDonor(donorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.DonationRecord{}).
		Where("donor_id = ?", donorID).
		Count(&count).Error
	return count, err
}

func (r *DonationRepositoryImpl) DeleteDonorDonations(donorID string) error {
	return r.db.Where("donor_id = ?", donorID).Delete(&models.DonationRecord{}).Error
}
