package repositories

import (
	"errors"
	"time"

	"bloodbridge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDonorNotFound = errors.New("donor not found")
)

// Пороговые значения пригодности донора.
// Используются и в SQL-фильтрах, и в чистой проверке пригодности в сервисе.
const (
	MinDonorAge          = 18
	MaxDonorAge          = 65
	MinDonorWeight       = 50.0
	DonationCooldownDays = 90
)

type DonorRepository interface {
	// CRUD operations
	CreateDonor(donor *models.Donor) error
	FindDonorByID(id string) (*models.Donor, error)
	FindDonorByEmail(email string) (*models.Donor, error)
	FindAllDonors(page, pageSize int) ([]models.Donor, int64, error)
	UpdateDonor(donor *models.Donor) error
	UpdateDonorFields(id string, fields map[string]interface{}) error
	DeleteDonor(id string) error
	ExistsByEmail(email string) (bool, error)

	// Matching queries
	FindEligibleDonorsByCity(bloodGroup models.BloodGroup, city string, now time.Time, opts MatchOptions) ([]models.Donor, error)
	FindEligibleDonorsByState(bloodGroup models.BloodGroup, state string, now time.Time, opts MatchOptions) ([]models.Donor, error)
	FindAvailableDonors(bloodGroup models.BloodGroup, city string) ([]models.Donor, error)

	// Statistics
	CountDonors(filter DonorStatsFilter) (int64, error)
	CountAvailableDonors(filter DonorStatsFilter) (int64, error)
	CountRecentlyDonated(filter DonorStatsFilter, now time.Time) (int64, error)
	CountEligibleDonors(filter DonorStatsFilter, now time.Time) (int64, error)
	CountDonorsByBloodGroup(filter DonorStatsFilter) (map[models.BloodGroup]int64, error)
	CountDonorsByCity(filter DonorStatsFilter) (map[string]int64, error)
}

// DonorStatsFilter сужает статистику до города либо региона.
// Пустые поля не фильтруют.
type DonorStatsFilter struct {
	City  string
	State string
}

// MatchOptions настраивает фильтр подбора доноров.
type MatchOptions struct {
	// ExcludeRecentDonors отсеивает доноров, сдававших кровь
	// в последние CooldownDays.
	ExcludeRecentDonors bool
	CooldownDays        int
}

// DefaultMatchOptions - подбор с паузой после донации
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		ExcludeRecentDonors: true,
		CooldownDays:        DonationCooldownDays,
	}
}

type DonorRepositoryImpl struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &DonorRepositoryImpl{db: db}
}

// ---------------- CRUD operations ----------------

func (r *DonorRepositoryImpl) CreateDonor(donor *models.Donor) error {
	return r.db.Create(donor).Error
}

func (r *DonorRepositoryImpl) FindDonorByID(id string) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.First(&donor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return &donor, nil
}

func (r *DonorRepositoryImpl) FindDonorByEmail(email string) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.First(&donor, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return &donor, nil
}

func (r *DonorRepositoryImpl) FindAllDonors(page, pageSize int) ([]models.Donor, int64, error) {
	var donors []models.Donor

	var total int64
	if err := r.db.Model(&models.Donor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&donors).Error

	return donors, total, err
}

func (r *DonorRepositoryImpl) UpdateDonor(donor *models.Donor) error {
	return r.db.Save(donor).Error
}

func (r *DonorRepositoryImpl) UpdateDonorFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Donor{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonorNotFound
	}
	return nil
}

func (r *DonorRepositoryImpl) DeleteDonor(id string) error {
	// Уведомления и история донаций удаляются каскадом (FK constraint),
	// но для sqlite в тестах подчищаем явно в одной транзакции.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donor_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("donor_id = ?", id).Delete(&models.DonationRecord{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Donor{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDonorNotFound
		}
		return nil
	})
}

func (r *DonorRepositoryImpl) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Donor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ---------------- Matching queries ----------------

// eligibleQuery строит базовый фильтр пригодности донора:
// группа крови, доступность, возраст, вес и (опционально) пауза
// после последней донации. Донор без донаций в анамнезе
// проходит фильтр паузы всегда.
func (r *DonorRepositoryImpl) eligibleQuery(bloodGroup models.BloodGroup, now time.Time, opts MatchOptions) *gorm.DB {
	query := r.db.Model(&models.Donor{}).
		Where("blood_group = ?", bloodGroup).
		Where("available = ?", true).
		Where("age >= ? AND age <= ?", MinDonorAge, MaxDonorAge).
		Where("weight >= ?", MinDonorWeight)

	if opts.ExcludeRecentDonors {
		days := opts.CooldownDays
		if days <= 0 {
			days = DonationCooldownDays
		}
		cutoff := now.AddDate(0, 0, -days)
		query = query.Where("last_donation_date IS NULL OR last_donation_date <= ?", cutoff)
	}

	return query
}

// FindEligibleDonorsByCity возвращает пригодных доноров города.
// Сортировка: давно не сдававшие первыми, никогда не сдававшие - в самом начале.
func (r *DonorRepositoryImpl) FindEligibleDonorsByCity(bloodGroup models.BloodGroup, city string, now time.Time, opts MatchOptions) ([]models.Donor, error) {
	var donors []models.Donor
	err := r.eligibleQuery(bloodGroup, now, opts).
		Where("city = ?", city).
		Order("last_donation_date ASC NULLS FIRST").
		Order("available DESC").
		Find(&donors).Error
	return donors, err
}

// FindEligibleDonorsByState - расширение поиска на регион, когда в городе пусто
func (r *DonorRepositoryImpl) FindEligibleDonorsByState(bloodGroup models.BloodGroup, state string, now time.Time, opts MatchOptions) ([]models.Donor, error) {
	var donors []models.Donor
	err := r.eligibleQuery(bloodGroup, now, opts).
		Where("state = ?", state).
		Order("last_donation_date ASC NULLS FIRST").
		Order("available DESC").
		Find(&donors).Error
	return donors, err
}

// FindAvailableDonors - широкий фильтр для in-app уведомлений:
// только группа крови, город и доступность, без медицинских ограничений.
func (r *DonorRepositoryImpl) FindAvailableDonors(bloodGroup models.BloodGroup, city string) ([]models.Donor, error) {
	var donors []models.Donor
	err := r.db.
		Where("blood_group = ?", bloodGroup).
		Where("city = ?", city).
		Where("available = ?", true).
		Find(&donors).Error
	return donors, err
}

// ---------------- Statistics ----------------

// scopedQuery применяет географический фильтр статистики
func (r *DonorRepositoryImpl) scopedQuery(filter DonorStatsFilter) *gorm.DB {
	query := r.db.Model(&models.Donor{})
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	return query
}

func (r *DonorRepositoryImpl) CountDonors(filter DonorStatsFilter) (int64, error) {
	var count int64
	err := r.scopedQuery(filter).Count(&count).Error
	return count, err
}

func (r *DonorRepositoryImpl) CountAvailableDonors(filter DonorStatsFilter) (int64, error) {
	var count int64
	err := r.scopedQuery(filter).Where("available = ?", true).Count(&count).Error
	return count, err
}

// CountRecentlyDonated - доноры, сдававшие кровь в последние DonationCooldownDays
func (r *DonorRepositoryImpl) CountRecentlyDonated(filter DonorStatsFilter, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -DonationCooldownDays)

	var count int64
	err := r.scopedQuery(filter).
		Where("last_donation_date IS NOT NULL AND last_donation_date > ?", cutoff).
		Count(&count).Error
	return count, err
}

// CountEligibleDonors - доноры области, проходящие фильтр пригодности
func (r *DonorRepositoryImpl) CountEligibleDonors(filter DonorStatsFilter, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -DonationCooldownDays)

	var count int64
	err := r.scopedQuery(filter).
		Where("available = ?", true).
		Where("age >= ? AND age <= ?", MinDonorAge, MaxDonorAge).
		Where("weight >= ?", MinDonorWeight).
		Where("last_donation_date IS NULL OR last_donation_date <= ?", cutoff).
		Count(&count).Error
	return count, err
}

func (r *DonorRepositoryImpl) CountDonorsByBloodGroup(filter DonorStatsFilter) (map[models.BloodGroup]int64, error) {
	type row struct {
		BloodGroup models.BloodGroup
		Count      int64
	}
	var rows []row

	err := r.scopedQuery(filter).
		Select("blood_group, COUNT(*) as count").
		Group("blood_group").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[models.BloodGroup]int64, len(rows))
	for _, row := range rows {
		result[row.BloodGroup] = row.Count
	}
	return result, nil
}

func (r *DonorRepositoryImpl) CountDonorsByCity(filter DonorStatsFilter) (map[string]int64, error) {
	type row struct {
		City  string
		Count int64
	}
	var rows []row

	err := r.scopedQuery(filter).
		Select("city, COUNT(*) as count").
		Group("city").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.City] = row.Count
	}
	return result, nil
}
