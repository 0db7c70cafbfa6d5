package services

import (
	"fmt"
	"testing"
	"time"

	"bloodbridge_backend/database"
	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB открывает sqlite in-memory и мигрирует модели.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	// Одно соединение, иначе пул раздает разные :memory: базы
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateModels(db))

	return db
}

type testRepos struct {
	donors        repositories.DonorRepository
	requests      repositories.BloodRequestRepository
	notifications repositories.NotificationRepository
	donations     repositories.DonationRepository
}

func newTestRepos(db *gorm.DB) *testRepos {
	return &testRepos{
		donors:        repositories.NewDonorRepository(db),
		requests:      repositories.NewBloodRequestRepository(db),
		notifications: repositories.NewNotificationRepository(db),
		donations:     repositories.NewDonationRepository(db),
	}
}

var donorSeq int

// makeDonor - пригодный донор по умолчанию, поля перекрываются через opts
func makeDonor(opts ...func(*models.Donor)) *models.Donor {
	donorSeq++
	donor := &models.Donor{
		Name:       fmt.Sprintf("Test Donor %d", donorSeq),
		Email:      fmt.Sprintf("donor%d@example.com", donorSeq),
		Phone:      "+8801700000000",
		BloodGroup: models.BloodGroupONegative,
		City:       "Dhaka",
		Age:        30,
		Weight:     65,
		Available:  true,
	}
	for _, opt := range opts {
		opt(donor)
	}
	return donor
}

// makeRequest - запрос крови по умолчанию
func makeRequest(opts ...func(*models.BloodRequest)) *models.BloodRequest {
	request := &models.BloodRequest{
		PatientName:  "John Doe",
		HospitalName: "Dhaka Medical College",
		City:         "Dhaka",
		State:        "Dhaka",
		BloodGroup:   models.BloodGroupONegative,
		Urgency:      models.UrgencyHigh,
		UnitsNeeded:  2,
		ContactName:  "Jane Doe",
		ContactPhone: "+8801700000001",
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(request)
	}
	return request
}

func daysAgo(n int) *time.Time {
	t := time.Now().AddDate(0, 0, -n)
	return &t
}
