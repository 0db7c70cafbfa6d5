package dto

import (
	"time"

	"bloodbridge_backend/internal/models"
)

// ========================
// Donor DTOs
// ========================

// DonorResponse - публичное представление донора (без хеша пароля)
type DonorResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	BloodGroup        string     `json:"blood_group"`
	BloodGroupLabel   string     `json:"blood_group_label"`
	City              string     `json:"city"`
	State             string     `json:"state,omitempty"`
	Age               int        `json:"age"`
	Weight            float64    `json:"weight"`
	Available         bool       `json:"available"`
	LastDonationDate  *time.Time `json:"last_donation_date,omitempty"`
	MedicalConditions string     `json:"medical_conditions,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// UpdateDonorRequest - частичное обновление профиля
type UpdateDonorRequest struct {
	Name              *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Phone             *string    `json:"phone"`
	City              *string    `json:"city"`
	State             *string    `json:"state"`
	Age               *int       `json:"age" binding:"omitempty,min=16,max=100"`
	Weight            *float64   `json:"weight" binding:"omitempty,min=30"`
	Available         *bool      `json:"available"`
	LastDonationDate  *time.Time `json:"last_donation_date"`
	MedicalConditions *string    `json:"medical_conditions"`
}

// DonorListResponse - страница доноров
type DonorListResponse struct {
	Donors   []DonorResponse `json:"donors"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// DonationRecordRequest - новая запись о донации
type DonationRecordRequest struct {
	DonationDate time.Time `json:"donation_date" binding:"required"`
	Location     string    `json:"location"`
	BloodBank    string    `json:"blood_bank"`
	UnitsGiven   int       `json:"units_given" binding:"omitempty,min=1,max=5"`
	Notes        string    `json:"notes"`
}

// DonationRecordResponse - запись истории донаций
type DonationRecordResponse struct {
	ID           string    `json:"id"`
	DonationDate time.Time `json:"donation_date"`
	Location     string    `json:"location,omitempty"`
	BloodBank    string    `json:"blood_bank,omitempty"`
	UnitsGiven   int       `json:"units_given"`
	Notes        string    `json:"notes,omitempty"`
}

// DonorStatistics - сводка по реестру доноров (опционально по области)
type DonorStatistics struct {
	TotalDonors     int64            `json:"total_donors"`
	AvailableDonors int64            `json:"available_donors"`
	RecentDonors    int64            `json:"recent_donors"`
	EligibleDonors  int64            `json:"eligible_donors"`
	ByBloodGroup    map[string]int64 `json:"by_blood_group"`
	ByCity          map[string]int64 `json:"by_city"`
	ActiveRequests  int64            `json:"active_requests"`
}

// NewDonorResponse строит DonorResponse из модели
func NewDonorResponse(donor *models.Donor) *DonorResponse {
	return &DonorResponse{
		ID:                donor.ID,
		Name:              donor.Name,
		Email:             donor.Email,
		Phone:             donor.Phone,
		BloodGroup:        string(donor.BloodGroup),
		BloodGroupLabel:   donor.BloodGroup.Label(),
		City:              donor.City,
		State:             donor.State,
		Age:               donor.Age,
		Weight:            donor.Weight,
		Available:         donor.Available,
		LastDonationDate:  donor.LastDonationDate,
		MedicalConditions: donor.MedicalConditions,
		CreatedAt:         donor.CreatedAt,
	}
}
