package dto

import (
	"time"

	"bloodbridge_backend/internal/models"
)

// ========================
// Blood request DTOs
// ========================

// CreateBloodRequestRequest - новый запрос крови
type CreateBloodRequestRequest struct {
	PatientName  string `json:"patient_name" binding:"required,min=2,max=100"`
	HospitalName string `json:"hospital_name" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state"`

	BloodGroup  string `json:"blood_group" binding:"required" validate:"is-blood-group"`
	Urgency     string `json:"urgency" binding:"required" validate:"is-urgency"`
	UnitsNeeded int    `json:"units_needed" binding:"required,min=1,max=20"`

	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`

	AdditionalInfo string `json:"additional_info"`
}

// BloodRequestResponse - представление запроса крови
type BloodRequestResponse struct {
	ID             string    `json:"id"`
	PatientName    string    `json:"patient_name"`
	HospitalName   string    `json:"hospital_name"`
	City           string    `json:"city"`
	State          string    `json:"state,omitempty"`
	BloodGroup     string    `json:"blood_group"`
	Urgency        string    `json:"urgency"`
	UnitsNeeded    int       `json:"units_needed"`
	ContactName    string    `json:"contact_name"`
	ContactPhone   string    `json:"contact_phone"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	AdditionalInfo string    `json:"additional_info,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateBloodRequestResponse - ответ на создание запроса.
// Уведомления уходят в фоне, поэтому здесь только сам запрос
// и число доноров, найденных на момент создания.
type CreateBloodRequestResponse struct {
	Request       *BloodRequestResponse `json:"request"`
	MatchedDonors int                   `json:"matched_donors"`
}

// BloodRequestListResponse - страница запросов
type BloodRequestListResponse struct {
	Requests []BloodRequestResponse `json:"requests"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// NewBloodRequestResponse строит BloodRequestResponse из модели
func NewBloodRequestResponse(request *models.BloodRequest) *BloodRequestResponse {
	return &BloodRequestResponse{
		ID:             request.ID,
		PatientName:    request.PatientName,
		HospitalName:   request.HospitalName,
		City:           request.City,
		State:          request.State,
		BloodGroup:     string(request.BloodGroup),
		Urgency:        string(request.Urgency),
		UnitsNeeded:    request.UnitsNeeded,
		ContactName:    request.ContactName,
		ContactPhone:   request.ContactPhone,
		ContactEmail:   request.ContactEmail,
		AdditionalInfo: request.AdditionalInfo,
		IsActive:       request.IsActive,
		CreatedAt:      request.CreatedAt,
	}
}
