package dto

import "time"

// RegisterDonorRequest - запрос регистрации донора
type RegisterDonorRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`

	BloodGroup string `json:"blood_group" binding:"required" validate:"is-blood-group"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`

	Age    int     `json:"age" binding:"required,min=16,max=100"`
	Weight float64 `json:"weight" binding:"required,min=30"`

	Available         *bool      `json:"available"`
	LastDonationDate  *time.Time `json:"last_donation_date"`
	MedicalConditions string     `json:"medical_conditions"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse - ответ с токеном и профилем
type AuthResponse struct {
	Token string         `json:"token"`
	Donor *DonorResponse `json:"donor"`
}

// VerifyResponse - ответ проверки токена
type VerifyResponse struct {
	Valid   bool   `json:"valid"`
	DonorID string `json:"donor_id"`
}
