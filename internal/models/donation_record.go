package models

import "time"

// DonationRecord - запись о состоявшейся донации; создание записи
// обновляет LastDonationDate донора
type DonationRecord struct {
	BaseModel
	DonorID      string    `gorm:"not null;index" json:"donor_id"`
	DonationDate time.Time `gorm:"not null" json:"donation_date"`
	Location     string    `gorm:"not null" json:"location"`
	BloodBank    string    `json:"blood_bank,omitempty"`
	UnitsGiven   int       `gorm:"default:1" json:"units_given"`
	Notes        string    `json:"notes,omitempty"`
}
