package models

import "time"

type Donor struct {
	BaseModel
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Phone             string     `gorm:"not null" json:"phone"`
	BloodGroup        BloodGroup `gorm:"type:varchar(20);not null;index" json:"blood_group"`
	City              string     `gorm:"not null;index" json:"city"`
	State             string     `gorm:"not null;index" json:"state"`
	Age               int        `gorm:"not null" json:"age"`
	Weight            float64    `gorm:"not null" json:"weight"`
	Available         bool       `gorm:"default:true" json:"available"`
	LastDonationDate  *time.Time `json:"last_donation_date"`
	MedicalConditions string     `json:"medical_conditions,omitempty"`

	// Relations
	DonationRecords []DonationRecord `gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE" json:"donation_records,omitempty"`
	Notifications   []Notification   `gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE" json:"-"`
}
