package models

type BloodRequest struct {
	BaseModel
	PatientName    string       `gorm:"not null" json:"patient_name"`
	HospitalName   string       `gorm:"not null" json:"hospital_name"`
	City           string       `gorm:"not null;index" json:"city"`
	State          string       `gorm:"not null;index" json:"state"`
	BloodGroup     BloodGroup   `gorm:"type:varchar(20);not null;index" json:"blood_group"`
	Urgency        UrgencyLevel `gorm:"type:varchar(10);not null" json:"urgency"`
	UnitsNeeded    int          `gorm:"not null" json:"units_needed"`
	ContactName    string       `gorm:"not null" json:"contact_name"`
	ContactPhone   string       `gorm:"not null" json:"contact_phone"`
	ContactEmail   string       `gorm:"not null" json:"contact_email"`
	AdditionalInfo string       `json:"additional_info,omitempty"`
	IsActive       bool         `gorm:"default:true;index" json:"is_active"`
}
