package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	DonorID        string `gorm:"not null;index"`
	BloodRequestID string `gorm:"not null;index"`
	Message        string `gorm:"not null"`
	// Data хранит контекст запроса ({"blood_group": "...", "urgency": "..."})
	Data   datatypes.JSON `gorm:"type:jsonb"`
	IsRead bool           `gorm:"default:false"`
	ReadAt *time.Time

	BloodRequest *BloodRequest `gorm:"foreignKey:BloodRequestID"`
}
