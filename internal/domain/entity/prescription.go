package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is a doctor-authored prescription for a registered patient.
type Prescription struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorName      string    `gorm:"type:varchar(255);not null" json:"doctor_name"`
	PatientName     string    `gorm:"type:varchar(255);not null" json:"patient_name"`
	DiseaseDetails  string    `gorm:"type:text;not null" json:"disease_details"`
	LabTests        string    `gorm:"type:text" json:"lab_tests,omitempty"`
	Medications     string    `gorm:"type:text;not null" json:"medications"`
	AdditionalNotes string    `gorm:"type:text" json:"additional_notes,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
