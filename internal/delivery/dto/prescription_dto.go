package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// PrescriptionScanRequest carries the prescription photo as a base64 data
// URI ("data:<mimetype>;base64,<encoded_data>").
type PrescriptionScanRequest struct {
	ImageDataURI string `json:"image_data_uri" validate:"required"`
}

type CreatePrescriptionRequest struct {
	PatientID       string `json:"patient_id" validate:"required,uuid"`
	DiseaseDetails  string `json:"disease_details" validate:"required"`
	LabTests        string `json:"lab_tests" validate:"omitempty"`
	Medications     string `json:"medications" validate:"required"`
	AdditionalNotes string `json:"additional_notes" validate:"omitempty"`
}

// Response DTOs

type MedicationDetails struct {
	Name        string `json:"name" validate:"required"`
	Dosage      string `json:"dosage"`
	Frequency   string `json:"frequency"`
	Composition string `json:"composition"`
	Purpose     string `json:"purpose"`
	SideEffects string `json:"sideEffects"`
}

// PrescriptionExtractionResponse lists every medication found on the image.
// PatientName falls back to "Not available" when no name is detectable.
type PrescriptionExtractionResponse struct {
	PatientName string              `json:"patientName"`
	Medications []MedicationDetails `json:"medications" validate:"dive"`
}

type PrescriptionResponse struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	DoctorName      string    `json:"doctor_name"`
	PatientName     string    `json:"patient_name"`
	DiseaseDetails  string    `json:"disease_details"`
	LabTests        string    `json:"lab_tests,omitempty"`
	Medications     string    `json:"medications"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
