package converter

import (
	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to its DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		ID:              prescription.ID,
		DoctorID:        prescription.DoctorID,
		PatientID:       prescription.PatientID,
		DoctorName:      prescription.DoctorName,
		PatientName:     prescription.PatientName,
		DiseaseDetails:  prescription.DiseaseDetails,
		LabTests:        prescription.LabTests,
		Medications:     prescription.Medications,
		AdditionalNotes: prescription.AdditionalNotes,
		CreatedAt:       prescription.CreatedAt,
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}
