package converter

import (
	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
)

// DoctorToResponse converts a catalog Doctor entity to its DTO
func DoctorToResponse(doctor *entity.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		SlNo:             doctor.SlNo,
		Name:             doctor.Name,
		Age:              doctor.Age,
		ShortDescription: doctor.ShortDescription,
		Specialization:   doctor.Specialization,
		Experience:       doctor.Experience,
		Gender:           doctor.Gender,
		Rating:           doctor.Rating,
		Email:            doctor.Email,
	}
}

// DoctorsToResponses converts a catalog slice preserving its order
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = DoctorToResponse(&doctors[i])
	}
	return responses
}
