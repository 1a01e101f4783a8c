package usecase

import (
	"context"
	"errors"

	"health-services-backend/internal/converter"
	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/domain/repository"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PrescriptionUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID, role string) (*dto.PrescriptionListResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	userRepo         repository.UserRepository
	audit            service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	userRepo repository.UserRepository,
	audit service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		userRepo:         userRepo,
		audit:            audit,
	}
}

func (u *prescriptionUsecase) Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.userRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrUserNotFound
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	patient, err := u.userRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil || patient.Role != entity.RolePatient {
		return nil, ErrPatientNotFound
	}

	prescription := &entity.Prescription{
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		DoctorName:      doctor.FullName,
		PatientName:     patient.FullName,
		DiseaseDetails:  req.DiseaseDetails,
		LabTests:        req.LabTests,
		Medications:     req.Medications,
		AdditionalNotes: req.AdditionalNotes,
	}

	if err := u.prescriptionRepo.Create(db, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	u.audit.LogAction(ctx, &doctor.ID, entity.AuditActionPrescriptionCreate, entity.JSON{
		"prescription_id": prescription.ID.String(),
		"patient_id":      patient.ID.String(),
	})

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListForUser(ctx context.Context, userID uuid.UUID, role string) (*dto.PrescriptionListResponse, error) {
	db := u.db.WithContext(ctx)

	var prescriptions []entity.Prescription
	var err error

	// Doctors see prescriptions they wrote, patients see prescriptions
	// written for them.
	if role == entity.RoleDoctor {
		prescriptions, err = u.prescriptionRepo.FindByDoctorID(db, userID)
	} else {
		prescriptions, err = u.prescriptionRepo.FindByPatientID(db, userID)
	}
	if err != nil {
		u.log.Warnf("Failed to find prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}
