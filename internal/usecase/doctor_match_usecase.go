package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"health-services-backend/internal/converter"
	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/domain/repository"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDescriptionTooShort = errors.New("disease/symptom description is too short")
	ErrCatalogEmpty        = errors.New("no doctors found in the catalog")
)

// A model score below this threshold is treated as no match.
const matchQualityThreshold = 6

const minDescriptionLength = 20

const doctorMatchPromptTemplate = `Task: Based on the disease/symptom description and available doctors, decide:
1. Analyze the medical requirements and symptoms
2. Select the best-suited doctor (name only)
3. Provide a short justification for the selected doctor
4. Rate the match quality from 1-10 (10 being perfect match)

Rules:
- Do NOT mention doctors not in the list.
- Only suggest ONE doctor who is most suitable.
- Consider specialization, experience, and rating.
- If no doctor seems particularly suitable, rate the match as 5 or below.
- Respond with a single JSON object and nothing else:
{"selected_doctor_name": "<name>", "reason": "<short reason>", "match_quality": <1-10>}

Disease/Symptom Description:
{{.Description}}

Available Doctors:
{{.DoctorsText}}
`

// matchSelection is the structured payload requested from the model.
type matchSelection struct {
	SelectedDoctorName string `json:"selected_doctor_name" validate:"required"`
	Reason             string `json:"reason" validate:"required"`
	MatchQuality       int    `json:"match_quality" validate:"required,gte=1,lte=10"`
}

type DoctorMatchUsecase interface {
	// Match never fails for generation reasons: any model failure degrades
	// to a uniformly random catalog pick.
	Match(ctx context.Context, userID uuid.UUID, description string) (*dto.MatchResultResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
}

type doctorMatchUsecase struct {
	log         *logrus.Logger
	catalogRepo repository.DoctorCatalogRepository
	generator   service.Generator
	quota       service.QuotaLedger
	audit       service.AuditService
}

func NewDoctorMatchUsecase(
	log *logrus.Logger,
	catalogRepo repository.DoctorCatalogRepository,
	generator service.Generator,
	quota service.QuotaLedger,
	audit service.AuditService,
) DoctorMatchUsecase {
	return &doctorMatchUsecase{
		log:         log,
		catalogRepo: catalogRepo,
		generator:   generator,
		quota:       quota,
		audit:       audit,
	}
}

func (u *doctorMatchUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.catalogRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to fetch doctor catalog: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors)

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

func (u *doctorMatchUsecase) Match(ctx context.Context, userID uuid.UUID, description string) (*dto.MatchResultResponse, error) {
	// Validation precedes every side effect, including the catalog read.
	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) < minDescriptionLength {
		return nil, ErrDescriptionTooShort
	}

	if _, err := u.quota.Check(ctx, userID, entity.FeatureDoctorSearch); err != nil {
		return nil, err
	}

	doctors, err := u.catalogRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to fetch doctor catalog: %+v", err)
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, ErrCatalogEmpty
	}

	result, err := u.selectDoctor(ctx, trimmed, doctors)
	if err != nil {
		return nil, err
	}

	if err := u.quota.Commit(ctx, userID, entity.FeatureDoctorSearch); err != nil {
		return nil, err
	}

	u.audit.LogAction(ctx, &userID, entity.AuditActionDoctorMatch, entity.JSON{
		"doctor":        result.Name,
		"matchType":     result.MatchType,
		"matchAccuracy": result.MatchAccuracy,
	})

	return result, nil
}

// selectDoctor runs the structured-generation call and applies the fallback
// policy. The returned doctor is always one of the supplied catalog entries.
func (u *doctorMatchUsecase) selectDoctor(ctx context.Context, description string, doctors []entity.Doctor) (*dto.MatchResultResponse, error) {
	prompt, err := service.RenderPrompt("doctor-match", doctorMatchPromptTemplate, map[string]string{
		"Description": description,
		"DoctorsText": formatDoctorData(doctors),
	})
	if err != nil {
		return nil, err
	}

	var selection matchSelection
	if err := u.generator.GenerateJSON(ctx, prompt, &selection); err != nil {
		u.log.Warnf("AI processing failed, falling back to random selection: %+v", err)
		return u.randomResult(ctx, doctors, "AI processing failed - showing available doctor", 50)
	}

	accuracy := selection.MatchQuality * 10

	if selection.MatchQuality < matchQualityThreshold {
		return u.randomResult(ctx, doctors, "No specific match found - showing available doctor", accuracy)
	}

	selected := findDoctorByName(doctors, selection.SelectedDoctorName)
	if selected == nil {
		u.log.Warnf("Model selected unknown doctor %q, falling back to random selection", selection.SelectedDoctorName)
		return u.randomResult(ctx, doctors, "No specific match found - showing available doctor", accuracy)
	}

	return &dto.MatchResultResponse{
		DoctorResponse: converter.DoctorToResponse(selected),
		Reason:         selection.Reason,
		MatchType:      entity.MatchTypeAI,
		MatchAccuracy:  fmt.Sprintf("%d%%", accuracy),
		Message:        "Good match found based on symptoms/disease",
	}, nil
}

func (u *doctorMatchUsecase) randomResult(ctx context.Context, doctors []entity.Doctor, reason string, accuracy int) (*dto.MatchResultResponse, error) {
	doctor, err := u.catalogRepo.FindRandom(ctx)
	if err != nil || doctor == nil {
		// The catalog was readable moments ago; fall back to the loaded copy.
		doctor = &doctors[rand.IntN(len(doctors))]
	}

	return &dto.MatchResultResponse{
		DoctorResponse: converter.DoctorToResponse(doctor),
		Reason:         reason,
		MatchType:      entity.MatchTypeRandom,
		MatchAccuracy:  fmt.Sprintf("%d%%", accuracy),
		Message:        reason,
	}, nil
}

func findDoctorByName(doctors []entity.Doctor, name string) *entity.Doctor {
	name = strings.TrimSpace(name)
	for i := range doctors {
		if strings.EqualFold(doctors[i].Name, name) {
			return &doctors[i]
		}
	}
	return nil
}

func formatDoctorData(doctors []entity.Doctor) string {
	var sb strings.Builder
	for i, doctor := range doctors {
		fmt.Fprintf(&sb, `Doctor %d:
Name: %s
Age: %d
Description: %s
Specialization: %s
Experience: %d years
Gender: %s
Rating: %d/10
Email: %s

`, i+1, doctor.Name, doctor.Age, doctor.ShortDescription, doctor.Specialization,
			doctor.Experience, doctor.Gender, doctor.Rating, doctor.Email)
	}
	return strings.TrimRight(sb.String(), "\n")
}
