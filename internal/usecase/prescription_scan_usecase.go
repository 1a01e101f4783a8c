package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidImageData = errors.New("invalid prescription image data")

// Sentinel returned when no patient name is readable on the image.
const patientNameNotAvailable = "Not available"

const prescriptionScanPromptTemplate = `You are an expert pharmacist and medical analyst. You will be provided with an image of a prescription. Your tasks are:
1. Extract the patient's name. If not available, return "Not available".
2. Identify EACH and EVERY medication listed on the prescription.
3. For each medication, extract the following details:
    - The medication name.
    - The dosage (e.g., "500mg", "1 tablet").
    - The frequency (e.g., "Once a day", "Twice a day before food").
4. Using your knowledge base, provide the following for each medication:
    - The medical composition (the active ingredients).
    - The purpose of the medicine, explained in simple, easy-to-understand terms.
    - A list of common, basic side effects.
5. Decode any complex medical jargon into simple terms within your explanations.
6. Respond with a single JSON object and nothing else:
{"patientName": "<name or Not available>", "medications": [{"name": "", "dosage": "", "frequency": "", "composition": "", "purpose": "", "sideEffects": ""}]}
`

type PrescriptionScanUsecase interface {
	// Scan has no fallback: an extraction either succeeds fully or the
	// caller is told to retry.
	Scan(ctx context.Context, userID uuid.UUID, imageDataURI string) (*dto.PrescriptionExtractionResponse, error)
}

type prescriptionScanUsecase struct {
	log       *logrus.Logger
	generator service.Generator
	quota     service.QuotaLedger
	audit     service.AuditService
}

func NewPrescriptionScanUsecase(
	log *logrus.Logger,
	generator service.Generator,
	quota service.QuotaLedger,
	audit service.AuditService,
) PrescriptionScanUsecase {
	return &prescriptionScanUsecase{
		log:       log,
		generator: generator,
		quota:     quota,
		audit:     audit,
	}
}

func (u *prescriptionScanUsecase) Scan(ctx context.Context, userID uuid.UUID, imageDataURI string) (*dto.PrescriptionExtractionResponse, error) {
	image, format, err := decodeImageDataURI(imageDataURI)
	if err != nil {
		return nil, ErrInvalidImageData
	}

	if _, err := u.quota.Check(ctx, userID, entity.FeaturePrescriptionScan); err != nil {
		return nil, err
	}

	prompt, err := service.RenderPrompt("prescription-scan", prescriptionScanPromptTemplate, nil)
	if err != nil {
		return nil, err
	}

	var extraction dto.PrescriptionExtractionResponse
	if err := u.generator.GenerateImageJSON(ctx, prompt, image, format, &extraction); err != nil {
		u.log.Warnf("Failed to scan prescription: %+v", err)
		return nil, err
	}

	if strings.TrimSpace(extraction.PatientName) == "" {
		extraction.PatientName = patientNameNotAvailable
	}
	if extraction.Medications == nil {
		extraction.Medications = []dto.MedicationDetails{}
	}

	if err := u.quota.Commit(ctx, userID, entity.FeaturePrescriptionScan); err != nil {
		return nil, err
	}

	u.audit.LogAction(ctx, &userID, entity.AuditActionPrescriptionScan, entity.JSON{
		"medications": len(extraction.Medications),
	})

	return &extraction, nil
}

// decodeImageDataURI splits "data:<mimetype>;base64,<data>" into raw bytes
// and the bare image format the model API expects ("png", "jpeg", ...).
func decodeImageDataURI(dataURI string) ([]byte, string, error) {
	const prefix = "data:"
	if !strings.HasPrefix(dataURI, prefix) {
		return nil, "", errors.New("missing data URI prefix")
	}

	meta, encoded, found := strings.Cut(dataURI[len(prefix):], ",")
	if !found {
		return nil, "", errors.New("malformed data URI")
	}

	mimeType, _, _ := strings.Cut(meta, ";")
	if !strings.Contains(meta, "base64") {
		return nil, "", errors.New("data URI is not base64 encoded")
	}

	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", errors.New("unsupported media type")
	}
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" {
		return nil, "", errors.New("unsupported media type")
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", err
	}
	if len(image) == 0 {
		return nil, "", errors.New("empty image payload")
	}

	return image, format, nil
}
