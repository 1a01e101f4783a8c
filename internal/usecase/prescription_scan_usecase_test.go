package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURI(payload []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestScanExtractsMedications(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}
	generator := &fakeGenerator{
		generateImg: func(prompt string, image []byte, format string, out interface{}) error {
			return json.Unmarshal([]byte(`{
				"patientName": "Ravi Kumar",
				"medications": [{"name": "Paracetamol", "dosage": "500mg", "frequency": "Twice a day"}]
			}`), out)
		},
	}
	quota := &fakeQuota{}
	audit := &fakeAudit{}
	uc := NewPrescriptionScanUsecase(newTestLogger(), generator, quota, audit)

	result, err := uc.Scan(context.Background(), uuid.New(), pngDataURI(imageBytes))

	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", result.PatientName)
	require.Len(t, result.Medications, 1)
	assert.Equal(t, "Paracetamol", result.Medications[0].Name)
	assert.Equal(t, []entity.Feature{entity.FeaturePrescriptionScan}, quota.commits)
	assert.Equal(t, []string{entity.AuditActionPrescriptionScan}, audit.actions)

	// The raw bytes and bare format reach the model call.
	assert.Equal(t, imageBytes, generator.lastImage)
	assert.Equal(t, "png", generator.lastFormat)
}

func TestScanDefaultsMissingFields(t *testing.T) {
	generator := &fakeGenerator{
		generateImg: func(prompt string, image []byte, format string, out interface{}) error {
			return json.Unmarshal([]byte(`{"patientName": "  "}`), out)
		},
	}
	uc := NewPrescriptionScanUsecase(newTestLogger(), generator, &fakeQuota{}, &fakeAudit{})

	result, err := uc.Scan(context.Background(), uuid.New(), pngDataURI([]byte("img")))

	require.NoError(t, err)
	assert.Equal(t, "Not available", result.PatientName)
	assert.NotNil(t, result.Medications)
	assert.Empty(t, result.Medications)
}

func TestScanRejectsInvalidImageData(t *testing.T) {
	quota := &fakeQuota{}
	uc := NewPrescriptionScanUsecase(newTestLogger(), &fakeGenerator{}, quota, &fakeAudit{})

	cases := []string{
		"",
		"not a data uri",
		"data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello")),
		"data:image/png;base64,!!!not-base64!!!",
		"data:image/png,missing-base64-marker",
		"data:image/png;base64,",
	}
	for _, input := range cases {
		_, err := uc.Scan(context.Background(), uuid.New(), input)
		require.ErrorIs(t, err, ErrInvalidImageData, "input %q", input)
	}

	// Rejected inputs never reach the quota.
	assert.Empty(t, quota.checks)
}

func TestScanQuotaExceeded(t *testing.T) {
	quota := &fakeQuota{
		count:    3,
		checkErr: &service.QuotaExceededError{Feature: entity.FeaturePrescriptionScan, CurrentCount: 3},
	}
	generator := &fakeGenerator{}
	uc := NewPrescriptionScanUsecase(newTestLogger(), generator, quota, &fakeAudit{})

	_, err := uc.Scan(context.Background(), uuid.New(), pngDataURI([]byte("img")))

	var quotaErr *service.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Zero(t, generator.imageCalls)
}

func TestScanPropagatesGenerationFailure(t *testing.T) {
	generator := &fakeGenerator{
		generateImg: func(prompt string, image []byte, format string, out interface{}) error {
			return fmt.Errorf("%w: no JSON payload", service.ErrGeneration)
		},
	}
	quota := &fakeQuota{}
	uc := NewPrescriptionScanUsecase(newTestLogger(), generator, quota, &fakeAudit{})

	_, err := uc.Scan(context.Background(), uuid.New(), pngDataURI([]byte("img")))

	require.ErrorIs(t, err, service.ErrGeneration)
	assert.Empty(t, quota.commits)
}
