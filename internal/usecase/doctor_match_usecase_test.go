package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoctors() []entity.Doctor {
	return []entity.Doctor{
		{SlNo: 1, Name: "Dr. Asha Verma", Age: 45, Specialization: "Cardiology", Experience: 18, Rating: 9, Email: "asha@example.com"},
		{SlNo: 2, Name: "Dr. Rohit Nair", Age: 38, Specialization: "Dermatology", Experience: 10, Rating: 8, Email: "rohit@example.com"},
		{SlNo: 3, Name: "Dr. Meera Iyer", Age: 51, Specialization: "Neurology", Experience: 24, Rating: 9, Email: "meera@example.com"},
	}
}

func newMatchFixture(catalog *fakeCatalogRepo, generator *fakeGenerator, quota *fakeQuota) (DoctorMatchUsecase, *fakeAudit) {
	audit := &fakeAudit{}
	uc := NewDoctorMatchUsecase(newTestLogger(), catalog, generator, quota, audit)
	return uc, audit
}

func TestMatchRejectsShortDescription(t *testing.T) {
	catalog := &fakeCatalogRepo{doctors: testDoctors()}
	quota := &fakeQuota{}
	uc, _ := newMatchFixture(catalog, &fakeGenerator{}, quota)

	_, err := uc.Match(context.Background(), uuid.New(), "  chest pain  ")

	require.ErrorIs(t, err, ErrDescriptionTooShort)
	// Validation failures must not touch the quota or the catalog.
	assert.Empty(t, quota.checks)
	assert.Zero(t, catalog.findAllCalls)
}

func TestMatchCountsRunesNotBytes(t *testing.T) {
	catalog := &fakeCatalogRepo{doctors: testDoctors()}
	uc, _ := newMatchFixture(catalog, &fakeGenerator{}, &fakeQuota{})

	// 19 multibyte runes, well over 20 bytes.
	_, err := uc.Match(context.Background(), uuid.New(), strings.Repeat("é", 19))

	require.ErrorIs(t, err, ErrDescriptionTooShort)
}

func TestMatchQuotaExceeded(t *testing.T) {
	quotaErr := &service.QuotaExceededError{Feature: entity.FeatureDoctorSearch, CurrentCount: 3}
	catalog := &fakeCatalogRepo{doctors: testDoctors()}
	quota := &fakeQuota{count: 3, checkErr: quotaErr}
	generator := &fakeGenerator{}
	uc, _ := newMatchFixture(catalog, generator, quota)

	_, err := uc.Match(context.Background(), uuid.New(), "persistent chest pain and shortness of breath")

	var got *service.QuotaExceededError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 3, got.CurrentCount)
	assert.Zero(t, generator.textCalls)
	assert.Empty(t, quota.commits)
}

func TestMatchEmptyCatalog(t *testing.T) {
	quota := &fakeQuota{}
	uc, _ := newMatchFixture(&fakeCatalogRepo{}, &fakeGenerator{}, quota)

	_, err := uc.Match(context.Background(), uuid.New(), "persistent chest pain and shortness of breath")

	require.ErrorIs(t, err, ErrCatalogEmpty)
	assert.Empty(t, quota.commits)
}

func TestMatchSelectsDoctorFromModelAnswer(t *testing.T) {
	doctors := testDoctors()
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			// Name case differs from the catalog entry on purpose.
			return json.Unmarshal([]byte(`{"selected_doctor_name": "dr. asha verma", "reason": "Cardiology fits the symptoms", "match_quality": 8}`), out)
		},
	}
	quota := &fakeQuota{}
	uc, audit := newMatchFixture(&fakeCatalogRepo{doctors: doctors}, generator, quota)

	result, err := uc.Match(context.Background(), uuid.New(), "persistent chest pain and shortness of breath")

	require.NoError(t, err)
	assert.Equal(t, "Dr. Asha Verma", result.Name)
	assert.Equal(t, entity.MatchTypeAI, result.MatchType)
	assert.Equal(t, "80%", result.MatchAccuracy)
	assert.Equal(t, "Cardiology fits the symptoms", result.Reason)
	assert.Equal(t, "Good match found based on symptoms/disease", result.Message)
	assert.Equal(t, []entity.Feature{entity.FeatureDoctorSearch}, quota.commits)
	assert.Equal(t, []string{entity.AuditActionDoctorMatch}, audit.actions)

	// The prompt must carry both the description and the catalog.
	assert.Contains(t, generator.lastPrompt, "persistent chest pain")
	assert.Contains(t, generator.lastPrompt, "Dr. Meera Iyer")
}

func TestMatchFallsBackWhenGenerationFails(t *testing.T) {
	doctors := testDoctors()
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			return fmt.Errorf("%w: upstream down", service.ErrGeneration)
		},
	}
	catalog := &fakeCatalogRepo{doctors: doctors, random: &doctors[1]}
	quota := &fakeQuota{}
	uc, _ := newMatchFixture(catalog, generator, quota)

	result, err := uc.Match(context.Background(), uuid.New(), "persistent chest pain and shortness of breath")

	require.NoError(t, err)
	assert.Equal(t, "Dr. Rohit Nair", result.Name)
	assert.Equal(t, entity.MatchTypeRandom, result.MatchType)
	assert.Equal(t, "50%", result.MatchAccuracy)
	assert.Equal(t, "AI processing failed - showing available doctor", result.Reason)
	assert.Equal(t, "AI processing failed - showing available doctor", result.Message)
	// A degraded answer still consumes quota.
	assert.Equal(t, []entity.Feature{entity.FeatureDoctorSearch}, quota.commits)
}

func TestMatchFallsBackOnLowQuality(t *testing.T) {
	doctors := testDoctors()
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			return json.Unmarshal([]byte(`{"selected_doctor_name": "Dr. Asha Verma", "reason": "weak signal", "match_quality": 3}`), out)
		},
	}
	catalog := &fakeCatalogRepo{doctors: doctors, random: &doctors[2]}
	uc, _ := newMatchFixture(catalog, generator, &fakeQuota{})

	result, err := uc.Match(context.Background(), uuid.New(), "persistent chest pain and shortness of breath")

	require.NoError(t, err)
	assert.Equal(t, entity.MatchTypeRandom, result.MatchType)
	assert.Equal(t, "30%", result.MatchAccuracy)
	assert.Equal(t, "No specific match found - showing available doctor", result.Reason)
}

func TestMatchFallsBackOnUnknownDoctorName(t *testing.T) {
	doctors := testDoctors()
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			return json.Unmarshal([]byte(`{"selected_doctor_name": "Dr. Invented Person", "reason": "hallucinated", "match_quality": 9}`), out)
		},
	}
	catalog := &fakeCatalogRepo{doctors: doctors, random: &doctors[0]}
	uc, _ := newMatchFixture(catalog, generator, &fakeQuota{})

	result, err := uc.Match(context.Background(), uuid.New(), "persistent chest pain and shortness of breath")

	require.NoError(t, err)
	assert.Equal(t, entity.MatchTypeRandom, result.MatchType)
	assert.Equal(t, "Dr. Asha Verma", result.Name)
}

func TestMatchFallbackSurvivesRandomLookupFailure(t *testing.T) {
	doctors := testDoctors()
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			return errors.New("model unavailable")
		},
	}
	catalog := &fakeCatalogRepo{doctors: doctors, randomErr: errors.New("mongo down")}
	uc, _ := newMatchFixture(catalog, generator, &fakeQuota{})

	result, err := uc.Match(context.Background(), uuid.New(), "persistent chest pain and shortness of breath")

	require.NoError(t, err)
	// The pick degrades to the already-loaded catalog slice.
	names := []string{doctors[0].Name, doctors[1].Name, doctors[2].Name}
	assert.Contains(t, names, result.Name)
}

func TestListDoctorsPreservesCatalogOrder(t *testing.T) {
	doctors := testDoctors()
	uc, _ := newMatchFixture(&fakeCatalogRepo{doctors: doctors}, &fakeGenerator{}, &fakeQuota{})

	list, err := uc.ListDoctors(context.Background())

	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "Dr. Asha Verma", list.Doctors[0].Name)
	assert.Equal(t, "Dr. Rohit Nair", list.Doctors[1].Name)
	assert.Equal(t, "Dr. Meera Iyer", list.Doctors[2].Name)
}
