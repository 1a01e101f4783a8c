package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"health-services-backend/internal/delivery/dto"
	"health-services-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDoctorMatchUsecase struct {
	list *dto.DoctorListResponse
	err  error
}

func (s *stubDoctorMatchUsecase) Match(ctx context.Context, userID uuid.UUID, description string) (*dto.MatchResultResponse, error) {
	return nil, s.err
}

func (s *stubDoctorMatchUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func TestListDoctorsIsIdempotent(t *testing.T) {
	uc := &stubDoctorMatchUsecase{
		list: &dto.DoctorListResponse{
			Doctors: []dto.DoctorResponse{
				{SlNo: 1, Name: "Dr. Asha Verma", Specialization: "Cardiology", Rating: 9},
				{SlNo: 2, Name: "Dr. Rohit Nair", Specialization: "Dermatology", Rating: 8},
			},
			Total: 2,
		},
	}
	h := NewDoctorHandler(uc, validator.NewValidator())

	first := httptest.NewRecorder()
	h.ListDoctors(first, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))
	second := httptest.NewRecorder()
	h.ListDoctors(second, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	// Same catalog, same bytes: listing must not consume anything.
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Contains(t, first.Body.String(), "Dr. Asha Verma")
}
