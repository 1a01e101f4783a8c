package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/delivery/http/middleware"
	"health-services-backend/internal/service"
	"health-services-backend/internal/usecase"
	"health-services-backend/pkg/response"
	"health-services-backend/pkg/validator"
)

type DoctorHandler struct {
	doctorMatchUsecase usecase.DoctorMatchUsecase
	validator          *validator.CustomValidator
}

func NewDoctorHandler(doctorMatchUsecase usecase.DoctorMatchUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorMatchUsecase: doctorMatchUsecase,
		validator:          validator,
	}
}

// ListDoctors returns the full doctor catalog
// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorMatchUsecase.ListDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// Match recommends a doctor for a described disease or symptom set
// @Summary Match a doctor by disease description
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DoctorMatchRequest true "Doctor Match Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /doctor-match [post]
func (h *DoctorHandler) Match(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.DoctorMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.doctorMatchUsecase.Match(r.Context(), userID, req.Description)
	if err != nil {
		var quotaErr *service.QuotaExceededError
		switch {
		case errors.Is(err, usecase.ErrDescriptionTooShort):
			response.Error(w, http.StatusBadRequest, "Please provide a detailed description of the disease (at least 20 characters)", nil)
		case errors.As(err, &quotaErr):
			response.QuotaExceeded(w, "You have reached your free limit for doctor searches", quotaErr.CurrentCount)
		case errors.Is(err, usecase.ErrCatalogEmpty):
			response.InternalServerError(w, "No doctors available")
		default:
			response.InternalServerError(w, "Failed to match doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor matched successfully", result)
}
