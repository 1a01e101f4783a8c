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

type PrescriptionHandler struct {
	scanUsecase         usecase.PrescriptionScanUsecase
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(
	scanUsecase usecase.PrescriptionScanUsecase,
	prescriptionUsecase usecase.PrescriptionUsecase,
	validator *validator.CustomValidator,
) *PrescriptionHandler {
	return &PrescriptionHandler{
		scanUsecase:         scanUsecase,
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// Scan extracts structured medication data from a prescription photo
// @Summary Scan a prescription image
// @Tags Prescriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PrescriptionScanRequest true "Prescription Scan Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /prescription-scan [post]
func (h *PrescriptionHandler) Scan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.PrescriptionScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.scanUsecase.Scan(r.Context(), userID, req.ImageDataURI)
	if err != nil {
		var quotaErr *service.QuotaExceededError
		switch {
		case errors.Is(err, usecase.ErrInvalidImageData):
			response.Error(w, http.StatusBadRequest, "Invalid image data. Expected a base64 image data URI.", nil)
		case errors.As(err, &quotaErr):
			response.QuotaExceeded(w, "You have reached your free limit for prescription scans", quotaErr.CurrentCount)
		case errors.Is(err, service.ErrGeneration):
			response.InternalServerError(w, "Failed to analyze prescription. Please try again.")
		default:
			response.InternalServerError(w, "Failed to analyze prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription analyzed successfully", result)
}

// Create stores a doctor-authored prescription for a patient
// @Summary Create a prescription
// @Tags Prescriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePrescriptionRequest true "Create Prescription Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /prescriptions [post]
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Create(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to create prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

// List returns the prescriptions visible to the authenticated user
// @Summary List prescriptions
// @Tags Prescriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /prescriptions [get]
func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Role information not found")
		return
	}

	prescriptions, err := h.prescriptionUsecase.ListForUser(r.Context(), userID, role)
	if err != nil {
		response.InternalServerError(w, "Failed to list prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}
