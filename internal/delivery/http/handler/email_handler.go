package handler

import (
	"encoding/json"
	"net/http"

	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/delivery/http/middleware"
	"health-services-backend/internal/usecase"
	"health-services-backend/pkg/response"
	"health-services-backend/pkg/validator"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
	validator    *validator.CustomValidator
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase, validator *validator.CustomValidator) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
		validator:    validator,
	}
}

// Send dispatches a transactional email
// @Summary Send an email
// @Tags Email
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendEmailRequest true "Send Email Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /email [post]
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.emailUsecase.Send(r.Context(), userID, &req); err != nil {
		response.InternalServerError(w, "Failed to send email")
		return
	}

	response.Success(w, http.StatusOK, "Email sent successfully", nil)
}
