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

type DietPlanHandler struct {
	dietPlanUsecase usecase.DietPlanUsecase
	validator       *validator.CustomValidator
}

func NewDietPlanHandler(dietPlanUsecase usecase.DietPlanUsecase, validator *validator.CustomValidator) *DietPlanHandler {
	return &DietPlanHandler{
		dietPlanUsecase: dietPlanUsecase,
		validator:       validator,
	}
}

// Generate produces a personalized one-day diet plan
// @Summary Generate a diet plan
// @Tags DietPlan
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DietPlanRequest true "Diet Plan Request"
// @Success 200 {object} response.Response
// @Failure 429 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /diet-plan [post]
func (h *DietPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.DietPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.dietPlanUsecase.Generate(r.Context(), userID, &req)
	if err != nil {
		var quotaErr *service.QuotaExceededError
		switch {
		case errors.As(err, &quotaErr):
			response.QuotaExceeded(w, "You have reached your free limit for diet plans", quotaErr.CurrentCount)
		case errors.Is(err, service.ErrGeneration):
			response.InternalServerError(w, "Failed to generate diet plan. Please try again.")
		default:
			response.InternalServerError(w, "Failed to generate diet plan")
		}
		return
	}

	response.Success(w, http.StatusOK, "Diet plan generated successfully", plan)
}

// GetDietInfo returns the inputs of the user's most recent diet plan
// @Summary Get saved diet info
// @Tags DietPlan
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /diet-plan/info [get]
func (h *DietPlanHandler) GetDietInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	info, err := h.dietPlanUsecase.GetDietInfo(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get diet info")
		}
		return
	}

	response.Success(w, http.StatusOK, "Diet info retrieved successfully", info)
}
