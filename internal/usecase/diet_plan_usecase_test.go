package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func veganRequest() *dto.DietPlanRequest {
	return &dto.DietPlanRequest{
		Height:             170,
		Weight:             65,
		Age:                30,
		Lifestyle:          "sedentary",
		CuisinePreferences: "South Indian",
		FoodPreference:     "vegan",
		HasDiabetes:        true,
	}
}

func TestGenerateDietPlan(t *testing.T) {
	userID := uuid.New()
	userRepo := newFakeUserRepo(&entity.User{ID: userID, Role: entity.RolePatient})
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			return json.Unmarshal([]byte(`{"meals": [
				{"meal_time": "Breakfast", "food_items": "Oats with almond milk", "calories": 320},
				{"meal_time": "Lunch", "food_items": "Quinoa bowl with chickpeas", "calories": 540}
			]}`), out)
		},
	}
	quota := &fakeQuota{}
	audit := &fakeAudit{}
	uc := NewDietPlanUsecase(newTestDB(), newTestLogger(), userRepo, generator, quota, audit)

	plan, err := uc.Generate(context.Background(), userID, veganRequest())

	require.NoError(t, err)
	require.Len(t, plan.Meals, 2)
	assert.Equal(t, "Breakfast", plan.Meals[0].MealTime)
	assert.Equal(t, 540, plan.Meals[1].Calories)
	assert.Equal(t, []entity.Feature{entity.FeatureDietPlan}, quota.commits)
	assert.Equal(t, []string{entity.AuditActionDietPlanGenerate}, audit.actions)

	// The submitted profile is stored for the next form prefill.
	require.Len(t, userRepo.updated, 1)
	info := userRepo.updated[0].DietInfo
	assert.Equal(t, "vegan", info["food_preference"])
	assert.Equal(t, true, info["has_diabetes"])
}

func TestGenerateDietPlanPromptConditionals(t *testing.T) {
	userID := uuid.New()
	userRepo := newFakeUserRepo(&entity.User{ID: userID})
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			return json.Unmarshal([]byte(`{"meals": [{"meal_time": "Lunch", "food_items": "Salad", "calories": 300}]}`), out)
		},
	}
	uc := NewDietPlanUsecase(newTestDB(), newTestLogger(), userRepo, generator, &fakeQuota{}, &fakeAudit{})

	req := veganRequest()
	req.HasBloodPressure = true
	req.HasThyroid = false
	_, err := uc.Generate(context.Background(), userID, req)

	require.NoError(t, err)
	assert.Contains(t, generator.lastPrompt, "sugar-free and low-carb")
	assert.Contains(t, generator.lastPrompt, "low in sodium")
	assert.NotContains(t, generator.lastPrompt, "Thyroid condition")
	assert.Contains(t, generator.lastPrompt, "MUST be strictly vegan")
}

func TestGenerateDietPlanQuotaExceeded(t *testing.T) {
	userID := uuid.New()
	quota := &fakeQuota{
		count:    3,
		checkErr: &service.QuotaExceededError{Feature: entity.FeatureDietPlan, CurrentCount: 3},
	}
	generator := &fakeGenerator{}
	uc := NewDietPlanUsecase(newTestDB(), newTestLogger(), newFakeUserRepo(), generator, quota, &fakeAudit{})

	_, err := uc.Generate(context.Background(), userID, veganRequest())

	var quotaErr *service.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Zero(t, generator.textCalls)
	assert.Empty(t, quota.commits)
}

func TestGenerateDietPlanPropagatesGenerationFailure(t *testing.T) {
	userID := uuid.New()
	userRepo := newFakeUserRepo(&entity.User{ID: userID})
	generator := &fakeGenerator{
		generateFn: func(prompt string, out interface{}) error {
			return fmt.Errorf("%w: malformed payload", service.ErrGeneration)
		},
	}
	quota := &fakeQuota{}
	uc := NewDietPlanUsecase(newTestDB(), newTestLogger(), userRepo, generator, quota, &fakeAudit{})

	_, err := uc.Generate(context.Background(), userID, veganRequest())

	require.ErrorIs(t, err, service.ErrGeneration)
	// A failed generation must not consume quota or save diet info.
	assert.Empty(t, quota.commits)
	assert.Empty(t, userRepo.updated)
}

func TestGetDietInfo(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID, DietInfo: entity.JSON{"food_preference": "vegetarian"}}
	uc := NewDietPlanUsecase(newTestDB(), newTestLogger(), newFakeUserRepo(user), &fakeGenerator{}, &fakeQuota{}, &fakeAudit{})

	info, err := uc.GetDietInfo(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "vegetarian", info["food_preference"])
}

func TestGetDietInfoUnknownUser(t *testing.T) {
	uc := NewDietPlanUsecase(newTestDB(), newTestLogger(), newFakeUserRepo(), &fakeGenerator{}, &fakeQuota{}, &fakeAudit{})

	_, err := uc.GetDietInfo(context.Background(), uuid.New())

	require.ErrorIs(t, err, ErrUserNotFound)
}
