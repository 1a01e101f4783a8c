package usecase

import (
	"context"

	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/domain/repository"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dietPlanPromptTemplate = `You are a registered dietitian. Generate a personalized diet plan for a single day based on the user's details.

User Details:
Height: {{.Height}} cm
Weight: {{.Weight}} kg
Age: {{.Age}} years
Lifestyle: {{.Lifestyle}}
Cuisine Preferences: {{.CuisinePreferences}}
Food Preference: {{.FoodPreference}}
{{if .HasDiabetes}}- The user has Diabetes. The diet should be sugar-free and low-carb.
{{end}}{{if .HasBloodPressure}}- The user has High Blood Pressure. The diet should be low in sodium.
{{end}}{{if .HasThyroid}}- The user has a Thyroid condition. The diet should include iodine-rich foods and avoid goitrogens.
{{end}}{{if .SpecialConditions}}Other conditions: {{.SpecialConditions}}
{{end}}
IMPORTANT: The diet plan MUST be strictly {{.FoodPreference}}.

Based on the above, create a detailed diet plan for a single day. Provide a list of meals (Breakfast, Lunch, Dinner, and optional snacks). For each meal, list the food items and an estimated calorie count.
Respond with a single JSON object and nothing else:
{"meals": [{"meal_time": "<Breakfast|Lunch|Dinner|Snack>", "food_items": "<comma-separated items>", "calories": <integer>}]}
`

type DietPlanUsecase interface {
	// Generate has no fallback plan: a generation failure is surfaced so
	// the caller can ask the user to retry.
	Generate(ctx context.Context, userID uuid.UUID, req *dto.DietPlanRequest) (*dto.DietPlanResponse, error)
	GetDietInfo(ctx context.Context, userID uuid.UUID) (entity.JSON, error)
}

type dietPlanUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	userRepo  repository.UserRepository
	generator service.Generator
	quota     service.QuotaLedger
	audit     service.AuditService
}

func NewDietPlanUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	generator service.Generator,
	quota service.QuotaLedger,
	audit service.AuditService,
) DietPlanUsecase {
	return &dietPlanUsecase{
		db:        db,
		log:       log,
		userRepo:  userRepo,
		generator: generator,
		quota:     quota,
		audit:     audit,
	}
}

func (u *dietPlanUsecase) Generate(ctx context.Context, userID uuid.UUID, req *dto.DietPlanRequest) (*dto.DietPlanResponse, error) {
	if _, err := u.quota.Check(ctx, userID, entity.FeatureDietPlan); err != nil {
		return nil, err
	}

	prompt, err := service.RenderPrompt("diet-plan", dietPlanPromptTemplate, req)
	if err != nil {
		return nil, err
	}

	var plan dto.DietPlanResponse
	if err := u.generator.GenerateJSON(ctx, prompt, &plan); err != nil {
		u.log.Warnf("Failed to generate diet plan: %+v", err)
		return nil, err
	}

	u.saveDietInfo(ctx, userID, req)

	if err := u.quota.Commit(ctx, userID, entity.FeatureDietPlan); err != nil {
		return nil, err
	}

	u.audit.LogAction(ctx, &userID, entity.AuditActionDietPlanGenerate, entity.JSON{
		"meals":           len(plan.Meals),
		"food_preference": req.FoodPreference,
	})

	return &plan, nil
}

func (u *dietPlanUsecase) GetDietInfo(ctx context.Context, userID uuid.UUID) (entity.JSON, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.DietInfo, nil
}

// saveDietInfo keeps the submitted profile so the diet form can be
// prefilled next time. Failure here never discards a generated plan.
func (u *dietPlanUsecase) saveDietInfo(ctx context.Context, userID uuid.UUID, req *dto.DietPlanRequest) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil || user == nil {
		u.log.Warnf("Failed to load user for diet info update: %+v", err)
		return
	}

	user.DietInfo = entity.JSON{
		"height":              req.Height,
		"weight":              req.Weight,
		"age":                 req.Age,
		"lifestyle":           req.Lifestyle,
		"cuisine_preferences": req.CuisinePreferences,
		"food_preference":     req.FoodPreference,
		"special_conditions":  req.SpecialConditions,
		"has_diabetes":        req.HasDiabetes,
		"has_blood_pressure":  req.HasBloodPressure,
		"has_thyroid":         req.HasThyroid,
	}

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to save diet info: %+v", err)
	}
}
