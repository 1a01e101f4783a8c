package dto

// Request DTOs

type DietPlanRequest struct {
	Height             float64 `json:"height" validate:"required,gt=0"`
	Weight             float64 `json:"weight" validate:"required,gt=0"`
	Age                int     `json:"age" validate:"required,gt=0"`
	Lifestyle          string  `json:"lifestyle" validate:"required"`
	CuisinePreferences string  `json:"cuisine_preferences" validate:"required"`
	FoodPreference     string  `json:"food_preference" validate:"required"`
	SpecialConditions  string  `json:"special_conditions" validate:"omitempty"`
	HasDiabetes        bool    `json:"has_diabetes"`
	HasBloodPressure   bool    `json:"has_blood_pressure"`
	HasThyroid         bool    `json:"has_thyroid"`
}

// Response DTOs

type MealResponse struct {
	MealTime  string `json:"meal_time" validate:"required"`
	FoodItems string `json:"food_items" validate:"required"`
	Calories  int    `json:"calories" validate:"required,gt=0"`
}

// DietPlanResponse is a one-day meal plan in meal order.
type DietPlanResponse struct {
	Meals []MealResponse `json:"meals" validate:"required,min=1,dive"`
}
