package dto

// Request DTOs

type UpdateProfileRequest struct {
	FullName       string `json:"full_name" validate:"omitempty,min=2"`
	Age            int    `json:"age" validate:"omitempty,gt=0,lte=120"`
	Gender         string `json:"gender" validate:"omitempty"`
	Address        string `json:"address" validate:"omitempty"`
	Country        string `json:"country" validate:"omitempty"`
	FoodPreference string `json:"food_preference" validate:"omitempty"`
	AvatarURL      string `json:"avatar_url" validate:"omitempty,url"`
}

// Response DTOs

type PatientListResponse struct {
	Patients []UserResponse `json:"patients"`
	Total    int            `json:"total"`
}
