package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an onboarded account together with its per-feature
// AI usage counters. Counters are mutated only through the quota ledger.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Role           string    `gorm:"type:varchar(20);not null;index" json:"role"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	FullName       string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Age            int       `gorm:"type:int" json:"age,omitempty"`
	Gender         string    `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	Country        string    `gorm:"type:varchar(100)" json:"country,omitempty"`
	FoodPreference string    `gorm:"type:varchar(50)" json:"food_preference,omitempty"`
	AvatarURL      string    `gorm:"type:text" json:"avatar_url,omitempty"`

	// Last submitted diet profile, kept so the diet coach form can be
	// prefilled on the next visit.
	DietInfo JSON `gorm:"type:jsonb" json:"diet_info,omitempty"`

	SearchCount           int `gorm:"not null;default:0" json:"search_count"`
	DietPlanCount         int `gorm:"not null;default:0" json:"diet_plan_count"`
	PrescriptionScanCount int `gorm:"not null;default:0" json:"prescription_scan_count"`

	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Role constants
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)
