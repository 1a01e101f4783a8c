package repository

import (
	"health-services-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindAllByRole(db *gorm.DB, role string) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	// IncrementCounter bumps one usage counter column by one in a single
	// UPDATE, relying on the database's atomic increment.
	IncrementCounter(db *gorm.DB, id uuid.UUID, column string) error
}
