package repository

import (
	"context"

	"health-services-backend/internal/domain/entity"
)

// DoctorCatalogRepository reads the external doctor catalog collection.
// The catalog is never written by this service.
type DoctorCatalogRepository interface {
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindRandom(ctx context.Context) (*entity.Doctor, error)
}
