package repository

import (
	"health-services-backend/internal/domain/entity"

	"gorm.io/gorm"
)

// AuditLogRepository is append-only: the trail is written by the service
// layer and read out-of-band, never through the API.
type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
}
