package service

import (
	"context"
	"fmt"

	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// QuotaExceededError reports an exhausted per-user feature limit together
// with the count observed at check time.
type QuotaExceededError struct {
	Feature      entity.Feature
	CurrentCount int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s (count %d)", e.Feature, e.CurrentCount)
}

// QuotaLedger gates every AI-backed operation. Check reads the counter
// without mutating it; Commit consumes one unit after the guarded operation
// succeeded. The check-then-commit sequence is deliberately not transactional:
// concurrent requests from one user may both pass the check, which is
// acceptable because the limit is soft, not a security boundary. The commit
// itself is a single atomic increment, so the counter never loses updates.
type QuotaLedger interface {
	Check(ctx context.Context, userID uuid.UUID, feature entity.Feature) (int, error)
	Commit(ctx context.Context, userID uuid.UUID, feature entity.Feature) error
}

type quotaLedger struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	limit    int
}

func NewQuotaLedger(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, limit int) QuotaLedger {
	return &quotaLedger{
		db:       db,
		log:      log,
		userRepo: userRepo,
		limit:    limit,
	}
}

// Check returns the current count, or a QuotaExceededError when the counter
// has reached the limit. An unknown user has an implicit count of zero.
func (l *quotaLedger) Check(ctx context.Context, userID uuid.UUID, feature entity.Feature) (int, error) {
	user, err := l.userRepo.FindByID(l.db.WithContext(ctx), userID)
	if err != nil {
		l.log.Warnf("Failed to read quota counter: %+v", err)
		return 0, err
	}

	count := 0
	if user != nil {
		count = feature.Count(user)
	}

	if count >= l.limit {
		return count, &QuotaExceededError{Feature: feature, CurrentCount: count}
	}

	return count, nil
}

func (l *quotaLedger) Commit(ctx context.Context, userID uuid.UUID, feature entity.Feature) error {
	column := feature.CounterColumn()
	if column == "" {
		return fmt.Errorf("unknown quota feature %q", feature)
	}

	if err := l.userRepo.IncrementCounter(l.db.WithContext(ctx), userID, column); err != nil {
		l.log.Warnf("Failed to commit quota counter: %+v", err)
		return err
	}

	return nil
}
