package service

import (
	"context"
	"io"
	"testing"

	"health-services-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type stubUserRepo struct {
	user       *entity.User
	increments []string
}

func (r *stubUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }

func (r *stubUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) FindAllByRole(db *gorm.DB, role string) ([]entity.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Update(db *gorm.DB, user *entity.User) error { return nil }

func (r *stubUserRepo) IncrementCounter(db *gorm.DB, id uuid.UUID, column string) error {
	r.increments = append(r.increments, column)
	if r.user != nil {
		switch column {
		case "search_count":
			r.user.SearchCount++
		case "diet_plan_count":
			r.user.DietPlanCount++
		case "prescription_scan_count":
			r.user.PrescriptionScanCount++
		}
	}
	return nil
}

func newQuotaFixture(t *testing.T, user *entity.User, limit int) (QuotaLedger, *stubUserRepo) {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)
	repo := &stubUserRepo{user: user}
	return NewQuotaLedger(db, log, repo, limit), repo
}

func TestQuotaAllowsUpToLimit(t *testing.T) {
	user := &entity.User{ID: uuid.New()}
	ledger, _ := newQuotaFixture(t, user, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		count, err := ledger.Check(ctx, user.ID, entity.FeatureDoctorSearch)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		require.NoError(t, ledger.Commit(ctx, user.ID, entity.FeatureDoctorSearch))
	}

	// The fourth attempt is denied with the observed count.
	_, err := ledger.Check(ctx, user.ID, entity.FeatureDoctorSearch)
	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, entity.FeatureDoctorSearch, quotaErr.Feature)
	assert.Equal(t, 3, quotaErr.CurrentCount)
}

func TestQuotaCountersAreIndependent(t *testing.T) {
	user := &entity.User{ID: uuid.New(), SearchCount: 3}
	ledger, _ := newQuotaFixture(t, user, 3)
	ctx := context.Background()

	_, err := ledger.Check(ctx, user.ID, entity.FeatureDoctorSearch)
	require.Error(t, err)

	// Exhausting one feature leaves the others usable.
	count, err := ledger.Check(ctx, user.ID, entity.FeatureDietPlan)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = ledger.Check(ctx, user.ID, entity.FeaturePrescriptionScan)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestQuotaCommitTargetsFeatureColumn(t *testing.T) {
	user := &entity.User{ID: uuid.New()}
	ledger, repo := newQuotaFixture(t, user, 3)
	ctx := context.Background()

	require.NoError(t, ledger.Commit(ctx, user.ID, entity.FeatureDietPlan))
	require.NoError(t, ledger.Commit(ctx, user.ID, entity.FeaturePrescriptionScan))

	assert.Equal(t, []string{"diet_plan_count", "prescription_scan_count"}, repo.increments)
}

func TestQuotaCommitRejectsUnknownFeature(t *testing.T) {
	user := &entity.User{ID: uuid.New()}
	ledger, repo := newQuotaFixture(t, user, 3)

	err := ledger.Commit(context.Background(), user.ID, entity.Feature("bogus"))

	require.Error(t, err)
	assert.Empty(t, repo.increments)
}

func TestQuotaUnknownUserHasZeroCount(t *testing.T) {
	ledger, _ := newQuotaFixture(t, nil, 3)

	count, err := ledger.Check(context.Background(), uuid.New(), entity.FeatureDoctorSearch)

	require.NoError(t, err)
	assert.Zero(t, count)
}
