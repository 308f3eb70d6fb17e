package services

import (
	"context"
	"testing"
	"time"

	"github.com/TeamSoftLion/crm/internal/billing"
	"github.com/TeamSoftLion/crm/internal/config"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/TeamSoftLion/crm/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	repos *repository.Repositories
	svc   *Services
	ctx   context.Context
	actor Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)
	cfg := &config.Config{Location: time.UTC}
	return &testEnv{
		db:    db,
		repos: repos,
		svc:   NewServices(repos, nil, cfg),
		ctx:   context.Background(),
		actor: Actor{ID: uuid.New(), IP: "127.0.0.1", UserAgent: "go-test"},
	}
}

func (e *testEnv) charge(t *testing.T, id uuid.UUID) models.TuitionCharge {
	t.Helper()
	var c models.TuitionCharge
	require.NoError(t, e.db.First(&c, "id = ?", id).Error)
	return c
}

func (e *testEnv) allocated(t *testing.T, chargeID uuid.UUID) int64 {
	t.Helper()
	sum, err := e.repos.Charge.AllocatedSum(e.ctx, chargeID)
	require.NoError(t, err)
	return sum
}

// assertLedgerConsistent checks the invariants that must hold after any operation
func (e *testEnv) assertLedgerConsistent(t *testing.T) {
	t.Helper()

	var charges []models.TuitionCharge
	require.NoError(t, e.db.Find(&charges).Error)
	for _, c := range charges {
		paid := e.allocated(t, c.ID)
		assert.GreaterOrEqual(t, c.EffectiveAmount(), int64(0), "charge %s has negative effective amount", c.ID)
		assert.LessOrEqual(t, c.Discount, c.AmountDue)
		assert.LessOrEqual(t, paid, c.EffectiveAmount(), "charge %s allocated beyond its effective amount", c.ID)
		assert.Equal(t, billing.Status(c.AmountDue, c.Discount, paid), c.Status, "charge %s status out of sync", c.ID)
	}

	var payments []models.Payment
	require.NoError(t, e.db.Preload("Allocations").Find(&payments).Error)
	for _, p := range payments {
		var sum int64
		for _, a := range p.Allocations {
			assert.Positive(t, a.Amount)
			sum += a.Amount
		}
		assert.LessOrEqual(t, sum, p.Amount, "payment %s over-allocated", p.ID)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
