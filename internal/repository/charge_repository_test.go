package repository

import (
	"context"
	"testing"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestChargeRepository_FindOpenByStudentIsFIFO(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChargeRepository(db)
	ctx := context.Background()

	student := testutil.CreateStudent(t, db, "Aziza")
	math := testutil.CreateGroup(t, db, "Math", 400000, models.DaysPatternOdd)
	english := testutil.CreateGroup(t, db, "English", 300000, models.DaysPatternEven)

	// inserted out of order on purpose
	feb := testutil.CreateCharge(t, db, student.ID, math.ID, 2025, 2, 30000)
	dec := testutil.CreateCharge(t, db, student.ID, english.ID, 2024, 12, 10000)
	jan := testutil.CreateCharge(t, db, student.ID, math.ID, 2025, 1, 50000)
	testutil.CreateCharge(t, db, student.ID, math.ID, 2025, 3, 0) // PAID, excluded

	charges, err := repo.FindOpenByStudent(ctx, student.ID, nil)
	require.NoError(t, err)
	require.Len(t, charges, 3)
	assert.Equal(t, dec.ID, charges[0].ID)
	assert.Equal(t, jan.ID, charges[1].ID)
	assert.Equal(t, feb.ID, charges[2].ID)

	charges, err = repo.FindOpenByStudent(ctx, student.ID, &math.ID)
	require.NoError(t, err)
	require.Len(t, charges, 2)
	assert.Equal(t, jan.ID, charges[0].ID)
}

func TestChargeRepository_FindByKeyAndAllocatedSum(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChargeRepository(db)
	ctx := context.Background()

	student := testutil.CreateStudent(t, db, "Bekzod")
	group := testutil.CreateGroup(t, db, "Physics", 500000, models.DaysPatternEven)
	charge := testutil.CreateCharge(t, db, student.ID, group.ID, 2025, 1, 50000)

	found, err := repo.FindByKey(ctx, student.ID, group.ID, 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, charge.ID, found.ID)

	_, err = repo.FindByKey(ctx, student.ID, group.ID, 2025, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	p1 := testutil.CreatePayment(t, db, student.ID, 20000, models.PaymentMethodCash, time.Now())
	p2 := testutil.CreatePayment(t, db, student.ID, 15000, models.PaymentMethodCard, time.Now())
	testutil.Allocate(t, db, p1.ID, charge.ID, 20000)
	testutil.Allocate(t, db, p2.ID, charge.ID, 15000)

	sum, err := repo.AllocatedSum(ctx, charge.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(35000), sum)
}

func TestChargeRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChargeRepository(db)
	ctx := context.Background()

	student := testutil.CreateStudent(t, db, "Dilnoza")
	group := testutil.CreateGroup(t, db, "Chess", 200000, models.DaysPatternOdd)
	charge := testutil.CreateCharge(t, db, student.ID, group.ID, 2025, 4, 200000)

	charge.Discount = 50000
	require.NoError(t, repo.Update(ctx, &charge))

	reloaded, err := repo.FindByID(ctx, charge.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), reloaded.Discount)

	require.NoError(t, repo.LockStudent(ctx, student.ID))
	require.NoError(t, repo.Delete(ctx, charge.ID))
	_, err = repo.FindByID(ctx, charge.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestChargeRepository_StudentIDOf(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChargeRepository(db)
	ctx := context.Background()

	student := testutil.CreateStudent(t, db, "Nodira")
	group := testutil.CreateGroup(t, db, "Math", 400000, models.DaysPatternOdd)
	charge := testutil.CreateCharge(t, db, student.ID, group.ID, 2025, 1, 400000)

	id, err := repo.StudentIDOf(ctx, charge.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, id)

	_, err = repo.StudentIDOf(ctx, group.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
