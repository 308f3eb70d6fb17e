package services

import (
	"testing"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInitialCharge_ProratesAndRounds(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Aziz")
	group := testutil.CreateGroup(t, env.db, "Math A1", 400000, models.DaysPatternOdd)

	// January 2025 has 14 Mon/Wed/Fri lessons, 8 of them from the 15th.
	// 400000/14 = 28571 r6 -> 28571*8 + 6 = 228574 -> 229000
	charge, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, date(2025, time.January, 15))
	require.NoError(t, err)
	require.NotNil(t, charge)

	assert.Equal(t, int64(229000), charge.AmountDue)
	assert.Equal(t, 14, charge.PlannedLessons)
	assert.Equal(t, 8, charge.ChargedLessons)
	assert.Zero(t, charge.Discount)
	assert.Equal(t, models.ChargeStatusPending, charge.Status)
	assert.Equal(t, 2025, charge.Year)
	assert.Equal(t, 1, charge.Month)
}

func TestComputeInitialCharge_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Aziz")
	group := testutil.CreateGroup(t, env.db, "Math A1", 400000, models.DaysPatternOdd)
	join := date(2025, time.March, 10)

	first, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, join)
	require.NoError(t, err)
	second, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, join)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.AmountDue, second.AmountDue)
	assert.Equal(t, first.Status, second.Status)

	var count int64
	require.NoError(t, env.db.Model(&models.TuitionCharge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestComputeInitialCharge_ResetsDiscountAndKeepsAllocations(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Aziz")
	group := testutil.CreateGroup(t, env.db, "Math A1", 300000, models.DaysPatternEven)
	join := date(2025, time.February, 1)

	charge, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, join)
	require.NoError(t, err)
	_, err = env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 2, 100000)
	require.NoError(t, err)

	payment := testutil.CreatePayment(t, env.db, student.ID, 100000, models.PaymentMethodCash, join)
	testutil.Allocate(t, env.db, payment.ID, charge.ID, 100000)

	again, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, join)
	require.NoError(t, err)
	assert.Equal(t, charge.ID, again.ID)
	assert.Zero(t, again.Discount)
	assert.Equal(t, models.ChargeStatusPartiallyPaid, again.Status)
	assert.Equal(t, int64(100000), env.allocated(t, charge.ID))
	env.assertLedgerConsistent(t)
}

func TestComputeInitialCharge_NoGroupOrNoFee(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Aziz")
	free := testutil.CreateGroup(t, env.db, "Open lesson", 0, models.DaysPatternOdd)

	charge, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, uuid.New(), date(2025, time.January, 1))
	assert.NoError(t, err)
	assert.Nil(t, charge)

	charge, err = env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, free.ID, date(2025, time.January, 1))
	assert.NoError(t, err)
	assert.Nil(t, charge)
}

func TestComputeInitialCharge_UnknownPattern(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Aziz")
	group := testutil.CreateGroup(t, env.db, "Weekend", 300000, "WEEKEND")

	_, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, date(2025, time.January, 1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransferCharge_DropsUnpaidCharge(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Madina")
	oldGroup := testutil.CreateGroup(t, env.db, "English B1", 400000, models.DaysPatternOdd)
	newGroup := testutil.CreateGroup(t, env.db, "English B2", 390000, models.DaysPatternEven)

	old, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, oldGroup.ID, date(2025, time.January, 1))
	require.NoError(t, err)

	// January 2025: 13 Tue/Thu/Sat lessons, 7 from the 15th. 390000/13 = 30000 -> 210000
	charge, err := env.svc.Ledger.TransferCharge(env.ctx, student.ID, oldGroup.ID, newGroup.ID, date(2025, time.January, 15))
	require.NoError(t, err)
	require.NotNil(t, charge)
	assert.Equal(t, newGroup.ID, charge.GroupID)
	assert.Equal(t, int64(210000), charge.AmountDue)
	assert.Equal(t, "7/13", charge.LessonsLabel())

	var count int64
	require.NoError(t, env.db.Model(&models.TuitionCharge{}).Where("id = ?", old.ID).Count(&count).Error)
	assert.Zero(t, count)
	env.assertLedgerConsistent(t)
}

func TestTransferCharge_FreezesPartiallyPaidCharge(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Madina")
	oldGroup := testutil.CreateGroup(t, env.db, "English B1", 400000, models.DaysPatternOdd)
	newGroup := testutil.CreateGroup(t, env.db, "English B2", 390000, models.DaysPatternEven)

	old, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, oldGroup.ID, date(2025, time.January, 1))
	require.NoError(t, err)
	_, err = env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, oldGroup.ID, 2025, 1, 50000)
	require.NoError(t, err)

	_, _, err = env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: student.ID, Amount: 20000, Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = env.svc.Ledger.TransferCharge(env.ctx, student.ID, oldGroup.ID, newGroup.ID, date(2025, time.January, 15))
	require.NoError(t, err)

	frozen := env.charge(t, old.ID)
	assert.Equal(t, int64(20000), frozen.AmountDue)
	assert.Zero(t, frozen.Discount)
	assert.Equal(t, models.ChargeStatusPaid, frozen.Status)
	assert.Equal(t, int64(20000), env.allocated(t, old.ID))

	var newCharge models.TuitionCharge
	require.NoError(t, env.db.First(&newCharge, "group_id = ?", newGroup.ID).Error)
	assert.Equal(t, int64(210000), newCharge.AmountDue)
	env.assertLedgerConsistent(t)
}

func TestTransferCharge_SameGroupRejected(t *testing.T) {
	env := newTestEnv(t)
	group := testutil.CreateGroup(t, env.db, "Math", 400000, models.DaysPatternOdd)

	_, err := env.svc.Ledger.TransferCharge(env.ctx, uuid.New(), group.ID, group.ID, date(2025, time.January, 15))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransferCharge_UnknownNewGroupLeavesLedgerUntouched(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Madina")
	group := testutil.CreateGroup(t, env.db, "Math", 400000, models.DaysPatternOdd)
	old := testutil.CreateCharge(t, env.db, student.ID, group.ID, 2025, 1, 400000)

	_, err := env.svc.Ledger.TransferCharge(env.ctx, student.ID, group.ID, uuid.New(), date(2025, time.January, 15))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(400000), env.charge(t, old.ID).AmountDue)
}

func TestApplyDiscount(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Javlon")
	group := testutil.CreateGroup(t, env.db, "Physics", 500000, models.DaysPatternEven)
	charge := testutil.CreateCharge(t, env.db, student.ID, group.ID, 2025, 1, 500000)

	t.Run("negative rejected", func(t *testing.T) {
		_, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 1, -1)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("above amount due rejected", func(t *testing.T) {
		_, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 1, 500001)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
		assert.Zero(t, env.charge(t, charge.ID).Discount)
	})

	t.Run("rounded to the thousand", func(t *testing.T) {
		updated, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 1, 149500)
		require.NoError(t, err)
		assert.Equal(t, int64(150000), updated.Discount)
		assert.Equal(t, int64(350000), updated.EffectiveAmount())
	})

	t.Run("full discount settles the charge", func(t *testing.T) {
		updated, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 1, 500000)
		require.NoError(t, err)
		assert.Equal(t, models.ChargeStatusPaid, updated.Status)
	})

	t.Run("missing charge", func(t *testing.T) {
		_, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 2, 1000)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	env.assertLedgerConsistent(t)

	var audits int64
	require.NoError(t, env.db.Model(&models.AuditLog{}).Where("action = ?", models.AuditActionDiscount).Count(&audits).Error)
	assert.Equal(t, int64(2), audits)
}

func TestApplyDiscount_AfterPaymentRecomputesStatus(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Javlon")
	group := testutil.CreateGroup(t, env.db, "Physics", 100000, models.DaysPatternEven)
	charge := testutil.CreateCharge(t, env.db, student.ID, group.ID, 2025, 1, 100000)

	_, _, err := env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: student.ID, Amount: 70000, Method: models.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPartiallyPaid, env.charge(t, charge.ID).Status)

	updated, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 1, 30000)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPaid, updated.Status)

	updated, err = env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPartiallyPaid, updated.Status)
	env.assertLedgerConsistent(t)
}

func TestApplyDiscount_LimitedToUnpaidAmount(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Javlon")
	group := testutil.CreateGroup(t, env.db, "Physics", 400000, models.DaysPatternOdd)
	paidUp := testutil.CreateCharge(t, env.db, student.ID, group.ID, 2025, 1, 400000)
	partial := testutil.CreateCharge(t, env.db, student.ID, group.ID, 2025, 2, 400000)

	_, _, err := env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: student.ID, Amount: 700000, Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	require.Equal(t, int64(400000), env.allocated(t, paidUp.ID))
	require.Equal(t, int64(300000), env.allocated(t, partial.ID))

	t.Run("fully paid charge takes no discount", func(t *testing.T) {
		_, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 1, 100000)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
		assert.Zero(t, env.charge(t, paidUp.ID).Discount)
	})

	t.Run("discount above the unpaid rest rejected", func(t *testing.T) {
		_, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 2, 100001)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("discount equal to the unpaid rest settles", func(t *testing.T) {
		updated, err := env.svc.Ledger.ApplyDiscount(env.ctx, env.actor, student.ID, group.ID, 2025, 2, 100000)
		require.NoError(t, err)
		assert.Equal(t, int64(100000), updated.Discount)
		assert.Equal(t, models.ChargeStatusPaid, updated.Status)
	})

	balance, err := env.svc.Report.GetGlobalBalance(env.ctx)
	require.NoError(t, err)
	assert.Zero(t, balance.TotalDebt)
	assert.Zero(t, balance.TotalOverpaid)
	env.assertLedgerConsistent(t)
}

// Re-enrolling later in an already paid month replaces the charge with the smaller
// prorated amount; allocations are kept and the excess is reported as overpaid.
func TestComputeInitialCharge_BelowPaidAmountReportsOverpaid(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Aziz")
	group := testutil.CreateGroup(t, env.db, "Math A1", 400000, models.DaysPatternOdd)

	charge, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, date(2025, time.January, 1))
	require.NoError(t, err)
	require.Equal(t, int64(400000), charge.AmountDue)
	_, _, err = env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: student.ID, Amount: 400000, Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	// Jan 27, 29 and 31 remain: 28571*3 + 6 = 85719 -> 86000
	again, err := env.svc.Ledger.ComputeInitialCharge(env.ctx, student.ID, group.ID, date(2025, time.January, 27))
	require.NoError(t, err)
	assert.Equal(t, charge.ID, again.ID)
	assert.Equal(t, int64(86000), again.AmountDue)
	assert.Equal(t, models.ChargeStatusPaid, again.Status)
	assert.Equal(t, int64(400000), env.allocated(t, charge.ID))

	balance, err := env.svc.Report.GetGlobalBalance(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(86000), balance.TotalCharged)
	assert.Equal(t, int64(400000), balance.TotalAllocated)
	assert.Zero(t, balance.TotalDebt)
	assert.Equal(t, int64(314000), balance.TotalOverpaid)

	history, err := env.svc.Report.GetStudentHistory(env.ctx, student.ID)
	require.NoError(t, err)
	assert.Zero(t, history.TotalDebt)
	assert.Equal(t, int64(314000), history.TotalOverpaid)
}
