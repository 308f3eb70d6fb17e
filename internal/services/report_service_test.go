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

func TestGetStudentSummary(t *testing.T) {
	env := newTestEnv(t)
	env.svc.Report.now = func() time.Time { return date(2025, time.January, 20) }

	student := testutil.CreateStudent(t, env.db, "Sardor")
	group := testutil.CreateGroup(t, env.db, "Math A1", 400000, models.DaysPatternOdd)
	join := date(2025, time.January, 15)
	_, _, err := env.svc.Enrollment.Enroll(env.ctx, env.actor, EnrollInput{StudentID: student.ID, GroupID: group.ID, JoinDate: &join})
	require.NoError(t, err)

	_, summary, err := env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: student.ID, Amount: 100500, Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.NotNil(t, summary.Group)
	assert.Equal(t, group.ID, summary.Group.ID)
	assert.Equal(t, "Math A1", summary.Group.Name)
	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, 1, summary.Month)
	assert.Equal(t, int64(229000), summary.Charge)
	assert.Equal(t, int64(100500), summary.Paid)
	assert.Equal(t, int64(101000), summary.PaidRounded)
	assert.Equal(t, int64(128500), summary.Debt)
	assert.Equal(t, int64(129000), summary.DebtRounded)
	assert.Equal(t, models.ChargeStatusPartiallyPaid, summary.Status)
	assert.Equal(t, "8/14", summary.LessonsLabel)
	assert.Len(t, summary.RecentPayments, 1)
}

func TestGetStudentSummary_RecentPaymentsCapped(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Sardor")
	for i := 1; i <= 7; i++ {
		testutil.CreatePayment(t, env.db, student.ID, int64(i)*1000, models.PaymentMethodCash, date(2025, time.January, i))
	}

	summary, err := env.svc.Report.GetStudentSummary(env.ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, summary.RecentPayments, 5)
	assert.Equal(t, int64(7000), summary.RecentPayments[0].Amount)
	assert.Nil(t, summary.Group)
	assert.Zero(t, summary.Debt)
}

func TestGetStudentSummary_NoChargeThisMonth(t *testing.T) {
	env := newTestEnv(t)
	env.svc.Report.now = func() time.Time { return date(2025, time.March, 3) }

	student := testutil.CreateStudent(t, env.db, "Sardor")
	group := testutil.CreateGroup(t, env.db, "Math A1", 400000, models.DaysPatternOdd)
	join := date(2025, time.January, 15)
	_, _, err := env.svc.Enrollment.Enroll(env.ctx, env.actor, EnrollInput{StudentID: student.ID, GroupID: group.ID, JoinDate: &join})
	require.NoError(t, err)

	summary, err := env.svc.Report.GetStudentSummary(env.ctx, student.ID)
	require.NoError(t, err)
	require.NotNil(t, summary.Group)
	assert.Equal(t, 3, summary.Month)
	assert.Zero(t, summary.Charge)
	assert.Empty(t, summary.Status)
}

func TestGetStudentSummary_UnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Report.GetStudentSummary(env.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStudentHistory(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Sardor")
	math := testutil.CreateGroup(t, env.db, "Math", 100000, models.DaysPatternOdd)
	english := testutil.CreateGroup(t, env.db, "English", 80000, models.DaysPatternEven)
	testutil.CreateCharge(t, env.db, student.ID, math.ID, 2025, 1, 100000)
	testutil.CreateCharge(t, env.db, student.ID, math.ID, 2025, 2, 100000)
	testutil.CreateCharge(t, env.db, student.ID, english.ID, 2025, 2, 80000)

	_, _, err := env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: student.ID, GroupID: &math.ID, Amount: 150000, Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	history, err := env.svc.Report.GetStudentHistory(env.ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, history.Groups, 2)

	assert.Equal(t, "Math", history.Groups[0].GroupName)
	assert.Len(t, history.Groups[0].Months, 2)
	assert.Equal(t, int64(200000), history.Groups[0].Effective)
	assert.Equal(t, int64(150000), history.Groups[0].Paid)
	assert.Equal(t, int64(50000), history.Groups[0].Debt)

	assert.Equal(t, "English", history.Groups[1].GroupName)
	assert.Equal(t, int64(80000), history.Groups[1].Debt)

	assert.Equal(t, int64(280000), history.TotalCharged)
	assert.Equal(t, int64(150000), history.TotalPaid)
	assert.Equal(t, int64(130000), history.TotalDebt)
	assert.Equal(t, int64(130000), history.TotalDebtRounded)
}

func TestGetGroupCharges(t *testing.T) {
	env := newTestEnv(t)
	group := testutil.CreateGroup(t, env.db, "Math", 100000, models.DaysPatternOdd)
	bobur := testutil.CreateStudent(t, env.db, "Bobur")
	aziza := testutil.CreateStudent(t, env.db, "Aziza")
	testutil.CreateCharge(t, env.db, bobur.ID, group.ID, 2025, 1, 100000)
	testutil.CreateCharge(t, env.db, aziza.ID, group.ID, 2025, 1, 100000)
	testutil.CreateCharge(t, env.db, aziza.ID, group.ID, 2025, 2, 100000)

	_, _, err := env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: aziza.ID, Amount: 40000, Method: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	report, err := env.svc.Report.GetGroupCharges(env.ctx, group.ID, 2025, 1)
	require.NoError(t, err)
	require.Len(t, report.Lines, 2)
	assert.Equal(t, "Aziza", report.Lines[0].StudentName)
	assert.Equal(t, int64(40000), report.Lines[0].Paid)
	assert.Equal(t, int64(60000), report.Lines[0].Debt)
	assert.Equal(t, "12/12", report.Lines[0].Lessons)
	assert.Equal(t, "Bobur", report.Lines[1].StudentName)

	assert.Equal(t, int64(200000), report.Totals.Net)
	assert.Equal(t, int64(40000), report.Totals.Paid)
	assert.Equal(t, int64(160000), report.Totals.Debt)

	_, err = env.svc.Report.GetGroupCharges(env.ctx, group.ID, 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.svc.Report.GetGroupCharges(env.ctx, uuid.New(), 2025, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetDebtors(t *testing.T) {
	env := newTestEnv(t)
	math := testutil.CreateGroup(t, env.db, "Math", 100000, models.DaysPatternOdd)
	english := testutil.CreateGroup(t, env.db, "English", 200000, models.DaysPatternEven)

	kamola := testutil.CreateStudent(t, env.db, "Kamola")
	testutil.CreateCharge(t, env.db, kamola.ID, math.ID, 2025, 1, 100000)
	testutil.CreateCharge(t, env.db, kamola.ID, english.ID, 2025, 1, 200000)

	bekzod := testutil.CreateStudent(t, env.db, "Bekzod")
	testutil.CreateCharge(t, env.db, bekzod.ID, math.ID, 2025, 1, 100000)
	anvar := testutil.CreateStudent(t, env.db, "Anvar")
	testutil.CreateCharge(t, env.db, anvar.ID, math.ID, 2025, 1, 100000)

	paid := testutil.CreateStudent(t, env.db, "Zafar")
	testutil.CreateCharge(t, env.db, paid.ID, math.ID, 2025, 1, 100000)
	_, _, err := env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: paid.ID, Amount: 100000, Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	debtors, err := env.svc.Report.GetDebtors(env.ctx, 0)
	require.NoError(t, err)
	require.Len(t, debtors, 3)
	assert.Equal(t, "Kamola", debtors[0].StudentName)
	assert.Equal(t, int64(300000), debtors[0].TotalDebt)
	assert.Len(t, debtors[0].Groups, 2)
	assert.Equal(t, "Anvar", debtors[1].StudentName)
	assert.Equal(t, "Bekzod", debtors[2].StudentName)

	debtors, err = env.svc.Report.GetDebtors(env.ctx, 150000)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, kamola.ID, debtors[0].StudentID)

	_, err = env.svc.Report.GetDebtors(env.ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetGlobalBalance(t *testing.T) {
	env := newTestEnv(t)
	group := testutil.CreateGroup(t, env.db, "Math", 100000, models.DaysPatternOdd)
	payer := testutil.CreateStudent(t, env.db, "Payer")
	debtor := testutil.CreateStudent(t, env.db, "Debtor")
	testutil.CreateCharge(t, env.db, payer.ID, group.ID, 2025, 1, 100000)
	testutil.CreateCharge(t, env.db, debtor.ID, group.ID, 2025, 1, 40000)

	_, _, err := env.svc.Payment.RecordPayment(env.ctx, env.actor, RecordPaymentInput{
		StudentID: payer.ID, Amount: 150000, Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	_, err = env.svc.Expense.RecordExpense(env.ctx, env.actor, RecordExpenseInput{
		Title: "Rent", Amount: 30000, Method: models.PaymentMethodTransfer,
	})
	require.NoError(t, err)

	balance, err := env.svc.Report.GetGlobalBalance(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(140000), balance.TotalCharged)
	assert.Equal(t, int64(100000), balance.TotalAllocated)
	assert.Equal(t, int64(40000), balance.TotalDebt)
	assert.Equal(t, int64(150000), balance.TotalIncome)
	assert.Equal(t, int64(30000), balance.TotalExpenses)
	assert.Equal(t, int64(120000), balance.NetCash)
}

func TestGetFinanceOverview(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.CreateStudent(t, env.db, "Sardor")
	testutil.CreatePayment(t, env.db, student.ID, 50000, models.PaymentMethodCash, date(2025, time.January, 10))
	testutil.CreatePayment(t, env.db, student.ID, 70000, models.PaymentMethodCard, date(2025, time.February, 10))
	paidAt := date(2025, time.January, 20)
	_, err := env.svc.Expense.RecordExpense(env.ctx, env.actor, RecordExpenseInput{
		Title: "Markers", Category: "supplies", Amount: 20500, Method: models.PaymentMethodCash, PaidAt: &paidAt,
	})
	require.NoError(t, err)

	overview, err := env.svc.Report.GetFinanceOverview(env.ctx, date(2025, time.January, 1), date(2025, time.January, 31), "")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), overview.Income)
	assert.Equal(t, int64(20500), overview.Expense)
	assert.Equal(t, int64(29500), overview.Profit)
	assert.Equal(t, int64(30000), overview.ProfitRounded)

	overview, err = env.svc.Report.GetFinanceOverview(env.ctx, date(2025, time.January, 1), date(2025, time.December, 31), models.PaymentMethodCard)
	require.NoError(t, err)
	assert.Equal(t, int64(70000), overview.Income)
	assert.Zero(t, overview.Expense)

	_, err = env.svc.Report.GetFinanceOverview(env.ctx, date(2025, time.February, 1), date(2025, time.January, 1), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.svc.Report.GetFinanceOverview(env.ctx, date(2025, time.January, 1), date(2025, time.February, 1), "GOLD")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDefaultOverviewRange(t *testing.T) {
	env := newTestEnv(t)
	env.svc.Report.now = func() time.Time { return time.Date(2025, time.June, 5, 14, 30, 0, 0, time.UTC) }

	from, to := env.svc.Report.DefaultOverviewRange()
	assert.Equal(t, date(2025, time.January, 1), from)
	assert.Equal(t, time.Date(2025, time.June, 5, 14, 30, 0, 0, time.UTC), to)
}
