package repository

import (
	"context"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChargeRow is a charge joined with its allocated total and display labels
type ChargeRow struct {
	ID             uuid.UUID
	StudentID      uuid.UUID
	GroupID        uuid.UUID
	Year           int
	Month          int
	AmountDue      int64
	Discount       int64
	PlannedLessons int
	ChargedLessons int
	Status         string
	Paid           int64
	StudentName    string
	StudentPhone   string
	GroupName      string
}

// Effective is amount due minus discount
func (r ChargeRow) Effective() int64 {
	return r.AmountDue - r.Discount
}

// LedgerTotals are the global sums behind the balance report. Overpaid is what charges
// hold in allocations beyond their effective amount.
type LedgerTotals struct {
	Effective int64
	Allocated int64
	Overpaid  int64
	Payments  int64
	Expenses  int64
}

// ReportRepository runs read-only aggregate queries over the ledger
type ReportRepository interface {
	StudentCharges(ctx context.Context, studentID uuid.UUID) ([]ChargeRow, error)
	StudentMonth(ctx context.Context, studentID, groupID uuid.UUID, year, month int) (*ChargeRow, error)
	GroupCharges(ctx context.Context, groupID uuid.UUID, year, month int) ([]ChargeRow, error)
	OutstandingCharges(ctx context.Context) ([]ChargeRow, error)
	Totals(ctx context.Context) (*LedgerTotals, error)
	IncomeBetween(ctx context.Context, from, to time.Time, method string) (int64, error)
	ExpensesBetween(ctx context.Context, from, to time.Time, method string) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

const chargeRowColumns = "c.id, c.student_id, c.group_id, c.year, c.month, c.amount_due, c.discount, " +
	"c.planned_lessons, c.charged_lessons, c.status, COALESCE(a.paid, 0) AS paid, " +
	"COALESCE(s.full_name, '') AS student_name, COALESCE(s.phone, '') AS student_phone, COALESCE(g.name, '') AS group_name"

func (r *reportRepository) chargeRows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("tuition_charges AS c").
		Select(chargeRowColumns).
		Joins("LEFT JOIN (SELECT charge_id, SUM(amount) AS paid FROM payment_allocations GROUP BY charge_id) AS a ON a.charge_id = c.id").
		Joins("LEFT JOIN students AS s ON s.id = c.student_id").
		Joins("LEFT JOIN study_groups AS g ON g.id = c.group_id")
}

func (r *reportRepository) StudentCharges(ctx context.Context, studentID uuid.UUID) ([]ChargeRow, error) {
	var rows []ChargeRow
	err := r.chargeRows(ctx).
		Where("c.student_id = ?", studentID).
		Order("c.year ASC, c.month ASC, g.name ASC").
		Scan(&rows).Error
	return rows, err
}

// StudentMonth returns gorm.ErrRecordNotFound when the student has no charge for that month
func (r *reportRepository) StudentMonth(ctx context.Context, studentID, groupID uuid.UUID, year, month int) (*ChargeRow, error) {
	var rows []ChargeRow
	err := r.chargeRows(ctx).
		Where("c.student_id = ? AND c.group_id = ? AND c.year = ? AND c.month = ?", studentID, groupID, year, month).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *reportRepository) GroupCharges(ctx context.Context, groupID uuid.UUID, year, month int) ([]ChargeRow, error) {
	var rows []ChargeRow
	err := r.chargeRows(ctx).
		Where("c.group_id = ? AND c.year = ? AND c.month = ?", groupID, year, month).
		Order("s.full_name ASC, c.id ASC").
		Scan(&rows).Error
	return rows, err
}

// OutstandingCharges returns every charge whose allocations do not cover its effective amount
func (r *reportRepository) OutstandingCharges(ctx context.Context) ([]ChargeRow, error) {
	var rows []ChargeRow
	err := r.chargeRows(ctx).
		Where("(c.amount_due - c.discount) > COALESCE(a.paid, 0)").
		Order("s.full_name ASC, c.year ASC, c.month ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) Totals(ctx context.Context) (*LedgerTotals, error) {
	var totals LedgerTotals
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.TuitionCharge{}).
		Select("COALESCE(SUM(amount_due - discount), 0)").
		Scan(&totals.Effective).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.PaymentAllocation{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totals.Allocated).Error; err != nil {
		return nil, err
	}
	if err := db.Table("tuition_charges AS c").
		Joins("JOIN (SELECT charge_id, SUM(amount) AS paid FROM payment_allocations GROUP BY charge_id) a ON a.charge_id = c.id").
		Where("a.paid > c.amount_due - c.discount").
		Select("COALESCE(SUM(a.paid - (c.amount_due - c.discount)), 0)").
		Scan(&totals.Overpaid).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", models.PaymentStatusCompleted).
		Scan(&totals.Payments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totals.Expenses).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// IncomeBetween sums completed payments with paid_at in [from, to]; empty method means all methods
func (r *reportRepository) IncomeBetween(ctx context.Context, from, to time.Time, method string) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted)
	return sumBetween(db, from, to, method)
}

// ExpensesBetween sums expenses with paid_at in [from, to]; empty method means all methods
func (r *reportRepository) ExpensesBetween(ctx context.Context, from, to time.Time, method string) (int64, error) {
	return sumBetween(r.db.WithContext(ctx).Model(&models.Expense{}), from, to, method)
}

func sumBetween(db *gorm.DB, from, to time.Time, method string) (int64, error) {
	var total int64
	db = db.Where("paid_at >= ? AND paid_at <= ?", from.UTC(), to.UTC())
	if method != "" {
		db = db.Where("method = ?", method)
	}
	err := db.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
