package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/TeamSoftLion/crm/internal/billing"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recentPaymentsLimit = 5

// ReportService computes read-only views of the ledger on demand
type ReportService struct {
	repos *repository.Repositories
	loc   *time.Location
	now   func() time.Time
}

// NewReportService uses loc to decide which calendar month is "current"
func NewReportService(repos *repository.Repositories, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{repos: repos, loc: loc, now: time.Now}
}

// GetStudentSummary reports the current month in the student's current group
func (s *ReportService) GetStudentSummary(ctx context.Context, studentID uuid.UUID) (*models.StudentSummary, error) {
	student, err := s.repos.Student.FindByID(ctx, studentID)
	if err != nil {
		return nil, notFound("student", err)
	}

	today := s.now().In(s.loc)
	summary := &models.StudentSummary{
		StudentID:      student.ID,
		StudentName:    student.FullName,
		Year:           today.Year(),
		Month:          int(today.Month()),
		RecentPayments: []models.PaymentResponse{},
	}

	payments, err := s.repos.Payment.FindRecentByStudent(ctx, studentID, recentPaymentsLimit)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		summary.RecentPayments = append(summary.RecentPayments, payments[i].ToResponse())
	}

	enrollment, err := s.repos.Enrollment.FindCurrent(ctx, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return summary, nil
	}
	if err != nil {
		return nil, err
	}
	summary.Group = &models.RefSummary{ID: enrollment.GroupID, Name: enrollment.Group.Name}

	row, err := s.repos.Report.StudentMonth(ctx, studentID, enrollment.GroupID, summary.Year, summary.Month)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return summary, nil
	}
	if err != nil {
		return nil, err
	}

	summary.Charge = row.Effective()
	summary.Paid = row.Paid
	summary.Debt = billing.Debt(row.AmountDue, row.Discount, row.Paid)
	summary.Status = row.Status
	summary.LessonsLabel = fmt.Sprintf("%d/%d", row.ChargedLessons, row.PlannedLessons)
	summary.ChargeRounded = billing.RoundToThousand(summary.Charge)
	summary.PaidRounded = billing.RoundToThousand(summary.Paid)
	summary.DebtRounded = billing.RoundToThousand(summary.Debt)
	return summary, nil
}

// GetStudentHistory groups every charge of the student by group, in first-charged order
func (s *ReportService) GetStudentHistory(ctx context.Context, studentID uuid.UUID) (*models.StudentHistory, error) {
	student, err := s.repos.Student.FindByID(ctx, studentID)
	if err != nil {
		return nil, notFound("student", err)
	}

	rows, err := s.repos.Report.StudentCharges(ctx, studentID)
	if err != nil {
		return nil, err
	}

	history := &models.StudentHistory{
		StudentID:   student.ID,
		StudentName: student.FullName,
		Groups:      []models.GroupHistory{},
	}
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, ok := index[row.GroupID]
		if !ok {
			i = len(history.Groups)
			index[row.GroupID] = i
			history.Groups = append(history.Groups, models.GroupHistory{GroupID: row.GroupID, GroupName: row.GroupName})
		}
		g := &history.Groups[i]

		debt := billing.Debt(row.AmountDue, row.Discount, row.Paid)
		g.Months = append(g.Months, models.MonthHistory{
			ChargeID:       row.ID,
			Year:           row.Year,
			Month:          row.Month,
			PlannedLessons: row.PlannedLessons,
			ChargedLessons: row.ChargedLessons,
			AmountDue:      row.AmountDue,
			Discount:       row.Discount,
			Effective:      row.Effective(),
			Paid:           row.Paid,
			Debt:           debt,
			Status:         row.Status,
		})
		g.Effective += row.Effective()
		g.Paid += row.Paid
		g.Debt += debt

		history.TotalCharged += row.Effective()
		history.TotalPaid += row.Paid
		history.TotalDebt += debt
		history.TotalOverpaid += max(row.Paid-row.Effective(), 0)
	}

	for i := range history.Groups {
		history.Groups[i].DebtRounded = billing.RoundToThousand(history.Groups[i].Debt)
	}
	history.TotalDebtRounded = billing.RoundToThousand(history.TotalDebt)
	return history, nil
}

// GetGroupCharges lists every student's charge in a group for one month
func (s *ReportService) GetGroupCharges(ctx context.Context, groupID uuid.UUID, year, month int) (*models.GroupChargesReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}
	group, err := s.repos.Group.FindByID(ctx, groupID)
	if err != nil {
		return nil, notFound("group", err)
	}

	rows, err := s.repos.Report.GroupCharges(ctx, groupID, year, month)
	if err != nil {
		return nil, err
	}

	report := &models.GroupChargesReport{
		GroupID:   group.ID,
		GroupName: group.Name,
		Year:      year,
		Month:     month,
		Lines:     make([]models.GroupChargeLine, 0, len(rows)),
	}
	for _, row := range rows {
		line := models.GroupChargeLine{
			ChargeID:    row.ID,
			StudentID:   row.StudentID,
			StudentName: row.StudentName,
			AmountDue:   row.AmountDue,
			Discount:    row.Discount,
			Net:         row.Effective(),
			Paid:        row.Paid,
			Debt:        billing.Debt(row.AmountDue, row.Discount, row.Paid),
			Status:      row.Status,
			Lessons:     fmt.Sprintf("%d/%d", row.ChargedLessons, row.PlannedLessons),
		}
		report.Lines = append(report.Lines, line)

		report.Totals.AmountDue += line.AmountDue
		report.Totals.Discount += line.Discount
		report.Totals.Net += line.Net
		report.Totals.Paid += line.Paid
		report.Totals.Debt += line.Debt
	}
	report.Totals.NetRounded = billing.RoundToThousand(report.Totals.Net)
	report.Totals.PaidRounded = billing.RoundToThousand(report.Totals.Paid)
	report.Totals.DebtRounded = billing.RoundToThousand(report.Totals.Debt)
	return report, nil
}

// GetDebtors returns students owing at least minDebt, largest debt first
func (s *ReportService) GetDebtors(ctx context.Context, minDebt int64) ([]models.Debtor, error) {
	if minDebt < 0 {
		return nil, fmt.Errorf("%w: min_debt must not be negative", ErrInvalidInput)
	}

	rows, err := s.repos.Report.OutstandingCharges(ctx)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uuid.UUID]*models.Debtor)
	var order []uuid.UUID
	for _, row := range rows {
		debt := billing.Debt(row.AmountDue, row.Discount, row.Paid)
		if debt <= 0 {
			continue
		}

		d, ok := byStudent[row.StudentID]
		if !ok {
			d = &models.Debtor{StudentID: row.StudentID, StudentName: row.StudentName, Phone: row.StudentPhone}
			byStudent[row.StudentID] = d
			order = append(order, row.StudentID)
		}
		d.TotalDebt += debt

		found := false
		for i := range d.Groups {
			if d.Groups[i].GroupID == row.GroupID {
				d.Groups[i].Debt += debt
				d.Groups[i].Months++
				found = true
				break
			}
		}
		if !found {
			d.Groups = append(d.Groups, models.DebtorGroup{GroupID: row.GroupID, GroupName: row.GroupName, Debt: debt, Months: 1})
		}
	}

	debtors := make([]models.Debtor, 0, len(order))
	for _, id := range order {
		d := byStudent[id]
		if d.TotalDebt < minDebt {
			continue
		}
		d.TotalDebtRounded = billing.RoundToThousand(d.TotalDebt)
		debtors = append(debtors, *d)
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		if debtors[i].TotalDebt != debtors[j].TotalDebt {
			return debtors[i].TotalDebt > debtors[j].TotalDebt
		}
		if debtors[i].StudentName != debtors[j].StudentName {
			return debtors[i].StudentName < debtors[j].StudentName
		}
		return debtors[i].StudentID.String() < debtors[j].StudentID.String()
	})
	return debtors, nil
}

// GetGlobalBalance returns total debt and net cash. The two figures are independent:
// unapplied surplus counts as cash but reduces no debt. A charge recomputed below what was
// already paid adds to TotalOverpaid instead of offsetting other students' debt.
func (s *ReportService) GetGlobalBalance(ctx context.Context) (*models.GlobalBalance, error) {
	totals, err := s.repos.Report.Totals(ctx)
	if err != nil {
		return nil, err
	}

	balance := &models.GlobalBalance{
		TotalCharged:   totals.Effective,
		TotalAllocated: totals.Allocated,
		TotalDebt:      totals.Effective - totals.Allocated + totals.Overpaid,
		TotalOverpaid:  totals.Overpaid,
		TotalIncome:    totals.Payments,
		TotalExpenses:  totals.Expenses,
		NetCash:        totals.Payments - totals.Expenses,
	}
	balance.TotalDebtRounded = billing.RoundToThousand(balance.TotalDebt)
	balance.NetCashRounded = billing.RoundToThousand(balance.NetCash)
	return balance, nil
}

// GetFinanceOverview sums income and expenses in [from, to], optionally for one method
func (s *ReportService) GetFinanceOverview(ctx context.Context, from, to time.Time, method string) (*models.FinanceOverview, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if method != "" && !models.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}

	income, err := s.repos.Report.IncomeBetween(ctx, from, to, method)
	if err != nil {
		return nil, err
	}
	expense, err := s.repos.Report.ExpensesBetween(ctx, from, to, method)
	if err != nil {
		return nil, err
	}

	overview := &models.FinanceOverview{
		From:    from,
		To:      to,
		Method:  method,
		Income:  income,
		Expense: expense,
		Profit:  income - expense,
	}
	overview.IncomeRounded = billing.RoundToThousand(income)
	overview.ExpenseRounded = billing.RoundToThousand(expense)
	overview.ProfitRounded = billing.RoundToThousand(overview.Profit)
	return overview, nil
}

// Location is the business time zone used for calendar boundaries
func (s *ReportService) Location() *time.Location {
	return s.loc
}

// DefaultOverviewRange is January 1st of the current year until now
func (s *ReportService) DefaultOverviewRange() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, s.loc), now
}
