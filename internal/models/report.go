package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentSummary is the current-month position of a student in their current group
type StudentSummary struct {
	StudentID      uuid.UUID         `json:"student_id"`
	StudentName    string            `json:"student_name"`
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	Group          *RefSummary       `json:"group"`
	Charge         int64             `json:"charge"`
	ChargeRounded  int64             `json:"charge_rounded"`
	Paid           int64             `json:"paid"`
	PaidRounded    int64             `json:"paid_rounded"`
	Debt           int64             `json:"debt"`
	DebtRounded    int64             `json:"debt_rounded"`
	Status         string            `json:"status,omitempty"`
	LessonsLabel   string            `json:"lessons,omitempty"`
	RecentPayments []PaymentResponse `json:"recent_payments"`
}

// StudentHistory lists every charge of a student grouped by group
type StudentHistory struct {
	StudentID        uuid.UUID      `json:"student_id"`
	StudentName      string         `json:"student_name"`
	Groups           []GroupHistory `json:"groups"`
	TotalCharged     int64          `json:"total_charged"`
	TotalPaid        int64          `json:"total_paid"`
	TotalDebt        int64          `json:"total_debt"`
	TotalDebtRounded int64          `json:"total_debt_rounded"`
	TotalOverpaid    int64          `json:"total_overpaid"`
}

// GroupHistory is the per-group section of a student history
type GroupHistory struct {
	GroupID     uuid.UUID      `json:"group_id"`
	GroupName   string         `json:"group_name"`
	Effective   int64          `json:"effective"`
	Paid        int64          `json:"paid"`
	Debt        int64          `json:"debt"`
	DebtRounded int64          `json:"debt_rounded"`
	Months      []MonthHistory `json:"months"`
}

// MonthHistory is one charge line in a student history
type MonthHistory struct {
	ChargeID       uuid.UUID `json:"charge_id"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	PlannedLessons int       `json:"planned_lessons"`
	ChargedLessons int       `json:"charged_lessons"`
	AmountDue      int64     `json:"amount_due"`
	Discount       int64     `json:"discount"`
	Effective      int64     `json:"effective"`
	Paid           int64     `json:"paid"`
	Debt           int64     `json:"debt"`
	Status         string    `json:"status"`
}

// GroupChargesReport lists a group's charges for one month
type GroupChargesReport struct {
	GroupID   uuid.UUID         `json:"group_id"`
	GroupName string            `json:"group_name"`
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	Lines     []GroupChargeLine `json:"lines"`
	Totals    GroupChargeTotals `json:"totals"`
}

// GroupChargeLine is one student's row in a group charges report
type GroupChargeLine struct {
	ChargeID    uuid.UUID `json:"charge_id"`
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	AmountDue   int64     `json:"amount_due"`
	Discount    int64     `json:"discount"`
	Net         int64     `json:"net"`
	Paid        int64     `json:"paid"`
	Debt        int64     `json:"debt"`
	Status      string    `json:"status"`
	Lessons     string    `json:"lessons"`
}

// GroupChargeTotals sums every line of a group charges report
type GroupChargeTotals struct {
	AmountDue   int64 `json:"amount_due"`
	Discount    int64 `json:"discount"`
	Net         int64 `json:"net"`
	NetRounded  int64 `json:"net_rounded"`
	Paid        int64 `json:"paid"`
	PaidRounded int64 `json:"paid_rounded"`
	Debt        int64 `json:"debt"`
	DebtRounded int64 `json:"debt_rounded"`
}

// Debtor is a student with outstanding charges
type Debtor struct {
	StudentID        uuid.UUID     `json:"student_id"`
	StudentName      string        `json:"student_name"`
	Phone            string        `json:"phone"`
	TotalDebt        int64         `json:"total_debt"`
	TotalDebtRounded int64         `json:"total_debt_rounded"`
	Groups           []DebtorGroup `json:"groups"`
}

// DebtorGroup is a debtor's outstanding amount in one group
type DebtorGroup struct {
	GroupID   uuid.UUID `json:"group_id"`
	GroupName string    `json:"group_name"`
	Debt      int64     `json:"debt"`
	Months    int       `json:"months"`
}

// GlobalBalance holds the two independent organization-wide figures
type GlobalBalance struct {
	TotalCharged     int64 `json:"total_charged"`
	TotalAllocated   int64 `json:"total_allocated"`
	TotalDebt        int64 `json:"total_debt"`
	TotalDebtRounded int64 `json:"total_debt_rounded"`
	TotalOverpaid    int64 `json:"total_overpaid"`
	TotalIncome      int64 `json:"total_income"`
	TotalExpenses    int64 `json:"total_expenses"`
	NetCash          int64 `json:"net_cash"`
	NetCashRounded   int64 `json:"net_cash_rounded"`
}

// FinanceOverview is income against expenses for a period
type FinanceOverview struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Method         string    `json:"method,omitempty"`
	Income         int64     `json:"income"`
	IncomeRounded  int64     `json:"income_rounded"`
	Expense        int64     `json:"expense"`
	ExpenseRounded int64     `json:"expense_rounded"`
	Profit         int64     `json:"profit"`
	ProfitRounded  int64     `json:"profit_rounded"`
}
