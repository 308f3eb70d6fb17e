package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TeamSoftLion/crm/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrConflict is returned when a transaction keeps losing races after every retry
var ErrConflict = errors.New("concurrent update conflict")

const (
	maxTxAttempts = 3
	retryBackoff  = 20 * time.Millisecond
)

// Repositories holds all repository instances
type Repositories struct {
	db *gorm.DB

	Group      GroupRepository
	Student    StudentRepository
	Enrollment EnrollmentRepository
	Charge     ChargeRepository
	Payment    PaymentRepository
	Expense    ExpenseRepository
	Report     ReportRepository
	Audit      AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Group:      NewGroupRepository(db),
		Student:    NewStudentRepository(db),
		Enrollment: NewEnrollmentRepository(db),
		Charge:     NewChargeRepository(db),
		Payment:    NewPaymentRepository(db),
		Expense:    NewExpenseRepository(db),
		Report:     NewReportRepository(db),
		Audit:      NewAuditRepository(db),
	}
}

// DB exposes the underlying handle, e.g. for health checks
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// Transaction runs fn against repositories bound to a single database transaction.
// Serialization failures, deadlocks and natural-key races are retried; once attempts
// run out the last error is wrapped in ErrConflict. Any other error rolls back and is
// returned unchanged.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewRepositories(tx))
		})
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == maxTxAttempts {
			break
		}

		logger.Warn("Retrying transaction", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

// IsRetryable reports whether err is a transient concurrency failure
func IsRetryable(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505":
			return true
		}
	}
	return false
}

// ListQuery holds pagination and filter parameters for list endpoints
type ListQuery struct {
	Page    int
	PerPage int
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

func (q *ListQuery) paginate(db *gorm.DB) *gorm.DB {
	if q.PerPage <= 0 {
		return db
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return db.Offset((page - 1) * q.PerPage).Limit(q.PerPage)
}

// forUpdate adds a row lock on PostgreSQL. SQLite serializes writers on its own.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
