// Package testutil provides an in-memory database and seed helpers for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/TeamSoftLion/crm/internal/database"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with every table migrated
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}
	// one connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}
	return db
}

// CreateGroup inserts an active group
func CreateGroup(t testing.TB, db *gorm.DB, name string, fee int64, pattern string) models.Group {
	t.Helper()
	group := models.Group{Name: name, MonthlyFee: fee, DaysPattern: pattern, IsActive: true}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	return group
}

// CreateStudent inserts a student
func CreateStudent(t testing.TB, db *gorm.DB, name string) models.Student {
	t.Helper()
	student := models.Student{FullName: name, Phone: "+998901234567"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}

// CreateCharge inserts a charge with a status matching an unpaid state
func CreateCharge(t testing.TB, db *gorm.DB, studentID, groupID uuid.UUID, year, month int, amountDue int64) models.TuitionCharge {
	t.Helper()
	charge := models.TuitionCharge{
		StudentID:      studentID,
		GroupID:        groupID,
		Year:           year,
		Month:          month,
		AmountDue:      amountDue,
		PlannedLessons: 12,
		ChargedLessons: 12,
		Status:         models.ChargeStatusPending,
	}
	if amountDue == 0 {
		charge.Status = models.ChargeStatusPaid
	}
	if err := db.Omit(clause.Associations).Create(&charge).Error; err != nil {
		t.Fatalf("CreateCharge() failed: %v", err)
	}
	return charge
}

// CreatePayment inserts a bare completed payment without allocations
func CreatePayment(t testing.TB, db *gorm.DB, studentID uuid.UUID, amount int64, method string, paidAt time.Time) models.Payment {
	t.Helper()
	payment := models.Payment{
		StudentID:    studentID,
		Amount:       amount,
		Method:       method,
		PaidAt:       paidAt.UTC(),
		RecordedByID: uuid.New(),
	}
	if err := db.Omit(clause.Associations).Create(&payment).Error; err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}
	return payment
}

// Allocate inserts an allocation row directly
func Allocate(t testing.TB, db *gorm.DB, paymentID, chargeID uuid.UUID, amount int64) {
	t.Helper()
	allocation := models.PaymentAllocation{PaymentID: paymentID, ChargeID: chargeID, Amount: amount}
	if err := db.Create(&allocation).Error; err != nil {
		t.Fatalf("Allocate() failed: %v", err)
	}
}
