package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TuitionCharge is one student's obligation in one group for one calendar month.
// (StudentID, GroupID, Year, Month) is unique.
type TuitionCharge struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tuition_charge_key,priority:1" json:"student_id"`
	GroupID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tuition_charge_key,priority:2;index" json:"group_id"`
	Year           int       `gorm:"not null;uniqueIndex:idx_tuition_charge_key,priority:3" json:"year"`
	Month          int       `gorm:"not null;uniqueIndex:idx_tuition_charge_key,priority:4" json:"month"`
	AmountDue      int64     `gorm:"not null;default:0" json:"amount_due"`
	Discount       int64     `gorm:"not null;default:0" json:"discount"`
	PlannedLessons int       `gorm:"not null;default:0" json:"planned_lessons"`
	ChargedLessons int       `gorm:"not null;default:0" json:"charged_lessons"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Associations
	Student     Student             `gorm:"foreignKey:StudentID" json:"-"`
	Group       Group               `gorm:"foreignKey:GroupID" json:"-"`
	Allocations []PaymentAllocation `gorm:"foreignKey:ChargeID" json:"-"`
}

// TableName specifies the table name for TuitionCharge
func (TuitionCharge) TableName() string {
	return "tuition_charges"
}

// Charge status constants
const (
	ChargeStatusPending       = "PENDING"
	ChargeStatusPartiallyPaid = "PARTIALLY_PAID"
	ChargeStatusPaid          = "PAID"
)

func (c *TuitionCharge) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// EffectiveAmount is what the student actually owes after discount
func (c *TuitionCharge) EffectiveAmount() int64 {
	return c.AmountDue - c.Discount
}

// AllocatedTotal sums loaded allocations. Callers must preload Allocations.
func (c *TuitionCharge) AllocatedTotal() int64 {
	var total int64
	for _, a := range c.Allocations {
		total += a.Amount
	}
	return total
}

// Period formats the charge month as YYYY-MM
func (c *TuitionCharge) Period() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month)
}

// LessonsLabel renders "charged/planned", e.g. "5/13"
func (c *TuitionCharge) LessonsLabel() string {
	return fmt.Sprintf("%d/%d", c.ChargedLessons, c.PlannedLessons)
}

// TuitionChargeResponse is the JSON response format for charges
type TuitionChargeResponse struct {
	ID              uuid.UUID `json:"id"`
	StudentID       uuid.UUID `json:"student_id"`
	GroupID         uuid.UUID `json:"group_id"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	AmountDue       int64     `json:"amount_due"`
	Discount        int64     `json:"discount"`
	EffectiveAmount int64     `json:"effective_amount"`
	PlannedLessons  int       `json:"planned_lessons"`
	ChargedLessons  int       `json:"charged_lessons"`
	Status          string    `json:"status"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToResponse converts TuitionCharge to TuitionChargeResponse
func (c *TuitionCharge) ToResponse() TuitionChargeResponse {
	return TuitionChargeResponse{
		ID:              c.ID,
		StudentID:       c.StudentID,
		GroupID:         c.GroupID,
		Year:            c.Year,
		Month:           c.Month,
		AmountDue:       c.AmountDue,
		Discount:        c.Discount,
		EffectiveAmount: c.EffectiveAmount(),
		PlannedLessons:  c.PlannedLessons,
		ChargedLessons:  c.ChargedLessons,
		Status:          c.Status,
		UpdatedAt:       c.UpdatedAt,
	}
}
