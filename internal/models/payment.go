package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is an incoming cash event from a student. Payments are immutable once recorded.
type Payment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	GroupID      *uuid.UUID `gorm:"type:uuid;index" json:"group_id"`
	Amount       int64      `gorm:"not null" json:"amount"`
	Method       string     `gorm:"type:varchar(20);not null;index" json:"method"`
	Status       string     `gorm:"type:varchar(20);not null;default:'COMPLETED';index" json:"status"`
	PaidAt       time.Time  `gorm:"not null;index" json:"paid_at"`
	Reference    *string    `json:"reference"`
	Comment      *string    `gorm:"type:text" json:"comment"`
	RecordedByID uuid.UUID  `gorm:"type:uuid;not null" json:"recorded_by_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Associations
	Allocations []PaymentAllocation `gorm:"foreignKey:PaymentID" json:"allocations,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Payment status constants
const (
	PaymentStatusCompleted = "COMPLETED"
)

// Payment method constants, shared with expenses
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

// IsValidPaymentMethod reports whether m is a known payment method
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Status == "" {
		p.Status = PaymentStatusCompleted
	}
	return nil
}

// PaymentAllocation is the portion of a payment applied to one charge
type PaymentAllocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_id"`
	ChargeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"charge_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for PaymentAllocation
func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}

func (a *PaymentAllocation) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID           uuid.UUID            `json:"id"`
	StudentID    uuid.UUID            `json:"student_id"`
	GroupID      *uuid.UUID           `json:"group_id"`
	Amount       int64                `json:"amount"`
	Allocated    int64                `json:"allocated"`
	Unapplied    int64                `json:"unapplied"`
	Method       string               `json:"method"`
	Status       string               `json:"status"`
	PaidAt       time.Time            `json:"paid_at"`
	Reference    *string              `json:"reference"`
	Comment      *string              `json:"comment"`
	RecordedByID uuid.UUID            `json:"recorded_by_id"`
	Allocations  []AllocationResponse `json:"allocations"`
}

// AllocationResponse is the JSON response format for a payment allocation
type AllocationResponse struct {
	ChargeID uuid.UUID `json:"charge_id"`
	Amount   int64     `json:"amount"`
}

// ToResponse converts Payment to PaymentResponse. Unapplied is the surplus that matched no charge.
func (p *Payment) ToResponse() PaymentResponse {
	resp := PaymentResponse{
		ID:           p.ID,
		StudentID:    p.StudentID,
		GroupID:      p.GroupID,
		Amount:       p.Amount,
		Method:       p.Method,
		Status:       p.Status,
		PaidAt:       p.PaidAt,
		Reference:    p.Reference,
		Comment:      p.Comment,
		RecordedByID: p.RecordedByID,
		Allocations:  make([]AllocationResponse, 0, len(p.Allocations)),
	}
	for _, a := range p.Allocations {
		resp.Allocated += a.Amount
		resp.Allocations = append(resp.Allocations, AllocationResponse{ChargeID: a.ChargeID, Amount: a.Amount})
	}
	resp.Unapplied = p.Amount - resp.Allocated
	return resp
}
