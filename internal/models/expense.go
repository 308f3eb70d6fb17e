package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is money leaving the organization. It only feeds cash reporting.
type Expense struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Category     string    `gorm:"size:50;index" json:"category"`
	Amount       int64     `gorm:"not null" json:"amount"`
	Method       string    `gorm:"type:varchar(20);not null;index" json:"method"`
	PaidAt       time.Time `gorm:"not null;index" json:"paid_at"`
	Note         *string   `gorm:"type:text" json:"note"`
	RecordedByID uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
