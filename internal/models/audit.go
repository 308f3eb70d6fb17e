package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog represents a money-mutating action taken by a staff member
type AuditLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action    string     `gorm:"size:50;not null" json:"action"` // PAYMENT, EXPENSE, DISCOUNT, ENROLL, TRANSFER, ...
	Entity    string     `gorm:"size:50;not null;index:idx_audit_entity,priority:1" json:"entity"`
	EntityID  *uuid.UUID `gorm:"type:uuid;index:idx_audit_entity,priority:2" json:"entity_id"`
	Details   string     `gorm:"type:text" json:"details"`
	IPAddress string     `gorm:"size:45" json:"ip_address"`
	UserAgent string     `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionPayment      = "PAYMENT"
	AuditActionExpense      = "EXPENSE"
	AuditActionDiscount     = "DISCOUNT"
	AuditActionCharge       = "CHARGE"
	AuditActionEnroll       = "ENROLL"
	AuditActionTransfer     = "TRANSFER"
	AuditActionUpdateStatus = "UPDATE_STATUS"
	AuditActionDelete       = "DELETE"
	AuditActionReconcile    = "RECONCILE"
)

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
