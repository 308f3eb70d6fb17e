package handlers

import (
	"github.com/TeamSoftLion/crm/internal/services"
	"gorm.io/gorm"
)

// Handlers holds all handler instances
type Handlers struct {
	Health     *HealthHandler
	Finance    *FinanceHandler
	Enrollment *EnrollmentHandler
	Audit      *AuditHandler
	Job        *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, db *gorm.DB) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(db),
		Finance:    NewFinanceHandler(svcs),
		Enrollment: NewEnrollmentHandler(svcs.Enrollment),
		Audit:      NewAuditHandler(svcs.Audit),
		Job:        NewJobHandler(svcs.Job),
	}
}
