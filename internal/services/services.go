package services

import (
	"github.com/TeamSoftLion/crm/internal/config"
	"github.com/TeamSoftLion/crm/internal/jobs"
	"github.com/TeamSoftLion/crm/internal/repository"
)

// Services holds all service instances
type Services struct {
	Ledger     *LedgerService
	Payment    *PaymentService
	Report     *ReportService
	Enrollment *EnrollmentService
	Expense    *ExpenseService
	Export     *ExportService
	Statement  *StatementService
	Reconcile  *ReconcileService
	Audit      *AuditService
	Job        *JobService
}

// NewServices creates all service instances. worker may be nil, in which case audit
// entries are written inline.
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit, worker)
	reportSvc := NewReportService(repos, cfg.Location)
	ledgerSvc := NewLedgerService(repos, auditSvc)

	return &Services{
		Ledger:     ledgerSvc,
		Payment:    NewPaymentService(repos, reportSvc, auditSvc),
		Report:     reportSvc,
		Enrollment: NewEnrollmentService(repos, ledgerSvc, auditSvc, cfg.Location),
		Expense:    NewExpenseService(repos.Expense, auditSvc),
		Export:     NewExportService(reportSvc),
		Statement:  NewStatementService(reportSvc),
		Reconcile:  NewReconcileService(repos, auditSvc),
		Audit:      auditSvc,
		Job:        NewJobService(worker),
	}
}
