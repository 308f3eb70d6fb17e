package services

import (
	"context"
	"errors"

	"github.com/TeamSoftLion/crm/internal/billing"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/TeamSoftLion/crm/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReconcileReport summarizes one reconciliation pass
type ReconcileReport struct {
	DryRun         bool        `json:"dry_run"`
	Scanned        int         `json:"scanned"`
	Rounded        int         `json:"rounded"`
	StatusFixed    int         `json:"status_fixed"`
	Updated        int         `json:"updated"`
	ChangedCharges []uuid.UUID `json:"changed_charges"`
}

// ReconcileService repairs charges written before rounding and status rules were enforced
type ReconcileService struct {
	repos    *repository.Repositories
	auditSvc *AuditService
}

func NewReconcileService(repos *repository.Repositories, auditSvc *AuditService) *ReconcileService {
	return &ReconcileService{repos: repos, auditSvc: auditSvc}
}

// Run re-rounds amount_due and discount to the currency grid, clamps the discount to the
// amount due and recomputes every status from allocations. Each charge is fixed in its own
// transaction; a dry run reports without writing.
func (s *ReconcileService) Run(ctx context.Context, dryRun bool) (*ReconcileReport, error) {
	ids, err := s.repos.Charge.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{DryRun: dryRun, ChangedCharges: []uuid.UUID{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		var rounded, statusFixed bool
		err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			var err error
			rounded, statusFixed, err = reconcileCharge(ctx, tx.Charge, id, dryRun)
			return err
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue // removed by a transfer since listing
		}
		if err != nil {
			return report, translateError(err)
		}

		if rounded {
			report.Rounded++
		}
		if statusFixed {
			report.StatusFixed++
		}
		if rounded || statusFixed {
			report.ChangedCharges = append(report.ChangedCharges, id)
			if !dryRun {
				report.Updated++
			}
		}
	}

	logger.Info("Reconciliation finished",
		"dry_run", dryRun, "scanned", report.Scanned, "rounded", report.Rounded,
		"status_fixed", report.StatusFixed, "updated", report.Updated)

	if !dryRun && report.Updated > 0 && s.auditSvc != nil {
		s.auditSvc.Log(ctx, Actor{}, models.AuditActionReconcile, "TuitionCharge", uuid.Nil,
			"Reconciliation updated charges")
	}
	return report, nil
}

// reconcileCharge fixes one charge. The student lock is taken before the row lock,
// in the same order as every other money mutation.
func reconcileCharge(ctx context.Context, charges repository.ChargeRepository, id uuid.UUID, dryRun bool) (rounded, statusFixed bool, err error) {
	studentID, err := charges.StudentIDOf(ctx, id)
	if err != nil {
		return false, false, err
	}
	if err := charges.LockStudent(ctx, studentID); err != nil {
		return false, false, err
	}
	charge, err := charges.FindByID(ctx, id)
	if err != nil {
		return false, false, err
	}
	paid, err := charges.AllocatedSum(ctx, charge.ID)
	if err != nil {
		return false, false, err
	}

	rounded = reround(charge, paid)
	statusFixed, err = syncStatus(ctx, charge, paid)
	if err != nil {
		return false, false, err
	}

	if dryRun || !(rounded || statusFixed) {
		return rounded, statusFixed, nil
	}
	return rounded, statusFixed, charges.Update(ctx, charge)
}

// reround snaps amounts to the grid and reports whether anything moved.
// A charge frozen by a transfer carries the exact paid amount and is left alone.
func reround(charge *models.TuitionCharge, paid int64) bool {
	if paid > 0 && charge.AmountDue == paid && charge.Discount == 0 {
		return false
	}
	amountDue := billing.RoundToThousand(charge.AmountDue)
	discount := billing.RoundToThousand(charge.Discount)
	if discount > amountDue {
		discount = amountDue
	}
	if discount < 0 {
		discount = 0
	}

	changed := amountDue != charge.AmountDue || discount != charge.Discount
	charge.AmountDue = amountDue
	charge.Discount = discount
	return changed
}
