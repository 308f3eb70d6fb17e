package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TeamSoftLion/crm/internal/billing"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/TeamSoftLion/crm/internal/statemachine"
	"github.com/TeamSoftLion/crm/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService owns the amounts on tuition charges: initial proration, transfer
// cleanup and discounts. Every mutation runs under the student's lock.
type LedgerService struct {
	repos    *repository.Repositories
	auditSvc *AuditService
}

func NewLedgerService(repos *repository.Repositories, auditSvc *AuditService) *LedgerService {
	return &LedgerService{repos: repos, auditSvc: auditSvc}
}

// ComputeInitialCharge creates or replaces the join-month charge of a student in a group.
// A missing group or a group without a fee yields (nil, nil).
func (s *LedgerService) ComputeInitialCharge(ctx context.Context, studentID, groupID uuid.UUID, joinDate time.Time) (*models.TuitionCharge, error) {
	var charge *models.TuitionCharge
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		charge, err = s.computeInitialCharge(ctx, tx, studentID, groupID, joinDate)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return charge, nil
}

func (s *LedgerService) computeInitialCharge(ctx context.Context, tx *repository.Repositories, studentID, groupID uuid.UUID, joinDate time.Time) (*models.TuitionCharge, error) {
	group, err := tx.Group.FindByID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn("Group not found, no charge computed", "student_id", studentID, "group_id", groupID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if group.MonthlyFee <= 0 {
		logger.Warn("Group has no monthly fee, no charge computed", "student_id", studentID, "group_id", groupID)
		return nil, nil
	}

	year, month := joinDate.Year(), int(joinDate.Month())
	count, err := billing.CountLessons(group.DaysPattern, year, month, joinDate)
	if err != nil {
		return nil, err
	}
	amount := billing.InitialAmount(group.MonthlyFee, count)

	if err := tx.Charge.LockStudent(ctx, studentID); err != nil {
		return nil, err
	}

	charge, err := tx.Charge.FindByKey(ctx, studentID, groupID, year, month)
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, err
	}

	var paid int64
	if isNew {
		charge = &models.TuitionCharge{
			StudentID: studentID,
			GroupID:   groupID,
			Year:      year,
			Month:     month,
			Status:    models.ChargeStatusPending,
		}
	} else if paid, err = tx.Charge.AllocatedSum(ctx, charge.ID); err != nil {
		return nil, err
	}

	charge.AmountDue = amount
	charge.Discount = 0
	charge.PlannedLessons = count.Planned
	charge.ChargedLessons = count.Charged
	if _, err := syncStatus(ctx, charge, paid); err != nil {
		return nil, err
	}
	if overpaid := paid - charge.EffectiveAmount(); overpaid > 0 {
		logger.Warn("Recomputed charge is below what was already paid",
			"charge_id", charge.ID, "period", charge.Period(), "amount_due", amount, "paid", paid, "overpaid", overpaid)
	}

	if isNew {
		err = tx.Charge.Create(ctx, charge)
	} else {
		err = tx.Charge.Update(ctx, charge)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Tuition charge computed",
		"student_id", studentID, "group_id", groupID, "period", charge.Period(),
		"amount_due", amount, "lessons", charge.LessonsLabel())
	return charge, nil
}

// TransferCharge settles the transfer month when a student changes group: charges in other
// groups that received payments are frozen at what was paid, the rest are dropped, and the
// new group's charge is computed from the transfer date.
func (s *LedgerService) TransferCharge(ctx context.Context, studentID, oldGroupID, newGroupID uuid.UUID, transferDate time.Time) (*models.TuitionCharge, error) {
	var charge *models.TuitionCharge
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		charge, err = s.transferCharge(ctx, tx, studentID, oldGroupID, newGroupID, transferDate)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return charge, nil
}

func (s *LedgerService) transferCharge(ctx context.Context, tx *repository.Repositories, studentID, oldGroupID, newGroupID uuid.UUID, transferDate time.Time) (*models.TuitionCharge, error) {
	if oldGroupID == newGroupID {
		return nil, fmt.Errorf("%w: old and new group are the same", ErrInvalidInput)
	}
	if _, err := tx.Group.FindByID(ctx, newGroupID); err != nil {
		return nil, notFound("group", err)
	}

	if err := tx.Charge.LockStudent(ctx, studentID); err != nil {
		return nil, err
	}

	year, month := transferDate.Year(), int(transferDate.Month())
	charges, err := tx.Charge.FindByStudentMonth(ctx, studentID, year, month)
	if err != nil {
		return nil, err
	}

	for i := range charges {
		c := &charges[i]
		if c.GroupID == newGroupID {
			continue
		}

		paid, err := tx.Charge.AllocatedSum(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		if paid <= 0 {
			if err := tx.Charge.Delete(ctx, c.ID); err != nil {
				return nil, err
			}
			logger.Info("Unpaid charge dropped on transfer", "charge_id", c.ID, "group_id", c.GroupID, "period", c.Period())
			continue
		}

		c.AmountDue = paid
		c.Discount = 0
		if _, err := syncStatus(ctx, c, paid); err != nil {
			return nil, err
		}
		if err := tx.Charge.Update(ctx, c); err != nil {
			return nil, err
		}
		logger.Info("Charge frozen at paid amount on transfer", "charge_id", c.ID, "group_id", c.GroupID, "period", c.Period(), "amount_due", paid)
	}

	return s.computeInitialCharge(ctx, tx, studentID, newGroupID, transferDate)
}

// ApplyDiscount sets the discount of one charge. The value must not exceed what is still
// unpaid; it is rounded to the currency grid and the status recomputed from existing allocations.
func (s *LedgerService) ApplyDiscount(ctx context.Context, actor Actor, studentID, groupID uuid.UUID, year, month int, discount int64) (*models.TuitionCharge, error) {
	var charge *models.TuitionCharge
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Charge.LockStudent(ctx, studentID); err != nil {
			return err
		}

		c, err := tx.Charge.FindByKey(ctx, studentID, groupID, year, month)
		if err != nil {
			return notFound("charge", err)
		}

		paid, err := tx.Charge.AllocatedSum(ctx, c.ID)
		if err != nil {
			return err
		}

		// allocations may never exceed amount_due - discount
		limit := max(c.AmountDue-paid, 0)
		if discount < 0 || discount > limit {
			return fmt.Errorf("%w: %d must be between 0 and the unpaid amount %d", ErrInvalidDiscount, discount, limit)
		}

		c.Discount = min(billing.RoundToThousand(discount), limit)
		if _, err := syncStatus(ctx, c, paid); err != nil {
			return err
		}
		if err := tx.Charge.Update(ctx, c); err != nil {
			return err
		}
		charge = c
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	s.auditSvc.Log(ctx, actor, models.AuditActionDiscount, "TuitionCharge", charge.ID,
		fmt.Sprintf("Discount %d applied to %s (amount due %d)", charge.Discount, charge.Period(), charge.AmountDue))
	return charge, nil
}

// syncStatus drives the charge status to what its amounts and allocations imply
func syncStatus(ctx context.Context, charge *models.TuitionCharge, paid int64) (bool, error) {
	target := billing.Status(charge.AmountDue, charge.Discount, paid)
	return statemachine.NewChargeFSM(charge).MoveTo(ctx, target)
}
