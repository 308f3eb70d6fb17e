package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TeamSoftLion/crm/internal/billing"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/TeamSoftLion/crm/pkg/logger"
	"github.com/google/uuid"
)

// RecordPaymentInput carries a cash event as entered by staff
type RecordPaymentInput struct {
	StudentID uuid.UUID
	GroupID   *uuid.UUID
	Amount    int64
	Method    string
	PaidAt    *time.Time
	Reference *string
	Comment   *string
}

// PaymentService records payments and distributes them over open charges, oldest month first
type PaymentService struct {
	repos     *repository.Repositories
	reportSvc *ReportService
	auditSvc  *AuditService
}

func NewPaymentService(repos *repository.Repositories, reportSvc *ReportService, auditSvc *AuditService) *PaymentService {
	return &PaymentService{repos: repos, reportSvc: reportSvc, auditSvc: auditSvc}
}

// RecordPayment stores the payment and its allocations atomically, then returns the
// student's refreshed summary.
func (s *PaymentService) RecordPayment(ctx context.Context, actor Actor, input RecordPaymentInput) (*models.Payment, *models.StudentSummary, error) {
	if input.Amount <= 0 {
		return nil, nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	method := strings.ToUpper(strings.TrimSpace(input.Method))
	if !models.IsValidPaymentMethod(method) {
		return nil, nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, input.Method)
	}
	if ok, err := s.repos.Student.Exists(ctx, input.StudentID); err != nil {
		return nil, nil, err
	} else if !ok {
		return nil, nil, fmt.Errorf("%w: student", ErrNotFound)
	}
	if input.GroupID != nil {
		if _, err := s.repos.Group.FindByID(ctx, *input.GroupID); err != nil {
			return nil, nil, notFound("group", err)
		}
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	var paymentID uuid.UUID
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Charge.LockStudent(ctx, input.StudentID); err != nil {
			return err
		}

		payment := &models.Payment{
			StudentID:    input.StudentID,
			GroupID:      input.GroupID,
			Amount:       input.Amount,
			Method:       method,
			Status:       models.PaymentStatusCompleted,
			PaidAt:       paidAt.UTC(),
			Reference:    input.Reference,
			Comment:      input.Comment,
			RecordedByID: actor.ID,
		}
		if err := tx.Payment.Create(ctx, payment); err != nil {
			return err
		}
		paymentID = payment.ID

		return s.allocate(ctx, tx, payment)
	})
	if err != nil {
		return nil, nil, translateError(err)
	}

	payment, err := s.repos.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, nil, translateError(err)
	}

	resp := payment.ToResponse()
	s.auditSvc.Log(ctx, actor, models.AuditActionPayment, "Payment", payment.ID,
		fmt.Sprintf("Payment %d %s recorded, %d allocated, %d unapplied", payment.Amount, payment.Method, resp.Allocated, resp.Unapplied))

	summary, err := s.reportSvc.GetStudentSummary(ctx, payment.StudentID)
	if err != nil {
		return nil, nil, err
	}
	return payment, summary, nil
}

// AllocatePayment distributes an already stored payment. A payment that has
// allocations is left as is, so repeated calls are harmless.
func (s *PaymentService) AllocatePayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		payment, err := tx.Payment.FindByID(ctx, paymentID)
		if err != nil {
			return notFound("payment", err)
		}
		if err := tx.Charge.LockStudent(ctx, payment.StudentID); err != nil {
			return err
		}
		return s.allocate(ctx, tx, payment)
	})
	if err != nil {
		return nil, translateError(err)
	}

	payment, err := s.repos.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, translateError(err)
	}
	return payment, nil
}

// allocate walks open charges in FIFO order and covers each with what is left of the payment
func (s *PaymentService) allocate(ctx context.Context, tx *repository.Repositories, payment *models.Payment) error {
	if payment.Amount <= 0 {
		return nil
	}
	consumed, err := tx.Payment.HasAllocations(ctx, payment.ID)
	if err != nil {
		return err
	}
	if consumed {
		logger.Debug("Payment already allocated, skipping", "payment_id", payment.ID)
		return nil
	}

	charges, err := tx.Charge.FindOpenByStudent(ctx, payment.StudentID, payment.GroupID)
	if err != nil {
		return err
	}

	remaining := payment.Amount
	for i := range charges {
		if remaining == 0 {
			break
		}
		charge := &charges[i]

		paid, err := tx.Charge.AllocatedSum(ctx, charge.ID)
		if err != nil {
			return err
		}

		outstanding := billing.Outstanding(charge.AmountDue, charge.Discount, paid)
		if outstanding <= 0 {
			// stale status: already covered, fix it and move on
			if changed, err := syncStatus(ctx, charge, paid); err != nil {
				return err
			} else if changed {
				if err := tx.Charge.Update(ctx, charge); err != nil {
					return err
				}
			}
			continue
		}

		portion := min(remaining, outstanding)
		allocation := &models.PaymentAllocation{
			PaymentID: payment.ID,
			ChargeID:  charge.ID,
			Amount:    portion,
		}
		if err := tx.Payment.CreateAllocation(ctx, allocation); err != nil {
			return err
		}
		remaining -= portion

		if _, err := syncStatus(ctx, charge, paid+portion); err != nil {
			return err
		}
		if err := tx.Charge.Update(ctx, charge); err != nil {
			return err
		}
	}

	if remaining > 0 {
		logger.Info("Payment left unapplied surplus", "payment_id", payment.ID, "student_id", payment.StudentID, "surplus", remaining)
	}
	return nil
}
