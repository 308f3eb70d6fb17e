package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
)

// RecordExpenseInput is an outgoing payment as entered by staff
type RecordExpenseInput struct {
	Title    string
	Category string
	Amount   int64
	Method   string
	PaidAt   *time.Time
	Note     *string
}

type ExpenseService struct {
	repo     repository.ExpenseRepository
	auditSvc *AuditService
}

func NewExpenseService(repo repository.ExpenseRepository, auditSvc *AuditService) *ExpenseService {
	return &ExpenseService{repo: repo, auditSvc: auditSvc}
}

// RecordExpense validates and stores an expense; PaidAt defaults to now
func (s *ExpenseService) RecordExpense(ctx context.Context, actor Actor, input RecordExpenseInput) (*models.Expense, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	method := strings.ToUpper(strings.TrimSpace(input.Method))
	if !models.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, input.Method)
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	expense := &models.Expense{
		Title:        title,
		Category:     strings.TrimSpace(input.Category),
		Amount:       input.Amount,
		Method:       method,
		PaidAt:       paidAt.UTC(),
		Note:         input.Note,
		RecordedByID: actor.ID,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actor, models.AuditActionExpense, "Expense", expense.ID,
		fmt.Sprintf("Expense %q %d %s recorded", expense.Title, expense.Amount, expense.Method))
	return expense, nil
}
