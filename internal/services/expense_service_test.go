package services

import (
	"testing"
	"time"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExpense(t *testing.T) {
	env := newTestEnv(t)
	note := "March rent"

	before := time.Now().Add(-time.Second)
	expense, err := env.svc.Expense.RecordExpense(env.ctx, env.actor, RecordExpenseInput{
		Title: "  Rent ", Category: "office", Amount: 2500000, Method: "transfer", Note: &note,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rent", expense.Title)
	assert.Equal(t, models.PaymentMethodTransfer, expense.Method)
	assert.Equal(t, env.actor.ID, expense.RecordedByID)
	assert.True(t, expense.PaidAt.After(before))

	stored, err := env.repos.Expense.FindByID(env.ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500000), stored.Amount)
	require.NotNil(t, stored.Note)
	assert.Equal(t, note, *stored.Note)
}

func TestRecordExpense_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		input RecordExpenseInput
	}{
		{"blank title", RecordExpenseInput{Title: "   ", Amount: 1000, Method: "CASH"}},
		{"zero amount", RecordExpenseInput{Title: "Paper", Amount: 0, Method: "CASH"}},
		{"unknown method", RecordExpenseInput{Title: "Paper", Amount: 1000, Method: "CRYPTO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Expense.RecordExpense(env.ctx, env.actor, tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
