package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(gorm.ErrDuplicatedKey))
	assert.True(t, IsRetryable(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsRetryable(gorm.ErrRecordNotFound))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.Student.Create(ctx, &models.Student{FullName: "Ali"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Student{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransaction_RetriesThenConflict(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	attempts := 0

	err := repos.Transaction(context.Background(), func(tx *Repositories) error {
		attempts++
		return &pgconn.PgError{Code: "40001"}
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxTxAttempts, attempts)
}

func TestTransaction_RetrySucceeds(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	attempts := 0

	err := repos.Transaction(context.Background(), func(tx *Repositories) error {
		attempts++
		if attempts == 1 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
