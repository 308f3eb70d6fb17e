package services

import (
	"errors"
	"fmt"

	"github.com/TeamSoftLion/crm/internal/billing"
	"github.com/TeamSoftLion/crm/internal/repository"
	"gorm.io/gorm"
)

// Common service errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDiscount = fmt.Errorf("%w: invalid discount", ErrInvalidInput)
	ErrConflict        = errors.New("conflict")
)

// translateError maps storage and calculation errors onto service sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, billing.ErrUnknownPattern), errors.Is(err, billing.ErrInvalidMonth):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}

func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	}
	return err
}
