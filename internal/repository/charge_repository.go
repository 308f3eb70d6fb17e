package repository

import (
	"context"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChargeRepository defines data access for tuition charges.
// Reads used by money mutations lock rows on PostgreSQL and must run inside Repositories.Transaction.
type ChargeRepository interface {
	LockStudent(ctx context.Context, studentID uuid.UUID) error
	StudentIDOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.TuitionCharge, error)
	FindByKey(ctx context.Context, studentID, groupID uuid.UUID, year, month int) (*models.TuitionCharge, error)
	FindByStudentMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]models.TuitionCharge, error)
	FindOpenByStudent(ctx context.Context, studentID uuid.UUID, groupID *uuid.UUID) ([]models.TuitionCharge, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	Create(ctx context.Context, charge *models.TuitionCharge) error
	Update(ctx context.Context, charge *models.TuitionCharge) error
	Delete(ctx context.Context, id uuid.UUID) error
	AllocatedSum(ctx context.Context, chargeID uuid.UUID) (int64, error)
}

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

// LockStudent serializes money mutations of one student until the transaction ends
func (r *chargeRepository) LockStudent(ctx context.Context, studentID uuid.UUID) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", studentID.String()).Error
}

// StudentIDOf reads the owner of a charge without locking the row
func (r *chargeRepository) StudentIDOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var charge models.TuitionCharge
	err := r.db.WithContext(ctx).Select("id", "student_id").First(&charge, "id = ?", id).Error
	return charge.StudentID, err
}

func (r *chargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.TuitionCharge, error) {
	var charge models.TuitionCharge
	err := forUpdate(r.db.WithContext(ctx)).First(&charge, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *chargeRepository) FindByKey(ctx context.Context, studentID, groupID uuid.UUID, year, month int) (*models.TuitionCharge, error) {
	var charge models.TuitionCharge
	err := forUpdate(r.db.WithContext(ctx)).
		Where("student_id = ? AND group_id = ? AND year = ? AND month = ?", studentID, groupID, year, month).
		First(&charge).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// FindByStudentMonth returns every charge of the student for one month, across groups
func (r *chargeRepository) FindByStudentMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]models.TuitionCharge, error) {
	var charges []models.TuitionCharge
	err := forUpdate(r.db.WithContext(ctx)).
		Where("student_id = ? AND year = ? AND month = ?", studentID, year, month).
		Order("created_at ASC, id ASC").
		Find(&charges).Error
	return charges, err
}

// FindOpenByStudent returns unpaid charges oldest month first, optionally limited to one group
func (r *chargeRepository) FindOpenByStudent(ctx context.Context, studentID uuid.UUID, groupID *uuid.UUID) ([]models.TuitionCharge, error) {
	var charges []models.TuitionCharge
	db := forUpdate(r.db.WithContext(ctx)).
		Where("student_id = ? AND status IN ?", studentID, []string{models.ChargeStatusPending, models.ChargeStatusPartiallyPaid})
	if groupID != nil {
		db = db.Where("group_id = ?", *groupID)
	}
	err := db.Order("year ASC, month ASC, created_at ASC, id ASC").Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.TuitionCharge{}).
		Order("year ASC, month ASC, id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *chargeRepository) Create(ctx context.Context, charge *models.TuitionCharge) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(charge).Error
}

func (r *chargeRepository) Update(ctx context.Context, charge *models.TuitionCharge) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(charge).Error
}

func (r *chargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TuitionCharge{}, "id = ?", id).Error
}

// AllocatedSum is the total of payment allocations against one charge
func (r *chargeRepository) AllocatedSum(ctx context.Context, chargeID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.PaymentAllocation{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("charge_id = ?", chargeID).
		Scan(&result).Error
	return result.Total, err
}
