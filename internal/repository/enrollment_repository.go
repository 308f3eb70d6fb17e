package repository

import (
	"context"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentRepository defines data access for enrollments
type EnrollmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error)
	FindActive(ctx context.Context, studentID, groupID uuid.UUID) (*models.Enrollment, error)
	FindCurrent(ctx context.Context, studentID uuid.UUID) (*models.Enrollment, error)
	List(ctx context.Context, query *ListQuery) ([]models.Enrollment, int64, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Group").
		First(&enrollment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindActive returns the student's ACTIVE enrollment in a group
func (r *enrollmentRepository) FindActive(ctx context.Context, studentID, groupID uuid.UUID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := forUpdate(r.db.WithContext(ctx)).
		Where("student_id = ? AND group_id = ? AND status = ?", studentID, groupID, models.EnrollmentStatusActive).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindCurrent returns the ACTIVE enrollment with the latest join date
func (r *enrollmentRepository) FindCurrent(ctx context.Context, studentID uuid.UUID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("student_id = ? AND status = ?", studentID, models.EnrollmentStatusActive).
		Order("join_date DESC, created_at DESC").
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// List supports the filters student_id, group_id and status
func (r *enrollmentRepository) List(ctx context.Context, query *ListQuery) ([]models.Enrollment, int64, error) {
	var enrollments []models.Enrollment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Enrollment{})

	if query.Filters != nil {
		if val, ok := query.Filters["student_id"]; ok && val != "" {
			db = db.Where("enrollments.student_id = ?", val)
		}
		if val, ok := query.Filters["group_id"]; ok && val != "" {
			db = db.Where("enrollments.group_id = ?", val)
		}
		if val, ok := query.Filters["status"]; ok && val != "" {
			db = db.Where("enrollments.status = ?", val)
		}
	}

	// Count total using a separate session so the main query is not altered by Count()
	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.paginate(db.Order("enrollments.join_date DESC, enrollments.created_at DESC")).
		Preload("Student").
		Preload("Group").
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(enrollment).Error
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(enrollment).Error
}

func (r *enrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Enrollment{}, "id = ?", id).Error
}
