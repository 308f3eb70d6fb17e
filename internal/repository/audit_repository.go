package repository

import (
	"context"

	"github.com/TeamSoftLion/crm/internal/models"
	"gorm.io/gorm"
)

// AuditRepository defines data access for audit logs
type AuditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List supports the filters actor_id, entity, entity_id and action, newest first
func (r *auditRepository) List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AuditLog{})
	for _, key := range []string{"actor_id", "entity", "entity_id", "action"} {
		if val := query.Filters[key]; val != "" {
			db = db.Where(key+" = ?", val)
		}
	}

	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.paginate(db.Order("created_at DESC")).Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
