package services

import (
	"context"
	"time"

	"github.com/TeamSoftLion/crm/internal/jobs"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/TeamSoftLion/crm/pkg/logger"
	"github.com/google/uuid"
)

const auditWriteTimeout = 5 * time.Second

type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

// NewAuditService writes through worker when one is given, inline otherwise
func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Log records an audit entry. Failures are logged and never returned to the caller.
func (s *AuditService) Log(ctx context.Context, actor Actor, action, entity string, entityID uuid.UUID, details string) {
	entry := &models.AuditLog{
		ActorID:   actor.ID,
		Action:    action,
		Entity:    entity,
		Details:   details,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if entityID != uuid.Nil {
		entry.EntityID = &entityID
	}

	// the entry outlives the request and must survive worker shutdown
	writeCtx := context.WithoutCancel(ctx)
	write := func(context.Context) error {
		ctx, cancel := context.WithTimeout(writeCtx, auditWriteTimeout)
		defer cancel()
		if err := s.repo.Create(ctx, entry); err != nil {
			logger.Error("Failed to write audit log", "action", action, "entity", entity, "error", err)
			return err
		}
		return nil
	}

	if s.worker == nil {
		_ = write(writeCtx)
		return
	}
	s.worker.EnqueueAsync(write)
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
