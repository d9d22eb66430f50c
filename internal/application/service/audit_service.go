package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/infrastructure/logger"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// AuditEvent describes one committed change
type AuditEvent struct {
	Action   enum.AuditAction
	Entity   string
	ObjectID string
	Summary  string
	Changes  map[string]interface{}
}

// AuditSink receives events after the business transaction has committed.
// Record never fails the caller.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent)
}

// AuditService persists audit events to audit_logs
type AuditService struct {
	repo    repository.AuditLogRepository
	enabled bool
	now     func() time.Time
	logger  *logrus.Logger
}

// NewAuditService creates a new audit service. A disabled service drops every event.
func NewAuditService(repo repository.AuditLogRepository, enabled bool, logger *logrus.Logger) *AuditService {
	return &AuditService{
		repo:    repo,
		enabled: enabled,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *AuditService) Record(ctx context.Context, event AuditEvent) {
	if !s.enabled {
		return
	}

	actor := ActorFrom(ctx)
	log := &entity.AuditLog{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     event.Action,
		ModelName:  event.Entity,
		ObjectID:   event.ObjectID,
		ObjectRepr: truncate(event.Summary, 255),
		IPAddress:  actor.IP,
		Timestamp:  s.now(),
	}
	if len(event.Changes) > 0 {
		raw, err := json.Marshal(event.Changes)
		if err != nil {
			logger.LogError(s.logger, "audit", "Record", "marshal changes", event.ObjectID, err)
		} else {
			log.Changes = datatypes.JSON(raw)
		}
	}

	// the request may already be finished; the audit row should still land
	if err := s.repo.Create(context.WithoutCancel(ctx), log); err != nil {
		logger.LogError(s.logger, "audit", "Record", "write audit log", event, err)
	}
}

// ListAuditLogs returns audit entries newest first
func (s *AuditService) ListAuditLogs(ctx context.Context, params *repository.AuditFilterParams) (*pagination.PaginatedResult[entity.AuditLog], error) {
	logs, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(logs, params.Pagination, total), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
