package repository

import (
	"context"

	"github.com/sangkips/clockshop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) List(ctx context.Context, params *domainRepo.AuditFilterParams) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.AuditLog{})
	if params.Action != nil {
		query = query.Where("action = ?", *params.Action)
	}
	if params.ModelName != "" {
		query = query.Where("model_name = ?", params.ModelName)
	}
	if params.ObjectID != "" {
		query = query.Where("object_id = ?", params.ObjectID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Pagination.Scope()).
		Order("timestamp DESC").
		Find(&logs).Error

	return logs, total, err
}
