package repository

import (
	"context"

	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/pkg/pagination"
)

// AuditLogRepository defines the interface for audit log data operations
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params *AuditFilterParams) ([]entity.AuditLog, int64, error)
}

// AuditFilterParams contains filtering parameters for audit log queries
type AuditFilterParams struct {
	Pagination *pagination.PaginationParams
	Action     *enum.AuditAction
	ModelName  string
	ObjectID   string
}
