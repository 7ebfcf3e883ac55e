package repository

import (
	"context"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

// AuditLogRepository defines audit trail persistence
type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	List(ctx context.Context, areas []string, q entity.AuditQuery) ([]model.AuditLog, int64, error)
}
