package usecase

import (
	"context"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

type AuditService struct {
	repo repository.AuditLogRepository
}

func NewAuditService(repo repository.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns audit rows written in the caller's business areas.
func (s *AuditService) List(ctx context.Context, p *entity.Principal, q entity.AuditQuery) ([]model.AuditLog, entity.PaginationMeta, error) {
	q.Normalize()
	logs, total, err := s.repo.List(ctx, p.BusinessAreas, q)
	if err != nil {
		return nil, entity.PaginationMeta{}, apperrors.Internal("failed to list audit logs", err)
	}
	return logs, entity.NewPaginationMeta(q.PaginationParams, total), nil
}
