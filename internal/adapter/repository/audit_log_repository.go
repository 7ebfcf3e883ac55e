package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/database"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create joins the caller's transaction when there is one.
func (r *auditLogRepository) Create(ctx context.Context, log *model.AuditLog) error {
	return database.Conn(ctx, r.db).Create(log).Error
}

func (r *auditLogRepository) List(ctx context.Context, areas []string, q entity.AuditQuery) ([]model.AuditLog, int64, error) {
	query := database.Conn(ctx, r.db).Model(&model.AuditLog{}).Where("business_area IN ?", areas)
	if q.Table != "" {
		query = query.Where("table_name = ?", q.Table)
	}
	if q.RecordID != 0 {
		query = query.Where("record_id = ?", q.RecordID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLog
	err := query.Order("created_at DESC").Order("id DESC").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
