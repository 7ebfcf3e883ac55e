package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/database"
)

type fileVersionRepository struct {
	db *gorm.DB
}

// NewFileVersionRepository stores history rows in the per-kind version table.
func NewFileVersionRepository(db *gorm.DB) repository.FileVersionRepository {
	return &fileVersionRepository{db: db}
}

func (r *fileVersionRepository) table(ctx context.Context, kind entity.Kind) *gorm.DB {
	return database.Conn(ctx, r.db).Table(kind.FileVersionTable())
}

func (r *fileVersionRepository) Create(ctx context.Context, kind entity.Kind, v *model.FileVersion) error {
	return r.table(ctx, kind).Create(v).Error
}

func (r *fileVersionRepository) ListByRecord(ctx context.Context, kind entity.Kind, recordID uint) ([]model.FileVersion, error) {
	var versions []model.FileVersion
	err := r.table(ctx, kind).
		Where("record_id = ?", recordID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *fileVersionRepository) Get(ctx context.Context, kind entity.Kind, recordID, versionID uint) (*model.FileVersion, error) {
	var v model.FileVersion
	err := r.table(ctx, kind).Where("id = ? AND record_id = ?", versionID, recordID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
