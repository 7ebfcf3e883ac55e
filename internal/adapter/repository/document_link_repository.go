package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/database"
)

type documentLinkRepository struct {
	db *gorm.DB
}

func NewDocumentLinkRepository(db *gorm.DB) repository.DocumentLinkRepository {
	return &documentLinkRepository{db: db}
}

func (r *documentLinkRepository) Create(ctx context.Context, link *model.DocumentLink) error {
	return database.Conn(ctx, r.db).Create(link).Error
}

func (r *documentLinkRepository) ListByDocument(ctx context.Context, documentID uint) ([]model.DocumentLink, error) {
	var links []model.DocumentLink
	err := database.Conn(ctx, r.db).
		Where("document_id = ?", documentID).
		Order("created_at").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *documentLinkRepository) Get(ctx context.Context, documentID, linkID uint) (*model.DocumentLink, error) {
	var link model.DocumentLink
	err := database.Conn(ctx, r.db).Where("id = ? AND document_id = ?", linkID, documentID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *documentLinkRepository) SoftDelete(ctx context.Context, linkID uint, deletedBy uint, at time.Time) (bool, error) {
	result := database.Conn(ctx, r.db).
		Model(&model.DocumentLink{}).
		Where("id = ?", linkID).
		Updates(map[string]interface{}{"deleted_at": at, "deleted_by": deletedBy})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
