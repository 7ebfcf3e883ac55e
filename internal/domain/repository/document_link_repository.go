package repository

import (
	"context"
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

type DocumentLinkRepository interface {
	Create(ctx context.Context, link *model.DocumentLink) error
	ListByDocument(ctx context.Context, documentID uint) ([]model.DocumentLink, error)
	Get(ctx context.Context, documentID, linkID uint) (*model.DocumentLink, error)
	SoftDelete(ctx context.Context, linkID uint, deletedBy uint, at time.Time) (bool, error)
}
