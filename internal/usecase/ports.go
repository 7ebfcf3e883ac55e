package usecase

import (
	"context"
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

// FileStorage is the object store holding attachments.
type FileStorage interface {
	Upload(ctx context.Context, in entity.FileUpload) (*entity.StoredFile, error)
	SignedURL(ctx context.Context, key string) (string, time.Time, error)
	Delete(ctx context.Context, key string) error
	// AreaPrefix is the key namespace shared by every object stored for
	// documentType in businessArea.
	AreaPrefix(documentType, businessArea string) string
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Sign(user *model.User) (string, time.Time, error)
}

// AreaResolver computes a user's effective business areas.
type AreaResolver interface {
	AreasFor(ctx context.Context, userID uint, legacyArea string) []string
}
