package repository

import (
	"context"
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

// RecordQuery filters a list request. Zero values mean "no filter".
type RecordQuery struct {
	entity.PaginationParams
	BusinessArea string
	Status       string
	Search       string
}

// RecordStore is the persistence port for one record kind. Every read and
// write is restricted to the given business areas; a record outside them is
// reported exactly like a missing one (nil, nil).
type RecordStore interface {
	Kind() entity.Kind

	// New returns an empty record of this kind for decoding into.
	New() model.Record

	List(ctx context.Context, areas []string, q RecordQuery) ([]model.Record, int64, error)
	Get(ctx context.Context, areas []string, id uint) (model.Record, error)

	// GetForUpdate locks the row for the rest of the surrounding transaction.
	GetForUpdate(ctx context.Context, areas []string, id uint) (model.Record, error)

	FindByFileURL(ctx context.Context, areas []string, fileURL string) (model.Record, error)
	Create(ctx context.Context, rec model.Record) error

	// Update overwrites every mutable column; it reports false when no live
	// row in areas matched.
	Update(ctx context.Context, areas []string, rec model.Record) (bool, error)

	// SoftDelete marks the row deleted; it reports false when no live row in
	// areas matched.
	SoftDelete(ctx context.Context, areas []string, id uint, deletedBy uint, at time.Time) (bool, error)
}

// RecordStores resolves the store for a kind.
type RecordStores interface {
	For(kind entity.Kind) (RecordStore, bool)
}

// FileVersionRepository persists attachment history.
type FileVersionRepository interface {
	Create(ctx context.Context, kind entity.Kind, v *model.FileVersion) error
	ListByRecord(ctx context.Context, kind entity.Kind, recordID uint) ([]model.FileVersion, error)
	Get(ctx context.Context, kind entity.Kind, recordID, versionID uint) (*model.FileVersion, error)
}
