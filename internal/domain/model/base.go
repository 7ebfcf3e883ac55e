package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

// Base holds the columns shared by every record kind: tenancy, progress,
// the current attachment and the audit trio.
type Base struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessArea     string         `gorm:"size:100;not null;index" json:"business_area" validate:"omitempty,max=100"`
	StatusPercentage int            `gorm:"not null;default:0" json:"status_percentage" validate:"min=0,max=100"`
	FileURL          *string        `gorm:"size:512;index" json:"file_url"`
	FileName         *string        `gorm:"size:255" json:"file_name"`
	FileSize         *int64         `json:"file_size"`
	FileType         *string        `gorm:"size:100" json:"file_type"`
	UploadedAt       *time.Time     `json:"uploaded_at"`
	Version          *string        `gorm:"size:50" json:"version" validate:"omitempty,max=50"`
	CreatedBy        *uint          `json:"created_by"`
	UpdatedBy        *uint          `json:"updated_by"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy        *uint          `json:"-"`
}

// Record is implemented by every kind model through a pointer.
type Record interface {
	RecordKind() entity.Kind
	RecordBase() *Base
	// Normalize fills defaults and derived fields before a write.
	Normalize()
}

// RecordPtr constrains generic stores to pointer-to-model types.
type RecordPtr[T any] interface {
	*T
	Record
}

// Searchable describes how list filters apply to a kind.
type Searchable interface {
	StatusColumn() string
	SearchColumns() []string
}

// LinkVisible marks kinds that are also readable from areas they are linked into.
type LinkVisible interface {
	VisibleThroughLinks() bool
}

func (b *Base) RecordBase() *Base { return b }

// HasFile reports whether a current attachment exists.
func (b *Base) HasFile() bool {
	return b.FileURL != nil && *b.FileURL != ""
}

// Versioned reports whether the current attachment carries a version label,
// which is what makes it eligible for a history snapshot.
func (b *Base) Versioned() bool {
	return b.HasFile() && b.Version != nil && *b.Version != ""
}

// Attach replaces the current attachment metadata.
func (b *Base) Attach(a entity.Attachment, version *string) {
	b.FileURL = &a.FileURL
	b.FileName = &a.FileName
	b.FileSize = &a.FileSize
	b.FileType = &a.FileType
	uploadedAt := a.UploadedAt
	b.UploadedAt = &uploadedAt
	b.Version = version
}

// Preserve copies the fields a client may never overwrite from stored.
func (b *Base) Preserve(stored *Base) {
	b.ID = stored.ID
	b.BusinessArea = stored.BusinessArea
	b.CreatedBy = stored.CreatedBy
	b.CreatedAt = stored.CreatedAt
	b.DeletedAt = stored.DeletedAt
	b.DeletedBy = stored.DeletedBy
}

// Attachment returns the current file, if any.
func (b *Base) Attachment() (entity.Attachment, bool) {
	if !b.HasFile() {
		return entity.Attachment{}, false
	}
	a := entity.Attachment{FileURL: *b.FileURL}
	if b.FileName != nil {
		a.FileName = *b.FileName
	}
	if b.FileSize != nil {
		a.FileSize = *b.FileSize
	}
	if b.FileType != nil {
		a.FileType = *b.FileType
	}
	if b.UploadedAt != nil {
		a.UploadedAt = *b.UploadedAt
	}
	return a, true
}

func defaultString(s *string, def string) {
	if *s == "" {
		*s = def
	}
}
