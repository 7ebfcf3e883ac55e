package model

import (
	"time"
)

// FileVersion is an append-only snapshot of a replaced attachment. Each kind
// keeps its history in its own table, selected with db.Table.
type FileVersion struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecordID   uint      `gorm:"not null;index" json:"record_id"`
	FileURL    string    `gorm:"size:512;not null" json:"file_url"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	FileSize   *int64    `json:"file_size"`
	FileType   *string   `gorm:"size:100" json:"file_type"`
	Version    string    `gorm:"size:50;not null" json:"version"`
	UploadedBy uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// SnapshotOf captures the current attachment of b. Callers check
// b.Versioned() first.
func SnapshotOf(b *Base, uploadedBy uint) *FileVersion {
	v := &FileVersion{
		RecordID:   b.ID,
		FileURL:    *b.FileURL,
		FileSize:   b.FileSize,
		FileType:   b.FileType,
		Version:    *b.Version,
		UploadedBy: uploadedBy,
	}
	if b.FileName != nil {
		v.FileName = *b.FileName
	}
	return v
}
