package model

import (
	"time"

	"gorm.io/gorm"
)

// DocumentLink makes a document visible in another business area, optionally
// tied to a record of some kind there.
type DocumentLink struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID     uint           `gorm:"not null;index" json:"document_id"`
	BusinessArea   string         `gorm:"size:100;not null;index" json:"business_area"`
	LinkedKind     *string        `gorm:"size:50" json:"linked_kind"`
	LinkedRecordID *uint          `json:"linked_record_id"`
	CreatedBy      uint           `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy      *uint          `json:"-"`
}

func (DocumentLink) TableName() string {
	return "document_links"
}
