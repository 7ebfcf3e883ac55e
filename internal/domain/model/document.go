package model

import (
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

// Document is a controlled business document.
type Document struct {
	Base
	Title          string     `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	DocumentType   string     `gorm:"size:100" json:"document_type" validate:"max=100"`
	Reference      string     `gorm:"size:100;index" json:"reference" validate:"max=100"`
	Description    string     `gorm:"type:text" json:"description"`
	Owner          string     `gorm:"size:255" json:"owner" validate:"max=255"`
	DocStatus      string     `gorm:"size:30;not null" json:"doc_status" validate:"omitempty,doc_status"`
	EffectiveDate  *time.Time `json:"effective_date"`
	NextReviewDate *time.Time `json:"next_review_date"`
	Remarks        string     `gorm:"type:text" json:"remarks"`
}

func (Document) TableName() string { return entity.KindDocument.Table() }

func (Document) RecordKind() entity.Kind { return entity.KindDocument }

func (d *Document) Normalize() { defaultString(&d.DocStatus, entity.DocStatusDraft) }

func (Document) StatusColumn() string { return "doc_status" }

func (Document) SearchColumns() []string { return []string{"title", "reference", "description"} }

func (Document) VisibleThroughLinks() bool { return true }
