package model

import (
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

type NonConformity struct {
	Base
	Title             string     `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Description       string     `gorm:"type:text" json:"description"`
	Source            string     `gorm:"size:100" json:"source" validate:"max=100"`
	Severity          string     `gorm:"size:30" json:"severity" validate:"omitempty,oneof=minor major critical"`
	RootCause         string     `gorm:"type:text" json:"root_cause"`
	CorrectiveAction  string     `gorm:"type:text" json:"corrective_action"`
	ResponsiblePerson string     `gorm:"size:255" json:"responsible_person" validate:"max=255"`
	Progress          string     `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
	DetectedAt        *time.Time `json:"detected_at"`
	DueDate           *time.Time `json:"due_date"`
	ClosedAt          *time.Time `json:"closed_at"`
}

func (NonConformity) TableName() string { return entity.KindNonConformity.Table() }

func (NonConformity) RecordKind() entity.Kind { return entity.KindNonConformity }

func (n *NonConformity) Normalize() { defaultString(&n.Progress, entity.ProgressNotStarted) }

func (NonConformity) StatusColumn() string { return "progress" }

func (NonConformity) SearchColumns() []string { return []string{"title", "description", "source"} }
