package model

import (
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

// Process is a documented business process.
type Process struct {
	Base
	Name        string     `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	Description string     `gorm:"type:text" json:"description"`
	Owner       string     `gorm:"size:255" json:"owner" validate:"max=255"`
	Category    string     `gorm:"size:100" json:"category" validate:"max=100"`
	Progress    string     `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
	ReviewDate  *time.Time `json:"review_date"`
	Remarks     string     `gorm:"type:text" json:"remarks"`
}

func (Process) TableName() string { return entity.KindProcess.Table() }

func (Process) RecordKind() entity.Kind { return entity.KindProcess }

func (p *Process) Normalize() { defaultString(&p.Progress, entity.ProgressNotStarted) }

func (Process) StatusColumn() string { return "progress" }

func (Process) SearchColumns() []string { return []string{"name", "description", "owner"} }
