package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

// Objective is a measurable quality objective.
type Objective struct {
	Base
	Title       string              `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Description string              `gorm:"type:text" json:"description"`
	Measure     string              `gorm:"size:255" json:"measure" validate:"max=255"`
	Unit        string              `gorm:"size:50" json:"unit" validate:"max=50"`
	TargetValue decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"target_value"`
	ActualValue decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"actual_value"`
	Owner       string              `gorm:"size:255" json:"owner" validate:"max=255"`
	Progress    string              `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
	TargetDate  *time.Time          `json:"target_date"`
}

func (Objective) TableName() string { return entity.KindObjective.Table() }

func (Objective) RecordKind() entity.Kind { return entity.KindObjective }

func (o *Objective) Normalize() { defaultString(&o.Progress, entity.ProgressNotStarted) }

func (Objective) StatusColumn() string { return "progress" }

func (Objective) SearchColumns() []string { return []string{"title", "description", "measure"} }
