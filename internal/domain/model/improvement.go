package model

import (
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

type Improvement struct {
	Base
	Title           string     `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Description     string     `gorm:"type:text" json:"description"`
	ExpectedBenefit string     `gorm:"type:text" json:"expected_benefit"`
	Owner           string     `gorm:"size:255" json:"owner" validate:"max=255"`
	Priority        string     `gorm:"size:20" json:"priority" validate:"omitempty,oneof=low medium high"`
	Progress        string     `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
	StartDate       *time.Time `json:"start_date"`
	TargetDate      *time.Time `json:"target_date"`
}

func (Improvement) TableName() string { return entity.KindImprovement.Table() }

func (Improvement) RecordKind() entity.Kind { return entity.KindImprovement }

func (i *Improvement) Normalize() { defaultString(&i.Progress, entity.ProgressNotStarted) }

func (Improvement) StatusColumn() string { return "progress" }

func (Improvement) SearchColumns() []string { return []string{"title", "description", "owner"} }
