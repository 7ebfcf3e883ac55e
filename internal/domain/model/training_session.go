package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

type TrainingSession struct {
	Base
	Title         string              `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Description   string              `gorm:"type:text" json:"description"`
	Trainer       string              `gorm:"size:255" json:"trainer" validate:"max=255"`
	Attendees     string              `gorm:"type:text" json:"attendees"`
	DurationHours decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"duration_hours"`
	SessionDate   *time.Time          `json:"session_date"`
	Progress      string              `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
}

func (TrainingSession) TableName() string { return entity.KindTrainingSession.Table() }

func (TrainingSession) RecordKind() entity.Kind { return entity.KindTrainingSession }

func (t *TrainingSession) Normalize() { defaultString(&t.Progress, entity.ProgressNotStarted) }

func (TrainingSession) StatusColumn() string { return "progress" }

func (TrainingSession) SearchColumns() []string { return []string{"title", "description", "trainer"} }
