package model

import (
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

type FeedbackSystem struct {
	Base
	Name             string `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	Description      string `gorm:"type:text" json:"description"`
	Channel          string `gorm:"size:100" json:"channel" validate:"max=100"`
	Frequency        string `gorm:"size:100" json:"frequency" validate:"max=100"`
	ResponsibleParty string `gorm:"size:255" json:"responsible_party" validate:"max=255"`
	Progress         string `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
}

func (FeedbackSystem) TableName() string { return entity.KindFeedbackSystem.Table() }

func (FeedbackSystem) RecordKind() entity.Kind { return entity.KindFeedbackSystem }

func (f *FeedbackSystem) Normalize() { defaultString(&f.Progress, entity.ProgressNotStarted) }

func (FeedbackSystem) StatusColumn() string { return "progress" }

func (FeedbackSystem) SearchColumns() []string { return []string{"name", "description", "channel"} }
