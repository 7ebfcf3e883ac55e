package model

import (
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

type RecordKeepingSystem struct {
	Base
	Name            string `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	Description     string `gorm:"type:text" json:"description"`
	RecordType      string `gorm:"size:100" json:"record_type" validate:"max=100"`
	StorageLocation string `gorm:"size:255" json:"storage_location" validate:"max=255"`
	RetentionPeriod string `gorm:"size:100" json:"retention_period" validate:"max=100"`
	Custodian       string `gorm:"size:255" json:"custodian" validate:"max=255"`
	Progress        string `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
}

func (RecordKeepingSystem) TableName() string { return entity.KindRecordKeepingSystem.Table() }

func (RecordKeepingSystem) RecordKind() entity.Kind { return entity.KindRecordKeepingSystem }

func (r *RecordKeepingSystem) Normalize() { defaultString(&r.Progress, entity.ProgressNotStarted) }

func (RecordKeepingSystem) StatusColumn() string { return "progress" }

func (RecordKeepingSystem) SearchColumns() []string {
	return []string{"name", "description", "record_type"}
}
