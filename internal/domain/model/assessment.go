package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

type Assessment struct {
	Base
	EmployeeName   string              `gorm:"size:255;not null" json:"employee_name" validate:"required,max=255"`
	Role           string              `gorm:"size:255" json:"role" validate:"max=255"`
	Assessor       string              `gorm:"size:255" json:"assessor" validate:"max=255"`
	Period         string              `gorm:"size:50" json:"period" validate:"max=50"`
	Score          decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"score"`
	Comments       string              `gorm:"type:text" json:"comments"`
	Progress       string              `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
	AssessmentDate *time.Time          `json:"assessment_date"`
}

func (Assessment) TableName() string { return entity.KindAssessment.Table() }

func (Assessment) RecordKind() entity.Kind { return entity.KindAssessment }

func (a *Assessment) Normalize() { defaultString(&a.Progress, entity.ProgressNotStarted) }

func (Assessment) StatusColumn() string { return "progress" }

func (Assessment) SearchColumns() []string { return []string{"employee_name", "role", "assessor"} }
