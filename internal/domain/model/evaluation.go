package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

// Evaluation is an assessment of a supplier or other third party.
type Evaluation struct {
	Base
	SupplierName   string              `gorm:"size:255;not null" json:"supplier_name" validate:"required,max=255"`
	ServiceScope   string              `gorm:"type:text" json:"service_scope"`
	Evaluator      string              `gorm:"size:255" json:"evaluator" validate:"max=255"`
	Score          decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"score"`
	Outcome        string              `gorm:"size:30" json:"outcome" validate:"omitempty,oneof=approved conditional rejected"`
	Progress       string              `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
	EvaluationDate *time.Time          `json:"evaluation_date"`
	NextReviewDate *time.Time          `json:"next_review_date"`
}

func (Evaluation) TableName() string { return entity.KindEvaluation.Table() }

func (Evaluation) RecordKind() entity.Kind { return entity.KindEvaluation }

func (e *Evaluation) Normalize() { defaultString(&e.Progress, entity.ProgressNotStarted) }

func (Evaluation) StatusColumn() string { return "progress" }

func (Evaluation) SearchColumns() []string {
	return []string{"supplier_name", "service_scope", "evaluator"}
}
