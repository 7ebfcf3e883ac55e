package model

import (
	"time"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

// Risk is an entry in the risk register. RiskScore is always derived.
type Risk struct {
	Base
	Title       string     `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:100" json:"category" validate:"max=100"`
	Likelihood  int        `gorm:"not null;default:1" json:"likelihood" validate:"min=1,max=5"`
	Impact      int        `gorm:"not null;default:1" json:"impact" validate:"min=1,max=5"`
	RiskScore   int        `gorm:"not null;default:1;index" json:"risk_score"`
	Mitigation  string     `gorm:"type:text" json:"mitigation"`
	Owner       string     `gorm:"size:255" json:"owner" validate:"max=255"`
	Progress    string     `gorm:"size:30;not null" json:"progress" validate:"omitempty,progress"`
	ReviewDate  *time.Time `json:"review_date"`
}

func (Risk) TableName() string { return entity.KindRisk.Table() }

func (Risk) RecordKind() entity.Kind { return entity.KindRisk }

func (r *Risk) Normalize() {
	defaultString(&r.Progress, entity.ProgressNotStarted)
	r.RiskScore = r.Likelihood * r.Impact
}

func (Risk) StatusColumn() string { return "progress" }

func (Risk) SearchColumns() []string { return []string{"title", "description", "category"} }
