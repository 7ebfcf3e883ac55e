package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents a persisted audit trail entry
type AuditLog struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Action       string         `gorm:"size:20;not null" json:"action"`
	Table        string         `gorm:"column:table_name;size:100;not null;index:idx_audit_logs_table_record,priority:1" json:"table_name"`
	RecordID     uint           `gorm:"not null;index:idx_audit_logs_table_record,priority:2" json:"record_id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	BusinessArea string         `gorm:"size:100;index" json:"business_area"`
	Content      datatypes.JSON `json:"content"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
