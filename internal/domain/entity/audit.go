package entity

import "time"

// AuditAction classifies audit trail entries.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLink   AuditAction = "LINK"
	AuditActionUnlink AuditAction = "UNLINK"
)

// AuditEvent is the structured form of an audit entry emitted to the log
// sink and the event channel after a write commits.
type AuditEvent struct {
	EventID      string      `json:"event_id"`
	Table        string      `json:"table"`
	RecordID     uint        `json:"record_id"`
	Action       AuditAction `json:"action"`
	UserID       uint        `json:"user_id"`
	BusinessArea string      `json:"business_area"`
	FileName     string      `json:"file_name,omitempty"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

// AuditQuery filters the audit trail.
type AuditQuery struct {
	PaginationParams
	Table    string
	RecordID uint
}
