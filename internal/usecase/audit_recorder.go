package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/pkg/messaging"
)

// AuditChannel is the pub/sub channel audit events are published on.
const AuditChannel = "qms.audit"

// AuditRecorder writes audit rows inside the caller's transaction and, once
// that transaction has committed, emits the same events to the log sink and
// the event channel.
type AuditRecorder struct {
	repo      repository.AuditLogRepository
	publisher messaging.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuditRecorder(repo repository.AuditLogRepository, publisher messaging.Publisher, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("audit"),
		now:       time.Now,
	}
}

type auditEntry struct {
	action       entity.AuditAction
	table        string
	recordID     uint
	userID       uint
	businessArea string
	fileName     string
	content      interface{}
	// at overrides the recorder clock so the entry carries the same
	// timestamp as the write it describes.
	at time.Time
}

// Record persists one entry using the transaction in ctx.
func (a *AuditRecorder) Record(ctx context.Context, e auditEntry) (*entity.AuditEvent, error) {
	var content datatypes.JSON
	if e.content != nil {
		raw, err := json.Marshal(e.content)
		if err != nil {
			return nil, err
		}
		content = raw
	}

	now := e.at
	if now.IsZero() {
		now = a.now()
	}
	if err := a.repo.Create(ctx, &model.AuditLog{
		Action:       string(e.action),
		Table:        e.table,
		RecordID:     e.recordID,
		UserID:       e.userID,
		BusinessArea: e.businessArea,
		Content:      content,
		CreatedAt:    now,
	}); err != nil {
		return nil, err
	}

	return &entity.AuditEvent{
		EventID:      uuid.NewString(),
		Table:        e.table,
		RecordID:     e.recordID,
		Action:       e.action,
		UserID:       e.userID,
		BusinessArea: e.businessArea,
		FileName:     e.fileName,
		OccurredAt:   now,
	}, nil
}

// Emit is best effort; failures are logged and never returned.
func (a *AuditRecorder) Emit(ctx context.Context, events ...*entity.AuditEvent) {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		fields := []zap.Field{
			zap.String("event_id", ev.EventID),
			zap.String("action", string(ev.Action)),
			zap.String("table", ev.Table),
			zap.Uint("record_id", ev.RecordID),
			zap.Uint("user_id", ev.UserID),
			zap.String("business_area", ev.BusinessArea),
			zap.String("file_name", ev.FileName),
			zap.Time("occurred_at", ev.OccurredAt),
		}
		if ev.Action == entity.AuditActionDelete {
			fields = append(fields,
				zap.Uint("deleted_by", ev.UserID),
				zap.Time("deleted_at", ev.OccurredAt),
			)
		}
		a.logger.Info("Audit event", fields...)
		if a.publisher == nil {
			continue
		}
		if err := a.publisher.Publish(ctx, AuditChannel, ev); err != nil {
			a.logger.Warn("Failed to publish audit event",
				zap.String("event_id", ev.EventID),
				zap.Error(err),
			)
		}
	}
}
