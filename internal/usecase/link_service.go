package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// CreateLinkInput grants a document read visibility in another area,
// optionally tied to a record there.
type CreateLinkInput struct {
	BusinessArea   string  `json:"business_area" validate:"required,max=100"`
	LinkedKind     *string `json:"linked_kind" validate:"omitempty,max=50"`
	LinkedRecordID *uint   `json:"linked_record_id" validate:"omitempty,min=1"`
}

type LinkService struct {
	documents repository.RecordStore
	links     repository.DocumentLinkRepository
	areas     repository.BusinessAreaRepository
	tx        repository.Transactor
	audit     *AuditRecorder
	logger    *zap.Logger
	now       func() time.Time
}

func NewLinkService(
	stores repository.RecordStores,
	links repository.DocumentLinkRepository,
	areas repository.BusinessAreaRepository,
	tx repository.Transactor,
	audit *AuditRecorder,
	logger *zap.Logger,
) *LinkService {
	documents, _ := stores.For(entity.KindDocument)
	return &LinkService{
		documents: documents,
		links:     links,
		areas:     areas,
		tx:        tx,
		audit:     audit,
		logger:    logger,
		now:       time.Now,
	}
}

// Create links document documentID into another area. Only a caller who
// owns the document may link it.
func (s *LinkService) Create(ctx context.Context, p *entity.Principal, documentID uint, in CreateLinkInput) (*model.DocumentLink, error) {
	link := &model.DocumentLink{
		DocumentID:     documentID,
		BusinessArea:   in.BusinessArea,
		LinkedRecordID: in.LinkedRecordID,
		CreatedBy:      p.UserID,
	}
	if in.LinkedKind != nil && *in.LinkedKind != "" {
		kind, err := resolveKind(*in.LinkedKind)
		if err != nil {
			return nil, apperrors.InvalidArgument("Invalid linked kind", err)
		}
		k := string(kind)
		link.LinkedKind = &k
	} else if in.LinkedRecordID != nil {
		return nil, apperrors.InvalidArgument("linked_kind is required with linked_record_id", nil)
	}

	known, err := s.areas.ListByNames(ctx, []string{in.BusinessArea})
	if err != nil {
		return nil, apperrors.Internal("failed to load business areas", err)
	}
	if len(known) == 0 {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("Unknown business area %q", in.BusinessArea), nil)
	}

	var event *entity.AuditEvent
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.documents.GetForUpdate(ctx, p.BusinessAreas, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return notFound(entity.KindDocument, documentID)
		}
		if doc.RecordBase().BusinessArea == in.BusinessArea {
			return apperrors.InvalidArgument("Document already belongs to that business area", nil)
		}

		if err := s.links.Create(ctx, link); err != nil {
			return err
		}
		event, err = s.audit.Record(ctx, auditEntry{
			action:       entity.AuditActionLink,
			table:        link.TableName(),
			recordID:     link.ID,
			userID:       p.UserID,
			businessArea: doc.RecordBase().BusinessArea,
			fileName:     deref(doc.RecordBase().FileName),
			content:      link,
		})
		return err
	})
	if err != nil {
		return nil, passThrough(err, "failed to link document")
	}

	s.audit.Emit(ctx, event)
	return link, nil
}

// List returns the live links of a document visible to p.
func (s *LinkService) List(ctx context.Context, p *entity.Principal, documentID uint) ([]model.DocumentLink, error) {
	doc, err := s.documents.Get(ctx, p.BusinessAreas, documentID)
	if err != nil {
		return nil, apperrors.Internal("failed to load document", err)
	}
	if doc == nil {
		return nil, notFound(entity.KindDocument, documentID)
	}

	links, err := s.links.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, apperrors.Internal("failed to list document links", err)
	}
	return links, nil
}

// Delete soft-deletes one link. Only the document's owners may unlink it.
func (s *LinkService) Delete(ctx context.Context, p *entity.Principal, documentID, linkID uint) error {
	var event *entity.AuditEvent
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.documents.GetForUpdate(ctx, p.BusinessAreas, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return notFound(entity.KindDocument, documentID)
		}

		link, err := s.links.Get(ctx, documentID, linkID)
		if err != nil {
			return err
		}
		if link == nil {
			return apperrors.NotFound("Document link not found")
		}

		ok, err := s.links.SoftDelete(ctx, linkID, p.UserID, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NotFound("Document link not found")
		}

		event, err = s.audit.Record(ctx, auditEntry{
			action:       entity.AuditActionUnlink,
			table:        link.TableName(),
			recordID:     linkID,
			userID:       p.UserID,
			businessArea: doc.RecordBase().BusinessArea,
			content:      link,
		})
		return err
	})
	if err != nil {
		return passThrough(err, "failed to unlink document")
	}

	s.audit.Emit(ctx, event)
	return nil
}

// passThrough keeps client-facing AppErrors raised inside a transaction and
// wraps everything else as INTERNAL.
func passThrough(err error, message string) error {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) && appErr.Code() != apperrors.ErrInternal {
		return err
	}
	return apperrors.Internal(message, err)
}
