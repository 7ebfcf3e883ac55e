package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	domainerrors "github.com/Ferdismit7/qmstool-sub002/internal/domain/errors"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// RecordService implements the business-area scoped lifecycle shared by
// every record kind: CRUD, attachments and their version history.
type RecordService struct {
	stores         repository.RecordStores
	versions       repository.FileVersionRepository
	tx             repository.Transactor
	audit          *AuditRecorder
	files          FileStorage
	logger         *zap.Logger
	maxUploadBytes int64
	now            func() time.Time
}

// RecordServiceConfig bundles RecordService dependencies.
type RecordServiceConfig struct {
	Stores         repository.RecordStores
	Versions       repository.FileVersionRepository
	Transactor     repository.Transactor
	Audit          *AuditRecorder
	Files          FileStorage
	Logger         *zap.Logger
	MaxUploadBytes int64
}

func NewRecordService(cfg RecordServiceConfig) *RecordService {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 || maxUpload > entity.MaxUploadBytes {
		maxUpload = entity.MaxUploadBytes
	}
	return &RecordService{
		stores:         cfg.Stores,
		versions:       cfg.Versions,
		tx:             cfg.Transactor,
		audit:          cfg.Audit,
		files:          cfg.Files,
		logger:         cfg.Logger,
		maxUploadBytes: maxUpload,
		now:            time.Now,
	}
}

// MaxUploadBytes is the attachment size limit.
func (s *RecordService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

func (s *RecordService) store(kind entity.Kind) (repository.RecordStore, error) {
	store, ok := s.stores.For(kind)
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("unknown record kind %q", kind))
	}
	return store, nil
}

func notFound(kind entity.Kind, id uint) error {
	cause := domainerrors.NewRecordNotFoundError(kind, id)
	return apperrors.NewAppError(apperrors.ErrNotFound, fmt.Sprintf("%s not found", kind.Label()), cause)
}

// New returns an empty record of kind for request decoding.
func (s *RecordService) New(kind entity.Kind) (model.Record, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	return store.New(), nil
}

// List returns one page of records visible to p.
func (s *RecordService) List(ctx context.Context, p *entity.Principal, kind entity.Kind, q repository.RecordQuery) ([]model.Record, entity.PaginationMeta, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}

	q.Normalize()
	records, total, err := store.List(ctx, p.BusinessAreas, q)
	if err != nil {
		return nil, entity.PaginationMeta{}, apperrors.Internal("failed to list records", err)
	}
	return records, entity.NewPaginationMeta(q.PaginationParams, total), nil
}

// Get returns one record visible to p.
func (s *RecordService) Get(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) (model.Record, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	rec, err := store.Get(ctx, p.BusinessAreas, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load record", err)
	}
	if rec == nil {
		return nil, notFound(kind, id)
	}
	return rec, nil
}

// Create inserts rec in its requested business area, or the caller's
// default one, and records a CREATE audit entry in the same transaction.
func (s *RecordService) Create(ctx context.Context, p *entity.Principal, kind entity.Kind, rec model.Record) (model.Record, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	b := rec.RecordBase()
	switch {
	case b.BusinessArea == "":
		b.BusinessArea = p.DefaultArea()
	case !p.CanAccess(b.BusinessArea):
		return nil, apperrors.NewAppError(apperrors.ErrUnauthorized,
			"You do not have access to this business area",
			&domainerrors.ForeignAreaError{BusinessArea: b.BusinessArea})
	}

	if err := s.checkFileKey(kind, b, ""); err != nil {
		return nil, err
	}

	now := s.now()
	b.ID = 0
	b.CreatedBy = &p.UserID
	b.UpdatedBy = &p.UserID
	b.DeletedBy = nil
	if b.HasFile() && b.UploadedAt == nil {
		b.UploadedAt = &now
	}
	rec.Normalize()

	var event *entity.AuditEvent
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := store.Create(ctx, rec); err != nil {
			return err
		}
		event, err = s.audit.Record(ctx, auditEntry{
			action:       entity.AuditActionCreate,
			table:        kind.Table(),
			recordID:     b.ID,
			userID:       p.UserID,
			businessArea: b.BusinessArea,
			fileName:     deref(b.FileName),
			content:      rec,
		})
		return err
	})
	if err != nil {
		return nil, apperrors.Internal("failed to create record", err)
	}

	s.audit.Emit(ctx, event)
	return rec, nil
}

// Update overwrites the mutable fields of record id with incoming. The
// business area and creation metadata are preserved.
func (s *RecordService) Update(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint, incoming model.Record) (model.Record, error) {
	return s.update(ctx, p, kind, id, func(current model.Record) (model.Record, error) {
		nb := incoming.RecordBase()
		nb.Preserve(current.RecordBase())
		if err := s.checkFileKey(kind, nb, deref(current.RecordBase().FileURL)); err != nil {
			return nil, err
		}
		if nb.HasFile() && nb.UploadedAt == nil {
			if deref(nb.FileURL) == deref(current.RecordBase().FileURL) {
				nb.UploadedAt = current.RecordBase().UploadedAt
			} else {
				now := s.now()
				nb.UploadedAt = &now
			}
		}
		return incoming, nil
	})
}

// checkFileKey rejects a new file_url outside the namespace of b's kind and
// business area. Keeping the stored key is always allowed.
func (s *RecordService) checkFileKey(kind entity.Kind, b *model.Base, stored string) error {
	key := deref(b.FileURL)
	if key == "" || key == stored {
		return nil
	}
	if !strings.HasPrefix(key, s.files.AreaPrefix(kind.Segment(), b.BusinessArea)) {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument,
			"file_url does not belong to this record's business area", domainerrors.ErrForeignFileKey)
	}
	return nil
}

// update runs the locked read-modify-write shared by Update and AttachFile.
// When the attachment changes and the current one carries a version label,
// the current attachment is snapshotted into history first.
func (s *RecordService) update(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint, build func(current model.Record) (model.Record, error)) (model.Record, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	var (
		result      model.Record
		event       *entity.AuditEvent
		snapshotted bool
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := store.GetForUpdate(ctx, p.BusinessAreas, id)
		if err != nil {
			return err
		}
		if current == nil {
			return notFound(kind, id)
		}

		before := *current.RecordBase()
		next, err := build(current)
		if err != nil {
			return err
		}
		nb := next.RecordBase()
		nb.UpdatedBy = &p.UserID

		if before.Versioned() && deref(before.FileURL) != deref(nb.FileURL) {
			if err := s.versions.Create(ctx, kind, model.SnapshotOf(&before, p.UserID)); err != nil {
				return err
			}
			snapshotted = true
		}

		next.Normalize()
		ok, err := store.Update(ctx, p.BusinessAreas, next)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(kind, id)
		}

		event, err = s.audit.Record(ctx, auditEntry{
			action:       entity.AuditActionUpdate,
			table:        kind.Table(),
			recordID:     id,
			userID:       p.UserID,
			businessArea: nb.BusinessArea,
			fileName:     deref(nb.FileName),
			content:      next,
		})
		result = next
		return err
	})
	if err != nil {
		return nil, passThrough(err, "failed to update record")
	}

	if snapshotted {
		fileVersionsTotal.WithLabelValues(string(kind)).Inc()
	}
	s.audit.Emit(ctx, event)
	return result, nil
}

// Delete soft-deletes the record and then removes its current attachment
// from storage. Storage failures are logged and do not fail the request.
func (s *RecordService) Delete(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}

	var (
		event   *entity.AuditEvent
		fileKey string
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := store.GetForUpdate(ctx, p.BusinessAreas, id)
		if err != nil {
			return err
		}
		if current == nil {
			return notFound(kind, id)
		}
		b := current.RecordBase()

		deletedAt := s.now()
		ok, err := store.SoftDelete(ctx, p.BusinessAreas, id, p.UserID, deletedAt)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(kind, id)
		}

		fileKey = deref(b.FileURL)
		event, err = s.audit.Record(ctx, auditEntry{
			action:       entity.AuditActionDelete,
			table:        kind.Table(),
			recordID:     id,
			userID:       p.UserID,
			businessArea: b.BusinessArea,
			fileName:     deref(b.FileName),
			content: map[string]interface{}{
				"id":       id,
				"file_url": b.FileURL,
			},
			at: deletedAt,
		})
		return err
	})
	if err != nil {
		return passThrough(err, "failed to delete record")
	}

	softDeletesTotal.WithLabelValues(string(kind)).Inc()

	if fileKey != "" {
		if err := s.files.Delete(ctx, fileKey); err != nil {
			fileCleanupFailuresTotal.WithLabelValues(string(kind)).Inc()
			s.logger.Warn("Failed to delete attachment of deleted record",
				zap.String("kind", string(kind)),
				zap.Uint("id", id),
				zap.String("file_url", fileKey),
				zap.Error(err),
			)
		}
	}

	s.audit.Emit(ctx, event)
	return nil
}

// AttachFile uploads a new current attachment for record id. A version
// label is optional; without one the new attachment will not be
// snapshotted when it is later replaced.
func (s *RecordService) AttachFile(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint, upload entity.FileUpload, version *string) (model.Record, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if err := s.checkSize(upload.Size); err != nil {
		return nil, err
	}

	current, err := store.Get(ctx, p.BusinessAreas, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load record", err)
	}
	if current == nil {
		return nil, notFound(kind, id)
	}

	upload.BusinessArea = current.RecordBase().BusinessArea
	upload.DocumentType = kind.Segment()
	upload.RecordID = &id

	stored, err := s.files.Upload(ctx, upload)
	if err != nil {
		return nil, apperrors.Internal("failed to upload file", err)
	}

	if version != nil && *version == "" {
		version = nil
	}

	rec, err := s.update(ctx, p, kind, id, func(current model.Record) (model.Record, error) {
		current.RecordBase().Attach(entity.Attachment{
			FileURL:    stored.Key,
			FileName:   stored.FileName,
			FileSize:   stored.FileSize,
			FileType:   stored.ContentType,
			UploadedAt: s.now(),
		}, version)
		return current, nil
	})
	if err != nil {
		if delErr := s.files.Delete(ctx, stored.Key); delErr != nil {
			fileCleanupFailuresTotal.WithLabelValues(string(kind)).Inc()
			s.logger.Warn("Failed to remove orphaned upload", zap.String("key", stored.Key), zap.Error(delErr))
		}
		return nil, err
	}
	return rec, nil
}

func (s *RecordService) checkSize(size int64) error {
	if size > s.maxUploadBytes {
		return apperrors.InvalidArgument(
			fmt.Sprintf("File exceeds the maximum size of %d MB", s.maxUploadBytes>>20), nil)
	}
	return nil
}

// FileDownloadURL presigns the current attachment of record id.
func (s *RecordService) FileDownloadURL(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) (*entity.DownloadLink, error) {
	rec, err := s.Get(ctx, p, kind, id)
	if err != nil {
		return nil, err
	}

	attachment, ok := rec.RecordBase().Attachment()
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "No file attached", domainerrors.ErrNoAttachment)
	}
	return s.sign(ctx, attachment.FileURL, attachment.FileName)
}

// ListFileVersions returns the attachment history of record id, newest first.
func (s *RecordService) ListFileVersions(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) ([]model.FileVersion, error) {
	if _, err := s.Get(ctx, p, kind, id); err != nil {
		return nil, err
	}

	versions, err := s.versions.ListByRecord(ctx, kind, id)
	if err != nil {
		return nil, apperrors.Internal("failed to list file versions", err)
	}
	return versions, nil
}

// FileVersionDownloadURL presigns one historical attachment.
func (s *RecordService) FileVersionDownloadURL(ctx context.Context, p *entity.Principal, kind entity.Kind, id, versionID uint) (*entity.DownloadLink, error) {
	if _, err := s.Get(ctx, p, kind, id); err != nil {
		return nil, err
	}

	v, err := s.versions.Get(ctx, kind, id, versionID)
	if err != nil {
		return nil, apperrors.Internal("failed to load file version", err)
	}
	if v == nil {
		return nil, apperrors.NotFound("File version not found")
	}
	return s.sign(ctx, v.FileURL, v.FileName)
}

// DownloadByKey presigns key if it is the current attachment of a record
// visible to p. The kind is taken from the key's first segment.
func (s *RecordService) DownloadByKey(ctx context.Context, p *entity.Principal, key string) (*entity.DownloadLink, error) {
	kind, ok := entity.KindForObjectKey(key)
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "Invalid file key", domainerrors.ErrInvalidFileKey)
	}
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	rec, err := store.FindByFileURL(ctx, p.BusinessAreas, key)
	if err != nil {
		return nil, apperrors.Internal("failed to look up file", err)
	}
	if rec == nil {
		return nil, apperrors.NotFound("File not found")
	}
	return s.sign(ctx, key, deref(rec.RecordBase().FileName))
}

// UploadRequest is a standalone upload whose key is later referenced from a
// record's file_url.
type UploadRequest struct {
	File         entity.FileUpload
	DocumentType string
	BusinessArea string
	RecordID     *uint
}

// Upload stores a file without attaching it. DocumentType names the kind by
// URL segment or name.
func (s *RecordService) Upload(ctx context.Context, p *entity.Principal, req UploadRequest) (*entity.StoredFile, error) {
	kind, err := resolveKind(req.DocumentType)
	if err != nil {
		return nil, apperrors.InvalidArgument("Invalid document type", err)
	}
	if err := s.checkSize(req.File.Size); err != nil {
		return nil, err
	}

	area := req.BusinessArea
	switch {
	case area == "":
		area = p.DefaultArea()
	case !p.CanAccess(area):
		return nil, apperrors.NewAppError(apperrors.ErrUnauthorized,
			"You do not have access to this business area",
			&domainerrors.ForeignAreaError{BusinessArea: area})
	}

	if req.RecordID != nil {
		store, err := s.store(kind)
		if err != nil {
			return nil, err
		}
		rec, err := store.Get(ctx, p.BusinessAreas, *req.RecordID)
		if err != nil {
			return nil, apperrors.Internal("failed to load record", err)
		}
		if rec == nil {
			return nil, notFound(kind, *req.RecordID)
		}
		area = rec.RecordBase().BusinessArea
		if !p.CanAccess(area) {
			return nil, apperrors.NewAppError(apperrors.ErrUnauthorized,
				"You do not have access to this business area",
				&domainerrors.ForeignAreaError{BusinessArea: area})
		}
	}

	in := req.File
	in.DocumentType = kind.Segment()
	in.BusinessArea = area
	in.RecordID = req.RecordID

	stored, err := s.files.Upload(ctx, in)
	if err != nil {
		return nil, apperrors.Internal("failed to upload file", err)
	}
	return stored, nil
}

func (s *RecordService) sign(ctx context.Context, key, fileName string) (*entity.DownloadLink, error) {
	url, expiresAt, err := s.files.SignedURL(ctx, key)
	if err != nil {
		return nil, apperrors.Internal("failed to generate download link", err)
	}
	return &entity.DownloadLink{URL: url, FileName: fileName, ExpiresAt: expiresAt}, nil
}

// resolveKind accepts either a URL segment or a kind name.
func resolveKind(s string) (entity.Kind, error) {
	if kind, ok := entity.KindBySegment(s); ok {
		return kind, nil
	}
	return entity.ParseKind(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
