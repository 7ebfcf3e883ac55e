package http

import (
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// RecordUsecase is the record lifecycle as seen by the HTTP layer.
type RecordUsecase interface {
	New(kind entity.Kind) (model.Record, error)
	List(ctx context.Context, p *entity.Principal, kind entity.Kind, q repository.RecordQuery) ([]model.Record, entity.PaginationMeta, error)
	Get(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) (model.Record, error)
	Create(ctx context.Context, p *entity.Principal, kind entity.Kind, rec model.Record) (model.Record, error)
	Update(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint, rec model.Record) (model.Record, error)
	Delete(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) error
	AttachFile(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint, upload entity.FileUpload, version *string) (model.Record, error)
	FileDownloadURL(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) (*entity.DownloadLink, error)
	ListFileVersions(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) ([]model.FileVersion, error)
	FileVersionDownloadURL(ctx context.Context, p *entity.Principal, kind entity.Kind, id, versionID uint) (*entity.DownloadLink, error)
	MaxUploadBytes() int64
}

// RecordHandler serves the same route family for every record kind.
type RecordHandler struct {
	records RecordUsecase
	logger  *zap.Logger
}

func NewRecordHandler(records RecordUsecase, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: logger}
}

// Register mounts /{segment} routes for every kind on g.
func (h *RecordHandler) Register(g *echo.Group) {
	for _, kind := range entity.Kinds() {
		kg := g.Group("/" + kind.Segment())
		kg.GET("", h.list(kind))
		kg.POST("", h.create(kind))
		kg.GET("/:id", h.get(kind))
		kg.PUT("/:id", h.update(kind))
		kg.DELETE("/:id", h.delete(kind))
		kg.POST("/:id/file", h.uploadFile(kind))
		kg.GET("/:id/file", h.downloadFile(kind))
		kg.GET("/:id/file-versions", h.listVersions(kind))
		kg.GET("/:id/file-versions/:versionId/download", h.downloadVersion(kind))
	}
}

// list handles GET /api/{segment}
func (h *RecordHandler) list(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}

		page, err := pagination(c)
		if err != nil {
			return err
		}
		q := repository.RecordQuery{
			PaginationParams: page,
			BusinessArea:     strings.TrimSpace(c.QueryParam("business_area")),
			Status:           strings.TrimSpace(c.QueryParam("status")),
			Search:           strings.TrimSpace(c.QueryParam("search")),
		}

		records, meta, err := h.records.List(c.Request().Context(), p, kind, q)
		if err != nil {
			return err
		}
		return respondPage(c, records, meta)
	}
}

// get handles GET /api/{segment}/:id
func (h *RecordHandler) get(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		rec, err := h.records.Get(c.Request().Context(), p, kind, id)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, rec)
	}
}

// create handles POST /api/{segment}
func (h *RecordHandler) create(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		rec, err := h.decode(c, kind)
		if err != nil {
			return err
		}

		created, err := h.records.Create(c.Request().Context(), p, kind, rec)
		if err != nil {
			return err
		}
		return respond(c, http.StatusCreated, created)
	}
}

// update handles PUT /api/{segment}/:id. The body replaces every mutable
// field; omitted fields are cleared.
func (h *RecordHandler) update(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		rec, err := h.decode(c, kind)
		if err != nil {
			return err
		}

		updated, err := h.records.Update(c.Request().Context(), p, kind, id, rec)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, updated)
	}
}

// delete handles DELETE /api/{segment}/:id
func (h *RecordHandler) delete(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		if err := h.records.Delete(c.Request().Context(), p, kind, id); err != nil {
			return err
		}
		return respondMessage(c, kind.Label()+" deleted successfully")
	}
}

// uploadFile handles POST /api/{segment}/:id/file (multipart "file",
// optional "version").
func (h *RecordHandler) uploadFile(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		upload, closeFn, err := readUpload(c, h.records.MaxUploadBytes())
		if err != nil {
			return err
		}
		defer closeFn()

		var version *string
		if v := strings.TrimSpace(c.FormValue("version")); v != "" {
			version = &v
		}

		rec, err := h.records.AttachFile(c.Request().Context(), p, kind, id, upload, version)
		if err != nil {
			return err
		}

		h.logger.Info("File attached",
			zap.String("kind", string(kind)),
			zap.Uint("id", id),
			zap.String("file_name", upload.FileName),
			zap.Int64("file_size", upload.Size),
		)
		return respond(c, http.StatusOK, rec)
	}
}

// downloadFile handles GET /api/{segment}/:id/file
func (h *RecordHandler) downloadFile(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		link, err := h.records.FileDownloadURL(c.Request().Context(), p, kind, id)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, link)
	}
}

// listVersions handles GET /api/{segment}/:id/file-versions
func (h *RecordHandler) listVersions(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		versions, err := h.records.ListFileVersions(c.Request().Context(), p, kind, id)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, versions)
	}
}

// downloadVersion handles GET /api/{segment}/:id/file-versions/:versionId/download
func (h *RecordHandler) downloadVersion(kind entity.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		versionID, err := pathID(c, "versionId")
		if err != nil {
			return err
		}

		link, err := h.records.FileVersionDownloadURL(c.Request().Context(), p, kind, id, versionID)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, link)
	}
}

// decode binds and validates a JSON body into a fresh record of kind.
func (h *RecordHandler) decode(c echo.Context, kind entity.Kind) (model.Record, error) {
	rec, err := h.records.New(kind)
	if err != nil {
		return nil, err
	}
	if err := new(echo.DefaultBinder).BindBody(c, rec); err != nil {
		return nil, apperrors.InvalidArgument("Invalid request body", err)
	}
	if err := c.Validate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// readUpload opens the multipart "file" part. The returned func closes it.
func readUpload(c echo.Context, maxBytes int64) (entity.FileUpload, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return entity.FileUpload{}, nil, apperrors.InvalidArgument("No file provided", err)
	}
	if header.Size == 0 {
		return entity.FileUpload{}, nil, apperrors.InvalidArgument("File is empty", nil)
	}
	if header.Size > maxBytes {
		return entity.FileUpload{}, nil, apperrors.InvalidArgument("File is too large", nil)
	}

	f, err := header.Open()
	if err != nil {
		return entity.FileUpload{}, nil, apperrors.Internal("failed to read upload", err)
	}

	return entity.FileUpload{
		Body:        f,
		FileName:    filepath.Base(header.Filename),
		ContentType: contentType(header),
		Size:        header.Size,
	}, func() { _ = f.Close() }, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get(echo.HeaderContentType); ct != "" {
		return ct
	}
	return echo.MIMEOctetStream
}
