package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// FileUsecase covers uploads and downloads addressed by storage key.
type FileUsecase interface {
	Upload(ctx context.Context, p *entity.Principal, req usecase.UploadRequest) (*entity.StoredFile, error)
	DownloadByKey(ctx context.Context, p *entity.Principal, key string) (*entity.DownloadLink, error)
	MaxUploadBytes() int64
}

type FileHandler struct {
	files  FileUsecase
	logger *zap.Logger
}

func NewFileHandler(files FileUsecase, logger *zap.Logger) *FileHandler {
	return &FileHandler{files: files, logger: logger}
}

func (h *FileHandler) Register(g *echo.Group) {
	g.POST("/files/upload", h.Upload)
	g.GET("/files/download", h.Download)
}

// Upload handles POST /api/files/upload
func (h *FileHandler) Upload(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	documentType := strings.TrimSpace(c.FormValue("documentType"))
	if documentType == "" {
		return apperrors.InvalidArgument("documentType is required", nil)
	}

	req := usecase.UploadRequest{
		DocumentType: documentType,
		BusinessArea: strings.TrimSpace(c.FormValue("businessArea")),
	}
	if raw := strings.TrimSpace(c.FormValue("recordId")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return apperrors.InvalidArgument("Invalid recordId", err)
		}
		recordID := uint(id)
		req.RecordID = &recordID
	}

	upload, closeFn, err := readUpload(c, h.files.MaxUploadBytes())
	if err != nil {
		return err
	}
	defer closeFn()
	req.File = upload

	stored, err := h.files.Upload(c.Request().Context(), p, req)
	if err != nil {
		return err
	}

	h.logger.Info("File uploaded",
		zap.String("key", stored.Key),
		zap.Int64("file_size", stored.FileSize),
		zap.Uint("user_id", p.UserID),
	)
	return respond(c, http.StatusCreated, stored)
}

// Download handles GET /api/files/download?key=
func (h *FileHandler) Download(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	key := strings.TrimSpace(c.QueryParam("key"))
	if key == "" {
		return apperrors.InvalidArgument("key is required", nil)
	}

	link, err := h.files.DownloadByKey(c.Request().Context(), p, key)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, link)
}
