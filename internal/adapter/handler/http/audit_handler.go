package http

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

type AuditUsecase interface {
	List(ctx context.Context, p *entity.Principal, q entity.AuditQuery) ([]model.AuditLog, entity.PaginationMeta, error)
}

type AuditHandler struct {
	audit AuditUsecase
}

func NewAuditHandler(audit AuditUsecase) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) Register(g *echo.Group) {
	g.GET("/audit-logs", h.List)
}

// List handles GET /api/audit-logs?table=&record_id=&page=&limit=
func (h *AuditHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	page, err := pagination(c)
	if err != nil {
		return err
	}
	q := entity.AuditQuery{
		PaginationParams: page,
		Table:            strings.TrimSpace(c.QueryParam("table")),
	}
	if err := echo.QueryParamsBinder(c).Uint("record_id", &q.RecordID).BindError(); err != nil {
		return apperrors.InvalidArgument("record_id must be an integer", err)
	}

	logs, meta, err := h.audit.List(c.Request().Context(), p, q)
	if err != nil {
		return err
	}
	return respondPage(c, logs, meta)
}
