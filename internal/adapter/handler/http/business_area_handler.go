package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

type BusinessAreaUsecase interface {
	ListForPrincipal(ctx context.Context, p *entity.Principal) ([]model.BusinessArea, error)
}

type BusinessAreaHandler struct {
	areas BusinessAreaUsecase
}

func NewBusinessAreaHandler(areas BusinessAreaUsecase) *BusinessAreaHandler {
	return &BusinessAreaHandler{areas: areas}
}

func (h *BusinessAreaHandler) Register(g *echo.Group) {
	g.GET("/business-areas", h.List)
}

// List handles GET /api/business-areas
func (h *BusinessAreaHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	areas, err := h.areas.ListForPrincipal(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, areas)
}
