package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

type LinkUsecase interface {
	Create(ctx context.Context, p *entity.Principal, documentID uint, in usecase.CreateLinkInput) (*model.DocumentLink, error)
	List(ctx context.Context, p *entity.Principal, documentID uint) ([]model.DocumentLink, error)
	Delete(ctx context.Context, p *entity.Principal, documentID, linkID uint) error
}

// LinkHandler serves /api/documents/:id/links.
type LinkHandler struct {
	links LinkUsecase
}

func NewLinkHandler(links LinkUsecase) *LinkHandler {
	return &LinkHandler{links: links}
}

func (h *LinkHandler) Register(g *echo.Group) {
	g.GET("/documents/:id/links", h.List)
	g.POST("/documents/:id/links", h.Create)
	g.DELETE("/documents/:id/links/:linkId", h.Delete)
}

func (h *LinkHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	docID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	links, err := h.links.List(c.Request().Context(), p, docID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, links)
}

func (h *LinkHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	docID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var in usecase.CreateLinkInput
	if err := new(echo.DefaultBinder).BindBody(c, &in); err != nil {
		return apperrors.InvalidArgument("Invalid request body", err)
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	link, err := h.links.Create(c.Request().Context(), p, docID, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, link)
}

func (h *LinkHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	docID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	linkID, err := pathID(c, "linkId")
	if err != nil {
		return err
	}

	if err := h.links.Delete(c.Request().Context(), p, docID, linkID); err != nil {
		return err
	}
	return respondMessage(c, "Document link removed")
}
