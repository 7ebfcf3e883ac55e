package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/middleware/auth"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
	"github.com/Ferdismit7/qmstool-sub002/pkg/logger"
)

type mockLinks struct {
	mock.Mock
}

func (m *mockLinks) Create(ctx context.Context, p *entity.Principal, documentID uint, in usecase.CreateLinkInput) (*model.DocumentLink, error) {
	args := m.Called(ctx, p, documentID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentLink), args.Error(1)
}

func (m *mockLinks) List(ctx context.Context, p *entity.Principal, documentID uint) ([]model.DocumentLink, error) {
	args := m.Called(ctx, p, documentID)
	return args.Get(0).([]model.DocumentLink), args.Error(1)
}

func (m *mockLinks) Delete(ctx context.Context, p *entity.Principal, documentID, linkID uint) error {
	return m.Called(ctx, p, documentID, linkID).Error(0)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) List(ctx context.Context, p *entity.Principal, q entity.AuditQuery) ([]model.AuditLog, entity.PaginationMeta, error) {
	args := m.Called(ctx, p, q)
	return args.Get(0).([]model.AuditLog), args.Get(1).(entity.PaginationMeta), args.Error(2)
}

func newAPIEcho(register func(g *echo.Group)) *echo.Echo {
	e := echo.New()
	logger.WithEchoLogger(e, zap.NewNop())
	e.Validator = NewRequestValidator()
	g := e.Group("/api", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), testPrincipal)))
			return next(c)
		}
	})
	register(g)
	return e
}

func TestLinkHandler(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		links := new(mockLinks)
		e := newAPIEcho(NewLinkHandler(links).Register)
		links.On("Create", mock.Anything, testPrincipal, uint(4), mock.MatchedBy(func(in usecase.CreateLinkInput) bool {
			return in.BusinessArea == "Sales" && in.LinkedKind != nil && *in.LinkedKind == "risks" &&
				in.LinkedRecordID != nil && *in.LinkedRecordID == 9
		})).Return(&model.DocumentLink{ID: 1, DocumentID: 4, BusinessArea: "Sales"}, nil)

		rec, body := serve(e, jsonRequest(http.MethodPost, "/api/documents/4/links",
			`{"business_area":"Sales","linked_kind":"risks","linked_record_id":9}`))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Sales", body["data"].(map[string]interface{})["business_area"])
		links.AssertExpectations(t)
	})

	t.Run("create requires an area", func(t *testing.T) {
		links := new(mockLinks)
		e := newAPIEcho(NewLinkHandler(links).Register)

		rec, body := serve(e, jsonRequest(http.MethodPost, "/api/documents/4/links", `{}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "business_area is required", body["error"])
		links.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete missing link", func(t *testing.T) {
		links := new(mockLinks)
		e := newAPIEcho(NewLinkHandler(links).Register)
		links.On("Delete", mock.Anything, testPrincipal, uint(4), uint(2)).Return(apperrors.NotFound("Document link not found"))

		rec, _ := serve(e, httptest.NewRequest(http.MethodDelete, "/api/documents/4/links/2", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		links := new(mockLinks)
		e := newAPIEcho(NewLinkHandler(links).Register)
		links.On("Delete", mock.Anything, testPrincipal, uint(4), uint(2)).Return(nil)

		rec, body := serve(e, httptest.NewRequest(http.MethodDelete, "/api/documents/4/links/2", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Document link removed", body["message"])
	})
}

func TestAuditHandler_List(t *testing.T) {
	audit := new(mockAudit)
	e := newAPIEcho(NewAuditHandler(audit).Register)
	want := entity.AuditQuery{
		PaginationParams: entity.PaginationParams{Page: 1, Limit: 10},
		Table:            "risks",
		RecordID:         3,
	}
	audit.On("List", mock.Anything, testPrincipal, want).
		Return([]model.AuditLog{}, entity.PaginationMeta{Page: 1, Limit: 10}, nil)

	rec, body := serve(e, httptest.NewRequest(http.MethodGet, "/api/audit-logs?table=risks&record_id=3&page=1&limit=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	audit.AssertExpectations(t)

	rec, _ = serve(e, httptest.NewRequest(http.MethodGet, "/api/audit-logs?record_id=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
