package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

type linkFixture struct {
	docs      *MockRecordStore
	links     *MockDocumentLinkRepository
	areas     *MockBusinessAreaRepository
	audit     *MockAuditLogRepository
	publisher *MockPublisher
	service   *usecase.LinkService
}

func newLinkFixture() *linkFixture {
	logger := zap.NewNop()
	f := &linkFixture{
		docs:      &MockRecordStore{kind: entity.KindDocument},
		links:     new(MockDocumentLinkRepository),
		areas:     new(MockBusinessAreaRepository),
		audit:     new(MockAuditLogRepository),
		publisher: new(MockPublisher),
	}
	f.service = usecase.NewLinkService(
		storeMap{entity.KindDocument: f.docs},
		f.links,
		f.areas,
		&inlineTransactor{},
		usecase.NewAuditRecorder(f.audit, f.publisher, logger),
		logger,
	)
	return f
}

func financeDocument(id uint) *model.Document {
	return &model.Document{
		Base:  model.Base{ID: id, BusinessArea: "Finance"},
		Title: "Expense policy",
	}
}

func TestLinkService_Create(t *testing.T) {
	ctx := context.Background()
	p := financeUser()

	t.Run("links an owned document into another area", func(t *testing.T) {
		f := newLinkFixture()
		f.areas.On("ListByNames", ctx, []string{"Sales"}).Return([]model.BusinessArea{{Name: "Sales"}}, nil)
		f.docs.On("GetForUpdate", ctx, p.BusinessAreas, uint(3)).Return(financeDocument(3), nil)
		f.links.On("Create", ctx, mock.MatchedBy(func(l *model.DocumentLink) bool {
			return l.DocumentID == 3 && l.BusinessArea == "Sales" && *l.LinkedKind == "risk" && l.CreatedBy == 7
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.DocumentLink).ID = 11
		}).Return(nil)
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *model.AuditLog) bool {
			return l.Action == "LINK" && l.RecordID == 11 && l.Table == "document_links"
		})).Return(nil)
		f.publisher.On("Publish", ctx, usecase.AuditChannel, mock.Anything).Return(nil)

		link, err := f.service.Create(ctx, p, 3, usecase.CreateLinkInput{
			BusinessArea:   "Sales",
			LinkedKind:     strPtr("risks"),
			LinkedRecordID: uintPtr(8),
		})

		require.NoError(t, err)
		assert.Equal(t, uint(11), link.ID)
		f.links.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})

	t.Run("unknown area is rejected", func(t *testing.T) {
		f := newLinkFixture()
		f.areas.On("ListByNames", ctx, []string{"Mars"}).Return([]model.BusinessArea{}, nil)

		_, err := f.service.Create(ctx, p, 3, usecase.CreateLinkInput{BusinessArea: "Mars"})

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		f.links.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("document the caller only sees through a link cannot be relinked", func(t *testing.T) {
		f := newLinkFixture()
		f.areas.On("ListByNames", ctx, []string{"Sales"}).Return([]model.BusinessArea{{Name: "Sales"}}, nil)
		f.docs.On("GetForUpdate", ctx, p.BusinessAreas, uint(3)).Return(nil, nil)

		_, err := f.service.Create(ctx, p, 3, usecase.CreateLinkInput{BusinessArea: "Sales"})

		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	})

	t.Run("linking into the owning area is rejected", func(t *testing.T) {
		f := newLinkFixture()
		f.areas.On("ListByNames", ctx, []string{"Finance"}).Return([]model.BusinessArea{{Name: "Finance"}}, nil)
		f.docs.On("GetForUpdate", ctx, p.BusinessAreas, uint(3)).Return(financeDocument(3), nil)

		_, err := f.service.Create(ctx, p, 3, usecase.CreateLinkInput{BusinessArea: "Finance"})

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("linked record needs a kind", func(t *testing.T) {
		f := newLinkFixture()

		_, err := f.service.Create(ctx, p, 3, usecase.CreateLinkInput{
			BusinessArea:   "Sales",
			LinkedRecordID: uintPtr(8),
		})

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})
}

func TestLinkService_Delete(t *testing.T) {
	ctx := context.Background()
	p := financeUser()

	t.Run("soft deletes with an unlink audit row", func(t *testing.T) {
		f := newLinkFixture()
		f.docs.On("GetForUpdate", ctx, p.BusinessAreas, uint(3)).Return(financeDocument(3), nil)
		f.links.On("Get", ctx, uint(3), uint(11)).Return(&model.DocumentLink{ID: 11, DocumentID: 3, BusinessArea: "Sales"}, nil)
		f.links.On("SoftDelete", ctx, uint(11), uint(7), mock.Anything).Return(true, nil)
		f.audit.On("Create", ctx, mock.MatchedBy(func(l *model.AuditLog) bool {
			return l.Action == "UNLINK" && l.RecordID == 11
		})).Return(nil)
		f.publisher.On("Publish", ctx, usecase.AuditChannel, mock.Anything).Return(nil)

		err := f.service.Delete(ctx, p, 3, 11)

		require.NoError(t, err)
		f.links.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})

	t.Run("link of another document is not found", func(t *testing.T) {
		f := newLinkFixture()
		f.docs.On("GetForUpdate", ctx, p.BusinessAreas, uint(3)).Return(financeDocument(3), nil)
		f.links.On("Get", ctx, uint(3), uint(12)).Return(nil, nil)

		err := f.service.Delete(ctx, p, 3, 12)

		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
		f.links.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLinkService_List(t *testing.T) {
	ctx := context.Background()
	p := financeUser()

	f := newLinkFixture()
	f.docs.On("Get", ctx, p.BusinessAreas, uint(3)).Return(financeDocument(3), nil)
	f.links.On("ListByDocument", ctx, uint(3)).Return([]model.DocumentLink{{ID: 1}, {ID: 2}}, nil)

	links, err := f.service.List(ctx, p, 3)

	require.NoError(t, err)
	assert.Len(t, links, 2)
}
