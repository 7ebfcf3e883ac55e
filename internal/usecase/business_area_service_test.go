package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
)

func TestBusinessAreaService_ListForPrincipal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBusinessAreaRepository)
	service := usecase.NewBusinessAreaService(repo)
	p := &entity.Principal{UserID: 1, BusinessAreas: []string{"Finance", "Legacy Desk"}}

	repo.On("ListByNames", ctx, p.BusinessAreas).Return([]model.BusinessArea{
		{Name: "Finance", Description: "Accounts and treasury"},
	}, nil)

	areas, err := service.ListForPrincipal(ctx, p)

	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "Accounts and treasury", areas[0].Description)
	assert.Equal(t, "Legacy Desk", areas[1].Name)
	assert.Empty(t, areas[1].Description)
}

func TestAuditService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditLogRepository)
	service := usecase.NewAuditService(repo)
	p := financeUser()

	want := entity.AuditQuery{
		PaginationParams: entity.PaginationParams{Page: 2, Limit: 20},
		Table:            "risk_management",
		RecordID:         4,
	}
	repo.On("List", ctx, p.BusinessAreas, want).Return([]model.AuditLog{{ID: 1}}, int64(21), nil)

	logs, meta, err := service.List(ctx, p, entity.AuditQuery{
		PaginationParams: entity.PaginationParams{Page: 2},
		Table:            "risk_management",
		RecordID:         4,
	})

	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, 2, meta.TotalPages)
	repo.AssertExpectations(t)
}
