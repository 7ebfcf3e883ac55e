package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockMemberships struct {
	mock.Mock
}

func (m *mockMemberships) ListAreas(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, userID uint) ([]string, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, userID uint, areas []string) error {
	return m.Called(ctx, userID, areas).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}
