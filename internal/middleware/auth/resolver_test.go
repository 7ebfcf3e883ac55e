package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestResolver_Resolve(t *testing.T) {
	claims := &Claims{UserID: 7, Email: "ada@example.com", BusinessArea: "Finance"}

	tests := []struct {
		name  string
		setup func(*mockMemberships, *mockCache)
		want  []string
	}{
		{
			name: "memberships sorted and de-duplicated",
			setup: func(m *mockMemberships, c *mockCache) {
				c.On("Get", mock.Anything, uint(7)).Return(nil, false, nil)
				m.On("ListAreas", mock.Anything, uint(7)).Return([]string{"Operations", "Finance", "Operations"}, nil)
				c.On("Set", mock.Anything, uint(7), []string{"Finance", "Operations"}).Return(nil)
			},
			want: []string{"Finance", "Operations"},
		},
		{
			name: "no memberships falls back to token area",
			setup: func(m *mockMemberships, c *mockCache) {
				c.On("Get", mock.Anything, uint(7)).Return(nil, false, nil)
				m.On("ListAreas", mock.Anything, uint(7)).Return([]string{}, nil)
				c.On("Set", mock.Anything, uint(7), []string{}).Return(nil)
			},
			want: []string{"Finance"},
		},
		{
			name: "lookup failure falls back to token area",
			setup: func(m *mockMemberships, c *mockCache) {
				c.On("Get", mock.Anything, uint(7)).Return(nil, false, nil)
				m.On("ListAreas", mock.Anything, uint(7)).Return(nil, errors.New("db down"))
			},
			want: []string{"Finance"},
		},
		{
			name: "cache hit skips the database",
			setup: func(m *mockMemberships, c *mockCache) {
				c.On("Get", mock.Anything, uint(7)).Return([]string{"Sales"}, true, nil)
			},
			want: []string{"Sales"},
		},
		{
			name: "cache error still reads the database",
			setup: func(m *mockMemberships, c *mockCache) {
				c.On("Get", mock.Anything, uint(7)).Return(nil, false, errors.New("redis down"))
				m.On("ListAreas", mock.Anything, uint(7)).Return([]string{"Operations"}, nil)
				c.On("Set", mock.Anything, uint(7), []string{"Operations"}).Return(errors.New("redis down"))
			},
			want: []string{"Operations"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, c := new(mockMemberships), new(mockCache)
			tt.setup(m, c)

			p := NewResolver(m, c, zap.NewNop()).Resolve(context.Background(), claims)

			assert.Equal(t, tt.want, p.BusinessAreas)
			assert.Equal(t, "Finance", p.BusinessArea)
			assert.Equal(t, uint(7), p.UserID)
			m.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestResolver_EmptyLegacyAreaYieldsEmptySet(t *testing.T) {
	m, c := new(mockMemberships), new(mockCache)
	c.On("Get", mock.Anything, uint(3)).Return(nil, false, nil)
	m.On("ListAreas", mock.Anything, uint(3)).Return(nil, errors.New("db down"))

	p := NewResolver(m, c, zap.NewNop()).Resolve(context.Background(), &Claims{UserID: 3})

	assert.Empty(t, p.BusinessAreas)
	assert.False(t, p.Authorized())
}
