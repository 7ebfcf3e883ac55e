package repository

import (
	"context"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// MembershipRepository reads the user to business area relation.
type MembershipRepository interface {
	ListAreas(ctx context.Context, userID uint) ([]string, error)
}

// MembershipCache memoizes ListAreas results.
type MembershipCache interface {
	Get(ctx context.Context, userID uint) ([]string, bool, error)
	Set(ctx context.Context, userID uint, areas []string) error
	Invalidate(ctx context.Context, userID uint) error
}

type BusinessAreaRepository interface {
	List(ctx context.Context) ([]model.BusinessArea, error)
	ListByNames(ctx context.Context, names []string) ([]model.BusinessArea, error)
}
