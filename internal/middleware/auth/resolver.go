package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
)

// Resolver turns verified claims into a Principal with its effective
// business areas.
type Resolver struct {
	memberships repository.MembershipRepository
	cache       repository.MembershipCache
	logger      *zap.Logger
}

func NewResolver(memberships repository.MembershipRepository, cache repository.MembershipCache, logger *zap.Logger) *Resolver {
	return &Resolver{memberships: memberships, cache: cache, logger: logger}
}

// Resolve never fails: when memberships are absent or cannot be read the
// caller falls back to the single area carried in the token.
func (r *Resolver) Resolve(ctx context.Context, claims *Claims) *entity.Principal {
	return &entity.Principal{
		UserID:        claims.UserID,
		Email:         claims.Email,
		Username:      claims.Username,
		BusinessArea:  claims.BusinessArea,
		BusinessAreas: r.AreasFor(ctx, claims.UserID, claims.BusinessArea),
	}
}

// AreasFor returns the sorted effective areas of userID, or the legacy
// area alone when there are no memberships.
func (r *Resolver) AreasFor(ctx context.Context, userID uint, legacyArea string) []string {
	legacy := entity.NormalizeAreas([]string{legacyArea})

	if cached, ok, err := r.cache.Get(ctx, userID); err != nil {
		r.logger.Warn("Membership cache read failed", zap.Uint("user_id", userID), zap.Error(err))
	} else if ok {
		return withFallback(cached, legacy)
	}

	areas, err := r.memberships.ListAreas(ctx, userID)
	if err != nil {
		r.logger.Warn("Membership lookup failed, using token business area",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return legacy
	}

	areas = entity.NormalizeAreas(areas)
	if err := r.cache.Set(ctx, userID, areas); err != nil {
		r.logger.Warn("Membership cache write failed", zap.Uint("user_id", userID), zap.Error(err))
	}
	return withFallback(areas, legacy)
}

func withFallback(areas, legacy []string) []string {
	if len(areas) == 0 {
		return legacy
	}
	return entity.NormalizeAreas(areas)
}
