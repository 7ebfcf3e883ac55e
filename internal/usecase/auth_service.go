package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// IssuedToken is the result of exchanging an identity-provider session for
// an API token.
type IssuedToken struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *entity.Principal `json:"user"`
}

type AuthService struct {
	users    repository.UserRepository
	resolver AreaResolver
	signer   TokenIssuer
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, resolver AreaResolver, signer TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		resolver: resolver,
		signer:   signer,
		logger:   logger,
	}
}

// GenerateToken issues a token for the known user with email.
func (s *AuthService) GenerateToken(ctx context.Context, email string) (*IssuedToken, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.Unauthenticated("Not authenticated")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if user == nil {
		s.logger.Warn("Token requested for unknown user", zap.String("email", email))
		return nil, apperrors.Unauthenticated("User not found")
	}

	token, expiresAt, err := s.signer.Sign(user)
	if err != nil {
		return nil, apperrors.Internal("failed to sign token", err)
	}

	return &IssuedToken{
		Token:     token,
		ExpiresAt: expiresAt,
		User: &entity.Principal{
			UserID:        user.ID,
			Email:         user.Email,
			Username:      user.Username,
			BusinessArea:  user.BusinessArea,
			BusinessAreas: s.resolver.AreasFor(ctx, user.ID, user.BusinessArea),
		},
	}, nil
}
