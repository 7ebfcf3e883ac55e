package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
	"github.com/Ferdismit7/qmstool-sub002/pkg/logger"
)

// TokenCookie carries the session token for browser clients.
const TokenCookie = "authToken"

type contextKey string

const principalContextKey contextKey = "principal"

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Signer    *TokenSigner
	Resolver  *Resolver
	Logger    *zap.Logger
	SkipPaths []string
}

// JWTMiddleware authenticates the caller from a Bearer token or the
// authToken cookie and stores the resolved Principal in the request context.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			tokenString := extractToken(c)
			if tokenString == "" {
				config.Logger.Debug("Missing credentials", zap.String("path", path))
				return apperrors.Unauthenticated("Authentication required")
			}

			claims, err := config.Signer.Parse(tokenString)
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return apperrors.Unauthenticated("Invalid or expired token")
			}

			principal := config.Resolver.Resolve(c.Request().Context(), claims)

			ctx := WithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(logger.UserIDContextKey, principal.UserID)

			return next(c)
		}
	}
}

// RequireBusinessAreas rejects callers whose area set is empty.
func RequireBusinessAreas() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c.Request().Context())
			if !ok || !principal.Authenticated() {
				return apperrors.Unauthenticated("Authentication required")
			}
			if !principal.Authorized() {
				return apperrors.Unauthenticated("User has no business area assigned")
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *entity.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFrom extracts the caller from ctx.
func PrincipalFrom(ctx context.Context) (*entity.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*entity.Principal)
	return p, ok && p != nil
}

// GetPrincipal is the echo-side shortcut used by handlers.
func GetPrincipal(c echo.Context) (*entity.Principal, error) {
	p, ok := PrincipalFrom(c.Request().Context())
	if !ok {
		return nil, apperrors.Unauthenticated("Authentication required")
	}
	return p, nil
}
