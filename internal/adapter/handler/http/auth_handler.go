package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/oidc"
	sessionstore "github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/session"
	"github.com/Ferdismit7/qmstool-sub002/internal/middleware/auth"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
	apperrors "github.com/Ferdismit7/qmstool-sub002/pkg/errors"
)

// Session keys.
const (
	sessionState    = "oauth_state"
	sessionNonce    = "oauth_nonce"
	sessionVerifier = "oauth_verifier"
	sessionEmail    = "email"
	sessionName     = "name"
	sessionSubject  = "sub"
	sessionIDToken  = "id_token"
)

// OIDCProvider is the identity provider side of the login flow.
type OIDCProvider interface {
	AuthorizeURL(state, nonce, codeChallenge string) string
	LogoutURL(idTokenHint string) string
	Exchange(ctx context.Context, code, codeVerifier string) (*oidc.TokenResponse, error)
	VerifyIDToken(ctx context.Context, raw, nonce string) (*oidc.IDClaims, error)
}

type TokenUsecase interface {
	GenerateToken(ctx context.Context, email string) (*usecase.IssuedToken, error)
}

type AuthHandlerConfig struct {
	PostLoginRedirect string
	SecureCookies     bool
}

// AuthHandler bridges the identity provider session to API tokens.
type AuthHandler struct {
	provider OIDCProvider
	tokens   TokenUsecase
	cfg      AuthHandlerConfig
	logger   *zap.Logger
}

// NewAuthHandler builds the handler. provider may be nil when single
// sign-on is not configured; login then answers 501.
func NewAuthHandler(provider OIDCProvider, tokens TokenUsecase, cfg AuthHandlerConfig, logger *zap.Logger) *AuthHandler {
	if cfg.PostLoginRedirect == "" {
		cfg.PostLoginRedirect = "/"
	}
	return &AuthHandler{provider: provider, tokens: tokens, cfg: cfg, logger: logger}
}

func (h *AuthHandler) Register(g *echo.Group) {
	g.GET("/login", h.Login)
	g.GET("/callback", h.Callback)
	g.GET("/generate-token", h.GenerateToken)
	g.POST("/generate-token", h.GenerateToken)
	g.POST("/logout", h.Logout)
}

func (h *AuthHandler) requireProvider() error {
	if h.provider == nil {
		return apperrors.NewAppError(apperrors.ErrNotImplemented, "Single sign-on is not configured", nil)
	}
	return nil
}

// Login handles GET /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	if err := h.requireProvider(); err != nil {
		return err
	}

	sess, err := session.Get(sessionstore.Name, c)
	if err != nil {
		return apperrors.Internal("failed to open session", err)
	}

	state, err := gonanoid.New(32)
	if err != nil {
		return apperrors.Internal("failed to generate state", err)
	}
	nonce, err := gonanoid.New(32)
	if err != nil {
		return apperrors.Internal("failed to generate nonce", err)
	}
	pkce, err := oidc.NewPKCE()
	if err != nil {
		return apperrors.Internal("failed to generate PKCE verifier", err)
	}

	sess.Values[sessionState] = state
	sess.Values[sessionNonce] = nonce
	sess.Values[sessionVerifier] = pkce.Verifier
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return apperrors.Internal("failed to save session", err)
	}

	return c.Redirect(http.StatusFound, h.provider.AuthorizeURL(state, nonce, pkce.Challenge))
}

// Callback handles GET /api/auth/callback
func (h *AuthHandler) Callback(c echo.Context) error {
	if err := h.requireProvider(); err != nil {
		return err
	}

	if idpErr := c.QueryParam("error"); idpErr != "" {
		h.logger.Warn("Identity provider returned an error",
			zap.String("error", idpErr),
			zap.String("description", c.QueryParam("error_description")),
		)
		return apperrors.Unauthenticated("Sign-in was not completed")
	}

	sess, err := session.Get(sessionstore.Name, c)
	if err != nil {
		return apperrors.Internal("failed to open session", err)
	}

	state, _ := sess.Values[sessionState].(string)
	nonce, _ := sess.Values[sessionNonce].(string)
	verifier, _ := sess.Values[sessionVerifier].(string)
	if state == "" || c.QueryParam("state") != state {
		return apperrors.Unauthenticated("Invalid sign-in state")
	}
	code := c.QueryParam("code")
	if code == "" {
		return apperrors.InvalidArgument("Missing authorization code", nil)
	}

	ctx := c.Request().Context()
	tokens, err := h.provider.Exchange(ctx, code, verifier)
	if err != nil {
		h.logger.Warn("Authorization code exchange failed", zap.Error(err))
		return apperrors.Unauthenticated("Sign-in failed")
	}
	claims, err := h.provider.VerifyIDToken(ctx, tokens.IDToken, nonce)
	if err != nil {
		h.logger.Warn("ID token rejected", zap.Error(err))
		return apperrors.Unauthenticated("Sign-in failed")
	}

	delete(sess.Values, sessionState)
	delete(sess.Values, sessionNonce)
	delete(sess.Values, sessionVerifier)
	sess.Values[sessionEmail] = claims.Email
	sess.Values[sessionName] = claims.Name
	sess.Values[sessionSubject] = claims.Subject
	sess.Values[sessionIDToken] = tokens.IDToken
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return apperrors.Internal("failed to save session", err)
	}

	h.logger.Info("User signed in", zap.String("email", claims.Email))
	return c.Redirect(http.StatusFound, h.cfg.PostLoginRedirect)
}

// GenerateToken handles GET|POST /api/auth/generate-token
func (h *AuthHandler) GenerateToken(c echo.Context) error {
	sess, err := session.Get(sessionstore.Name, c)
	if err != nil {
		return apperrors.Unauthenticated("Not authenticated")
	}
	email, _ := sess.Values[sessionEmail].(string)
	if email == "" {
		return apperrors.Unauthenticated("Not authenticated")
	}

	issued, err := h.tokens.GenerateToken(c.Request().Context(), email)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.TokenCookie,
		Value:    issued.Token,
		Path:     "/",
		Expires:  issued.ExpiresAt,
		MaxAge:   int(time.Until(issued.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return respond(c, http.StatusOK, issued)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	var idToken string
	if sess, err := session.Get(sessionstore.Name, c); err == nil {
		idToken, _ = sess.Values[sessionIDToken].(string)
		sess.Values = map[interface{}]interface{}{}
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true, Secure: h.cfg.SecureCookies}
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			h.logger.Warn("Failed to clear session", zap.Error(err))
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	data := map[string]string{}
	if h.provider != nil {
		data["logoutUrl"] = h.provider.LogoutURL(idToken)
	}
	return respond(c, http.StatusOK, data)
}
