// Package oidc implements the Okta authorization code flow with PKCE and
// verifies ID tokens against the issuer's JWKS.
package oidc

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Config describes the Okta application.
type Config struct {
	Issuer             string
	ClientID           string
	ClientSecret       string
	RedirectURL        string
	PostLogoutRedirect string
	Scopes             []string
	HTTPClient         *http.Client
}

// Client talks to {issuer}/v1/{authorize,token,keys,logout}.
type Client struct {
	cfg          Config
	authorizeURL string
	tokenURL     string
	logoutURL    string
	httpClient   *http.Client
	keys         keyfunc.Keyfunc
}

// NewClient builds a client whose JWKS refreshes in the background. The
// first fetch may fail so the service can start while Okta is unreachable.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	jwksURL := cfg.Issuer + "/v1/keys"
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    httpClient,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           time.Hour,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("JWKS refresh failed", zap.String("url", jwksURL), zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("failed to create keyfunc: %w", err)
	}

	return NewClientWithKeyfunc(cfg, k), nil
}

// NewClientWithKeyfunc accepts a prepared key source.
func NewClientWithKeyfunc(cfg Config, k keyfunc.Keyfunc) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"openid", "profile", "email"}
	}
	return &Client{
		cfg:          cfg,
		authorizeURL: cfg.Issuer + "/v1/authorize",
		tokenURL:     cfg.Issuer + "/v1/token",
		logoutURL:    cfg.Issuer + "/v1/logout",
		httpClient:   httpClient,
		keys:         k,
	}
}

// PKCE is a code verifier and its S256 challenge.
type PKCE struct {
	Verifier  string
	Challenge string
}

// NewPKCE generates a fresh verifier.
func NewPKCE() (*PKCE, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}
	verifier := base64.RawURLEncoding.EncodeToString(buf)
	sum := sha256.Sum256([]byte(verifier))
	return &PKCE{Verifier: verifier, Challenge: base64.RawURLEncoding.EncodeToString(sum[:])}, nil
}

// AuthorizeURL is where the browser is sent to log in.
func (c *Client) AuthorizeURL(state, nonce, codeChallenge string) string {
	params := url.Values{
		"client_id":             {c.cfg.ClientID},
		"response_type":         {"code"},
		"redirect_uri":          {c.cfg.RedirectURL},
		"scope":                 {strings.Join(c.cfg.Scopes, " ")},
		"state":                 {state},
		"nonce":                 {nonce},
		"code_challenge":        {codeChallenge},
		"code_challenge_method": {"S256"},
	}
	return c.authorizeURL + "?" + params.Encode()
}

// LogoutURL ends the Okta session and returns to the configured page.
func (c *Client) LogoutURL(idTokenHint string) string {
	params := url.Values{}
	if c.cfg.PostLogoutRedirect != "" {
		params.Set("post_logout_redirect_uri", c.cfg.PostLogoutRedirect)
	}
	if idTokenHint != "" {
		params.Set("id_token_hint", idTokenHint)
	}
	if len(params) == 0 {
		return c.logoutURL
	}
	return c.logoutURL + "?" + params.Encode()
}

// TokenResponse is the token endpoint payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IDToken     string `json:"id_token"`
	Scope       string `json:"scope"`
}

type tokenError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code, codeVerifier string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.cfg.RedirectURL},
		"code_verifier": {codeVerifier},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(url.QueryEscape(c.cfg.ClientID), url.QueryEscape(c.cfg.ClientSecret))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var tokenErr tokenError
		if json.Unmarshal(body, &tokenErr) == nil && tokenErr.Error != "" {
			return nil, fmt.Errorf("token endpoint error: %s: %s", tokenErr.Error, tokenErr.Description)
		}
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.IDToken == "" {
		return nil, errors.New("token response has no id_token")
	}
	return &tokenResp, nil
}

// IDClaims are the ID token claims the service relies on.
type IDClaims struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Nonce             string `json:"nonce"`
	jwt.RegisteredClaims
}

// ErrNonceMismatch means the ID token was not minted for this login.
var ErrNonceMismatch = errors.New("id token nonce mismatch")

// VerifyIDToken checks signature, issuer, audience, expiry and nonce.
func (c *Client) VerifyIDToken(ctx context.Context, raw, nonce string) (*IDClaims, error) {
	claims := &IDClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, c.keys.KeyfuncCtx(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithAudience(c.cfg.ClientID),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid id token: %w", err)
	}
	if claims.Nonce != nonce {
		return nil, ErrNonceMismatch
	}
	if claims.Email == "" {
		return nil, errors.New("id token has no email claim")
	}
	return claims, nil
}
