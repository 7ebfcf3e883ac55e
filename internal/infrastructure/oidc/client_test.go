package oidc

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://example.okta.com/oauth2/default"
	testClientID = "qms-client"
	testKeyID    = "test-key"
)

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func jwksJSON(pub *rsa.PublicKey) json.RawMessage {
	data, _ := json.Marshal(map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"kid": testKeyID,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	})
	return data
}

func newTestClient(t *testing.T, key *rsa.PrivateKey, httpClient *http.Client, issuer string) *Client {
	t.Helper()
	kf, err := keyfunc.NewJWKSetJSON(jwksJSON(&key.PublicKey))
	require.NoError(t, err)
	return NewClientWithKeyfunc(Config{
		Issuer:             issuer,
		ClientID:           testClientID,
		ClientSecret:       "shh",
		RedirectURL:        "http://localhost:8080/api/auth/callback",
		PostLogoutRedirect: "http://localhost:3000/",
		HTTPClient:         httpClient,
	}, kf)
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, mutate func(*IDClaims)) string {
	t.Helper()
	claims := &IDClaims{
		Email: "ada@example.com",
		Name:  "Ada",
		Nonce: "nonce-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testClientID},
			Subject:   "00u1",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestNewPKCE(t *testing.T) {
	p, err := NewPKCE()
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(p.Verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), p.Challenge)
	assert.Len(t, p.Verifier, 43)
}

func TestAuthorizeURL(t *testing.T) {
	c := newTestClient(t, newTestKey(t), nil, testIssuer)

	u, err := url.Parse(c.AuthorizeURL("state-1", "nonce-1", "challenge"))
	require.NoError(t, err)

	assert.Equal(t, "/oauth2/default/v1/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, testClientID, q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
	assert.Equal(t, "nonce-1", q.Get("nonce"))
}

func TestLogoutURL(t *testing.T) {
	c := newTestClient(t, newTestKey(t), nil, testIssuer)

	assert.Equal(t,
		testIssuer+"/v1/logout?id_token_hint=tok&post_logout_redirect_uri=http%3A%2F%2Flocalhost%3A3000%2F",
		c.LogoutURL("tok"))
}

func TestVerifyIDToken(t *testing.T) {
	key := newTestKey(t)
	c := newTestClient(t, key, nil, testIssuer)

	claims, err := c.VerifyIDToken(context.Background(), signIDToken(t, key, nil), "nonce-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)

	tests := []struct {
		name   string
		mutate func(*IDClaims)
		nonce  string
	}{
		{"wrong nonce", nil, "other"},
		{"wrong audience", func(c *IDClaims) { c.Audience = jwt.ClaimStrings{"someone-else"} }, "nonce-1"},
		{"wrong issuer", func(c *IDClaims) { c.Issuer = "https://evil.example.com" }, "nonce-1"},
		{"expired", func(c *IDClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour)) }, "nonce-1"},
		{"no email", func(c *IDClaims) { c.Email = "" }, "nonce-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.VerifyIDToken(context.Background(), signIDToken(t, key, tt.mutate), tt.nonce)
			assert.Error(t, err)
		})
	}
}

func TestVerifyIDToken_RejectsForeignKey(t *testing.T) {
	c := newTestClient(t, newTestKey(t), nil, testIssuer)

	_, err := c.VerifyIDToken(context.Background(), signIDToken(t, newTestKey(t), nil), "nonce-1")
	assert.Error(t, err)
}

func TestExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, testClientID, user)
		assert.Equal(t, "shh", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "verifier", r.PostForm.Get("code_verifier"))

		if r.PostForm.Get("code") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"bad code"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"idt"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, newTestKey(t), srv.Client(), srv.URL)

	tok, err := c.Exchange(context.Background(), "good", "verifier")
	require.NoError(t, err)
	assert.Equal(t, "idt", tok.IDToken)

	_, err = c.Exchange(context.Background(), "bad", "verifier")
	assert.ErrorContains(t, err, "invalid_grant")
}
