package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
)

// Claims is the payload of session tokens.
type Claims struct {
	UserID       uint   `json:"userId"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	BusinessArea string `json:"businessArea"`
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies HS256 session tokens.
type TokenSigner struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenSigner(secret string, expiry time.Duration) *TokenSigner {
	if expiry <= 0 {
		expiry = 8 * time.Hour
	}
	return &TokenSigner{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Expiry is the lifetime of issued tokens.
func (s *TokenSigner) Expiry() time.Duration {
	return s.expiry
}

// Sign issues a token for user.
func (s *TokenSigner) Sign(user *model.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := Claims{
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		BusinessArea: user.BusinessArea,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry and returns the claims.
func (s *TokenSigner) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, errors.New("token has no user id")
	}
	return claims, nil
}
