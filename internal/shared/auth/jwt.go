package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by an access token.
type Claims struct {
	Sub      string
	Username string
}

// Tokens signs and verifies HS256 access tokens.
type Tokens struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokens builds a token signer. An empty secret falls back to a dev-only
// value and must not be used in production.
func NewTokens(secret string, lifetime time.Duration) *Tokens {
	if strings.TrimSpace(secret) == "" {
		secret = "dev-secret"
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), lifetime: lifetime}
}

// Sign issues a token for the given user.
func (t *Tokens) Sign(userID, username string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(t.lifetime).Unix(),
	})
	return token.SignedString(t.secret)
}

// Verify parses a token and returns its claims.
func (t *Tokens) Verify(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	username, _ := mapClaims["username"].(string)
	return Claims{Sub: sub, Username: username}, nil
}
