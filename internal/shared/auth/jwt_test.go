package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.Sign("user-1", "alice")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestSignRequiresUserID(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	if _, err := tokens.Sign("", "alice"); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	// NewTokens clamps non-positive lifetimes, so build an already-expired
	// signer directly.
	expired := &Tokens{secret: []byte("secret"), lifetime: -time.Minute}

	raw, err := expired.Sign("user-1", "alice")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tokens.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify expired err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Hour).Sign("user-1", "alice")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokens("secret-b", time.Hour).Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	if _, err := tokens.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("verify err = %v, want ErrInvalidToken", err)
	}
}
