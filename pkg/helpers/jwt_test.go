package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 2*time.Hour)

	tok, exp, err := m.GenerateAccessToken("user-1", "u@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expected expiry in the future")
	}

	claims, err := m.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "u@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)

	tok, _, err := m.GenerateAccessToken("user-1", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := m.ParseAccessToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseRejectsWrongSecretAndGarbage(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, time.Hour)
	other := NewJWTManager("other", "refresh", time.Hour, time.Hour)

	tok, _, err := other.GenerateAccessToken("user-1", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := m.ParseAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
	if _, err := m.ParseAccessToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestAccessAndRefreshSecretsAreSeparate(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, time.Hour)

	tok, _, err := m.GenerateRefreshToken("user-1", "")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if _, err := m.ParseAccessToken(tok); err == nil {
		t.Fatal("refresh token must not verify as an access token")
	}
	if _, err := m.ParseRefreshToken(tok); err != nil {
		t.Fatalf("ParseRefreshToken() error = %v", err)
	}
}
