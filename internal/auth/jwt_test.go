package auth

import (
	"testing"
	"time"
)

const testSecret = "my_test_jwt_secret"

func TestGenerateAndParseJWT(t *testing.T) {
	subject := "reading-room-kiosk"
	exp := time.Hour

	// Generate token
	tokenString, err := GenerateJWT(testSecret, subject, exp)
	if err != nil {
		t.Fatalf("failed to generate JWT: %v", err)
	}
	if tokenString == "" {
		t.Fatalf("empty token string")
	}

	// Parse and validate token
	claims, err := ParseJWT(testSecret, tokenString)
	if err != nil {
		t.Fatalf("failed to parse JWT: %v", err)
	}
	if claims.Subject != subject {
		t.Errorf("expected subject=%s, got %s", subject, claims.Subject)
	}
	if claims.Scope != ScopeChat {
		t.Errorf("expected scope=%s, got %s", ScopeChat, claims.Scope)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		t.Errorf("token should not be expired, got expiresAt=%v", claims.ExpiresAt)
	}
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	if _, err := GenerateJWT("", "someone", time.Hour); err == nil {
		t.Errorf("expected error for empty secret")
	}
}

func TestParseJWT_InvalidToken(t *testing.T) {
	invalidToken := "this.is.not.a.valid.jwt"
	_, err := ParseJWT(testSecret, invalidToken)
	if err == nil {
		t.Errorf("expected error for invalid JWT, got nil")
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT(testSecret, "wrongsecret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate JWT: %v", err)
	}

	_, err = ParseJWT("totally_wrong_secret", tokenString)
	if err == nil {
		t.Errorf("expected error for wrong secret, got nil")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	tokenString, err := GenerateJWT(testSecret, "late", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate JWT: %v", err)
	}

	if _, err := ParseJWT(testSecret, tokenString); err == nil {
		t.Errorf("expected error for expired JWT, got nil")
	}
}
