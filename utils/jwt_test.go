package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "user@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "user@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateJWT("user-1", "user@example.com", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if got := ExtractTokenFromHeader("Bearer abc123"); got != "abc123" {
		t.Fatalf("expected abc123, got %q", got)
	}
	if got := ExtractTokenFromHeader("abc123"); got != "" {
		t.Fatalf("expected empty for missing scheme, got %q", got)
	}
	if got := ExtractTokenFromHeader(""); got != "" {
		t.Fatalf("expected empty for empty header, got %q", got)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!", 4)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "hunter2!" {
		t.Fatal("hash must not equal plaintext")
	}

	if !CheckPassword("hunter2!", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Fatal("expected mismatched password to fail")
	}
}
