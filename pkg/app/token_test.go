package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "admin-secret",
		Expiry:    1 * time.Hour,
		Issuer:    "test-issuer",
	}
	tm := NewTokenManager(cfg)

	token, err := tm.Generate("admin", "127.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if claims.Username != "admin" {
		t.Errorf("Expected username admin, got %s", claims.Username)
	}
	if claims.IP != "127.0.0.1" {
		t.Errorf("Expected ip 127.0.0.1, got %s", claims.IP)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("Expected issuer test-issuer, got %s", claims.Issuer)
	}

	// 验证 ExpiresAt (由于只存了秒级 Unix 戳，允许 1 秒内的误差)
	expectedExp := time.Now().Add(cfg.Expiry)
	if claims.ExpiresAt.Unix() < expectedExp.Unix()-1 || claims.ExpiresAt.Unix() > expectedExp.Unix()+1 {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, claims.ExpiresAt)
	}
}

func TestTokenManager_WrongKey(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "right-secret"})

	token, err := tm.Generate("admin", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := ParseTokenWithKey(token, "wrong-secret"); err == nil {
		t.Error("Expected parse with wrong key to fail")
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey: "admin-secret",
		Expiry:    -1 * time.Hour,
	})

	token, err := tm.Generate("admin", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := tm.Validate(token); err == nil {
		t.Error("Expected expired token to fail validation")
	}
}

func TestTokenManager_Defaults(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "k"})

	token, err := tm.Generate("admin", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Issuer != DefaultTokenIssuer {
		t.Errorf("Expected default issuer %s, got %s", DefaultTokenIssuer, claims.Issuer)
	}
}
