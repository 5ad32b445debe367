package service

import (
	"context"
	"testing"
	"time"

	pkgapp "github.com/haierkeys/markdown-format-service/pkg/app"
	"github.com/haierkeys/markdown-format-service/pkg/code"
	"github.com/haierkeys/markdown-format-service/pkg/util"

	"go.uber.org/zap"
)

func newTestAdminService(t *testing.T, password string) (AdminService, pkgapp.TokenManager) {
	t.Helper()

	hash, err := util.GeneratePasswordHash(password)
	if err != nil {
		t.Fatalf("GeneratePasswordHash failed: %v", err)
	}

	tokens := pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: "test-secret",
		Expiry:    time.Hour,
	})
	return NewAdminService("admin", hash, time.Hour, tokens, zap.NewNop()), tokens
}

func TestAdminServiceLogin(t *testing.T) {
	svc, tokens := newTestAdminService(t, "s3cret")

	got, err := svc.Login(context.Background(), "s3cret", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.Token == "" {
		t.Fatal("expected a token")
	}
	if got.ExpiresAt.Time().Before(time.Now()) {
		t.Error("token already expired")
	}

	claims, err := tokens.Parse(got.Token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Username = %q, want admin", claims.Username)
	}
	if claims.IP != "127.0.0.1" {
		t.Errorf("IP = %q", claims.IP)
	}
}

func TestAdminServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAdminService(t, "s3cret")

	if _, err := svc.Login(context.Background(), "wrong", "127.0.0.1"); err != code.ErrorAdminAuthFail {
		t.Errorf("Login error = %v, want ErrorAdminAuthFail", err)
	}
}

func TestAdminServiceLoginNoHashConfigured(t *testing.T) {
	tokens := pkgapp.NewTokenManager(pkgapp.TokenConfig{SecretKey: "k", Expiry: time.Hour})
	svc := NewAdminService("admin", "", time.Hour, tokens, zap.NewNop())

	if _, err := svc.Login(context.Background(), "anything", "127.0.0.1"); err != code.ErrorAdminAuthFail {
		t.Errorf("Login error = %v, want ErrorAdminAuthFail", err)
	}
}
