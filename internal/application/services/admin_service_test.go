package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

func newAdminService(t *testing.T, password string) *AdminService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewAdminService(
		config.AdminConfig{PasswordHash: string(hash)},
		config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "nyaysathi-test"},
		logger.NewNop(),
	)
}

func TestAdminService_LoginAndValidate(t *testing.T) {
	svc := newAdminService(t, "s3cret")

	tok, err := svc.Login(context.Background(), ports.AdminLoginRequest{Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tok.TokenType != "Bearer" || tok.ExpiresIn != 3600 {
		t.Fatalf("unexpected token response %+v", tok)
	}

	claims, err := svc.ValidateToken(tok.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Role != RoleAdmin || claims.Subject != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAdminService_RejectsBadCredentials(t *testing.T) {
	svc := newAdminService(t, "s3cret")

	if _, err := svc.Login(context.Background(), ports.AdminLoginRequest{Password: "wrong"}); !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("garbage token err = %v", err)
	}

	other := NewAdminService(config.AdminConfig{}, config.JWTConfig{Secret: "other", ExpiresIn: time.Hour, Issuer: "nyaysathi-test"}, logger.NewNop())
	tok, err := other.IssueToken("cli")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := svc.ValidateToken(tok.AccessToken); !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("foreign token err = %v", err)
	}
	if _, err := other.Login(context.Background(), ports.AdminLoginRequest{Password: "x"}); !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("login without hash err = %v", err)
	}
}
