package service

import (
	"errors"
	"testing"

	"github.com/sellerdesk/internal/config"
	"github.com/sellerdesk/internal/models"
)

func newAuthTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "unit-test-secret",
			ExpireHours: 2,
		},
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	svc := NewAuthService(newAuthTestConfig(), nil)
	admin := &models.Admin{Username: "seller01", TokenVersion: 3}
	admin.ID = 7

	token, expiresAt, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt: %v", err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected token and expiry, got token=%q expires=%v", token, expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt: %v", err)
	}
	if claims.AdminID != 7 || claims.Username != "seller01" || claims.TokenVersion != 3 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != tokenIssuer {
		t.Fatalf("issuer want %q got %q", tokenIssuer, claims.Issuer)
	}
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	svc := NewAuthService(newAuthTestConfig(), nil)
	admin := &models.Admin{Username: "seller01"}
	admin.ID = 1

	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt: %v", err)
	}

	other := NewAuthService(&config.Config{JWT: config.JWTConfig{SecretKey: "another-secret", ExpireHours: 2}}, nil)
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatal("expected parse failure with mismatched secret")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	cases := []struct {
		name     string
		password string
		wantWeak bool
	}{
		{"meets all rules", "Console2026", false},
		{"too short", "Ab1", true},
		{"missing upper", "console2026", true},
		{"missing number", "ConsolePass", true},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.wantWeak {
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("%s: want weak password error, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestValidatePasswordPolicyDisabled(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("disabled policy should accept any password, got %v", err)
	}
}
