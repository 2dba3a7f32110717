package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func issueTestToken(t *testing.T, issuer *Issuer, kind Kind, role string) string {
	t.Helper()
	token, err := issuer.Issue(Claims{
		Kind:             kind,
		Email:            "guard@parlour.com",
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "9"},
	}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func TestAuthorizeMissingHeader(t *testing.T) {
	issuer := NewIssuer("test-secret")

	for _, header := range []string{"", "Bearer ", "Token abcdef", "bearer abcdef"} {
		if _, err := issuer.Authorize(header, KindAdmin); !errors.Is(err, ErrMissingToken) {
			t.Fatalf("header %q: expected ErrMissingToken, got %v", header, err)
		}
	}
}

func TestAuthorizeInvalidToken(t *testing.T) {
	issuer := NewIssuer("test-secret")

	if _, err := issuer.Authorize("Bearer garbage", KindAdmin); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// 跨类别的令牌同样按无效令牌处理
	customerToken := issueTestToken(t, issuer, KindCustomer, "")
	if _, err := issuer.Authorize("Bearer "+customerToken, KindEmployee); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for cross-kind token, got %v", err)
	}
}

func TestAuthorizeRoleGating(t *testing.T) {
	issuer := NewIssuer("test-secret")

	adminToken := issueTestToken(t, issuer, KindAdmin, "admin")
	if _, err := issuer.Authorize("Bearer "+adminToken, KindAdmin, "super_admin"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin on a super_admin endpoint, got %v", err)
	}

	superToken := issueTestToken(t, issuer, KindAdmin, "super_admin")
	claims, err := issuer.Authorize("Bearer "+superToken, KindAdmin, "super_admin")
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if claims.Role != "super_admin" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}

	// 不要求角色时任何有效令牌都可以通过
	if _, err := issuer.Authorize("Bearer "+adminToken, KindAdmin); err != nil {
		t.Fatalf("Authorize without role requirement: %v", err)
	}
}
