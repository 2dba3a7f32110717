package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret")

	token, err := issuer.Issue(Claims{
		Kind:  KindAdmin,
		Email: "admin@parlour.com",
		Role:  "super_admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "42",
		},
	}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Verify(token, KindAdmin)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Email != "admin@parlour.com" || claims.Role != "super_admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	id, err := claims.PrincipalID()
	if err != nil || id != 42 {
		t.Fatalf("unexpected principal id: %d, err=%v", id, err)
	}
}

func TestVerifyKindMismatch(t *testing.T) {
	issuer := NewIssuer("test-secret")

	token, err := issuer.Issue(Claims{
		Kind:  KindEmployee,
		Email: "sarah@parlour.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "7",
		},
	}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, kind := range []Kind{KindAdmin, KindCustomer} {
		if _, err := issuer.Verify(token, kind); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("employee token must be rejected as %s, got %v", kind, err)
		}
	}
	if _, err := issuer.Verify(token, KindEmployee); err != nil {
		t.Fatalf("the issuing kind must still verify: %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret")

	for _, ttl := range []time.Duration{0, -time.Minute} {
		token, err := issuer.Issue(Claims{
			Kind:             KindCustomer,
			Email:            "alice@example.com",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		}, ttl)
		if err != nil {
			t.Fatalf("Issue(ttl=%v): %v", ttl, err)
		}
		if _, err := issuer.Verify(token, KindCustomer); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token with ttl=%v must fail verification, got %v", ttl, err)
		}
	}
}

func TestVerifyTampered(t *testing.T) {
	issuer := NewIssuer("test-secret")
	other := NewIssuer("other-secret")

	token, err := other.Issue(Claims{
		Kind:             KindAdmin,
		Email:            "admin@parlour.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Verify(token, KindAdmin); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another secret must be rejected, got %v", err)
	}
	if _, err := issuer.Verify("not.a.token", KindAdmin); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("malformed token must be rejected, got %v", err)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	issuer := NewIssuer("test-secret")

	// 同一密钥但使用 HS512 签名，校验方只接受 HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Kind:             KindAdmin,
		Email:            "admin@parlour.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := issuer.Verify(signed, KindAdmin); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unexpected signing algorithm must be rejected, got %v", err)
	}
}
