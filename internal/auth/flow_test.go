package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type testAccount struct {
	ID    int64
	Email string
	Hash  string
}

func newTestFlow(t *testing.T, accounts map[string]*testAccount) (*Flow[*testAccount], *int) {
	t.Helper()

	sideEffects := 0
	flow := &Flow[*testAccount]{
		Kind:   KindEmployee,
		TTL:    time.Hour,
		Issuer: NewIssuer("test-secret"),
		Lookup: func(ctx context.Context, email string) (*testAccount, bool, error) {
			account, ok := accounts[email]
			return account, ok, nil
		},
		PasswordHash: func(a *testAccount) string { return a.Hash },
		Claims: func(a *testAccount) Claims {
			return Claims{
				Email:            a.Email,
				RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.FormatInt(a.ID, 10)},
			}
		},
		AfterLogin: func(ctx context.Context, a *testAccount) error {
			sideEffects++
			return nil
		},
	}
	return flow, &sideEffects
}

func TestFlowLoginSuccess(t *testing.T) {
	hash, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	flow, sideEffects := newTestFlow(t, map[string]*testAccount{
		"sarah@parlour.com": {ID: 3, Email: "sarah@parlour.com", Hash: hash},
	})

	account, token, err := flow.Login(context.Background(), "sarah@parlour.com", "pass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if account.ID != 3 {
		t.Fatalf("unexpected principal: %+v", account)
	}
	if *sideEffects != 1 {
		t.Fatalf("AfterLogin must run exactly once, ran %d times", *sideEffects)
	}

	claims, err := flow.Issuer.Verify(token, KindEmployee)
	if err != nil {
		t.Fatalf("issued token must verify for the flow kind: %v", err)
	}
	if claims.Email != "sarah@parlour.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestFlowLoginInvalidCredentials(t *testing.T) {
	hash, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	flow, sideEffects := newTestFlow(t, map[string]*testAccount{
		"sarah@parlour.com": {ID: 3, Email: "sarah@parlour.com", Hash: hash},
	})

	// 密码错误和邮箱不存在必须返回同一个错误
	if _, _, err := flow.Login(context.Background(), "sarah@parlour.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := flow.Login(context.Background(), "nobody@parlour.com", "pass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if *sideEffects != 0 {
		t.Fatalf("AfterLogin must not run on failed logins")
	}
}

func TestFlowLoginNoStoredPassword(t *testing.T) {
	// 管理员代建的员工没有密码哈希，即使密码"匹配空串"也必须拒绝
	flow, _ := newTestFlow(t, map[string]*testAccount{
		"new@parlour.com": {ID: 8, Email: "new@parlour.com", Hash: ""},
	})

	if _, _, err := flow.Login(context.Background(), "new@parlour.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for passwordless account, got %v", err)
	}
}

func TestFlowLoginSideEffectFailureDoesNotBlock(t *testing.T) {
	hash, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	flow, _ := newTestFlow(t, map[string]*testAccount{
		"sarah@parlour.com": {ID: 3, Email: "sarah@parlour.com", Hash: hash},
	})
	flow.AfterLogin = func(ctx context.Context, a *testAccount) error {
		return errors.New("attendance store is down")
	}

	_, token, err := flow.Login(context.Background(), "sarah@parlour.com", "pass123")
	if err != nil {
		t.Fatalf("side-effect failure must not block the login: %v", err)
	}
	if token == "" {
		t.Fatalf("a valid token must still be issued")
	}
}
