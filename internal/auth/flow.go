package auth

import (
	"context"
	"log/slog"
	"time"
)

// Flow 是按主体类别参数化的登录流程。三类主体的登录逻辑完全同形，
// 只在存储查询、声明内容和登录后副作用上有差异，差异全部收敛在这里的字段中
type Flow[T any] struct {
	Kind   Kind
	TTL    time.Duration
	Issuer *Issuer

	// Lookup 按邮箱查找主体，未找到时返回 found == false 而不是错误
	Lookup func(ctx context.Context, email string) (T, bool, error)
	// PasswordHash 返回主体存储的密码哈希，空字符串表示该账号没有设置过密码
	PasswordHash func(principal T) string
	// Claims 构造该主体的令牌声明，Kind 字段由 Login 统一填充
	Claims func(principal T) Claims
	// AfterLogin 是认证成功后的副作用（如员工登录自动打卡）。
	// 它是尽力而为的：失败只记录日志，绝不阻断登录
	AfterLogin func(ctx context.Context, principal T) error
}

// Login 校验邮箱和密码并签发令牌。邮箱不存在和密码错误返回同一个
// ErrInvalidCredentials，避免泄露哪些邮箱已注册
func (f *Flow[T]) Login(ctx context.Context, email, password string) (T, string, error) {
	var zero T

	principal, found, err := f.Lookup(ctx, email)
	if err != nil {
		return zero, "", err
	}
	if !found {
		return zero, "", ErrInvalidCredentials
	}

	hash := f.PasswordHash(principal)
	if hash == "" || !VerifyPassword(password, hash) {
		return zero, "", ErrInvalidCredentials
	}

	if f.AfterLogin != nil {
		if err := f.AfterLogin(ctx, principal); err != nil {
			slog.Error("登录后副作用执行失败", "kind", f.Kind, "email", email, "error", err)
		}
	}

	token, err := f.IssueToken(principal)
	if err != nil {
		return zero, "", err
	}

	return principal, token, nil
}

// IssueToken 为主体签发本类别的令牌，注册成功后也会用到
func (f *Flow[T]) IssueToken(principal T) (string, error) {
	claims := f.Claims(principal)
	claims.Kind = f.Kind
	return f.Issuer.Issue(claims, f.TTL)
}
