package auth

import (
	"slices"
	"strings"
)

// BearerToken 从 Authorization 头中取出 bearer 令牌
func BearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// Authorize 是受保护端点的准入检查：提取 bearer 令牌、按预期类别校验、
// 可选地要求角色匹配。除令牌校验外不做任何 I/O。
// 返回 ErrMissingToken / ErrInvalidToken 时应响应 401，ErrForbidden 时响应 403
func (i *Issuer) Authorize(header string, kind Kind, roles ...string) (*Claims, error) {
	tokenString, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := i.Verify(tokenString, kind)
	if err != nil {
		return nil, err
	}

	if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
		return nil, ErrForbidden
	}

	return claims, nil
}
