package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind 是令牌所属的主体类别，三类主体共用同一个签名密钥，
// 校验时通过该判别字段拒绝跨类别的令牌
type Kind string

const (
	KindAdmin    Kind = "admin"
	KindEmployee Kind = "employee"
	KindCustomer Kind = "customer"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrForbidden          = errors.New("insufficient role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Claims struct {
	Kind     Kind   `json:"type"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
	Position string `json:"position,omitempty"`
	jwt.RegisteredClaims
}

// PrincipalID 把 subject 还原为主体的数据库 ID
func (c *Claims) PrincipalID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue 签发一个 HS256 令牌。ttl 为非正数时签发的令牌立刻过期，
// 这样的令牌无法通过 Verify
func (i *Issuer) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify 校验签名、有效期和主体类别，任何一项不通过都返回 ErrInvalidToken
func (i *Issuer) Verify(tokenString string, expected Kind) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != expected {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
