package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword 生成带随机盐的 bcrypt 哈希，同一明文两次调用的结果不同
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 校验明文和哈希是否匹配，哈希格式损坏时一律返回 false
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
