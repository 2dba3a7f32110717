package utils

import (
	"fmt"
	"math/rand"
)

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

var digits = "0123456789"

// GenerateRandomPhone 生成种子数据用的美式格式电话号码
func GenerateRandomPhone() string {
	phone := make([]byte, 0, 12)
	for i := 0; i < 10; i++ {
		if i == 3 || i == 6 {
			phone = append(phone, '-')
		}
		phone = append(phone, digits[rand.Intn(len(digits))])
	}
	return string(phone)
}
