package domain

import (
	"time"
)

// Employee 是门店员工。管理员代建的员工没有密码哈希，
// 在通过注册入口设置密码之前无法登录
type Employee struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash *string   `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
