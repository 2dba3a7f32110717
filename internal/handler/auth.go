package handler

import (
	"errors"
	"net/http"

	"github.com/parlour-hub/parlour/backend/internal/auth"
)

// AdminLogin 处理后台管理员登录。管理员没有注册入口，
// 账号只能由启动时的初始化或种子数据创建
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	admin, token, err := h.adminFlow.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.errorResponse(w, r, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"user":  admin,
		"token": token,
	})
}
