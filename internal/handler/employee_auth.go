package handler

import (
	"errors"
	"net/http"

	"github.com/parlour-hub/parlour/backend/internal/auth"
	"github.com/parlour-hub/parlour/backend/internal/domain"
	"github.com/parlour-hub/parlour/backend/internal/repository"
)

// EmployeeLogin 处理员工登录，认证成功会顺带写入一条上班打卡记录
func (h *Handler) EmployeeLogin(w http.ResponseWriter, r *http.Request) {
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

	employee, token, err := h.employeeFlow.Login(r.Context(), req.Email, req.Password)
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
		"employee": employee,
		"token":    token,
		"message":  "Login successful - attendance marked",
	})
}

func (h *Handler) EmployeeSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Position string `json:"position" validate:"required"`
		Phone    string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employee := &domain.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		Phone:        req.Phone,
		PasswordHash: &passwordHash,
		IsActive:     true,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		switch {
		case repository.IsUniqueViolation(err, "employees_email_key"):
			h.errorResponse(w, r, http.StatusConflict, "Employee with this email already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, err := h.employeeFlow.IssueToken(employee)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{
		"employee": employee,
		"token":    token,
		"message":  "Signup successful",
	})
}
