package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/parlour-hub/parlour/backend/internal/auth"
	"github.com/parlour-hub/parlour/backend/internal/domain"
	"github.com/parlour-hub/parlour/backend/internal/repository"
	"github.com/parlour-hub/parlour/backend/internal/utils"
)

func (h *Handler) CustomerLogin(w http.ResponseWriter, r *http.Request) {
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

	customer, token, err := h.customerFlow.Login(r.Context(), req.Email, req.Password)
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
		"customer": customer,
		"token":    token,
	})
}

func (h *Handler) CustomerSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string                      `json:"name" validate:"required"`
		Email       string                      `json:"email" validate:"required,email"`
		Password    string                      `json:"password" validate:"required,min=6"`
		Phone       string                      `json:"phone" validate:"required"`
		Address     *string                     `json:"address"`
		DateOfBirth *time.Time                  `json:"dateOfBirth"`
		Preferences *domain.CustomerPreferences `json:"preferences"`
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

	customer := &domain.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Address:      req.Address,
		DateOfBirth:  req.DateOfBirth,
		Preferences:  req.Preferences,
	}

	if err := h.repository.CreateCustomer(customer); err != nil {
		switch {
		case repository.IsUniqueViolation(err, "customers_email_key"):
			h.errorResponse(w, r, http.StatusConflict, "Customer with this email already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, err := h.customerFlow.IssueToken(customer)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{
		"customer": customer,
		"token":    token,
		"message":  "Signup successful",
	})
}

func (h *Handler) resetPasswordOTPKey(email string) string {
	return fmt.Sprintf("otp_reset_password_%s", email)
}

// RequireCustomerResetPassword 生成重置密码的验证码并通过邮件发送。
// 即便邮箱不存在也返回成功，防止该接口被用来探测哪些邮箱已注册
func (h *Handler) RequireCustomerResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	customer, err := h.repository.GetCustomerByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Verification code sent"})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, h.resetPasswordOTPKey(customer.Email), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.queueMail(domain.MailMessage{
		Type: "reset_password",
		To:   customer.Email,
		Data: domain.ResetPasswordMailData{
			Name:       customer.Name,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // 邮件里按分钟展示
		},
	})

	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Verification code sent"})
}

func (h *Handler) ConfirmCustomerResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, h.resetPasswordOTPKey(req.Email)).Result()
	if err != nil || otp != req.OTP {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid verification code")
		return
	}

	customer, err := h.repository.GetCustomerByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid verification code")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.UpdateCustomerPassword(customer.ID, passwordHash); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 验证码一次性使用，删除失败不影响结果，过期时间会兜底
	h.redisClient.Del(ctx, h.resetPasswordOTPKey(req.Email))

	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Password reset successful"})
}
