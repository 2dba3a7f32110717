package handler

import (
	"net/http"
	"time"

	"github.com/parlour-hub/parlour/backend/internal/auth"
	"github.com/parlour-hub/parlour/backend/internal/domain"
)

func (h *Handler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.repository.GetAllAppointments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, appointments)
}

// UpdateAppointment 供后台调整预约的安排和状态，顾客信息快照不可改
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	var req struct {
		Service       *string    `json:"service"`
		AssignedStaff *string    `json:"assignedStaff"`
		Date          *time.Time `json:"date"`
		Time          *string    `json:"time"`
		Duration      *int32     `json:"duration" validate:"omitempty,min=1"`
		Status        *string    `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
		Notes         *string    `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Service != nil {
		appointment.Service = *req.Service
	}
	if req.AssignedStaff != nil {
		appointment.AssignedStaff = *req.AssignedStaff
	}
	if req.Date != nil {
		appointment.Date = *req.Date
	}
	if req.Time != nil {
		appointment.Time = *req.Time
	}
	if req.Duration != nil {
		appointment.Duration = *req.Duration
	}
	if req.Status != nil {
		appointment.Status = domain.AppointmentStatus(*req.Status)
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := h.repository.UpdateAppointment(appointment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, appointment)
}

func (h *Handler) GetCustomerAppointments(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(ClaimsCtxKey).(*auth.Claims)

	customerID, err := claims.PrincipalID()
	if err != nil {
		h.errorResponse(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	appointments, err := h.repository.GetAppointmentsByCustomer(customerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, appointments)
}

// CreateCustomerAppointment 是顾客的自助预约。顾客的身份信息从令牌
// 快照到预约记录上，请求体无法冒充他人
func (h *Handler) CreateCustomerAppointment(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(ClaimsCtxKey).(*auth.Claims)

	var req struct {
		Service       string    `json:"service" validate:"required"`
		AssignedStaff string    `json:"assignedStaff"`
		Date          time.Time `json:"date" validate:"required"`
		Time          string    `json:"time" validate:"required"`
		Duration      int32     `json:"duration" validate:"required,min=1"`
		Notes         string    `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	customerID, err := claims.PrincipalID()
	if err != nil {
		h.errorResponse(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	appointment := &domain.Appointment{
		CustomerID:    customerID,
		CustomerName:  claims.Name,
		CustomerEmail: claims.Email,
		Service:       req.Service,
		AssignedStaff: req.AssignedStaff,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
		Status:        domain.AppointmentScheduled,
		Notes:         req.Notes,
	}

	if err := h.repository.CreateAppointment(appointment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.queueMail(domain.MailMessage{
		Type: "appointment_booked",
		To:   appointment.CustomerEmail,
		Data: domain.AppointmentBookedMailData{
			Name:          appointment.CustomerName,
			Service:       appointment.Service,
			AssignedStaff: appointment.AssignedStaff,
			Date:          appointment.Date.Format("2006-01-02"),
			Time:          appointment.Time,
		},
	})

	h.writeJSON(w, r, http.StatusCreated, appointment)
}
