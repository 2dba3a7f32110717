package handler

import (
	"net/http"
	"time"

	"github.com/parlour-hub/parlour/backend/internal/auth"
	"github.com/parlour-hub/parlour/backend/internal/domain"
)

func (h *Handler) GetAttendanceRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.repository.GetAllAttendanceRecords()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, records)
}

// CreateAttendanceRecord 是员工手动打卡。员工身份完全取自令牌，
// 请求体只携带打卡动作
func (h *Handler) CreateAttendanceRecord(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(ClaimsCtxKey).(*auth.Claims)

	var req struct {
		Action string `json:"action" validate:"required,oneof=punch_in punch_out"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employeeID, err := claims.PrincipalID()
	if err != nil {
		h.errorResponse(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	record := &domain.AttendanceRecord{
		EmployeeID:   employeeID,
		EmployeeName: claims.Name,
		Action:       domain.AttendanceAction(req.Action),
		Timestamp:    time.Now(),
	}

	if err := h.repository.CreateAttendanceRecord(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, record)
}
