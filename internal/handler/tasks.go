package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/parlour-hub/parlour/backend/internal/domain"
)

func (h *Handler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repository.GetAllTasks()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, tasks)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string `json:"title" validate:"required"`
		AssignedTo string `json:"assignedTo" validate:"required"`
		Status     string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
		Priority   string `json:"priority" validate:"omitempty,oneof=low medium high"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Status == "" {
		req.Status = string(domain.TaskStatusPending)
	}
	if req.Priority == "" {
		req.Priority = string(domain.TaskPriorityMedium)
	}

	task := &domain.Task{
		Title:      req.Title,
		AssignedTo: req.AssignedTo,
		Status:     domain.TaskStatus(req.Status),
		Priority:   domain.TaskPriority(req.Priority),
	}

	if err := h.repository.CreateTask(task); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, task)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	var req struct {
		Title      *string `json:"title"`
		AssignedTo *string `json:"assignedTo"`
		Status     *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
		Priority   *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.AssignedTo != nil {
		task.AssignedTo = *req.AssignedTo
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}

	if err := h.repository.UpdateTask(task); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, task)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task := r.Context().Value(TaskCtx).(*domain.Task)

	if err := h.repository.DeleteTask(task.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "Task not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Task deleted"})
}
