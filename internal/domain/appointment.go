package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

// Appointment 中的顾客信息在预约创建时从令牌快照而来
type Appointment struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customerId"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	Service       string            `json:"service"`
	AssignedStaff string            `json:"assignedStaff"`
	Date          time.Time         `json:"date"`
	Time          string            `json:"time"`
	Duration      int32             `json:"duration"` // 单位为分钟
	Status        AppointmentStatus `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
