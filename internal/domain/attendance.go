package domain

import (
	"time"
)

type AttendanceAction string

const (
	ActionPunchIn  AttendanceAction = "punch_in"
	ActionPunchOut AttendanceAction = "punch_out"
)

// AttendanceRecord 是只追加的打卡记录，写入后不会被更新或删除。
// EmployeeName 是写入时刻的快照，员工改名后不会同步
type AttendanceRecord struct {
	ID           int64            `json:"id"`
	EmployeeID   int64            `json:"employeeId"`
	EmployeeName string           `json:"employeeName"`
	Action       AttendanceAction `json:"action"`
	Timestamp    time.Time        `json:"timestamp"`
	CreatedAt    time.Time        `json:"createdAt"`
}
