package repository

import (
	"github.com/parlour-hub/parlour/backend/internal/domain"
)

// CreateAttendanceRecord 写入一条打卡记录，attendance_records 表只追加，
// 代码中没有任何更新或删除它的路径
func (r *Repository) CreateAttendanceRecord(record *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (employee_id, employee_name, action, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{record.EmployeeID, record.EmployeeName, record.Action, record.Timestamp}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllAttendanceRecords() ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT id, employee_id, employee_name, action, timestamp, created_at
		FROM attendance_records ORDER BY timestamp DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.AttendanceRecord, 0)
	for rows.Next() {
		record := &domain.AttendanceRecord{}
		dst := []any{&record.ID, &record.EmployeeID, &record.EmployeeName, &record.Action, &record.Timestamp, &record.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
