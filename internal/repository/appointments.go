package repository

import (
	"database/sql"

	"github.com/parlour-hub/parlour/backend/internal/domain"
)

// GetAllAppointments 按预约日期升序，供后台的日程视图使用
func (r *Repository) GetAllAppointments() ([]*domain.Appointment, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_email, service, assigned_staff,
		       date, time, duration, status, notes, created_at, updated_at
		FROM appointments ORDER BY date ASC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetAppointmentsByCustomer 按日期降序返回某个顾客自己的预约
func (r *Repository) GetAppointmentsByCustomer(customerID int64) ([]*domain.Appointment, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_email, service, assigned_staff,
		       date, time, duration, status, notes, created_at, updated_at
		FROM appointments WHERE customer_id = $1 ORDER BY date DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{}
		dst := []any{
			&appointment.ID, &appointment.CustomerID, &appointment.CustomerName, &appointment.CustomerEmail,
			&appointment.Service, &appointment.AssignedStaff, &appointment.Date, &appointment.Time,
			&appointment.Duration, &appointment.Status, &appointment.Notes, &appointment.CreatedAt, &appointment.UpdatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `
		SELECT customer_id, customer_name, customer_email, service, assigned_staff,
		       date, time, duration, status, notes, created_at, updated_at
		FROM appointments WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	appointment := &domain.Appointment{
		ID: id,
	}

	dst := []any{
		&appointment.CustomerID, &appointment.CustomerName, &appointment.CustomerEmail,
		&appointment.Service, &appointment.AssignedStaff, &appointment.Date, &appointment.Time,
		&appointment.Duration, &appointment.Status, &appointment.Notes, &appointment.CreatedAt, &appointment.UpdatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (r *Repository) CreateAppointment(appointment *domain.Appointment) error {
	query := `
		INSERT INTO appointments (customer_id, customer_name, customer_email, service, assigned_staff,
		                          date, time, duration, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		appointment.CustomerID, appointment.CustomerName, appointment.CustomerEmail,
		appointment.Service, appointment.AssignedStaff, appointment.Date, appointment.Time,
		appointment.Duration, appointment.Status, appointment.Notes,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateAppointment(appointment *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET
			service = $1,
			assigned_staff = $2,
			date = $3,
			time = $4,
			duration = $5,
			status = $6,
			notes = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		appointment.Service, appointment.AssignedStaff, appointment.Date, appointment.Time,
		appointment.Duration, appointment.Status, appointment.Notes, appointment.ID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.UpdatedAt); err != nil {
		return err
	}

	return nil
}
