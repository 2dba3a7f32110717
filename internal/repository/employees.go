package repository

import (
	"database/sql"

	"github.com/parlour-hub/parlour/backend/internal/domain"
)

// GetActiveEmployeeByEmail 只返回在职员工，离职员工即使密码正确也无法登录
func (r *Repository) GetActiveEmployeeByEmail(email string) (*domain.Employee, error) {
	query := `
		SELECT id, name, position, phone, password_hash, is_active, created_at, updated_at
		FROM employees WHERE email = $1 AND is_active = TRUE
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	employee := &domain.Employee{
		Email: email,
	}

	dst := []any{&employee.ID, &employee.Name, &employee.Position, &employee.Phone, &employee.PasswordHash, &employee.IsActive, &employee.CreatedAt, &employee.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT name, position, email, phone, password_hash, is_active, created_at, updated_at
		FROM employees WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	dst := []any{&employee.Name, &employee.Position, &employee.Email, &employee.Phone, &employee.PasswordHash, &employee.IsActive, &employee.CreatedAt, &employee.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, name, position, email, phone, password_hash, is_active, created_at, updated_at
		FROM employees ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.ID, &employee.Name, &employee.Position, &employee.Email, &employee.Phone, &employee.PasswordHash, &employee.IsActive, &employee.CreatedAt, &employee.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	query := `
		INSERT INTO employees (name, position, email, phone, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{employee.Name, employee.Position, employee.Email, employee.Phone, employee.PasswordHash, employee.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			name = $1,
			position = $2,
			email = $3,
			phone = $4,
			is_active = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{employee.Name, employee.Position, employee.Email, employee.Phone, employee.IsActive, employee.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
