package repository

import (
	"database/sql"

	"github.com/parlour-hub/parlour/backend/internal/domain"
)

func (r *Repository) GetAllTasks() ([]*domain.Task, error) {
	query := `
		SELECT id, title, assigned_to, status, priority, created_at, updated_at
		FROM tasks ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task := &domain.Task{}
		dst := []any{&task.ID, &task.Title, &task.AssignedTo, &task.Status, &task.Priority, &task.CreatedAt, &task.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *Repository) GetTaskByID(id int64) (*domain.Task, error) {
	query := `
		SELECT title, assigned_to, status, priority, created_at, updated_at
		FROM tasks WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	task := &domain.Task{
		ID: id,
	}

	dst := []any{&task.Title, &task.AssignedTo, &task.Status, &task.Priority, &task.CreatedAt, &task.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *Repository) CreateTask(task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, assigned_to, status, priority)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{task.Title, task.AssignedTo, task.Status, task.Priority}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateTask(task *domain.Task) error {
	query := `
		UPDATE tasks
		SET
			title = $1,
			assigned_to = $2,
			status = $3,
			priority = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{task.Title, task.AssignedTo, task.Status, task.Priority, task.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&task.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTask(id int64) error {
	query := `
		DELETE FROM tasks WHERE id = $1
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
