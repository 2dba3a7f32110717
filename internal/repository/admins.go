package repository

import (
	"github.com/parlour-hub/parlour/backend/internal/domain"
)

func (r *Repository) GetAdminByEmail(email string) (*domain.AdminUser, error) {
	query := `
		SELECT id, name, role, password_hash, created_at, updated_at
		FROM admin_users WHERE email = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	admin := &domain.AdminUser{
		Email: email,
	}

	dst := []any{&admin.ID, &admin.Name, &admin.Role, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return admin, nil
}

func (r *Repository) CreateAdmin(admin *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{admin.Email, admin.Name, admin.Role, admin.PasswordHash}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return err
	}

	return nil
}
