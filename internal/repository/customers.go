package repository

import (
	"encoding/json"
	"time"

	"github.com/parlour-hub/parlour/backend/internal/domain"
)

func (r *Repository) GetCustomerByEmail(email string) (*domain.Customer, error) {
	query := `
		SELECT id, name, phone, password_hash, address, date_of_birth, preferences, created_at, updated_at
		FROM customers WHERE email = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	customer := &domain.Customer{
		Email: email,
	}

	var preferences []byte
	dst := []any{&customer.ID, &customer.Name, &customer.Phone, &customer.PasswordHash, &customer.Address, &customer.DateOfBirth, &preferences, &customer.CreatedAt, &customer.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	if preferences != nil {
		customer.Preferences = &domain.CustomerPreferences{}
		if err := json.Unmarshal(preferences, customer.Preferences); err != nil {
			return nil, err
		}
	}

	return customer, nil
}

func (r *Repository) CreateCustomer(customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone, password_hash, address, date_of_birth, preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var preferences []byte
	if customer.Preferences != nil {
		data, err := json.Marshal(customer.Preferences)
		if err != nil {
			return err
		}
		preferences = data
	}

	args := []any{customer.Name, customer.Email, customer.Phone, customer.PasswordHash, customer.Address, customer.DateOfBirth, preferences}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCustomerPassword(id int64, passwordHash string) error {
	query := `
		UPDATE customers
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var updatedAt time.Time
	if err := r.dbpool.QueryRowContext(ctx, query, passwordHash, id).Scan(&updatedAt); err != nil {
		return err
	}

	return nil
}
