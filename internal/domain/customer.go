package domain

import (
	"time"
)

type CustomerPreferences struct {
	Services       []string `json:"services"`
	PreferredStaff []string `json:"preferredStaff,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type Customer struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	PasswordHash string               `json:"-"`
	Address      *string              `json:"address,omitempty"`
	DateOfBirth  *time.Time           `json:"dateOfBirth,omitempty"`
	Preferences  *CustomerPreferences `json:"preferences,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}
