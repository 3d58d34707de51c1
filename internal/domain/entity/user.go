package entity

import "time"

// User is an account holder; company access goes through CompanyUser rows.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
