package dto

import "time"

// RegisterRequest creates a user plus their company in one step.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
}

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse public view of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token plus user and company context.
type LoginResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	CompanyID string       `json:"company_id"`
	Role      string       `json:"role"`
}
