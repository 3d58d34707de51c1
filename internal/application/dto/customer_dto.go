package dto

import "time"

// CreateCustomerRequest new customer payload.
type CreateCustomerRequest struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Street string   `json:"street"`
	City   string   `json:"city"`
	State  string   `json:"state"`
	Zip    string   `json:"zip"`
	Tags   []string `json:"tags"`
}

// UpdateCustomerRequest partial update; nil means "leave alone".
type UpdateCustomerRequest struct {
	Name   *string   `json:"name"`
	Email  *string   `json:"email"`
	Phone  *string   `json:"phone"`
	Street *string   `json:"street"`
	City   *string   `json:"city"`
	State  *string   `json:"state"`
	Zip    *string   `json:"zip"`
	Tags   *[]string `json:"tags"`
}

// CustomerResponse public view.
type CustomerResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}
