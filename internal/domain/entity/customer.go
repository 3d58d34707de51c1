package entity

import "time"

// Customer is a homeowner (or property manager) the painting company works for.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Street    string
	City      string
	State     string
	Zip       string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
