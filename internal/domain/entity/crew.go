package entity

import "time"

// Crew is a named paint crew jobs get assigned to; Color is its board color.
type Crew struct {
	ID        string
	CompanyID string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CrewMember is a painter on a crew.
type CrewMember struct {
	ID        string
	CrewID    string
	CompanyID string
	Name      string
	Phone     string
	Role      string // lead, painter, apprentice
	CreatedAt time.Time
}
