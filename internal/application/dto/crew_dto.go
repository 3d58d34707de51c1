package dto

import "time"

// CreateCrewRequest new crew payload.
type CreateCrewRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CrewMemberRequest member payload.
type CrewMemberRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// CrewMemberResponse member view.
type CrewMemberResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// CrewResponse crew with members.
type CrewResponse struct {
	ID        string               `json:"id"`
	CompanyID string               `json:"company_id"`
	Name      string               `json:"name"`
	Color     string               `json:"color"`
	Members   []CrewMemberResponse `json:"members,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}
