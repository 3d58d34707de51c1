package dto

// ReferralVisitRequest records a landing through a creator code.
type ReferralVisitRequest struct {
	VisitorID string `json:"visitor_id"`
}

// CreatorCodeResponse public validation view (no counters leaked).
type CreatorCodeResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	OwnerName string `json:"owner_name"`
	Active    bool   `json:"active"`
}
