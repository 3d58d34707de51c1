package dto

// SubscriptionCheckoutRequest starts a subscription checkout. The referral
// fields are optional attribution the marketing site passes along.
type SubscriptionCheckoutRequest struct {
	CreatorCodeID string `json:"creator_code_id"`
	VisitorID     string `json:"visitor_id"`
}

// BillingStatusResponse the gate verdict plus raw state for UI banners.
type BillingStatusResponse struct {
	Allowed            bool   `json:"allowed"`
	Code               string `json:"code,omitempty"` // TRIAL_EXPIRED | SUBSCRIPTION_REQUIRED
	SubscriptionStatus string `json:"subscription_status"`
	TrialEndsAt        string `json:"trial_ends_at,omitempty"`
}

// WebhookAck body returned to the provider.
type WebhookAck struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
}
