package dto

import "time"

// UpdateCompanyRequest whitelisted company fields; nil means "leave alone".
type UpdateCompanyRequest struct {
	Name  *string `json:"name"`
	Theme *string `json:"theme"`
}

// CompanyResponse public view of the tenant, including the billing state the
// UI needs for trial banners.
type CompanyResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Theme              string     `json:"theme"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}
