package entity

import "time"

// Subscription statuses mirror what Stripe reports, plus "trialing" which a
// fresh registration starts in before any checkout happens.
const (
	SubscriptionTrialing   = "trialing"
	SubscriptionActive     = "active"
	SubscriptionPastDue    = "past_due"
	SubscriptionCanceled   = "canceled"
	SubscriptionIncomplete = "incomplete"
)

// Company is the unit of multi-tenant isolation: every business record
// belongs to exactly one.
type Company struct {
	ID                 string
	Name               string
	OwnerUserID        string
	Theme              string // UI theme slug chosen by the owner
	StripeCustomerID   string
	SubscriptionID     string
	SubscriptionStatus string
	TrialEndsAt        *time.Time
	CurrentPeriodEnd   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Membership roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// CompanyUser is the membership join row; it decides authorization for
// nearly every mutation in the system.
type CompanyUser struct {
	ID        string
	UserID    string
	CompanyID string
	Role      string
	CreatedAt time.Time
}
