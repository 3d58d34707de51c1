package repository

import (
	"time"

	"github.com/brushly/brushly-api/internal/domain/entity"
)

// CompanyRepository is the persistence port for tenants.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByStripeCustomerID(customerID string) (*entity.Company, error)
	Update(company *entity.Company) error

	// ActivateSubscription marks the tenant active and stores the Stripe ids
	// a completed subscription checkout carried.
	ActivateSubscription(id, subscriptionID, stripeCustomerID string) error
	// SetSubscriptionStatus propagates a provider status change.
	// periodEnd may be nil when the event carried none.
	SetSubscriptionStatus(id, status string, periodEnd *time.Time) error
	// CancelSubscription sets status canceled and clears the subscription id.
	CancelSubscription(id string) error
}
