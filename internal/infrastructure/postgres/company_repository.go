package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implements CompanyRepository (usable with pool or tx).
type CompanyRepo struct {
	q Querier
}

func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, owner_user_id, theme, stripe_customer_id, subscription_id,
		subscription_status, trial_ends_at, current_period_end, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.OwnerUserID, &c.Theme, &c.StripeCustomerID, &c.SubscriptionID,
		&c.SubscriptionStatus, &c.TrialEndsAt, &c.CurrentPeriodEnd, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.OwnerUserID, company.Theme,
		company.StripeCustomerID, company.SubscriptionID, company.SubscriptionStatus,
		company.TrialEndsAt, company.CurrentPeriodEnd, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.q.QueryRow(context.Background(), query, id))
}

func (r *CompanyRepo) GetByStripeCustomerID(customerID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE stripe_customer_id = $1`
	return scanCompany(r.q.QueryRow(context.Background(), query, customerID))
}

func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, theme = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Theme, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// ActivateSubscription stores the Stripe ids from a completed checkout and
// flips the tenant to active. Also clears trial_ends_at; the trial is over
// either way.
func (r *CompanyRepo) ActivateSubscription(id, subscriptionID, stripeCustomerID string) error {
	query := `
		UPDATE companies
		SET subscription_id = $2, stripe_customer_id = $3,
		    subscription_status = 'active', trial_ends_at = NULL, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, subscriptionID, stripeCustomerID)
	if err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) SetSubscriptionStatus(id, status string, periodEnd *time.Time) error {
	query := `
		UPDATE companies
		SET subscription_status = $2,
		    current_period_end = COALESCE($3, current_period_end),
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, periodEnd)
	if err != nil {
		return fmt.Errorf("set subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) CancelSubscription(id string) error {
	query := `
		UPDATE companies
		SET subscription_status = 'canceled', subscription_id = '', updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
