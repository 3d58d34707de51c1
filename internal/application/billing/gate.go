package billing

import (
	"context"
	"time"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// Machine-readable gate denial codes.
const (
	CodeTrialExpired         = "TRIAL_EXPIRED"
	CodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
)

// GateVerdict is the outcome of the subscription gate.
type GateVerdict struct {
	Allowed bool
	Code    string // set when denied
}

// EvaluateGate is the pure gating rule: active and past_due (grace period)
// pass; trialing passes only while the trial is still running; everything
// else requires a subscription.
func EvaluateGate(status string, trialEndsAt *time.Time, now time.Time) GateVerdict {
	switch status {
	case entity.SubscriptionActive, entity.SubscriptionPastDue:
		return GateVerdict{Allowed: true}
	case entity.SubscriptionTrialing:
		if trialEndsAt != nil && trialEndsAt.After(now) {
			return GateVerdict{Allowed: true}
		}
		return GateVerdict{Allowed: false, Code: CodeTrialExpired}
	default:
		return GateVerdict{Allowed: false, Code: CodeSubscriptionRequired}
	}
}

// GateUseCase evaluates the gate for a tenant; consumed by the gating
// middleware and the billing status endpoint.
type GateUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewGateUseCase builds the use case.
func NewGateUseCase(companyRepo repository.CompanyRepository) *GateUseCase {
	return &GateUseCase{companyRepo: companyRepo}
}

// GateForCompany fetches the two fields the rule needs and evaluates it.
func (uc *GateUseCase) GateForCompany(_ context.Context, companyID string) (GateVerdict, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return GateVerdict{}, err
	}
	if company == nil {
		return GateVerdict{}, domain.ErrNotFound
	}
	return EvaluateGate(company.SubscriptionStatus, company.TrialEndsAt, time.Now()), nil
}

// Status returns the verdict plus raw state for UI banners.
func (uc *GateUseCase) Status(ctx context.Context, companyID string) (*dto.BillingStatusResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	verdict := EvaluateGate(company.SubscriptionStatus, company.TrialEndsAt, time.Now())
	resp := &dto.BillingStatusResponse{
		Allowed:            verdict.Allowed,
		Code:               verdict.Code,
		SubscriptionStatus: company.SubscriptionStatus,
	}
	if company.TrialEndsAt != nil {
		resp.TrialEndsAt = company.TrialEndsAt.Format(time.RFC3339)
	}
	return resp, nil
}
