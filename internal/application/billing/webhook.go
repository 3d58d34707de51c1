package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
	"github.com/brushly/brushly-api/pkg/logger"
)

// Session metadata keys the checkout flow writes and this pipeline reads back.
const (
	metaKind           = "kind"
	kindSubscription   = "subscription"
	kindInvoicePayment = "invoice_payment"
)

// checkoutSessionData is the slice of a checkout.session.completed object we
// consume; everything else in the payload is ignored.
type checkoutSessionData struct {
	ID                 string            `json:"id"`
	Customer           string            `json:"customer"`
	Subscription       string            `json:"subscription"`
	PaymentIntent      string            `json:"payment_intent"`
	PaymentMethodTypes []string          `json:"payment_method_types"`
	Metadata           map[string]string `json:"metadata"`
}

type subscriptionData struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Customer         string `json:"customer"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
}

type invoiceData struct {
	Customer string `json:"customer"`
}

// WebhookUseCase consumes verified provider events behind the idempotency
// ledger. The ledger claim happens first; a handler failure releases the
// claim before the error propagates, so the provider's retry is processed
// instead of being swallowed as a duplicate.
type WebhookUseCase struct {
	ledger      repository.WebhookEventRepository
	companyRepo repository.CompanyRepository
	invoiceRepo repository.InvoiceRepository
	jobRepo     repository.JobRepository
	txRunner    ConversionTxRunner
	priceCents  int64 // fixed subscription price commissions are computed from
	log         *logger.Logger
}

// NewWebhookUseCase builds the use case.
func NewWebhookUseCase(
	ledger repository.WebhookEventRepository,
	companyRepo repository.CompanyRepository,
	invoiceRepo repository.InvoiceRepository,
	jobRepo repository.JobRepository,
	txRunner ConversionTxRunner,
	priceCents int64,
	log *logger.Logger,
) *WebhookUseCase {
	return &WebhookUseCase{
		ledger:      ledger,
		companyRepo: companyRepo,
		invoiceRepo: invoiceRepo,
		jobRepo:     jobRepo,
		txRunner:    txRunner,
		priceCents:  priceCents,
		log:         log,
	}
}

// Process applies one event exactly once. duplicate reports that the event id
// was already claimed and no side effects ran.
func (uc *WebhookUseCase) Process(ctx context.Context, ev *ProviderEvent) (duplicate bool, err error) {
	if err := uc.ledger.Claim(ev.ID, ev.Type, time.Now()); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return true, nil
		}
		return false, err
	}

	if err := uc.dispatch(ctx, ev); err != nil {
		// Release the claim so the provider's retry is not treated as a
		// duplicate of a delivery that never finished.
		if relErr := uc.ledger.Release(ev.ID); relErr != nil {
			uc.log.Error().Err(relErr).Str("event_id", ev.ID).Msg("release webhook claim")
		}
		return false, err
	}

	if err := uc.ledger.MarkProcessed(ev.ID, time.Now()); err != nil {
		// Side effects are already applied; a stuck "processing" row only
		// means a later replay gets answered as duplicate, which is correct.
		uc.log.Warn().Err(err).Str("event_id", ev.ID).Msg("mark webhook processed")
	}
	return false, nil
}

func (uc *WebhookUseCase) dispatch(ctx context.Context, ev *ProviderEvent) error {
	switch ev.Type {
	case "checkout.session.completed":
		var session checkoutSessionData
		if err := json.Unmarshal(ev.Object, &session); err != nil {
			return fmt.Errorf("decode checkout session: %w", err)
		}
		switch session.Metadata[metaKind] {
		case kindSubscription:
			return uc.handleSubscriptionCompleted(ctx, &session)
		case kindInvoicePayment:
			return uc.handleInvoicePaymentCompleted(&session)
		default:
			uc.log.Warn().Str("event_id", ev.ID).Msg("checkout session without a known kind, ignoring")
			return nil
		}
	case "customer.subscription.updated":
		return uc.handleSubscriptionUpdated(ev.Object)
	case "customer.subscription.deleted":
		return uc.handleSubscriptionDeleted(ev.Object)
	case "invoice.payment_failed":
		return uc.handlePaymentFailed(ev.Object)
	default:
		// Unhandled event types are acknowledged without error.
		return nil
	}
}

func (uc *WebhookUseCase) handleSubscriptionCompleted(ctx context.Context, session *checkoutSessionData) error {
	companyID := session.Metadata["company_id"]
	if companyID == "" {
		uc.log.Warn().Str("session", session.ID).Msg("subscription checkout without company_id metadata")
		return nil
	}
	if err := uc.companyRepo.ActivateSubscription(companyID, session.Subscription, session.Customer); err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}

	codeID := session.Metadata["creator_code_id"]
	visitorID := session.Metadata["visitor_id"]
	if codeID == "" || visitorID == "" {
		return nil
	}
	return uc.convertReferral(ctx, codeID, visitorID, companyID)
}

// convertReferral claims the unconverted (code, visitor) row and bumps the
// code's conversion counter in one transaction. The claim's
// converted_at IS NULL guard makes replays and races harmless: the second
// claim matches nothing and the counter is left alone.
func (uc *WebhookUseCase) convertReferral(ctx context.Context, codeID, visitorID, companyID string) error {
	return uc.txRunner.RunConversion(ctx, func(
		refRepo repository.ReferralRepository,
		codeRepo repository.CreatorCodeRepository,
	) error {
		code, err := codeRepo.GetByID(codeID)
		if err != nil {
			return err
		}
		if code == nil {
			uc.log.Warn().Str("creator_code_id", codeID).Msg("conversion for unknown creator code")
			return nil
		}
		commission := commissionFor(uc.priceCents, code.CommissionPercent)
		claimed, err := refRepo.ClaimConversion(codeID, visitorID, companyID, commission, time.Now())
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}
		return codeRepo.IncrementConversions(codeID)
	})
}

// commissionFor computes the payout in dollars from the fixed subscription
// price in cents and the code's percent, rounded to cents.
func commissionFor(priceCents int64, percent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(priceCents).
		Mul(percent).
		Div(decimal.NewFromInt(10000)). // cents -> dollars and percent -> fraction
		Round(2)
}

func (uc *WebhookUseCase) handleInvoicePaymentCompleted(session *checkoutSessionData) error {
	invoiceID := session.Metadata["invoice_id"]
	jobID := session.Metadata["job_id"]
	now := time.Now()
	if invoiceID != "" {
		if err := uc.invoiceRepo.MarkPaid(invoiceID, session.PaymentIntent, now); err != nil {
			return fmt.Errorf("mark invoice paid: %w", err)
		}
	}
	if jobID != "" {
		method := "card"
		if len(session.PaymentMethodTypes) > 0 {
			method = session.PaymentMethodTypes[0]
		}
		if err := uc.jobRepo.MarkPaid(jobID, method, now); err != nil {
			return fmt.Errorf("mark job paid: %w", err)
		}
	}
	return nil
}

func (uc *WebhookUseCase) handleSubscriptionUpdated(object json.RawMessage) error {
	var sub subscriptionData
	if err := json.Unmarshal(object, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}
	company, err := uc.companyRepo.GetByStripeCustomerID(sub.Customer)
	if err != nil {
		return err
	}
	if company == nil {
		uc.log.Warn().Str("stripe_customer", sub.Customer).Msg("subscription update for unknown customer")
		return nil
	}
	var periodEnd *time.Time
	if sub.CurrentPeriodEnd > 0 {
		t := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		periodEnd = &t
	}
	return uc.companyRepo.SetSubscriptionStatus(company.ID, sub.Status, periodEnd)
}

func (uc *WebhookUseCase) handleSubscriptionDeleted(object json.RawMessage) error {
	var sub subscriptionData
	if err := json.Unmarshal(object, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}
	company, err := uc.companyRepo.GetByStripeCustomerID(sub.Customer)
	if err != nil {
		return err
	}
	if company == nil {
		return nil
	}
	return uc.companyRepo.CancelSubscription(company.ID)
}

func (uc *WebhookUseCase) handlePaymentFailed(object json.RawMessage) error {
	var inv invoiceData
	if err := json.Unmarshal(object, &inv); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}
	company, err := uc.companyRepo.GetByStripeCustomerID(inv.Customer)
	if err != nil {
		return err
	}
	if company == nil {
		return nil
	}
	// past_due keeps the tenant working (grace period) while the UI warns the owner.
	return uc.companyRepo.SetSubscriptionStatus(company.ID, entity.SubscriptionPastDue, nil)
}
