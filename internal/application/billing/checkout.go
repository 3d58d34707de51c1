package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// CheckoutUseCase creates hosted checkout sessions: one shape for the SaaS
// subscription, one for invoice payments.
type CheckoutUseCase struct {
	provider    CheckoutProvider
	companyRepo repository.CompanyRepository
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	refRepo     repository.ReferralRepository
	publicURL   string
}

// NewCheckoutUseCase builds the use case.
func NewCheckoutUseCase(
	provider CheckoutProvider,
	companyRepo repository.CompanyRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	refRepo repository.ReferralRepository,
	publicURL string,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		provider:    provider,
		companyRepo: companyRepo,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		refRepo:     refRepo,
		publicURL:   publicURL,
	}
}

// SubscriptionCheckout starts a subscription purchase for the tenant. The
// optional referral attribution is passed through as metadata so the webhook
// can convert the referral when the session completes.
func (uc *CheckoutUseCase) SubscriptionCheckout(ctx context.Context, companyID, userID string, in dto.SubscriptionCheckoutRequest) (*dto.CheckoutResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.SubscriptionStatus == entity.SubscriptionActive {
		return nil, domain.ErrConflict
	}
	var email string
	if user, err := uc.userRepo.GetByID(userID); err == nil && user != nil {
		email = user.Email
	}
	// Attribution is only forwarded when the landing actually happened; a
	// forged (code, visitor) pair must not be able to mint a commission.
	codeID, visitorID := in.CreatorCodeID, in.VisitorID
	if codeID != "" && visitorID != "" {
		if ref, err := uc.refRepo.Get(codeID, visitorID); err != nil || ref == nil {
			codeID, visitorID = "", ""
		}
	}
	url, _, err := uc.provider.CreateSubscriptionCheckout(ctx, SubscriptionCheckoutParams{
		CompanyID:     companyID,
		CustomerEmail: email,
		CreatorCodeID: codeID,
		VisitorID:     visitorID,
		SuccessURL:    uc.publicURL + "/settings/billing?checkout=success",
		CancelURL:     uc.publicURL + "/settings/billing?checkout=canceled",
	})
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{URL: url}, nil
}

// InvoiceCheckout creates a payment session for an invoice and records the
// session id on the row.
func (uc *CheckoutUseCase) InvoiceCheckout(ctx context.Context, companyID, invoiceID string) (*dto.CheckoutResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if invoice.Status == entity.InvoicePaid || invoice.Status == entity.InvoiceVoid {
		return nil, domain.ErrConflict
	}
	cents := invoice.AmountTotal.Mul(decimal.NewFromInt(100)).IntPart()
	if cents <= 0 {
		return nil, domain.ErrInvalidInput
	}
	url, sessionID, err := uc.provider.CreateInvoiceCheckout(ctx, InvoiceCheckoutParams{
		CompanyID:   companyID,
		InvoiceID:   invoice.ID,
		JobID:       invoice.JobID,
		Description: "Invoice " + invoice.Number,
		AmountCents: cents,
		SuccessURL:  uc.publicURL + "/p/paid",
		CancelURL:   uc.publicURL + "/p/canceled",
	})
	if err != nil {
		return nil, err
	}
	// Losing the session id only costs a dangling reference; the payment
	// itself still lands via the webhook.
	_ = uc.invoiceRepo.SetCheckoutSession(invoice.ID, sessionID)
	return &dto.CheckoutResponse{URL: url}, nil
}
