package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
	"github.com/brushly/brushly-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeLedger struct {
	claimed       map[string]bool
	claimErr      error
	released      []string
	markProcessed []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{claimed: make(map[string]bool)}
}

func (f *fakeLedger) Claim(eventID, _ string, _ time.Time) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	if f.claimed[eventID] {
		return domain.ErrDuplicate
	}
	f.claimed[eventID] = true
	return nil
}

func (f *fakeLedger) MarkProcessed(eventID string, _ time.Time) error {
	f.markProcessed = append(f.markProcessed, eventID)
	return nil
}

func (f *fakeLedger) Release(eventID string) error {
	f.released = append(f.released, eventID)
	delete(f.claimed, eventID)
	return nil
}

type fakeCompanyRepo struct {
	byCustomer map[string]*entity.Company

	activated struct {
		companyID, subscriptionID, customerID string
		calls                                 int
	}
	activateErr error

	statusSet struct {
		companyID, status string
		periodEnd         *time.Time
		calls             int
	}
	canceled []string
}

func (f *fakeCompanyRepo) Create(*entity.Company) error            { return nil }
func (f *fakeCompanyRepo) GetByID(string) (*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Update(*entity.Company) error            { return nil }

func (f *fakeCompanyRepo) GetByStripeCustomerID(customerID string) (*entity.Company, error) {
	return f.byCustomer[customerID], nil
}

func (f *fakeCompanyRepo) ActivateSubscription(id, subscriptionID, stripeCustomerID string) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activated.companyID = id
	f.activated.subscriptionID = subscriptionID
	f.activated.customerID = stripeCustomerID
	f.activated.calls++
	return nil
}

func (f *fakeCompanyRepo) SetSubscriptionStatus(id, status string, periodEnd *time.Time) error {
	f.statusSet.companyID = id
	f.statusSet.status = status
	f.statusSet.periodEnd = periodEnd
	f.statusSet.calls++
	return nil
}

func (f *fakeCompanyRepo) CancelSubscription(id string) error {
	f.canceled = append(f.canceled, id)
	return nil
}

type fakeInvoiceRepo struct {
	repository.InvoiceRepository
	paidID     string
	paidIntent string
}

func (f *fakeInvoiceRepo) MarkPaid(id, paymentIntentID string, _ time.Time) error {
	f.paidID = id
	f.paidIntent = paymentIntentID
	return nil
}

type fakeJobRepo struct {
	repository.JobRepository
	paidID     string
	paidMethod string
}

func (f *fakeJobRepo) MarkPaid(id, method string, _ time.Time) error {
	f.paidID = id
	f.paidMethod = method
	return nil
}

type fakeCodeRepo struct {
	codes       map[string]*entity.CreatorCode
	conversions map[string]int
}

func (f *fakeCodeRepo) GetByID(id string) (*entity.CreatorCode, error)   { return f.codes[id], nil }
func (f *fakeCodeRepo) GetByCode(string) (*entity.CreatorCode, error)    { return nil, nil }
func (f *fakeCodeRepo) IncrementVisits(string) error                     { return nil }
func (f *fakeCodeRepo) IncrementConversions(id string) error {
	if f.conversions == nil {
		f.conversions = make(map[string]int)
	}
	f.conversions[id]++
	return nil
}

type fakeReferralRepo struct {
	converted map[string]bool // key: codeID+"/"+visitorID

	lastCommission decimal.Decimal
	lastCompanyID  string
}

func (f *fakeReferralRepo) Create(*entity.Referral) error                 { return nil }
func (f *fakeReferralRepo) Get(string, string) (*entity.Referral, error)  { return nil, nil }

func (f *fakeReferralRepo) ClaimConversion(codeID, visitorID, companyID string, commission decimal.Decimal, _ time.Time) (bool, error) {
	key := codeID + "/" + visitorID
	if f.converted == nil {
		f.converted = make(map[string]bool)
	}
	if f.converted[key] {
		return false, nil
	}
	f.converted[key] = true
	f.lastCommission = commission
	f.lastCompanyID = companyID
	return true, nil
}

// fakeTxRunner hands the fakes straight to fn; there is no transaction to manage.
type fakeTxRunner struct {
	refRepo  *fakeReferralRepo
	codeRepo *fakeCodeRepo
}

func (f *fakeTxRunner) RunConversion(_ context.Context, fn func(repository.ReferralRepository, repository.CreatorCodeRepository) error) error {
	return fn(f.refRepo, f.codeRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

const testPriceCents = 29900 // $299.00

type webhookFixture struct {
	uc      *WebhookUseCase
	ledger  *fakeLedger
	company *fakeCompanyRepo
	invoice *fakeInvoiceRepo
	job     *fakeJobRepo
	refs    *fakeReferralRepo
	codes   *fakeCodeRepo
}

func newWebhookFixture() *webhookFixture {
	fx := &webhookFixture{
		ledger:  newFakeLedger(),
		company: &fakeCompanyRepo{byCustomer: make(map[string]*entity.Company)},
		invoice: &fakeInvoiceRepo{},
		job:     &fakeJobRepo{},
		refs:    &fakeReferralRepo{},
		codes:   &fakeCodeRepo{codes: make(map[string]*entity.CreatorCode)},
	}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	fx.uc = NewWebhookUseCase(
		fx.ledger, fx.company, fx.invoice, fx.job,
		&fakeTxRunner{refRepo: fx.refs, codeRepo: fx.codes},
		testPriceCents, log,
	)
	return fx
}

func event(t *testing.T, id, evType string, object interface{}) *ProviderEvent {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	return &ProviderEvent{ID: id, Type: evType, Object: raw}
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotency ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_DuplicateEventShortCircuits(t *testing.T) {
	fx := newWebhookFixture()
	ev := event(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":       "cs_1",
		"metadata": map[string]string{"kind": "subscription", "company_id": "co_1"},
	})

	dup, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, 1, fx.company.activated.calls)

	// Redelivery of the same event id: acknowledged as duplicate, no side effects.
	dup, err = fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, 1, fx.company.activated.calls, "redelivery must not re-run the handler")
}

func TestWebhook_HandlerFailureReleasesClaim(t *testing.T) {
	fx := newWebhookFixture()
	fx.company.activateErr = errors.New("db down")
	ev := event(t, "evt_2", "checkout.session.completed", map[string]interface{}{
		"id":       "cs_2",
		"metadata": map[string]string{"kind": "subscription", "company_id": "co_1"},
	})

	dup, err := fx.uc.Process(context.Background(), ev)
	require.Error(t, err)
	assert.False(t, dup)
	assert.Equal(t, []string{"evt_2"}, fx.ledger.released,
		"a failed handler must release the claim so the provider retry is processed")

	// Retry after the failure is cleared: processed normally, not as duplicate.
	fx.company.activateErr = nil
	dup, err = fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, 1, fx.company.activated.calls)
}

func TestWebhook_SuccessMarksProcessed(t *testing.T) {
	fx := newWebhookFixture()
	ev := event(t, "evt_3", "some.unhandled.type", map[string]interface{}{})

	dup, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, []string{"evt_3"}, fx.ledger.markProcessed)
	assert.Empty(t, fx.ledger.released)
}

// ──────────────────────────────────────────────────────────────────────────────
// checkout.session.completed — subscription
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_SubscriptionCompleted_ActivatesCompany(t *testing.T) {
	fx := newWebhookFixture()
	ev := event(t, "evt_4", "checkout.session.completed", map[string]interface{}{
		"id":           "cs_4",
		"customer":     "cus_abc",
		"subscription": "sub_xyz",
		"metadata":     map[string]string{"kind": "subscription", "company_id": "co_9"},
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, "co_9", fx.company.activated.companyID)
	assert.Equal(t, "sub_xyz", fx.company.activated.subscriptionID)
	assert.Equal(t, "cus_abc", fx.company.activated.customerID)
}

func TestWebhook_SubscriptionCompleted_ConvertsReferral(t *testing.T) {
	fx := newWebhookFixture()
	fx.codes.codes["code_1"] = &entity.CreatorCode{
		ID:                "code_1",
		CommissionPercent: decimal.NewFromInt(20),
		Active:            true,
	}
	ev := event(t, "evt_5", "checkout.session.completed", map[string]interface{}{
		"id":           "cs_5",
		"customer":     "cus_abc",
		"subscription": "sub_xyz",
		"metadata": map[string]string{
			"kind":            "subscription",
			"company_id":      "co_9",
			"creator_code_id": "code_1",
			"visitor_id":      "vis_1",
		},
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)

	// $299.00 at 20% is $59.80.
	assert.True(t, decimal.NewFromFloat(59.80).Equal(fx.refs.lastCommission),
		"commission should be 20%% of the subscription price, got %s", fx.refs.lastCommission)
	assert.Equal(t, "co_9", fx.refs.lastCompanyID)
	assert.Equal(t, 1, fx.codes.conversions["code_1"])
}

func TestWebhook_ReferralConversionReplayLeavesCounterAlone(t *testing.T) {
	fx := newWebhookFixture()
	fx.codes.codes["code_1"] = &entity.CreatorCode{ID: "code_1", CommissionPercent: decimal.NewFromInt(20)}
	meta := map[string]string{
		"kind": "subscription", "company_id": "co_9",
		"creator_code_id": "code_1", "visitor_id": "vis_1",
	}

	_, err := fx.uc.Process(context.Background(), event(t, "evt_6", "checkout.session.completed",
		map[string]interface{}{"id": "cs_6", "metadata": meta}))
	require.NoError(t, err)

	// A second completed session for the same (code, visitor) pair: the claim
	// matches nothing, so the counter stays at one.
	_, err = fx.uc.Process(context.Background(), event(t, "evt_7", "checkout.session.completed",
		map[string]interface{}{"id": "cs_7", "metadata": meta}))
	require.NoError(t, err)

	assert.Equal(t, 1, fx.codes.conversions["code_1"])
}

func TestWebhook_ConversionForUnknownCodeIsIgnored(t *testing.T) {
	fx := newWebhookFixture()
	ev := event(t, "evt_8", "checkout.session.completed", map[string]interface{}{
		"id": "cs_8",
		"metadata": map[string]string{
			"kind": "subscription", "company_id": "co_9",
			"creator_code_id": "nope", "visitor_id": "vis_1",
		},
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Empty(t, fx.refs.converted)
	assert.Empty(t, fx.codes.conversions)
}

// ──────────────────────────────────────────────────────────────────────────────
// checkout.session.completed — invoice payment
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_InvoicePaymentCompleted_MarksInvoiceAndJob(t *testing.T) {
	fx := newWebhookFixture()
	ev := event(t, "evt_9", "checkout.session.completed", map[string]interface{}{
		"id":                   "cs_9",
		"payment_intent":       "pi_42",
		"payment_method_types": []string{"us_bank_account"},
		"metadata": map[string]string{
			"kind": "invoice_payment", "company_id": "co_1",
			"invoice_id": "inv_1", "job_id": "job_1",
		},
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, "inv_1", fx.invoice.paidID)
	assert.Equal(t, "pi_42", fx.invoice.paidIntent)
	assert.Equal(t, "job_1", fx.job.paidID)
	assert.Equal(t, "us_bank_account", fx.job.paidMethod)
}

func TestWebhook_InvoicePaymentWithoutMethodDefaultsToCard(t *testing.T) {
	fx := newWebhookFixture()
	ev := event(t, "evt_10", "checkout.session.completed", map[string]interface{}{
		"id": "cs_10",
		"metadata": map[string]string{
			"kind": "invoice_payment", "company_id": "co_1", "job_id": "job_2",
		},
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, "card", fx.job.paidMethod)
}

// ──────────────────────────────────────────────────────────────────────────────
// Subscription lifecycle events
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_SubscriptionUpdated_PropagatesStatusAndPeriodEnd(t *testing.T) {
	fx := newWebhookFixture()
	fx.company.byCustomer["cus_1"] = &entity.Company{ID: "co_1"}
	periodEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	ev := event(t, "evt_11", "customer.subscription.updated", map[string]interface{}{
		"id":                 "sub_1",
		"status":             "past_due",
		"customer":           "cus_1",
		"current_period_end": periodEnd.Unix(),
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, "co_1", fx.company.statusSet.companyID)
	assert.Equal(t, "past_due", fx.company.statusSet.status)
	require.NotNil(t, fx.company.statusSet.periodEnd)
	assert.True(t, periodEnd.Equal(*fx.company.statusSet.periodEnd))
}

func TestWebhook_SubscriptionUpdatedForUnknownCustomerIsIgnored(t *testing.T) {
	fx := newWebhookFixture()
	ev := event(t, "evt_12", "customer.subscription.updated", map[string]interface{}{
		"id": "sub_1", "status": "active", "customer": "cus_missing",
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Zero(t, fx.company.statusSet.calls)
}

func TestWebhook_SubscriptionDeleted_CancelsCompany(t *testing.T) {
	fx := newWebhookFixture()
	fx.company.byCustomer["cus_1"] = &entity.Company{ID: "co_1"}
	ev := event(t, "evt_13", "customer.subscription.deleted", map[string]interface{}{
		"id": "sub_1", "customer": "cus_1",
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, []string{"co_1"}, fx.company.canceled)
}

func TestWebhook_PaymentFailed_MovesCompanyToPastDue(t *testing.T) {
	fx := newWebhookFixture()
	fx.company.byCustomer["cus_1"] = &entity.Company{ID: "co_1", SubscriptionStatus: entity.SubscriptionActive}
	ev := event(t, "evt_14", "invoice.payment_failed", map[string]interface{}{
		"customer": "cus_1",
	})

	_, err := fx.uc.Process(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPastDue, fx.company.statusSet.status)
	assert.Nil(t, fx.company.statusSet.periodEnd)
}

// ──────────────────────────────────────────────────────────────────────────────
// commissionFor
// ──────────────────────────────────────────────────────────────────────────────

func TestCommissionFor_RoundsToCents(t *testing.T) {
	// 29900 cents at 15% -> $44.85
	got := commissionFor(29900, decimal.NewFromInt(15))
	assert.True(t, decimal.NewFromFloat(44.85).Equal(got), "got %s", got)

	// 9999 cents at 33.33% -> 33.326667 -> $33.33
	got = commissionFor(9999, decimal.NewFromFloat(33.33))
	assert.True(t, decimal.NewFromFloat(33.33).Equal(got), "got %s", got)

	// Zero percent owes nothing.
	got = commissionFor(29900, decimal.Zero)
	assert.True(t, got.IsZero())
}
