package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brushly/brushly-api/internal/application/authz"
	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
	apphttp "github.com/brushly/brushly-api/internal/interfaces/http"
	pkgjwt "github.com/brushly/brushly-api/pkg/jwt"
	"github.com/brushly/brushly-api/pkg/ratelimit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "brushly-test"
	testExpMin    = 60
)

type fakeMemberRepo struct {
	members map[string]*entity.CompanyUser // key: userID+"/"+companyID
}

func (f *fakeMemberRepo) Create(*entity.CompanyUser) error { return nil }

func (f *fakeMemberRepo) Get(userID, companyID string) (*entity.CompanyUser, error) {
	return f.members[userID+"/"+companyID], nil
}

func (f *fakeMemberRepo) ListByUser(userID string) ([]*entity.CompanyUser, error) {
	var out []*entity.CompanyUser
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	repository.CompanyRepository
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}

// fixture is one company with one member, plus a second company the user does
// not belong to.
type fixture struct {
	members   *fakeMemberRepo
	companies *fakeCompanyRepo
}

func newFixture() *fixture {
	trialEnd := time.Now().Add(14 * 24 * time.Hour)
	fx := &fixture{
		members:   &fakeMemberRepo{members: make(map[string]*entity.CompanyUser)},
		companies: &fakeCompanyRepo{companies: make(map[string]*entity.Company)},
	}
	fx.companies.companies[testCompanyID] = &entity.Company{
		ID:                 testCompanyID,
		Name:               "Fresh Coat Co",
		SubscriptionStatus: entity.SubscriptionTrialing,
		TrialEndsAt:        &trialEnd,
	}
	fx.companies.companies["other-company"] = &entity.Company{
		ID:                 "other-company",
		SubscriptionStatus: entity.SubscriptionActive,
	}
	fx.members.members[testUserID+"/"+testCompanyID] = &entity.CompanyUser{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Role:      entity.RoleOwner,
	}
	return fx
}

// buildApp wires the real middleware chain over fakes:
// AuthMiddleware -> TenantMiddleware -> RequireSubscription -> dummy handler.
func (fx *fixture) buildApp() *fiber.App {
	authorizer := authz.New(fx.members, fx.companies)
	gate := billing.NewGateUseCase(fx.companies)

	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.TenantMiddleware(authorizer),
		apphttp.RequireSubscription(gate),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	return app
}

func bearerToken(t *testing.T, userID, companyID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, companyID, entity.RoleOwner, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader, companyHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if companyHeader != "" {
		req.Header.Set("X-Company-ID", companyHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_MissingHeader(t *testing.T) {
	app := newFixture().buildApp()
	resp := doRequest(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuth_MalformedToken(t *testing.T) {
	app := newFixture().buildApp()
	resp := doRequest(t, app, "Bearer not.a.token", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuth_WrongSecret(t *testing.T) {
	app := newFixture().buildApp()
	tok, err := pkgjwt.Generate("another-secret-entirely", testUserID, testCompanyID, "owner", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// TenantMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestTenant_MemberPassesAndLocalsAreVerified(t *testing.T) {
	app := newFixture().buildApp()
	resp := doRequest(t, app, bearerToken(t, testUserID, testCompanyID), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleOwner, body["role"])
}

func TestTenant_NonMemberCompanyInHeaderIsForbidden(t *testing.T) {
	// The token is valid, but the X-Company-ID header points at a company the
	// user does not belong to. The DB check must win over the claim.
	app := newFixture().buildApp()
	resp := doRequest(t, app, bearerToken(t, testUserID, testCompanyID), "other-company")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestTenant_NonMemberCompanyInClaimIsForbidden(t *testing.T) {
	// A forged or stale claim naming someone else's company must not grant access.
	app := newFixture().buildApp()
	resp := doRequest(t, app, bearerToken(t, testUserID, "other-company"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTenant_UnknownCompanyIs404(t *testing.T) {
	app := newFixture().buildApp()
	resp := doRequest(t, app, bearerToken(t, testUserID, "no-such-company"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTenant_EmptyClaimFallsBackToSoleMembership(t *testing.T) {
	// Tokens issued before a company was selected carry no company_id; a user
	// with exactly one membership is routed to it.
	app := newFixture().buildApp()
	resp := doRequest(t, app, bearerToken(t, testUserID, ""), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testCompanyID, body["company_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireSubscription
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_ExpiredTrialGets402(t *testing.T) {
	fx := newFixture()
	past := time.Now().Add(-time.Hour)
	fx.companies.companies[testCompanyID].TrialEndsAt = &past

	resp := doRequest(t, fx.buildApp(), bearerToken(t, testUserID, testCompanyID), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TRIAL_EXPIRED")
}

func TestGate_CanceledSubscriptionGets402(t *testing.T) {
	fx := newFixture()
	fx.companies.companies[testCompanyID].SubscriptionStatus = entity.SubscriptionCanceled
	fx.companies.companies[testCompanyID].TrialEndsAt = nil

	resp := doRequest(t, fx.buildApp(), bearerToken(t, testUserID, testCompanyID), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SUBSCRIPTION_REQUIRED")
}

func TestGate_ActiveSubscriptionPasses(t *testing.T) {
	fx := newFixture()
	fx.companies.companies[testCompanyID].SubscriptionStatus = entity.SubscriptionActive

	resp := doRequest(t, fx.buildApp(), bearerToken(t, testUserID, testCompanyID), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RateLimit
// ──────────────────────────────────────────────────────────────────────────────

func TestRateLimit_DeniesAfterLimitWithRetryAfter(t *testing.T) {
	store := ratelimit.New("test", 2, time.Minute)
	app := fiber.New()
	app.Post("/checkout", apphttp.RateLimit(store), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	hit := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	for i := 0; i < 2; i++ {
		resp := hit()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := hit()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "RATE_LIMITED")
}
