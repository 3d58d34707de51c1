package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/auth"
	"github.com/brushly/brushly-api/internal/application/authz"
	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/internal/application/estimate"
	"github.com/brushly/brushly-api/internal/application/publiclink"
	"github.com/brushly/brushly-api/internal/application/referral"
	"github.com/brushly/brushly-api/internal/application/usecase"
	"github.com/brushly/brushly-api/pkg/logger"
	"github.com/brushly/brushly-api/pkg/ratelimit"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	Authorizer *authz.Authorizer

	CompanyUC   *usecase.CompanyUseCase
	CustomerUC  *usecase.CustomerUseCase
	JobUC       *usecase.JobUseCase
	InventoryUC *usecase.InventoryUseCase
	CrewUC      *usecase.CrewUseCase
	TemplateUC  *usecase.TemplateUseCase
	InvoiceUC   *usecase.InvoiceUseCase

	EstimateUC    *estimate.UseCase
	EstimatePDFUC *estimate.PDFUseCase

	GateUC     *billing.GateUseCase
	CheckoutUC *billing.CheckoutUseCase
	WebhookUC  *billing.WebhookUseCase
	Verifier   billing.EventVerifier

	Resolver   *publiclink.Resolver
	ReferralUC *referral.UseCase

	CheckoutLimiter *ratelimit.Store
	JWTSecret       string
	Log             *logger.Logger
}

// Router registers the API routes.
//
// Route tiers:
//   - public: auth, webhooks, token links, referral landings
//   - authenticated: Bearer token + verified company membership
//   - gated: authenticated routes that additionally require a live
//     trial or subscription
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Provider webhooks (public, signature-verified inside the handler)
	billingHandler := NewBillingHandler(deps.GateUC, deps.CheckoutUC, deps.WebhookUC, deps.Verifier, deps.Log)
	api.Post("/webhooks/stripe", billingHandler.Webhook)

	// Public links and referral landings (no auth; the token is the credential)
	public := api.Group("/public")
	publicHandler := NewPublicHandler(deps.Resolver, deps.EstimateUC, deps.ReferralUC)
	public.Get("/links/:token", publicHandler.Resolve)
	public.Get("/jobs/:token", publicHandler.Job)
	public.Get("/estimates/:token", publicHandler.Estimate)
	public.Post("/estimates/:token/respond", publicHandler.RespondEstimate)
	public.Get("/referrals/:code", publicHandler.ValidateCode)
	public.Post("/referrals/:code/visits", publicHandler.RecordVisit)

	// Authenticated: token plus a database-verified membership.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), TenantMiddleware(deps.Authorizer))

	// Billing management stays reachable with an expired trial, otherwise a
	// lapsed tenant could never pay.
	billingGroup := protected.Group("/billing")
	billingGroup.Get("/status", billingHandler.Status)
	billingGroup.Post("/checkout", RateLimit(deps.CheckoutLimiter), billingHandler.SubscriptionCheckout)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", companyHandler.Update)

	// Everything below is gated on subscription state.
	gated := protected.Group("/", RequireSubscription(deps.GateUC))

	customers := gated.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	jobs := gated.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/board", jobHandler.Board)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Patch("/:id", jobHandler.Update)
	jobs.Put("/:id/status", jobHandler.UpdateStatus)
	jobs.Put("/:id/schedule", jobHandler.Schedule)
	jobs.Delete("/:id", jobHandler.Delete)

	estimates := gated.Group("/estimates")
	estimateHandler := NewEstimateHandler(deps.EstimateUC, deps.EstimatePDFUC)
	estimates.Post("/", estimateHandler.Create)
	estimates.Get("/", estimateHandler.List)
	estimates.Get("/:id", estimateHandler.Get)
	estimates.Post("/:id/send", estimateHandler.Send)
	estimates.Get("/:id/pdf", estimateHandler.PDF)
	estimates.Delete("/:id", estimateHandler.Delete)
	estimates.Post("/:id/line-items", estimateHandler.AddLineItem)
	estimates.Put("/:id/line-items/:itemId", estimateHandler.UpdateLineItem)
	estimates.Delete("/:id/line-items/:itemId", estimateHandler.DeleteLineItem)
	estimates.Post("/:id/materials", estimateHandler.AddMaterial)
	estimates.Put("/:id/materials/:materialId", estimateHandler.UpdateMaterial)
	estimates.Delete("/:id/materials/:materialId", estimateHandler.DeleteMaterial)

	invoices := gated.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.CheckoutUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Post("/:id/void", invoiceHandler.Void)
	invoices.Post("/:id/checkout", RateLimit(deps.CheckoutLimiter), invoiceHandler.Checkout)

	inventory := gated.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/", inventoryHandler.List)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Post("/:id/adjust", inventoryHandler.Adjust)
	inventory.Delete("/:id", inventoryHandler.Delete)

	crews := gated.Group("/crews")
	crewHandler := NewCrewHandler(deps.CrewUC)
	crews.Post("/", crewHandler.Create)
	crews.Get("/", crewHandler.List)
	crews.Put("/:id", crewHandler.Update)
	crews.Post("/:id/members", crewHandler.AddMember)
	crews.Delete("/:id/members/:memberId", crewHandler.RemoveMember)
	crews.Delete("/:id", crewHandler.Delete)

	templates := gated.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)
}
