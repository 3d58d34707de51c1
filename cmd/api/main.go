package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/brushly/brushly-api/internal/application/auth"
	"github.com/brushly/brushly-api/internal/application/authz"
	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/internal/application/estimate"
	"github.com/brushly/brushly-api/internal/application/publiclink"
	"github.com/brushly/brushly-api/internal/application/referral"
	"github.com/brushly/brushly-api/internal/application/usecase"
	infrapdf "github.com/brushly/brushly-api/internal/infrastructure/pdf"
	"github.com/brushly/brushly-api/internal/infrastructure/postgres"
	infrastripe "github.com/brushly/brushly-api/internal/infrastructure/stripe"
	httpRouter "github.com/brushly/brushly-api/internal/interfaces/http"
	"github.com/brushly/brushly-api/pkg/config"
	"github.com/brushly/brushly-api/pkg/logger"
	"github.com/brushly/brushly-api/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	// Repositories
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	memberRepo := postgres.NewCompanyUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	estimateRepo := postgres.NewEstimateRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	crewRepo := postgres.NewCrewRepository(pool)
	templateRepo := postgres.NewMessageTemplateRepository(pool)
	creatorCodeRepo := postgres.NewCreatorCodeRepository(pool)
	referralRepo := postgres.NewReferralRepository(pool)
	webhookRepo := postgres.NewWebhookEventRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Payment provider
	stripeClient := infrastripe.NewClient(cfg.Stripe)

	// Use cases
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, memberRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Billing.TrialDays)
	authorizer := authz.New(memberRepo, companyRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	jobUC := usecase.NewJobUseCase(jobRepo, customerRepo, crewRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo)
	crewUC := usecase.NewCrewUseCase(crewRepo)
	templateUC := usecase.NewTemplateUseCase(templateRepo)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, jobRepo)

	estimateUC := estimate.NewUseCase(txRunner, estimateRepo, jobRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	estimatePDFUC := estimate.NewPDFUseCase(estimateRepo, jobRepo, companyRepo, customerRepo, pdfGenerator)

	gateUC := billing.NewGateUseCase(companyRepo)
	checkoutUC := billing.NewCheckoutUseCase(stripeClient, companyRepo, invoiceRepo, userRepo, referralRepo, cfg.App.PublicURL)
	webhookUC := billing.NewWebhookUseCase(
		webhookRepo, companyRepo, invoiceRepo, jobRepo,
		txRunner, cfg.Billing.SubscriptionPriceCents, log,
	)

	resolver := publiclink.NewResolver(jobRepo, estimateRepo, companyRepo)
	referralUC := referral.NewUseCase(creatorCodeRepo, referralRepo, log)

	checkoutLimiter := ratelimit.New("checkout",
		cfg.RateLimit.CheckoutLimit,
		time.Duration(cfg.RateLimit.CheckoutWindow)*time.Second,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Brushly API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		Authorizer:      authorizer,
		CompanyUC:       companyUC,
		CustomerUC:      customerUC,
		JobUC:           jobUC,
		InventoryUC:     inventoryUC,
		CrewUC:          crewUC,
		TemplateUC:      templateUC,
		InvoiceUC:       invoiceUC,
		EstimateUC:      estimateUC,
		EstimatePDFUC:   estimatePDFUC,
		GateUC:          gateUC,
		CheckoutUC:      checkoutUC,
		WebhookUC:       webhookUC,
		Verifier:        stripeClient,
		Resolver:        resolver,
		ReferralUC:      referralUC,
		CheckoutLimiter: checkoutLimiter,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
