package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/internal/application/dto"
)

// RequireSubscription gates tenant routes on billing state. Must run after
// TenantMiddleware.
//
// Behavior:
//   - 402 Payment Required with code TRIAL_EXPIRED or SUBSCRIPTION_REQUIRED
//     when the tenant's state denies access.
//   - 503 Service Unavailable when the gate itself could not be evaluated.
func RequireSubscription(gate *billing.GateUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id not resolved"})
		}

		verdict, err := gate.GateForCompany(c.Context(), companyID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "BILLING_CHECK_FAILED",
				Message: "could not verify subscription, try again",
			})
		}
		if !verdict.Allowed {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Code:    verdict.Code,
				Message: "an active subscription is required",
			})
		}
		return c.Next()
	}
}
