package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/authz"
	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
)

// TenantMiddleware resolves and verifies the tenant for the request. The
// company comes from the X-Company-ID header when present (multi-company
// users switching workspaces), otherwise from the token claim. Whatever the
// source, membership is checked against the database here, once, for every
// tenant-scoped route. Must run after AuthMiddleware.
func TenantMiddleware(authorizer *authz.Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id missing from token"})
		}
		companyID := c.Get("X-Company-ID")
		if companyID == "" {
			companyID = GetCompanyID(c)
		}

		tc, err := authorizer.LoadTenantContext(userID, companyID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrForbidden):
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "not a member of this company"})
			case errors.Is(err, domain.ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "company not found"})
			case errors.Is(err, domain.ErrUnauthorized):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
			default:
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TENANT_CHECK_FAILED", Message: "could not verify company access, try again"})
			}
		}

		c.Locals(LocalCompanyID, tc.CompanyID)
		c.Locals(LocalRole, tc.Role)
		return c.Next()
	}
}
