package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/pkg/ratelimit"
)

// RateLimit throttles a route group against a fixed-window store, keyed by
// tenant when one is resolved and by client IP otherwise (public routes).
func RateLimit(store *ratelimit.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := GetCompanyID(c)
		if key == "" {
			key = c.IP()
		}
		allowed, retryAfter := store.Allow(key)
		if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(ratelimit.RetryAfterSeconds(retryAfter)))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "too many requests, slow down",
			})
		}
		return c.Next()
	}
}
