package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/application/estimate"
	"github.com/brushly/brushly-api/internal/application/publiclink"
	"github.com/brushly/brushly-api/internal/application/referral"
)

// PublicHandler unauthenticated customer-facing routes: token resolution,
// public job and estimate views, and the referral landing endpoints. The
// opaque token is the only credential on these routes.
type PublicHandler struct {
	resolver   *publiclink.Resolver
	estimateUC *estimate.UseCase
	referralUC *referral.UseCase
}

func NewPublicHandler(resolver *publiclink.Resolver, estimateUC *estimate.UseCase, referralUC *referral.UseCase) *PublicHandler {
	return &PublicHandler{resolver: resolver, estimateUC: estimateUC, referralUC: referralUC}
}

// Resolve GET /api/public/links/:token — what does this token point at.
func (h *PublicHandler) Resolve(c *fiber.Ctx) error {
	resp, err := h.resolver.Resolve(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Job GET /api/public/jobs/:token — customer view of the job behind a token.
func (h *PublicHandler) Job(c *fiber.Ctx) error {
	resp, err := h.resolver.JobView(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Estimate GET /api/public/estimates/:token — customer view of an estimate.
func (h *PublicHandler) Estimate(c *fiber.Ctx) error {
	resp, err := h.estimateUC.GetByPublicToken(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// RespondEstimate POST /api/public/estimates/:token/respond — accept or deny.
func (h *PublicHandler) RespondEstimate(c *fiber.Ctx) error {
	var in dto.RespondEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.estimateUC.Respond(c.Params("token"), in.Decision)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ValidateCode GET /api/public/referrals/:code — is this creator code live.
func (h *PublicHandler) ValidateCode(c *fiber.Ctx) error {
	resp, err := h.referralUC.Validate(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// RecordVisit POST /api/public/referrals/:code/visits — one landing per
// visitor; reloads are absorbed.
func (h *PublicHandler) RecordVisit(c *fiber.Ctx) error {
	var in dto.ReferralVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.referralUC.RecordVisit(c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
