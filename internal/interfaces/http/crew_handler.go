package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/application/usecase"
)

// CrewHandler paint crews and their members (tenant-scoped).
type CrewHandler struct {
	uc *usecase.CrewUseCase
}

func NewCrewHandler(uc *usecase.CrewUseCase) *CrewHandler {
	return &CrewHandler{uc: uc}
}

// Create POST /api/crews
func (h *CrewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCrewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List GET /api/crews
func (h *CrewHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/crews/:id
func (h *CrewHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCrewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// AddMember POST /api/crews/:id/members
func (h *CrewHandler) AddMember(c *fiber.Ctx) error {
	var in dto.CrewMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddMember(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RemoveMember DELETE /api/crews/:id/members/:memberId
func (h *CrewHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(GetCompanyID(c), c.Params("id"), c.Params("memberId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Delete DELETE /api/crews/:id
func (h *CrewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
