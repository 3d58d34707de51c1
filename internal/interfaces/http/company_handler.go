package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/application/usecase"
)

// CompanyHandler exposes the caller's own company (tenant-scoped).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get GET /api/company
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update PUT /api/company
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
