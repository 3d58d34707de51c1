package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/application/usecase"
)

// InvoiceHandler invoices and their payment links (tenant-scoped).
type InvoiceHandler struct {
	uc         *usecase.InvoiceUseCase
	checkoutUC *billing.CheckoutUseCase
}

func NewInvoiceHandler(uc *usecase.InvoiceUseCase, checkoutUC *billing.CheckoutUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, checkoutUC: checkoutUC}
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List GET /api/invoices?limit=20&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Send POST /api/invoices/:id/send
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	resp, err := h.uc.Send(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Void POST /api/invoices/:id/void
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	resp, err := h.uc.Void(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Checkout POST /api/invoices/:id/checkout — creates a hosted payment link.
func (h *InvoiceHandler) Checkout(c *fiber.Ctx) error {
	resp, err := h.checkoutUC.InvoiceCheckout(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
