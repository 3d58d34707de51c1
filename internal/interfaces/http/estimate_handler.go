package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/application/estimate"
)

// EstimateHandler estimates with labor and material lines (tenant-scoped).
type EstimateHandler struct {
	uc    *estimate.UseCase
	pdfUC *estimate.PDFUseCase
}

func NewEstimateHandler(uc *estimate.UseCase, pdfUC *estimate.PDFUseCase) *EstimateHandler {
	return &EstimateHandler{uc: uc, pdfUC: pdfUC}
}

// Create POST /api/estimates
func (h *EstimateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List GET /api/estimates?limit=20&offset=0 — `job_id` narrows to one job.
func (h *EstimateHandler) List(c *fiber.Ctx) error {
	if jobID := c.Query("job_id"); jobID != "" {
		list, err := h.uc.ListForJob(GetCompanyID(c), jobID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/estimates/:id
func (h *EstimateHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Send POST /api/estimates/:id/send
func (h *EstimateHandler) Send(c *fiber.Ctx) error {
	resp, err := h.uc.Send(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete DELETE /api/estimates/:id
func (h *EstimateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// PDF GET /api/estimates/:id/pdf
func (h *EstimateHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, err := h.pdfUC.Render(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estimate.pdf"`)
	return c.Send(pdfBytes)
}

// AddLineItem POST /api/estimates/:id/line-items
func (h *EstimateHandler) AddLineItem(c *fiber.Ctx) error {
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddLineItem(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateLineItem PUT /api/estimates/:id/line-items/:itemId
func (h *EstimateHandler) UpdateLineItem(c *fiber.Ctx) error {
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateLineItem(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteLineItem DELETE /api/estimates/:id/line-items/:itemId
func (h *EstimateHandler) DeleteLineItem(c *fiber.Ctx) error {
	resp, err := h.uc.DeleteLineItem(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// AddMaterial POST /api/estimates/:id/materials
func (h *EstimateHandler) AddMaterial(c *fiber.Ctx) error {
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddMaterial(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateMaterial PUT /api/estimates/:id/materials/:materialId
func (h *EstimateHandler) UpdateMaterial(c *fiber.Ctx) error {
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateMaterial(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("materialId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteMaterial DELETE /api/estimates/:id/materials/:materialId
func (h *EstimateHandler) DeleteMaterial(c *fiber.Ctx) error {
	resp, err := h.uc.DeleteMaterial(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("materialId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
