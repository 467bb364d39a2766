package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

// WarehouseHandler expone el estado de la bodega y sus operaciones
// administrativas de estructura (protegido).
type WarehouseHandler struct {
	uc *usecase.StockUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.StockUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Status devuelve capacidad y espacio libre agregados.
func (h *WarehouseHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.uc.Status())
}

// Layout devuelve la estructura anidada completa de la bodega.
func (h *WarehouseHandler) Layout(c *fiber.Ctx) error {
	payload, err := h.uc.Layout()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// AddRow agrega una fila nueva a la bodega.
func (h *WarehouseHandler) AddRow(c *fiber.Ctx) error {
	var in dto.AddRowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddRow(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// RemoveRow elimina una fila vacía.
func (h *WarehouseHandler) RemoveRow(c *fiber.Ctx) error {
	row, err := c.ParamsInt("row")
	if err != nil || row <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "row debe ser un entero positivo"})
	}
	if err := h.uc.RemoveRow(c.Context(), row); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddColumn agrega una columna a una fila existente.
func (h *WarehouseHandler) AddColumn(c *fiber.Ctx) error {
	row, err := c.ParamsInt("row")
	if err != nil || row <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "row debe ser un entero positivo"})
	}
	var in dto.AddColumnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddColumn(c.Context(), row, in.Slots); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// RemoveColumn elimina una columna vacía.
func (h *WarehouseHandler) RemoveColumn(c *fiber.Ctx) error {
	row, err := c.ParamsInt("row")
	if err != nil || row <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "row debe ser un entero positivo"})
	}
	column, err := c.ParamsInt("column")
	if err != nil || column <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "column debe ser un entero positivo"})
	}
	if err := h.uc.RemoveColumn(c.Context(), row, column); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
