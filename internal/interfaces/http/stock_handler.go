package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

// StockHandler maneja las operaciones de stock sobre la bodega (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Restock agrega unidades de un producto a la bodega.
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Restock(c.Context(), in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove retira unidades con política de salida por vencimiento.
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Remove(c.Context(), in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Empty retira todas las existencias de un producto.
func (h *StockHandler) Empty(c *fiber.Ctx) error {
	id, err := parseProductID(c, "productID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "productID debe ser un entero positivo"})
	}
	out, err := h.uc.Empty(c.Context(), id, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements devuelve el historial de movimientos de un producto.
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	id, err := parseProductID(c, "productID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "productID debe ser un entero positivo"})
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.Movements(c.Context(), id, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Locations devuelve las posiciones de un producto y si están contiguas.
func (h *StockHandler) Locations(c *fiber.Ctx) error {
	id, err := parseProductID(c, "productID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "productID debe ser un entero positivo"})
	}
	out, err := h.uc.Locations(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Organize reagrupa las unidades de un producto en una corrida contigua.
func (h *StockHandler) Organize(c *fiber.Ctx) error {
	id, err := parseProductID(c, "productID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "productID debe ser un entero positivo"})
	}
	if err := h.uc.Organize(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
