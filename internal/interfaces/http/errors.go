package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/grid"
)

// respondError traduce la taxonomía de errores del dominio a HTTP. Los errores
// posicionales de la bodega (SlotError, ColumnError, RowError) conservan su
// mensaje con coordenadas para diagnóstico preciso.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, grid.ErrNoProductFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, grid.ErrRowNotFound), errors.Is(err, grid.ErrColumnNotFound), errors.Is(err, grid.ErrSlotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "POSITION_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrHasStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_STOCK", Message: err.Error()})
	case errors.Is(err, grid.ErrInsufficientSpace):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_SPACE", Message: err.Error()})
	case errors.Is(err, grid.ErrNoContiguousSpace):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_CONTIGUOUS_SPACE", Message: err.Error()})
	case errors.Is(err, grid.ErrSlotOccupied):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLOT_OCCUPIED", Message: err.Error()})
	case errors.Is(err, grid.ErrSlotEmpty):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLOT_EMPTY", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
