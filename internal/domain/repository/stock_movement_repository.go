package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el historial
// de movimientos de la bodega.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID uint32, limit, offset int) ([]*entity.StockMovement, error)
}
