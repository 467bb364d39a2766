package usecase

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma transacción
// (movimiento + catálogo + snapshot de la bodega en un solo Commit).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		snapshotRepo repository.GridSnapshotRepository,
	) error) error
}
