package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/grid"
)

// GridSnapshotRepository es la capa de persistencia externa de la bodega: la
// estructura anidada (filas → columnas → casillas → ocupante) se serializa
// campo a campo para que el estado recargado sea idéntico al guardado. La
// bodega en memoria es la fuente de verdad; el snapshot es derivado y
// reconstruible.
type GridSnapshotRepository interface {
	Save(ctx context.Context, g *grid.Grid) error
	// Load devuelve nil sin error cuando no hay snapshot guardado.
	Load(ctx context.Context) (*grid.Grid, error)
}
