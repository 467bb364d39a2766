package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/grid"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.GridSnapshotRepository = (*GridSnapshotRepo)(nil)

// GridSnapshotRepo persiste la bodega completa como un documento jsonb de una
// sola fila. La estructura anidada (filas → columnas → casillas → ocupante) se
// serializa campo a campo, así el estado recargado es idéntico al guardado.
type GridSnapshotRepo struct {
	q Querier
}

// NewGridSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGridSnapshotRepository(q Querier) *GridSnapshotRepo {
	return &GridSnapshotRepo{q: q}
}

// Save reemplaza el snapshot vigente (upsert sobre la fila única).
func (r *GridSnapshotRepo) Save(ctx context.Context, g *grid.Grid) error {
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal grid snapshot: %w", err)
	}
	query := `
		INSERT INTO grid_snapshots (id, layout, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET layout = EXCLUDED.layout, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, payload); err != nil {
		return fmt.Errorf("save grid snapshot: %w", err)
	}
	return nil
}

// Load restaura la bodega desde el snapshot. Devuelve nil sin error cuando no
// hay snapshot guardado (primer arranque).
func (r *GridSnapshotRepo) Load(ctx context.Context) (*grid.Grid, error) {
	var payload []byte
	err := r.q.QueryRow(ctx, `SELECT layout FROM grid_snapshots WHERE id = 1`).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load grid snapshot: %w", err)
	}
	var g grid.Grid
	if err := json.Unmarshal(payload, &g); err != nil {
		return nil, fmt.Errorf("unmarshal grid snapshot: %w", err)
	}
	return &g, nil
}
