package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/grid"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// StockUseCase orquesta las operaciones de stock sobre la bodega en memoria.
// El núcleo de asignación no bloquea: este caso de uso es el escritor único y
// serializa todo acceso con su mutex. Cada mutación persiste el movimiento,
// la cantidad del catálogo y el snapshot de la bodega en una transacción.
type StockUseCase struct {
	mu          sync.Mutex
	g           *grid.Grid
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	log         *logger.Logger
}

// NewStockUseCase construye el caso de uso sobre una bodega ya inicializada
// (nueva o restaurada desde snapshot).
func NewStockUseCase(
	g *grid.Grid,
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{g: g, txRunner: txRunner, productRepo: productRepo, movRepo: movRepo, log: log.Component("stock")}
}

// Restock agrega unidades de un producto del catálogo a la bodega y registra
// el movimiento IN.
func (uc *StockUseCase) Restock(ctx context.Context, in dto.RestockRequest, createdBy string) (*dto.StockOperationResponse, error) {
	if in.ProductID == 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	expiration, err := in.ParseExpiration()
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.g.AddItems(in.ProductID, in.Quantity, expiration); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		Type:       entity.MovementTypeIN,
		Quantity:   in.Quantity,
		UnitPrice:  product.Price,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Expiration: expiration,
		Date:       now,
		CreatedBy:  createdBy,
		CreatedAt:  now,
	}
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		snapshotRepo repository.GridSnapshotRepository,
	) error {
		if err := productRepo.UpdateQuantity(ctx, in.ProductID, product.Quantity+in.Quantity); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return snapshotRepo.Save(ctx, uc.g)
	})
	if err != nil {
		// La bodega en memoria es la fuente de verdad; el siguiente snapshot
		// exitoso reconcilia lo persistido.
		uc.log.Error().Err(err).Uint32("product_id", in.ProductID).Msg("persistir reabastecimiento")
		return nil, err
	}

	uc.log.Info().
		Uint32("product_id", in.ProductID).
		Int("quantity", in.Quantity).
		Int("available_space", uc.g.AvailableSpace).
		Msg("reabastecimiento aplicado")

	return &dto.StockOperationResponse{ProductID: in.ProductID, Quantity: in.Quantity, MovementID: mov.ID}, nil
}

// Remove retira unidades con política de salida por vencimiento. La cantidad
// realmente retirada puede superar la pedida (ver RemoveItems); el movimiento
// OUT y el catálogo registran la cantidad real.
func (uc *StockUseCase) Remove(ctx context.Context, in dto.RemoveStockRequest, createdBy string) (*dto.StockOperationResponse, error) {
	if in.ProductID == 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	before := len(uc.g.FindAllOccurrences(in.ProductID))
	if err := uc.g.RemoveItems(in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	after := len(uc.g.FindAllOccurrences(in.ProductID))
	removed := before - after

	mov, err := uc.persistRemoval(ctx, product, removed, createdBy)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Uint32("product_id", in.ProductID).
		Int("requested", in.Quantity).
		Int("removed", removed).
		Msg("salida de stock aplicada")

	return &dto.StockOperationResponse{
		ProductID:  in.ProductID,
		Quantity:   removed,
		RemovedAll: after == 0,
		MovementID: mov.ID,
	}, nil
}

// Empty retira todas las existencias del producto.
func (uc *StockUseCase) Empty(ctx context.Context, productID uint32, createdBy string) (*dto.StockOperationResponse, error) {
	if productID == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	removed := len(uc.g.FindAllOccurrences(productID))
	if err := uc.g.RemoveAllItems(productID); err != nil {
		return nil, err
	}

	mov, err := uc.persistRemoval(ctx, product, removed, createdBy)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Uint32("product_id", productID).Int("removed", removed).Msg("stock vaciado")
	return &dto.StockOperationResponse{ProductID: productID, Quantity: removed, RemovedAll: true, MovementID: mov.ID}, nil
}

// persistRemoval guarda movimiento OUT, cantidad del catálogo y snapshot en
// una transacción. Se invoca con el mutex tomado.
func (uc *StockUseCase) persistRemoval(ctx context.Context, product *entity.Product, removed int, createdBy string) (*entity.StockMovement, error) {
	now := time.Now()
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		Type:       entity.MovementTypeOUT,
		Quantity:   removed,
		UnitPrice:  product.Price,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(removed))),
		Date:       now,
		CreatedBy:  createdBy,
		CreatedAt:  now,
	}
	newQuantity := product.Quantity - removed
	if newQuantity < 0 {
		newQuantity = 0
	}
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		snapshotRepo repository.GridSnapshotRepository,
	) error {
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQuantity); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return snapshotRepo.Save(ctx, uc.g)
	})
	if err != nil {
		uc.log.Error().Err(err).Uint32("product_id", product.ID).Msg("persistir salida de stock")
		return nil, err
	}
	return mov, nil
}

// Organize reagrupa las unidades de un producto en una corrida contigua
// ordenada por vencimiento y persiste el nuevo acomodo.
func (uc *StockUseCase) Organize(ctx context.Context, productID uint32) error {
	if productID == 0 {
		return domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.g.OrganizeItems(productID); err != nil {
		return err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return err
	}
	uc.log.Info().Uint32("product_id", productID).Msg("producto reorganizado")
	return nil
}

// Movements devuelve el historial de movimientos de un producto, más
// recientes primero.
func (uc *StockUseCase) Movements(ctx context.Context, productID uint32, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if productID == 0 {
		return nil, domain.ErrInvalidInput
	}
	limit := page.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	movements, err := uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		item := dto.MovementResponse{
			ID:         m.ID,
			ProductID:  m.ProductID,
			Type:       m.Type,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			TotalPrice: m.TotalPrice,
			Date:       m.Date,
			CreatedBy:  m.CreatedBy,
		}
		if m.Expiration != nil {
			item.Expiration = m.Expiration.Format("2006-01-02")
		}
		items = append(items, item)
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Locations devuelve todas las posiciones del producto en orden de recorrido.
func (uc *StockUseCase) Locations(productID uint32) (*dto.LocationsResponse, error) {
	if productID == 0 {
		return nil, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	positions := uc.g.FindAllOccurrences(productID)
	locations := make([]dto.LocationResponse, 0, len(positions))
	for _, p := range positions {
		loc := dto.LocationResponse{Row: p.Row, Column: p.Column, Slot: p.Slot}
		if o := uc.g.Item(p.Row, p.Column, p.Slot); o != nil && o.Expiration != nil {
			loc.Expiration = o.Expiration.Format("2006-01-02")
		}
		locations = append(locations, loc)
	}
	return &dto.LocationsResponse{
		ProductID:  productID,
		Contiguous: uc.g.IsStoredContiguously(productID),
		Locations:  locations,
	}, nil
}

// Status devuelve capacidad y espacio libre agregados.
func (uc *StockUseCase) Status() dto.WarehouseStatusResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return dto.WarehouseStatusResponse{
		Capacity:       uc.g.Capacity,
		AvailableSpace: uc.g.AvailableSpace,
		Rows:           len(uc.g.Rows),
		Full:           uc.g.IsFull(),
	}
}

// Layout serializa la estructura anidada completa de la bodega. El marshal
// corre bajo el mutex para no fotografiar un estado a medio mutar.
func (uc *StockUseCase) Layout() ([]byte, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return json.Marshal(uc.g)
}

// AddRow agrega una fila nueva al final de la bodega (operación administrativa).
func (uc *StockUseCase) AddRow(ctx context.Context, in dto.AddRowRequest) error {
	if in.Columns <= 0 || in.SlotsPerColumn <= 0 {
		return domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	row := grid.NewRow(uc.nextRowNumber())
	row.InitializeColumns(in.Columns, in.SlotsPerColumn)
	uc.g.AddRow(row)
	if err := uc.persistSnapshot(ctx); err != nil {
		return err
	}
	uc.log.Info().Int("row", row.RowNumber).Int("capacity", uc.g.Capacity).Msg("fila agregada")
	return nil
}

// RemoveRow elimina una fila vacía (operación administrativa).
func (uc *StockUseCase) RemoveRow(ctx context.Context, rowNumber int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.g.RemoveRow(rowNumber); err != nil {
		return err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return err
	}
	uc.log.Info().Int("row", rowNumber).Msg("fila eliminada")
	return nil
}

// AddColumn agrega una columna a una fila existente (operación administrativa).
func (uc *StockUseCase) AddColumn(ctx context.Context, rowNumber, slots int) error {
	if slots <= 0 {
		return domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	row := uc.g.Row(rowNumber)
	if row == nil {
		return &grid.RowError{Row: rowNumber}
	}
	col := grid.NewColumn(uc.nextColumnNumber(row), rowNumber)
	col.InitializeSlots(slots)
	if err := uc.g.AddColumn(rowNumber, col); err != nil {
		return err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return err
	}
	uc.log.Info().Int("row", rowNumber).Int("column", col.ColumnNumber).Msg("columna agregada")
	return nil
}

// RemoveColumn elimina una columna vacía (operación administrativa).
func (uc *StockUseCase) RemoveColumn(ctx context.Context, rowNumber, columnNumber int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.g.RemoveColumn(rowNumber, columnNumber); err != nil {
		return err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return err
	}
	uc.log.Info().Int("row", rowNumber).Int("column", columnNumber).Msg("columna eliminada")
	return nil
}

// HasStock indica si el producto tiene al menos una unidad en la bodega.
func (uc *StockUseCase) HasStock(productID uint32) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.g.ContainsProduct(productID)
}

// persistSnapshot guarda el snapshot de la bodega. Se invoca con el mutex tomado.
func (uc *StockUseCase) persistSnapshot(ctx context.Context) error {
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		snapshotRepo repository.GridSnapshotRepository,
	) error {
		return snapshotRepo.Save(ctx, uc.g)
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("persistir snapshot de la bodega")
	}
	return err
}

// nextRowNumber devuelve el siguiente número de fila disponible; las filas
// eliminadas dejan huecos que no se reutilizan.
func (uc *StockUseCase) nextRowNumber() int {
	next := 1
	for _, r := range uc.g.Rows {
		if r.RowNumber >= next {
			next = r.RowNumber + 1
		}
	}
	return next
}

func (uc *StockUseCase) nextColumnNumber(row *grid.Row) int {
	next := 1
	for _, c := range row.Columns {
		if c.ColumnNumber >= next {
			next = c.ColumnNumber + 1
		}
	}
	return next
}
