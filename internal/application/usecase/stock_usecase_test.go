package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/grid"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uint32]*entity.Product
	nextID   uint32
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint32]*entity.Product), nextID: 1}
}

func (f *fakeProductRepo) seed(name string, price string, quantity int) *entity.Product {
	p := &entity.Product{
		ID:       f.nextID,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	}
	f.products[p.ID] = p
	f.nextID++
	return p
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) (uint32, error) {
	id := f.nextID
	f.nextID++
	cp := *product
	cp.ID = id
	f.products[id] = &cp
	return id, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uint32) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	p, ok := f.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Name = product.Name
	p.Price = product.Price
	return nil
}

func (f *fakeProductRepo) UpdateQuantity(_ context.Context, id uint32, quantity int) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, int, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(f.products), nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uint32) error {
	delete(f.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, productID uint32, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSnapshotRepo struct {
	saves int
	err   error
}

func (f *fakeSnapshotRepo) Save(_ context.Context, _ *grid.Grid) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	return nil
}

func (f *fakeSnapshotRepo) Load(_ context.Context) (*grid.Grid, error) { return nil, nil }

// fakeTxRunner ejecuta el callback directamente con los fakes, sin transacción.
type fakeTxRunner struct {
	movements *fakeMovementRepo
	products  *fakeProductRepo
	snapshots *fakeSnapshotRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	snapshotRepo repository.GridSnapshotRepository,
) error) error {
	return fn(f.movements, f.products, f.snapshots)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type stockFixture struct {
	uc        *usecase.StockUseCase
	g         *grid.Grid
	products  *fakeProductRepo
	movements *fakeMovementRepo
	snapshots *fakeSnapshotRepo
}

func newStockFixture(t *testing.T, rows, columns, slots int) *stockFixture {
	t.Helper()
	g := grid.New()
	g.Initialize(rows, columns, slots)
	products := newFakeProductRepo()
	movements := &fakeMovementRepo{}
	snapshots := &fakeSnapshotRepo{}
	runner := &fakeTxRunner{movements: movements, products: products, snapshots: snapshots}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return &stockFixture{
		uc:        usecase.NewStockUseCase(g, runner, products, movements, log),
		g:         g,
		products:  products,
		movements: movements,
		snapshots: snapshots,
	}
}

func ctxTest() context.Context { return context.Background() }

// ──────────────────────────────────────────────────────────────────────────────
// Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_ColocaYPersiste(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 10)
	p := fx.products.seed("arroz", "2500.00", 0)

	resp, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{
		ProductID:  p.ID,
		Quantity:   3,
		Expiration: "2026-12-01",
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, p.ID, resp.ProductID)
	assert.Equal(t, 3, resp.Quantity)
	assert.NotEmpty(t, resp.MovementID)

	// La bodega refleja la colocación contigua
	assert.Equal(t, 7, fx.g.AvailableSpace)
	assert.True(t, fx.g.IsStoredContiguously(p.ID))

	// Catálogo, movimiento y snapshot persistidos
	stored, _ := fx.products.GetByID(ctxTest(), p.ID)
	assert.Equal(t, 3, stored.Quantity, "la cantidad del catálogo debe actualizarse")
	require.Len(t, fx.movements.movements, 1)
	mov := fx.movements.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 3, mov.Quantity)
	assert.True(t, mov.TotalPrice.Equal(decimal.RequireFromString("7500.00")))
	require.NotNil(t, mov.Expiration)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), *mov.Expiration)
	assert.Equal(t, 1, fx.snapshots.saves)
}

func TestRestock_ProductoInexistente(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 5)

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: 99, Quantity: 1}, "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestock_EntradaInvalida(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 5)
	p := fx.products.seed("arroz", "2500.00", 0)

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 0}, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 1, Expiration: "01/12/2026"}, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato de fecha distinto a YYYY-MM-DD debe rechazarse")
}

func TestRestock_SinEspacioNoPersisteNada(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 2)
	p := fx.products.seed("arroz", "2500.00", 0)

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 5}, "admin")
	assert.ErrorIs(t, err, grid.ErrInsufficientSpace)

	stored, _ := fx.products.GetByID(ctxTest(), p.ID)
	assert.Equal(t, 0, stored.Quantity)
	assert.Empty(t, fx.movements.movements)
	assert.Equal(t, 0, fx.snapshots.saves)
}

func TestRestock_FallaDePersistenciaDevuelveError(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 5)
	p := fx.products.seed("arroz", "2500.00", 0)
	fx.snapshots.err = errors.New("conexión perdida")

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 2}, "admin")
	require.Error(t, err)

	// La bodega en memoria conserva la mutación: es la fuente de verdad.
	assert.Equal(t, 3, fx.g.AvailableSpace)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove / Empty
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_RetiraPorVencimiento(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 10)
	p := fx.products.seed("leche", "4200.00", 0)

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 4, Expiration: "2026-10-01"}, "admin")
	require.NoError(t, err)

	resp, err := fx.uc.Remove(ctxTest(), dto.RemoveStockRequest{ProductID: p.ID, Quantity: 2}, "admin")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Quantity)
	assert.False(t, resp.RemovedAll)

	stored, _ := fx.products.GetByID(ctxTest(), p.ID)
	assert.Equal(t, 2, stored.Quantity)
	require.Len(t, fx.movements.movements, 2)
	assert.Equal(t, entity.MovementTypeOUT, fx.movements.movements[1].Type)
	assert.Equal(t, 2, fx.movements.movements[1].Quantity)
}

// Cuando hay menos unidades con fecha que las pedidas, la política retira
// todas las existencias; el movimiento OUT registra la cantidad real.
func TestRemove_FallbackRetiraTodo(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 10)
	p := fx.products.seed("leche", "4200.00", 0)

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 2, Expiration: "2026-10-01"}, "admin")
	require.NoError(t, err)
	_, err = fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 3}, "admin")
	require.NoError(t, err)

	resp, err := fx.uc.Remove(ctxTest(), dto.RemoveStockRequest{ProductID: p.ID, Quantity: 4}, "admin")
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Quantity, "la cantidad retirada es la real, no la pedida")
	assert.True(t, resp.RemovedAll)
	assert.False(t, fx.g.ContainsProduct(p.ID))

	stored, _ := fx.products.GetByID(ctxTest(), p.ID)
	assert.Equal(t, 0, stored.Quantity)
}

func TestRemove_ProductoSinExistencias(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 5)
	p := fx.products.seed("leche", "4200.00", 0)

	_, err := fx.uc.Remove(ctxTest(), dto.RemoveStockRequest{ProductID: p.ID, Quantity: 1}, "admin")
	assert.ErrorIs(t, err, grid.ErrNoProductFound)
}

func TestEmpty_VaciaTodo(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 10)
	p := fx.products.seed("café", "8900.00", 0)

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 6, Expiration: "2026-09-15"}, "admin")
	require.NoError(t, err)

	resp, err := fx.uc.Empty(ctxTest(), p.ID, "admin")
	require.NoError(t, err)

	assert.Equal(t, 6, resp.Quantity)
	assert.True(t, resp.RemovedAll)
	assert.False(t, fx.g.ContainsProduct(p.ID))
	stored, _ := fx.products.GetByID(ctxTest(), p.ID)
	assert.Equal(t, 0, stored.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y organización
// ──────────────────────────────────────────────────────────────────────────────

func TestLocations_DevuelvePosicionesYContiguidad(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 10)
	p := fx.products.seed("azúcar", "3100.00", 0)

	_, err := fx.uc.Restock(ctxTest(), dto.RestockRequest{ProductID: p.ID, Quantity: 3, Expiration: "2026-11-30"}, "admin")
	require.NoError(t, err)

	resp, err := fx.uc.Locations(p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, resp.ProductID)
	assert.True(t, resp.Contiguous)
	require.Len(t, resp.Locations, 3)
	assert.Equal(t, dto.LocationResponse{Row: 1, Column: 1, Slot: 1, Expiration: "2026-11-30"}, resp.Locations[0])
}

func TestOrganize_PersisteSnapshot(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 10)
	p := fx.products.seed("azúcar", "3100.00", 0)

	// Colocación dispersa manual para forzar la reorganización
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	ene := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fx.g.AddItem(1, 1, 2, grid.NewOccupant(p.ID, 1, 1, 2, &feb)))
	require.NoError(t, fx.g.AddItem(1, 1, 5, grid.NewOccupant(p.ID, 1, 1, 5, &ene)))

	require.NoError(t, fx.uc.Organize(ctxTest(), p.ID))

	assert.True(t, fx.g.IsStoredContiguously(p.ID))
	assert.Equal(t, 1, fx.snapshots.saves)
}

func TestStatus_ReflejaBodega(t *testing.T) {
	fx := newStockFixture(t, 2, 3, 4)

	st := fx.uc.Status()
	assert.Equal(t, 24, st.Capacity)
	assert.Equal(t, 24, st.AvailableSpace)
	assert.Equal(t, 2, st.Rows)
	assert.False(t, st.Full)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones administrativas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddRow_AmpliaCapacidad(t *testing.T) {
	fx := newStockFixture(t, 1, 2, 3)

	require.NoError(t, fx.uc.AddRow(ctxTest(), dto.AddRowRequest{Columns: 2, SlotsPerColumn: 5}))

	st := fx.uc.Status()
	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, 16, st.Capacity)
	assert.Equal(t, 1, fx.snapshots.saves)
}

func TestRemoveRow_SoloVacia(t *testing.T) {
	fx := newStockFixture(t, 2, 1, 3)
	p := fx.products.seed("sal", "900.00", 0)
	require.NoError(t, fx.g.AddItem(2, 1, 1, grid.NewOccupant(p.ID, 2, 1, 1, nil)))

	err := fx.uc.RemoveRow(ctxTest(), 2)
	assert.ErrorIs(t, err, grid.ErrSlotOccupied)

	require.NoError(t, fx.uc.RemoveRow(ctxTest(), 1))
	assert.Equal(t, 1, fx.uc.Status().Rows)
}

func TestAddColumn_EnFilaExistente(t *testing.T) {
	fx := newStockFixture(t, 1, 1, 3)

	require.NoError(t, fx.uc.AddColumn(ctxTest(), 1, 4))
	assert.Equal(t, 7, fx.uc.Status().Capacity)

	err := fx.uc.AddColumn(ctxTest(), 9, 4)
	assert.ErrorIs(t, err, grid.ErrRowNotFound)
}
