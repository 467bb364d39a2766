package usecase

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// StockChecker consulta si un producto tiene existencias en la bodega.
type StockChecker interface {
	HasStock(productID uint32) bool
}

// ProductUseCase implementa el CRUD del catálogo de productos.
type ProductUseCase struct {
	repo  repository.ProductRepository
	stock StockChecker
	log   *logger.Logger
}

func NewProductUseCase(repo repository.ProductRepository, stock StockChecker, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock, log: log.Component("product")}
}

// Create registra un producto nuevo. El nombre es único en el catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := &entity.Product{Name: in.Name, Price: in.Price}
	id, err := uc.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id

	uc.log.Info().Uint32("product_id", id).Str("name", in.Name).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID busca un producto por su identificador.
func (uc *ProductUseCase) GetByID(ctx context.Context, id uint32) (*dto.ProductResponse, error) {
	if id == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List devuelve una página del catálogo.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	limit := page.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	products, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update modifica nombre o precio de un producto existente; los campos nil
// conservan su valor actual.
func (uc *ProductUseCase) Update(ctx context.Context, id uint32, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if id == 0 || (in.Name == nil && in.Price == nil) {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if other, err := uc.repo.GetByName(ctx, *in.Name); err != nil {
			return nil, err
		} else if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Uint32("product_id", id).Msg("producto actualizado")
	return toProductResponse(product), nil
}

// Delete elimina un producto sin existencias en la bodega.
func (uc *ProductUseCase) Delete(ctx context.Context, id uint32) error {
	if id == 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if uc.stock.HasStock(id) {
		return domain.ErrHasStock
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Uint32("product_id", id).Msg("producto eliminado")
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
