package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (uint32, error)
	GetByID(ctx context.Context, id uint32) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id uint32, quantity int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id uint32) error
}
