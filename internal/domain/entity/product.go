package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El ID es el identificador
// opaco que usa la bodega para marcar ocupantes; Quantity es el total de
// unidades almacenadas, derivado de las casillas ocupadas.
type Product struct {
	ID        uint32
	Name      string // único en el catálogo
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
