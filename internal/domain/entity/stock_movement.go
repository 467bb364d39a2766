package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // reabastecimiento
	MovementTypeOUT = "OUT" // salida
)

// StockMovement es el registro de auditoría de cada entrada o salida de la
// bodega. Quantity es el número de casillas afectadas: una salida con política
// de vencimiento puede retirar más unidades que las pedidas, y aquí queda el
// número real.
type StockMovement struct {
	ID         string
	ProductID  uint32
	Type       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Expiration *time.Time // solo entradas; fecha calendario sin hora
	Date       time.Time
	CreatedBy  string
	CreatedAt  time.Time
}
