package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// expirationLayout formato de fecha de vencimiento: fecha calendario sin hora.
const expirationLayout = "2006-01-02"

// RestockRequest entrada para agregar unidades de un producto a la bodega.
type RestockRequest struct {
	ProductID  uint32 `json:"product_id"`
	Quantity   int    `json:"quantity"`
	Expiration string `json:"expiration"` // opcional, formato YYYY-MM-DD
}

// ParseExpiration interpreta la fecha de vencimiento; nil si no se envió.
func (r RestockRequest) ParseExpiration() (*time.Time, error) {
	if r.Expiration == "" {
		return nil, nil
	}
	d, err := time.Parse(expirationLayout, r.Expiration)
	if err != nil {
		return nil, fmt.Errorf("fecha de vencimiento inválida %q: se espera YYYY-MM-DD", r.Expiration)
	}
	return &d, nil
}

// RemoveStockRequest entrada para retirar unidades de un producto.
type RemoveStockRequest struct {
	ProductID uint32 `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// StockOperationResponse resultado de una operación de stock. RemovedAll
// marca cuando la política de vencimiento retiró todas las existencias.
type StockOperationResponse struct {
	ProductID  uint32 `json:"product_id"`
	Quantity   int    `json:"quantity"` // casillas realmente afectadas
	RemovedAll bool   `json:"removed_all,omitempty"`
	MovementID string `json:"movement_id,omitempty"`
}

// MovementResponse un movimiento del historial de stock.
type MovementResponse struct {
	ID         string          `json:"id"`
	ProductID  uint32          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Expiration string          `json:"expiration,omitempty"`
	Date       time.Time       `json:"date"`
	CreatedBy  string          `json:"created_by"`
}

// MovementListResponse página del historial de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LocationResponse una posición física dentro de la bodega.
type LocationResponse struct {
	Row        int    `json:"row"`
	Column     int    `json:"column"`
	Slot       int    `json:"slot"`
	Expiration string `json:"expiration,omitempty"`
}

// LocationsResponse todas las posiciones de un producto.
type LocationsResponse struct {
	ProductID  uint32             `json:"product_id"`
	Contiguous bool               `json:"contiguous"`
	Locations  []LocationResponse `json:"locations"`
}
