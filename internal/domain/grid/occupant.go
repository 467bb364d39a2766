package grid

import "time"

// Position identifica una casilla física dentro de la bodega.
// Los tres índices son 1-based, en el orden fila → columna → casilla.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
	Slot   int `json:"slot"`
}

// Occupant es la unidad de producto colocada en una casilla. Lo crea y lo
// destruye exclusivamente la casilla que lo contiene: mover un ocupante crea
// uno nuevo en el destino y elimina el del origen.
type Occupant struct {
	ProductID  uint32     `json:"product_id"`
	Row        int        `json:"row"`
	Column     int        `json:"column"`
	Slot       int        `json:"slot"`
	Expiration *time.Time `json:"expiration,omitempty"` // fecha calendario, sin componente de hora
}

// NewOccupant construye un ocupante para la posición dada.
func NewOccupant(productID uint32, row, column, slot int, expiration *time.Time) *Occupant {
	return &Occupant{
		ProductID:  productID,
		Row:        row,
		Column:     column,
		Slot:       slot,
		Expiration: expiration,
	}
}

// Position devuelve la posición registrada en el ocupante.
func (o *Occupant) Position() Position {
	return Position{Row: o.Row, Column: o.Column, Slot: o.Slot}
}

// copyAt devuelve una copia del ocupante reubicada en la posición destino;
// la fecha de vencimiento viaja con el producto.
func (o *Occupant) copyAt(row, column, slot int) *Occupant {
	return &Occupant{
		ProductID:  o.ProductID,
		Row:        row,
		Column:     column,
		Slot:       slot,
		Expiration: o.Expiration,
	}
}
