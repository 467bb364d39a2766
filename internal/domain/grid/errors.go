package grid

import (
	"errors"
	"fmt"
)

// Errores del núcleo de asignación. Los centinelas permiten errors.Is desde las
// capas superiores; los errores con posición envuelven su centinela vía Unwrap.
var (
	ErrInsufficientSpace = errors.New("espacio insuficiente en la bodega")
	ErrNoContiguousSpace = errors.New("no hay espacio contiguo para agregar en bloque; organice los artículos primero o agréguelos individualmente")
	ErrNoProductFound    = errors.New("producto no encontrado en la bodega")
	ErrSlotNotFound      = errors.New("casilla no encontrada")
	ErrSlotOccupied      = errors.New("casilla ocupada")
	ErrSlotEmpty         = errors.New("casilla vacía")
	ErrColumnNotFound    = errors.New("columna no encontrada")
	ErrRowNotFound       = errors.New("fila no encontrada")
)

// SlotError señala una falla sobre una casilla concreta (fila, columna, casilla).
type SlotError struct {
	Kind   error // ErrSlotNotFound, ErrSlotOccupied o ErrSlotEmpty
	Row    int
	Column int
	Slot   int
}

func (e *SlotError) Error() string {
	switch e.Kind {
	case ErrSlotNotFound:
		return fmt.Sprintf("casilla %d no encontrada en la columna %d de la fila %d", e.Slot, e.Column, e.Row)
	case ErrSlotOccupied:
		return fmt.Sprintf("la casilla %d de la columna %d, fila %d ya está ocupada", e.Slot, e.Column, e.Row)
	case ErrSlotEmpty:
		return fmt.Sprintf("la casilla %d de la columna %d, fila %d está vacía", e.Slot, e.Column, e.Row)
	}
	return e.Kind.Error()
}

func (e *SlotError) Unwrap() error { return e.Kind }

// Position devuelve la posición afectada.
func (e *SlotError) Position() Position {
	return Position{Row: e.Row, Column: e.Column, Slot: e.Slot}
}

// ColumnError señala que una columna no existe en la fila indicada.
type ColumnError struct {
	Row    int
	Column int
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("columna %d no encontrada en la fila %d", e.Column, e.Row)
}

func (e *ColumnError) Unwrap() error { return ErrColumnNotFound }

// RowError señala que una fila no existe en la bodega.
type RowError struct {
	Row int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("fila %d no encontrada", e.Row)
}

func (e *RowError) Unwrap() error { return ErrRowNotFound }

func newSlotNotFound(row, column, slot int) error {
	return &SlotError{Kind: ErrSlotNotFound, Row: row, Column: column, Slot: slot}
}

func newSlotOccupied(row, column, slot int) error {
	return &SlotError{Kind: ErrSlotOccupied, Row: row, Column: column, Slot: slot}
}

func newSlotEmpty(row, column, slot int) error {
	return &SlotError{Kind: ErrSlotEmpty, Row: row, Column: column, Slot: slot}
}
