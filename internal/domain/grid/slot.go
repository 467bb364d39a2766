package grid

// Slot es la unidad mínima de almacenamiento: guarda cero o un ocupante.
// Invariante: si está ocupada, la posición del ocupante coincide con la de la casilla.
type Slot struct {
	RowNumber    int       `json:"row"`
	ColumnNumber int       `json:"column"`
	SlotNumber   int       `json:"slot"`
	Occupant     *Occupant `json:"occupant,omitempty"`
}

// NewSlot construye una casilla vacía en la posición dada.
func NewSlot(row, column, slot int) *Slot {
	return &Slot{RowNumber: row, ColumnNumber: column, SlotNumber: slot}
}

// Put coloca un ocupante; falla si la casilla ya está ocupada.
func (s *Slot) Put(o *Occupant) error {
	if s.Occupant != nil {
		return newSlotOccupied(s.RowNumber, s.ColumnNumber, s.SlotNumber)
	}
	s.Occupant = o
	return nil
}

// Clear retira el ocupante; falla si la casilla está vacía.
func (s *Slot) Clear() error {
	if s.Occupant == nil {
		return newSlotEmpty(s.RowNumber, s.ColumnNumber, s.SlotNumber)
	}
	s.Occupant = nil
	return nil
}

// IsEmpty indica si la casilla está libre.
func (s *Slot) IsEmpty() bool {
	return s.Occupant == nil
}

// Position devuelve la posición de la casilla.
func (s *Slot) Position() Position {
	return Position{Row: s.RowNumber, Column: s.ColumnNumber, Slot: s.SlotNumber}
}
