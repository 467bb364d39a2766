package grid

// Row es una secuencia ordenada de columnas. Sus contadores agregan los de
// sus columnas: Capacity == Σ column.Capacity, AvailableSpace análogo.
type Row struct {
	RowNumber      int       `json:"row"`
	Capacity       int       `json:"capacity"`
	AvailableSpace int       `json:"available_space"`
	Columns        []*Column `json:"columns"`
}

// NewRow construye una fila vacía; las columnas se agregan después.
func NewRow(rowNumber int) *Row {
	return &Row{RowNumber: rowNumber}
}

// InitializeColumns crea columnCount columnas con slotsPerColumn casillas cada una.
func (r *Row) InitializeColumns(columnCount, slotsPerColumn int) {
	for i := 1; i <= columnCount; i++ {
		col := NewColumn(i, r.RowNumber)
		col.InitializeSlots(slotsPerColumn)
		r.AddColumn(col)
	}
}

// AddColumn agrega una columna al final de la fila y ajusta los agregados.
func (r *Row) AddColumn(c *Column) {
	r.Capacity += c.Capacity
	r.AvailableSpace += c.AvailableSpace
	r.Columns = append(r.Columns, c)
}

// RemoveColumn elimina la columna indicada. Operación administrativa: solo se
// permite sobre columnas vacías, para no perder ocupantes ni descuadrar contadores.
func (r *Row) RemoveColumn(columnNumber int) error {
	for i, c := range r.Columns {
		if c.ColumnNumber != columnNumber {
			continue
		}
		if c.AvailableSpace != c.Capacity {
			return newSlotOccupied(r.RowNumber, columnNumber, 0)
		}
		r.Capacity -= c.Capacity
		r.AvailableSpace -= c.AvailableSpace
		r.Columns = append(r.Columns[:i], r.Columns[i+1:]...)
		return nil
	}
	return &ColumnError{Row: r.RowNumber, Column: columnNumber}
}

// Column devuelve la columna con el número dado, o nil si no existe.
func (r *Row) Column(columnNumber int) *Column {
	for _, c := range r.Columns {
		if c.ColumnNumber == columnNumber {
			return c
		}
	}
	return nil
}

// Slot devuelve la casilla (columna, casilla), o nil si no existe.
func (r *Row) Slot(columnNumber, slotNumber int) *Slot {
	if c := r.Column(columnNumber); c != nil {
		return c.Slot(slotNumber)
	}
	return nil
}

// IsFull indica si no queda espacio libre en la fila.
func (r *Row) IsFull() bool {
	return r.AvailableSpace == 0
}

// AddItem coloca un ocupante y propaga el descuento de espacio a la fila.
func (r *Row) AddItem(columnNumber, slotNumber int, o *Occupant) error {
	c := r.Column(columnNumber)
	if c == nil {
		return &ColumnError{Row: r.RowNumber, Column: columnNumber}
	}
	if err := c.AddItem(slotNumber, o); err != nil {
		return err
	}
	r.AvailableSpace--
	return nil
}

// RemoveItem retira un ocupante y propaga la liberación de espacio a la fila.
func (r *Row) RemoveItem(columnNumber, slotNumber int) error {
	c := r.Column(columnNumber)
	if c == nil {
		return &ColumnError{Row: r.RowNumber, Column: columnNumber}
	}
	if err := c.RemoveItem(slotNumber); err != nil {
		return err
	}
	r.AvailableSpace++
	return nil
}

// Item devuelve el ocupante en (columna, casilla), o nil.
func (r *Row) Item(columnNumber, slotNumber int) *Occupant {
	if c := r.Column(columnNumber); c != nil {
		return c.Item(slotNumber)
	}
	return nil
}

// ContainsProduct indica si alguna columna de la fila guarda el producto.
func (r *Row) ContainsProduct(productID uint32) bool {
	for _, c := range r.Columns {
		if c.ContainsProduct(productID) {
			return true
		}
	}
	return false
}

// FindAllOccurrences devuelve las posiciones del producto dentro de la fila,
// en orden de recorrido columna → casilla.
func (r *Row) FindAllOccurrences(productID uint32) []Position {
	var positions []Position
	for _, c := range r.Columns {
		for _, slotNumber := range c.FindAllOccurrences(productID) {
			positions = append(positions, Position{Row: r.RowNumber, Column: c.ColumnNumber, Slot: slotNumber})
		}
	}
	return positions
}

// appendFlatMap agrega los marcadores de todas las columnas en orden.
func (r *Row) appendFlatMap(dst []byte) []byte {
	for _, c := range r.Columns {
		dst = c.appendFlatMap(dst)
	}
	return dst
}
