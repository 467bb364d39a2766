package grid

// Grid modela la bodega física: una secuencia ordenada de filas, cada una con
// columnas y casillas. Mantiene los agregados de capacidad y espacio libre al
// nivel superior. El paquete no hace I/O ni bloqueo: el acceso de escritura
// exclusivo lo garantiza la capa que lo invoque.
type Grid struct {
	Capacity       int    `json:"capacity"`
	AvailableSpace int    `json:"available_space"`
	Rows           []*Row `json:"rows"`
}

// New construye una bodega vacía, lista para Initialize.
func New() *Grid {
	return &Grid{}
}

// Initialize crea la estructura fija de la bodega: rowCount filas, cada una
// con columnsPerRow columnas de slotsPerColumn casillas. Se invoca una sola
// vez; después las dimensiones solo cambian por operaciones administrativas.
func (g *Grid) Initialize(rowCount, columnsPerRow, slotsPerColumn int) {
	for i := 1; i <= rowCount; i++ {
		row := NewRow(i)
		row.InitializeColumns(columnsPerRow, slotsPerColumn)
		g.AddRow(row)
	}
}

// AddRow agrega una fila al final de la bodega y ajusta los agregados.
func (g *Grid) AddRow(r *Row) {
	g.Capacity += r.Capacity
	g.AvailableSpace += r.AvailableSpace
	g.Rows = append(g.Rows, r)
}

// RemoveRow elimina la fila indicada. Operación administrativa: solo se
// permite sobre filas vacías, para no perder ocupantes.
func (g *Grid) RemoveRow(rowNumber int) error {
	for i, r := range g.Rows {
		if r.RowNumber != rowNumber {
			continue
		}
		if r.AvailableSpace != r.Capacity {
			return newSlotOccupied(rowNumber, 0, 0)
		}
		g.Capacity -= r.Capacity
		g.AvailableSpace -= r.AvailableSpace
		g.Rows = append(g.Rows[:i], g.Rows[i+1:]...)
		return nil
	}
	return &RowError{Row: rowNumber}
}

// AddColumn agrega una columna a la fila indicada, propagando capacidad y
// espacio libre hasta la bodega.
func (g *Grid) AddColumn(rowNumber int, c *Column) error {
	r := g.Row(rowNumber)
	if r == nil {
		return &RowError{Row: rowNumber}
	}
	r.AddColumn(c)
	g.Capacity += c.Capacity
	g.AvailableSpace += c.AvailableSpace
	return nil
}

// RemoveColumn elimina una columna vacía de la fila indicada, propagando los
// agregados hasta la bodega.
func (g *Grid) RemoveColumn(rowNumber, columnNumber int) error {
	r := g.Row(rowNumber)
	if r == nil {
		return &RowError{Row: rowNumber}
	}
	c := r.Column(columnNumber)
	if c == nil {
		return &ColumnError{Row: rowNumber, Column: columnNumber}
	}
	capacity, available := c.Capacity, c.AvailableSpace
	if err := r.RemoveColumn(columnNumber); err != nil {
		return err
	}
	g.Capacity -= capacity
	g.AvailableSpace -= available
	return nil
}

// Row devuelve la fila con el número dado, o nil si no existe.
func (g *Grid) Row(rowNumber int) *Row {
	for _, r := range g.Rows {
		if r.RowNumber == rowNumber {
			return r
		}
	}
	return nil
}

// Slot devuelve la casilla (fila, columna, casilla), o nil si no existe.
func (g *Grid) Slot(rowNumber, columnNumber, slotNumber int) *Slot {
	if r := g.Row(rowNumber); r != nil {
		return r.Slot(columnNumber, slotNumber)
	}
	return nil
}

// IsFull indica si no queda espacio libre en la bodega.
func (g *Grid) IsFull() bool {
	return g.AvailableSpace == 0
}

// AddItem coloca un ocupante en la posición dada, descontando el espacio libre
// en columna, fila y bodega en un solo paso.
func (g *Grid) AddItem(rowNumber, columnNumber, slotNumber int, o *Occupant) error {
	r := g.Row(rowNumber)
	if r == nil {
		return &RowError{Row: rowNumber}
	}
	if err := r.AddItem(columnNumber, slotNumber, o); err != nil {
		return err
	}
	g.AvailableSpace--
	return nil
}

// RemoveItemAt retira el ocupante de la posición dada, liberando espacio en
// los tres niveles.
func (g *Grid) RemoveItemAt(rowNumber, columnNumber, slotNumber int) error {
	r := g.Row(rowNumber)
	if r == nil {
		return &RowError{Row: rowNumber}
	}
	if err := r.RemoveItem(columnNumber, slotNumber); err != nil {
		return err
	}
	g.AvailableSpace++
	return nil
}

// Item devuelve el ocupante en la posición dada, o nil.
func (g *Grid) Item(rowNumber, columnNumber, slotNumber int) *Occupant {
	if r := g.Row(rowNumber); r != nil {
		return r.Item(columnNumber, slotNumber)
	}
	return nil
}

// ContainsProduct indica si el producto tiene al menos una unidad almacenada.
func (g *Grid) ContainsProduct(productID uint32) bool {
	for _, r := range g.Rows {
		if r.ContainsProduct(productID) {
			return true
		}
	}
	return false
}

// FindItem devuelve la primera posición del producto en orden de recorrido.
func (g *Grid) FindItem(productID uint32) (Position, bool) {
	for _, r := range g.Rows {
		for _, c := range r.Columns {
			for _, s := range c.Slots {
				if s.Occupant != nil && s.Occupant.ProductID == productID {
					return s.Position(), true
				}
			}
		}
	}
	return Position{}, false
}

// FindAllOccurrences devuelve todas las posiciones del producto en orden de
// recorrido fila → columna → casilla. El estado de las casillas es la única
// fuente de verdad: no hay índice secundario que mantener sincronizado.
func (g *Grid) FindAllOccurrences(productID uint32) []Position {
	var positions []Position
	for _, r := range g.Rows {
		positions = append(positions, r.FindAllOccurrences(productID)...)
	}
	return positions
}

// FlatMap serializa la ocupación de la bodega como una secuencia plana de
// marcadores: '0' casilla libre, '1' ocupada, en orden fila → columna → casilla.
// Es la base de la búsqueda de espacio contiguo.
func (g *Grid) FlatMap() []byte {
	flat := make([]byte, 0, g.Capacity)
	for _, r := range g.Rows {
		flat = r.appendFlatMap(flat)
	}
	return flat
}

// PositionOf es el inverso de FlatMap: traduce un índice plano (0-based) a la
// posición (fila, columna, casilla) recorriendo las capacidades acumuladas por
// fila y por columna. Devuelve false si el índice queda fuera de la bodega.
func (g *Grid) PositionOf(flatIndex int) (Position, bool) {
	if flatIndex < 0 {
		return Position{}, false
	}
	cumulative := 0
	for _, r := range g.Rows {
		if flatIndex < cumulative+r.Capacity {
			relative := flatIndex - cumulative
			columnCumulative := 0
			for _, c := range r.Columns {
				if relative < columnCumulative+c.Capacity {
					slotIndex := relative - columnCumulative
					return Position{
						Row:    r.RowNumber,
						Column: c.ColumnNumber,
						Slot:   c.Slots[slotIndex].SlotNumber,
					}, true
				}
				columnCumulative += c.Capacity
			}
		}
		cumulative += r.Capacity
	}
	return Position{}, false
}
