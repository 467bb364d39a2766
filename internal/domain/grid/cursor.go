package grid

// cursor recorre la bodega casilla por casilla en orden fila → columna →
// casilla, con acarreo en los tres niveles: al agotar las casillas de una
// columna pasa a la siguiente columna, y al agotar las columnas de una fila
// pasa a la siguiente fila. Encapsula la aritmética de índices que comparten
// la colocación en bloque y la desfragmentación.
type cursor struct {
	g   *Grid
	pos Position
}

// newCursor posiciona un cursor sobre la casilla inicial dada.
func (g *Grid) newCursor(start Position) *cursor {
	return &cursor{g: g, pos: start}
}

// position devuelve la posición actual del cursor.
func (c *cursor) position() Position {
	return c.pos
}

// valid indica si la posición actual existe en la bodega.
func (c *cursor) valid() bool {
	return c.g.Slot(c.pos.Row, c.pos.Column, c.pos.Slot) != nil
}

// slot devuelve la casilla bajo el cursor, o nil si el cursor quedó fuera de rango.
func (c *cursor) slot() *Slot {
	return c.g.Slot(c.pos.Row, c.pos.Column, c.pos.Slot)
}

// advance mueve el cursor a la siguiente casilla. Devuelve false cuando el
// recorrido pasó la última casilla de la última fila. El avance sigue el orden
// de las listas, no el numérico: las eliminaciones administrativas dejan
// huecos en la numeración de filas y columnas.
func (c *cursor) advance() bool {
	rowIdx := -1
	for i, r := range c.g.Rows {
		if r.RowNumber == c.pos.Row {
			rowIdx = i
			break
		}
	}
	if rowIdx < 0 {
		return false
	}
	row := c.g.Rows[rowIdx]

	colIdx := -1
	for i, col := range row.Columns {
		if col.ColumnNumber == c.pos.Column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return false
	}

	c.pos.Slot++
	if c.pos.Slot <= row.Columns[colIdx].Capacity {
		return true
	}
	if colIdx+1 < len(row.Columns) {
		c.pos.Column = row.Columns[colIdx+1].ColumnNumber
		c.pos.Slot = 1
		return true
	}
	for _, next := range c.g.Rows[rowIdx+1:] {
		if len(next.Columns) == 0 {
			continue
		}
		c.pos.Row = next.RowNumber
		c.pos.Column = next.Columns[0].ColumnNumber
		c.pos.Slot = 1
		return true
	}
	// Recorrido agotado; la posición queda fuera de rango y slot() devuelve nil.
	return false
}
