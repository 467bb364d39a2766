package grid

// Column es una secuencia ordenada de casillas dentro de una fila.
// Invariantes: Capacity == len(Slots) y AvailableSpace == casillas vacías.
type Column struct {
	ColumnNumber   int     `json:"column"`
	RowNumber      int     `json:"row"`
	Capacity       int     `json:"capacity"`
	AvailableSpace int     `json:"available_space"`
	Slots          []*Slot `json:"slots"`
}

// NewColumn construye una columna vacía; las casillas se agregan después.
func NewColumn(column, row int) *Column {
	return &Column{ColumnNumber: column, RowNumber: row}
}

// InitializeSlots crea slotCount casillas vacías numeradas desde 1.
func (c *Column) InitializeSlots(slotCount int) {
	for i := 1; i <= slotCount; i++ {
		c.AddSlot(NewSlot(c.RowNumber, c.ColumnNumber, i))
	}
}

// AddSlot agrega una casilla al final de la columna y ajusta los contadores.
func (c *Column) AddSlot(s *Slot) {
	c.Slots = append(c.Slots, s)
	c.Capacity++
	if s.IsEmpty() {
		c.AvailableSpace++
	}
}

// Slot devuelve la casilla con el número dado, o nil si no existe.
func (c *Column) Slot(slotNumber int) *Slot {
	for _, s := range c.Slots {
		if s.SlotNumber == slotNumber {
			return s
		}
	}
	return nil
}

// IsFull indica si no queda espacio libre en la columna.
func (c *Column) IsFull() bool {
	return c.AvailableSpace == 0
}

// AddItem coloca un ocupante en la casilla indicada y descuenta el espacio libre.
func (c *Column) AddItem(slotNumber int, o *Occupant) error {
	s := c.Slot(slotNumber)
	if s == nil {
		return newSlotNotFound(c.RowNumber, c.ColumnNumber, slotNumber)
	}
	if err := s.Put(o); err != nil {
		return err
	}
	c.AvailableSpace--
	return nil
}

// RemoveItem retira el ocupante de la casilla indicada y libera el espacio.
func (c *Column) RemoveItem(slotNumber int) error {
	s := c.Slot(slotNumber)
	if s == nil {
		return newSlotNotFound(c.RowNumber, c.ColumnNumber, slotNumber)
	}
	if err := s.Clear(); err != nil {
		return err
	}
	c.AvailableSpace++
	return nil
}

// Item devuelve el ocupante de la casilla, o nil si no existe o está vacía.
func (c *Column) Item(slotNumber int) *Occupant {
	if s := c.Slot(slotNumber); s != nil {
		return s.Occupant
	}
	return nil
}

// ContainsProduct indica si alguna casilla guarda el producto.
func (c *Column) ContainsProduct(productID uint32) bool {
	for _, s := range c.Slots {
		if s.Occupant != nil && s.Occupant.ProductID == productID {
			return true
		}
	}
	return false
}

// FindAllOccurrences devuelve los números de casilla que guardan el producto,
// en orden de recorrido.
func (c *Column) FindAllOccurrences(productID uint32) []int {
	var slots []int
	for _, s := range c.Slots {
		if s.Occupant != nil && s.Occupant.ProductID == productID {
			slots = append(slots, s.SlotNumber)
		}
	}
	return slots
}

// appendFlatMap agrega a dst un marcador por casilla: '0' libre, '1' ocupada.
func (c *Column) appendFlatMap(dst []byte) []byte {
	for _, s := range c.Slots {
		if s.IsEmpty() {
			dst = append(dst, '0')
		} else {
			dst = append(dst, '1')
		}
	}
	return dst
}
