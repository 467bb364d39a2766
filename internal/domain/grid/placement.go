package grid

import (
	"bytes"
	"sort"
	"time"
)

// ExpirationGroup agrupa posiciones de un producto que comparten fecha de
// vencimiento. Los grupos se ordenan por fecha ascendente; los ocupantes sin
// fecha quedan fuera de la agrupación.
type ExpirationGroup struct {
	Expiration time.Time
	Positions  []Position
}

// FindContiguousSpace busca la primera corrida de required casillas libres
// consecutivas en el orden plano de recorrido (first-fit). Falla con
// ErrInsufficientSpace si ni siquiera el espacio libre total alcanza (chequeo
// rápido, previo a la búsqueda) y con ErrNoContiguousSpace cuando el espacio
// libre existe pero está fragmentado. Refleja la restricción física de la
// estantería: las unidades de un producto ocupan casillas adyacentes.
func (g *Grid) FindContiguousSpace(required int) (Position, error) {
	if required > g.AvailableSpace {
		return Position{}, ErrInsufficientSpace
	}
	flat := g.FlatMap()
	idx := bytes.Index(flat, bytes.Repeat([]byte{'0'}, required))
	if idx < 0 {
		return Position{}, ErrNoContiguousSpace
	}
	pos, ok := g.PositionOf(idx)
	if !ok {
		return Position{}, ErrNoContiguousSpace
	}
	return pos, nil
}

// IsStoredContiguously indica si todas las unidades del producto ocupan una
// sola corrida: misma fila, misma columna y casillas consecutivas en el orden
// de recorrido. Cero o una unidad cuentan como contiguas.
func (g *Grid) IsStoredContiguously(productID uint32) bool {
	positions := g.FindAllOccurrences(productID)
	if len(positions) <= 1 {
		return true
	}
	for i := 1; i < len(positions); i++ {
		if positions[i].Row != positions[i-1].Row {
			return false
		}
		if positions[i].Column != positions[i-1].Column {
			return false
		}
		if positions[i].Slot != positions[i-1].Slot+1 {
			return false
		}
	}
	return true
}

// AddItems coloca qty unidades del producto. Tres casos excluyentes:
//
//   - producto ausente: busca una corrida libre de qty casillas y las llena
//     desde ahí;
//   - producto almacenado contiguo: continúa justo después de su última
//     casilla ocupada, saltando casillas ocupadas;
//   - producto disperso: desfragmenta. Busca una corrida para el total
//     (existentes + qty), mueve los ocupantes existentes al frente de la
//     corrida agrupados por vencimiento ascendente y agrega las unidades
//     nuevas a continuación.
//
// Cada colocación individual actualiza los contadores de casilla, columna,
// fila y bodega en un solo paso. qty debe ser positivo; lo valida el caller.
func (g *Grid) AddItems(productID uint32, qty int, expiration *time.Time) error {
	if qty > g.AvailableSpace {
		return ErrInsufficientSpace
	}

	switch {
	case !g.ContainsProduct(productID):
		start, err := g.FindContiguousSpace(qty)
		if err != nil {
			return err
		}
		// La corrida garantiza casillas libres: toparse con una ocupada
		// es una violación de invariante, no un caso recuperable.
		return g.placeRun(productID, qty, expiration, g.newCursor(start), false)

	case g.IsStoredContiguously(productID):
		occurrences := g.FindAllOccurrences(productID)
		last := occurrences[len(occurrences)-1]
		return g.placeRun(productID, qty, expiration, g.newCursor(last), true)

	default:
		existing := g.FindAllOccurrences(productID)
		total := len(existing) + qty
		start, err := g.FindContiguousSpace(total)
		if err != nil {
			return err
		}
		cur := g.newCursor(start)
		if err := g.moveGroups(g.groupByExpiration(existing), cur); err != nil {
			return err
		}
		return g.placeRun(productID, qty, expiration, cur, true)
	}
}

// placeRun coloca qty ocupantes nuevos avanzando el cursor con acarreo en los
// tres niveles. Con skipOccupied salta casillas ya ocupadas; sin él, una
// casilla ocupada es un error. Si el recorrido se agota antes de completar la
// cantidad no queda corrida utilizable: ErrNoContiguousSpace.
func (g *Grid) placeRun(productID uint32, qty int, expiration *time.Time, cur *cursor, skipOccupied bool) error {
	placed := 0
	for placed < qty {
		s := cur.slot()
		if s == nil {
			return ErrNoContiguousSpace
		}
		if s.IsEmpty() {
			pos := cur.position()
			o := NewOccupant(productID, pos.Row, pos.Column, pos.Slot, expiration)
			if err := g.AddItem(pos.Row, pos.Column, pos.Slot, o); err != nil {
				return err
			}
			placed++
		} else if !skipOccupied {
			pos := cur.position()
			return newSlotOccupied(pos.Row, pos.Column, pos.Slot)
		}
		if placed < qty && !cur.advance() {
			return ErrNoContiguousSpace
		}
	}
	return nil
}

// MoveItem traslada el ocupante de from a to: crea el ocupante en el destino
// y luego elimina el del origen. Si el destino falla (casilla inexistente u
// ocupada), el origen queda intacto: no hay movimientos a medias.
func (g *Grid) MoveItem(from, to Position) error {
	s := g.Slot(from.Row, from.Column, from.Slot)
	if s == nil {
		return newSlotNotFound(from.Row, from.Column, from.Slot)
	}
	if s.Occupant == nil {
		return newSlotEmpty(from.Row, from.Column, from.Slot)
	}
	moved := s.Occupant.copyAt(to.Row, to.Column, to.Slot)
	if err := g.AddItem(to.Row, to.Column, to.Slot, moved); err != nil {
		return err
	}
	return g.RemoveItemAt(from.Row, from.Column, from.Slot)
}

// groupByExpiration ordena las posiciones con fecha de vencimiento de forma
// ascendente (estable, conservando el orden de recorrido entre fechas iguales)
// y las agrupa por fecha. Las posiciones sin fecha se excluyen.
func (g *Grid) groupByExpiration(positions []Position) []ExpirationGroup {
	type dated struct {
		pos  Position
		date time.Time
	}
	var list []dated
	for _, p := range positions {
		if o := g.Item(p.Row, p.Column, p.Slot); o != nil && o.Expiration != nil {
			list = append(list, dated{pos: p, date: *o.Expiration})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].date.Before(list[j].date) })

	var groups []ExpirationGroup
	for _, d := range list {
		if n := len(groups); n > 0 && groups[n-1].Expiration.Equal(d.date) {
			groups[n-1].Positions = append(groups[n-1].Positions, d.pos)
			continue
		}
		groups = append(groups, ExpirationGroup{Expiration: d.date, Positions: []Position{d.pos}})
	}
	return groups
}

// moveGroups traslada los grupos, en orden, al recorrido que inicia en el
// cursor, avanzando a la siguiente casilla libre tras cada movimiento.
func (g *Grid) moveGroups(groups []ExpirationGroup, cur *cursor) error {
	for _, group := range groups {
		for _, from := range group.Positions {
			for {
				s := cur.slot()
				if s == nil {
					return ErrNoContiguousSpace
				}
				if s.IsEmpty() {
					break
				}
				if !cur.advance() {
					return ErrNoContiguousSpace
				}
			}
			if err := g.MoveItem(from, cur.position()); err != nil {
				return err
			}
			if !cur.advance() {
				// Última casilla de la bodega: válido si ya no queda nada por mover.
				continue
			}
		}
	}
	return nil
}

// MoveToContiguousSpace desfragmenta: busca una corrida del tamaño del total
// de posiciones agrupadas y traslada cada grupo, en orden ascendente de
// vencimiento, al frente de la corrida.
func (g *Grid) MoveToContiguousSpace(groups []ExpirationGroup) error {
	required := 0
	for _, group := range groups {
		required += len(group.Positions)
	}
	start, err := g.FindContiguousSpace(required)
	if err != nil {
		return err
	}
	return g.moveGroups(groups, g.newCursor(start))
}

// OrganizeItems reagrupa todas las unidades del producto en una sola corrida
// contigua, ordenadas por vencimiento ascendente.
func (g *Grid) OrganizeItems(productID uint32) error {
	positions := g.FindAllOccurrences(productID)
	if len(positions) == 0 {
		return ErrNoProductFound
	}
	return g.MoveToContiguousSpace(g.groupByExpiration(positions))
}

// RemoveItems retira qty unidades del producto con política de salida por
// vencimiento: entre las unidades con fecha, salen primero las que vencen
// antes. Si las unidades con fecha no alcanzan la cantidad pedida se retiran
// TODAS las existencias del producto, con y sin fecha. Política heredada,
// pendiente de confirmación de negocio; ver remove-items-fallback en DESIGN.md.
func (g *Grid) RemoveItems(productID uint32, qty int) error {
	positions := g.FindAllOccurrences(productID)

	type dated struct {
		pos  Position
		date time.Time
	}
	var withDates []dated
	for _, p := range positions {
		if o := g.Item(p.Row, p.Column, p.Slot); o != nil && o.Expiration != nil {
			withDates = append(withDates, dated{pos: p, date: *o.Expiration})
		}
	}
	sort.SliceStable(withDates, func(i, j int) bool { return withDates[i].date.Before(withDates[j].date) })

	if len(withDates) < qty {
		return g.RemoveAllItems(productID)
	}
	for _, d := range withDates[:qty] {
		if err := g.RemoveItemAt(d.pos.Row, d.pos.Column, d.pos.Slot); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAllItems retira todas las unidades del producto. Falla con
// ErrNoProductFound si no hay ninguna.
func (g *Grid) RemoveAllItems(productID uint32) error {
	positions := g.FindAllOccurrences(productID)
	if len(positions) == 0 {
		return ErrNoProductFound
	}
	for _, p := range positions {
		if err := g.RemoveItemAt(p.Row, p.Column, p.Slot); err != nil {
			return err
		}
	}
	return nil
}
