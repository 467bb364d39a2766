package dto

// WarehouseStatusResponse estado agregado de la bodega.
type WarehouseStatusResponse struct {
	Capacity       int  `json:"capacity"`
	AvailableSpace int  `json:"available_space"`
	Rows           int  `json:"rows"`
	Full           bool `json:"full"`
}

// AddRowRequest entrada administrativa para agregar una fila.
type AddRowRequest struct {
	Columns        int `json:"columns"`
	SlotsPerColumn int `json:"slots_per_column"`
}

// AddColumnRequest entrada administrativa para agregar una columna a una fila.
type AddColumnRequest struct {
	Slots int `json:"slots"`
}
