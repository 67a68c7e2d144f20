package entity

import "time"

// Product representa un producto o SKU del almacén.
// El stock se maneja por bodega en Stock; aquí solo datos de referencia.
type Product struct {
	ID         string
	SKU        string // código único de negocio, inmutable una vez creado
	Name       string
	UOM        string // unidad de medida (ej. "unidad", "kg", "caja")
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Resueltos por joins en lecturas (no persisten).
	CategoryName string
	Stocks       []*Stock
}
