package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (nombre único).
type Warehouse struct {
	ID        string
	Name      string
	CreatedAt time.Time

	// Resuelto por joins en lecturas (no persiste).
	Stocks []*Stock
}
