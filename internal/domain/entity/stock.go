package entity

import "time"

// Stock es la entrada del libro de existencias: cantidad de un producto en una
// bodega (par único). La cantidad nunca es negativa; una fila ausente se lee
// como cero y solo se materializa en la primera escritura.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
