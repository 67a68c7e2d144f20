package repository

import "github.com/jvillada/almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// List devuelve bodegas con sus stocks, ordenadas por nombre.
	List() ([]*entity.Warehouse, error)
	// CountReferences cuenta filas de stock y líneas de documento que apuntan a
	// la bodega. Se usa como guarda antes de borrar.
	CountReferences(id string) (int64, error)
	Delete(id string) error
}
