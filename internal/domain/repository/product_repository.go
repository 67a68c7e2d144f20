package repository

import "github.com/jvillada/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List devuelve productos con categoría y stocks resueltos, más reciente primero.
	List() ([]*entity.Product, error)
	Delete(id string) error
}
