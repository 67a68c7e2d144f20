package repository

import "github.com/jvillada/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	// GetByName busca por nombre sin distinguir mayúsculas.
	GetByName(name string) (*entity.Category, error)
}
