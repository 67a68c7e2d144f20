package repository

import "github.com/jvillada/almacen-api/internal/domain/entity"

// StockRepository define el puerto del libro de existencias por producto+bodega.
// Un par sin fila se lee como cantidad cero; Upsert materializa la fila en la
// primera escritura. Las mutaciones del motor de documentos se hacen siempre
// dentro de una transacción.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar el
	// check-de-factibilidad + mutación frente a escrituras concurrentes.
	// Debe garantizar exclusión también para pares nunca escritos: la fila
	// se materializa en cero antes de bloquearse.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	DeleteByProduct(productID string) error
}
