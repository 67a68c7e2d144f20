package repository

import "github.com/jvillada/almacen-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para los documentos de
// inventario (receipt/delivery/transfer) y sus líneas.
type DocumentRepository interface {
	// Create persiste cabecera y líneas; las líneas nacen con FulfilledQty = 0.
	Create(doc *entity.Document) error
	// GetByID devuelve el documento con sus líneas y nombres resueltos
	// (producto, categoría, bodegas). Nil si no existe.
	GetByID(id string) (*entity.Document, error)
	// ListByKind lista documentos de un tipo, opcionalmente filtrados por
	// estado, más reciente primero, con líneas y nombres resueltos.
	ListByKind(kind, status string) ([]*entity.Document, error)
	// ClaimDraft pasa la cabecera de draft al estado dado solo si sigue en
	// draft; devuelve false si ya fue procesada. Es la guarda de un-solo-
	// disparo dentro de la transacción: dos transiciones concurrentes del
	// mismo documento no pueden reclamarlo ambas.
	ClaimDraft(id, status string) (bool, error)
	UpdateItemFulfilled(itemID string, qty int64) error
	// DeleteItemsByProduct elimina líneas que referencian un producto
	// (cascada previa al borrado del producto).
	DeleteItemsByProduct(productID string) error
}
