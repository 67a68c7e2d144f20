package entity

import "time"

// Tipos de documento de inventario. Los tres comparten la misma forma
// (cabecera + líneas + estado); difieren en los campos de cabecera y en qué
// operaciones de stock dispara su transición terminal.
const (
	DocReceipt  = "receipt"  // recepción de proveedor: suma en bodega destino
	DocDelivery = "delivery" // entrega a cliente: resta de la bodega de cada línea
	DocTransfer = "transfer" // traslado entre bodegas: resta origen, suma destino
)

// Estados del documento. La máquina es de un solo disparo: draft avanza a
// validated (receipt/delivery) o completed (transfer) y ahí termina; no hay
// re-validación ni reversa.
const (
	StatusDraft     = "draft"
	StatusValidated = "validated"
	StatusCompleted = "completed"
)

// Document es la unión etiquetada sobre Kind. Solo los campos de cabecera del
// tipo correspondiente vienen poblados:
//   - receipt:  Supplier, WarehouseID, DocumentDate
//   - delivery: Customer (la bodega va por línea)
//   - transfer: FromWarehouseID, ToWarehouseID
type Document struct {
	ID              string
	Kind            string
	Status          string
	Supplier        string
	Customer        string
	WarehouseID     string
	FromWarehouseID string
	ToWarehouseID   string
	DocumentDate    time.Time
	CreatedAt       time.Time
	Items           []*DocumentItem

	// Resueltos por joins en lecturas (no persisten).
	WarehouseName     string
	FromWarehouseName string
	ToWarehouseName   string
}

// DocumentItem es una línea del documento, propiedad exclusiva de su cabecera
// (se elimina en cascada con ella). Referencia producto y bodega solo por ID.
// WarehouseID solo aplica a líneas de delivery; receipt lleva la bodega en
// la cabecera y transfer el par origen/destino.
type DocumentItem struct {
	ID           string
	DocumentID   string
	ProductID    string
	WarehouseID  string
	Quantity     int64 // cantidad solicitada, fija al crear
	FulfilledQty int64 // cantidad cumplida, 0 en draft

	// Resueltos por joins en lecturas (no persisten).
	ProductName   string
	ProductSKU    string
	CategoryName  string
	WarehouseName string
}

// RequiredStatus devuelve el estado terminal que exige datos de cumplimiento
// para cada tipo de documento.
func RequiredStatus(kind string) string {
	if kind == DocTransfer {
		return StatusCompleted
	}
	return StatusValidated
}

// FindItem busca una línea por ID dentro del documento. Nil si no pertenece.
func (d *Document) FindItem(itemID string) *DocumentItem {
	for _, it := range d.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}
