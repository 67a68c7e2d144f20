// Package document contiene las reglas puras del motor de transición de
// documentos: qué cumplimientos son admisibles antes de tocar el stock.
// La verificación de existencias (que requiere la fila bloqueada en BD) se
// hace en el caso de uso, dentro de la misma transacción.
package document

import (
	"errors"
	"fmt"

	"github.com/jvillada/almacen-api/internal/domain/entity"
)

// Errores de validación de transición. Se envuelven con el detalle de la
// línea ofensora; comparar con errors.Is.
var (
	ErrMissingFulfillments = errors.New("se requieren items con cantidades para esta transición")
	ErrUnknownItem         = errors.New("el item no pertenece al documento")
	ErrDuplicateItem       = errors.New("el item aparece más de una vez en los cumplimientos")
	ErrInvalidQty          = errors.New("cantidad cumplida inválida")
	ErrSameWarehouse       = errors.New("bodega origen y destino deben ser distintas")
	ErrNotDraft            = errors.New("el documento ya fue procesado")
	ErrUnknownStatus       = errors.New("estado de documento desconocido")
)

// Fulfillment es la cantidad cumplida declarada para una línea.
type Fulfillment struct {
	ItemID string
	Qty    int64
}

// CheckTransition valida una transición hacia el estado terminal del tipo:
// el documento debe estar en draft, debe venir al menos un cumplimiento, cada
// cumplimiento debe referir una línea del documento una sola vez y su
// cantidad debe estar en [0, solicitada]. Una línea repetida se rechaza: cada
// repetición aplicaría su propia mutación de stock mientras la cantidad
// cumplida persistida seguiría siendo la de una sola. El primer fallo aborta
// la operación completa.
//
// No consulta stock: esa verificación ocurre bajo bloqueo de fila en la
// transacción que aplica la mutación.
func CheckTransition(doc *entity.Document, fills []Fulfillment) error {
	if doc.Status != entity.StatusDraft {
		return fmt.Errorf("%w: estado actual %q", ErrNotDraft, doc.Status)
	}
	if len(fills) == 0 {
		return ErrMissingFulfillments
	}
	seen := make(map[string]struct{}, len(fills))
	for _, f := range fills {
		if _, dup := seen[f.ItemID]; dup {
			return fmt.Errorf("%w: item %s", ErrDuplicateItem, f.ItemID)
		}
		seen[f.ItemID] = struct{}{}
		item := doc.FindItem(f.ItemID)
		if item == nil {
			return fmt.Errorf("%w: item %s", ErrUnknownItem, f.ItemID)
		}
		if f.Qty < 0 || f.Qty > item.Quantity {
			return fmt.Errorf("%w: item %s (cumplida %d, solicitada %d)",
				ErrInvalidQty, f.ItemID, f.Qty, item.Quantity)
		}
	}
	return nil
}

// CheckTransferRoute rechaza traslados con origen y destino iguales.
// Se aplica antes de crear el documento; nunca debe existir un transfer
// con la misma bodega en ambos extremos.
func CheckTransferRoute(fromWarehouseID, toWarehouseID string) error {
	if fromWarehouseID == toWarehouseID {
		return ErrSameWarehouse
	}
	return nil
}

// IsValidation reporta si un error proviene de las reglas de transición
// (para mapearlo a 400 en la capa HTTP).
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFulfillments) ||
		errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, ErrDuplicateItem) ||
		errors.Is(err, ErrInvalidQty) ||
		errors.Is(err, ErrSameWarehouse) ||
		errors.Is(err, ErrNotDraft) ||
		errors.Is(err, ErrUnknownStatus)
}
