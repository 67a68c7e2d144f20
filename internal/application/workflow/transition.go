package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/application/inventory"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/document"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

// timeNow indirección para fijar el reloj en tests.
var timeNow = time.Now

// Transition avanza un documento de estado. Si el destino es el estado
// terminal del tipo (validated para receipt/delivery, completed para
// transfer) exige cumplimientos y muta el stock; cualquier otro destino
// admitido persiste solo la cabecera sin efecto en el libro.
//
// La secuencia es check-then-commit: dentro de una única transacción se
// verifica la factibilidad de todas las líneas bajo bloqueo de fila y solo
// después se aplica mutación alguna. El primer fallo aborta la operación
// completa; ni el estado ni el stock quedan a medias.
func (uc *UseCase) Transition(ctx context.Context, kind string, in dto.TransitionRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.loadDocument(kind, in.DocumentID)
	if err != nil {
		return nil, err
	}

	target := in.Status
	if target == "" {
		target = entity.StatusDraft
	}

	// Cambio de cabecera sin items: la válvula de escape "guardar como draft".
	if target != entity.RequiredStatus(kind) {
		if target != entity.StatusDraft {
			return nil, fmt.Errorf("%w: %q no aplica a %s", document.ErrUnknownStatus, target, kind)
		}
		if doc.Status != entity.StatusDraft {
			return nil, fmt.Errorf("%w: estado actual %q", document.ErrNotDraft, doc.Status)
		}
		// Condicional también aquí: un "guardar como draft" no debe pisar a
		// una transición terminal que ganó la carrera.
		claimed, err := uc.docRepo.ClaimDraft(doc.ID, target)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, fmt.Errorf("%w: documento %s", document.ErrNotDraft, doc.ID)
		}
		return uc.getResponse(doc.ID)
	}

	fills := make([]document.Fulfillment, 0, len(in.Items))
	for _, it := range in.Items {
		fills = append(fills, document.Fulfillment{ItemID: it.ItemID, Qty: it.Qty})
	}
	if err := document.CheckTransition(doc, fills); err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository, stockRepo repository.StockRepository) error {
		return applyTransition(docRepo, stockRepo, doc, target, fills)
	})
	if err != nil {
		return nil, err
	}
	return uc.getResponse(doc.ID)
}

// applyTransition corre dentro de la transacción: reclama el documento
// (guarda de un-solo-disparo bajo el bloqueo de fila de la cabecera), fase de
// chequeo (bloquea filas de stock y proyecta los decrementos) y fase de
// aplicación (ledger + cantidades cumplidas). Commit o rollback los decide el
// TxRunner. El estado leído fuera de la transacción puede estar viejo si una
// transición concurrente ganó la carrera; por eso el reclamo es condicional
// y va primero.
func applyTransition(
	docRepo repository.DocumentRepository,
	stockRepo repository.StockRepository,
	doc *entity.Document,
	target string,
	fills []document.Fulfillment,
) error {
	ledger := inventory.NewLedger(stockRepo)
	now := timeNow()

	claimed, err := docRepo.ClaimDraft(doc.ID, target)
	if err != nil {
		return err
	}
	if !claimed {
		return fmt.Errorf("%w: documento %s", document.ErrNotDraft, doc.ID)
	}

	if err := checkFeasibility(stockRepo, doc, fills); err != nil {
		return err
	}

	for _, f := range fills {
		item := doc.FindItem(f.ItemID)
		if f.Qty > 0 {
			switch doc.Kind {
			case entity.DocReceipt:
				if err := ledger.Increment(item.ProductID, doc.WarehouseID, f.Qty, now); err != nil {
					return err
				}
			case entity.DocDelivery:
				if err := ledger.Decrement(item.ProductID, item.WarehouseID, f.Qty, now); err != nil {
					return err
				}
			case entity.DocTransfer:
				if err := ledger.Decrement(item.ProductID, doc.FromWarehouseID, f.Qty, now); err != nil {
					return err
				}
				if err := ledger.Increment(item.ProductID, doc.ToWarehouseID, f.Qty, now); err != nil {
					return err
				}
			}
		}
		if err := docRepo.UpdateItemFulfilled(f.ItemID, f.Qty); err != nil {
			return err
		}
	}
	return nil
}

// checkFeasibility verifica, antes de escribir nada, que todos los
// decrementos del documento quepan en el stock disponible. Bloquea cada fila
// origen una sola vez (FOR UPDATE) y proyecta el saldo línea a línea en orden,
// de modo que varias líneas del mismo par (producto, bodega) se evalúan
// contra el saldo ya comprometido por las anteriores.
func checkFeasibility(stockRepo repository.StockRepository, doc *entity.Document, fills []document.Fulfillment) error {
	if doc.Kind == entity.DocReceipt {
		return nil // solo incrementos
	}
	type key struct{ productID, warehouseID string }
	projected := make(map[key]int64)

	for _, f := range fills {
		if f.Qty == 0 {
			continue
		}
		item := doc.FindItem(f.ItemID)
		source := item.WarehouseID
		if doc.Kind == entity.DocTransfer {
			source = doc.FromWarehouseID
		}
		k := key{item.ProductID, source}
		avail, ok := projected[k]
		if !ok {
			s, err := stockRepo.GetForUpdate(item.ProductID, source)
			if err != nil {
				return err
			}
			avail = s.Quantity
		}
		if avail < f.Qty {
			return fmt.Errorf("%w: producto %s en bodega %s (disponible %d, requerido %d)",
				domain.ErrInsufficientStock, item.ProductID, source, avail, f.Qty)
		}
		projected[k] = avail - f.Qty
	}
	return nil
}
