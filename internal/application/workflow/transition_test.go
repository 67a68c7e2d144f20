package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/application/workflow"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/document"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ productID, warehouseID string }

type memStock struct {
	rows map[stockKey]int64
}

func newMemStock() *memStock { return &memStock{rows: make(map[stockKey]int64)} }

func (r *memStock) Get(productID, warehouseID string) (*entity.Stock, error) {
	return &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    r.rows[stockKey{productID, warehouseID}],
	}, nil
}
func (r *memStock) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}
func (r *memStock) Upsert(s *entity.Stock) error {
	r.rows[stockKey{s.ProductID, s.WarehouseID}] = s.Quantity
	return nil
}
func (r *memStock) DeleteByProduct(productID string) error {
	for k := range r.rows {
		if k.productID == productID {
			delete(r.rows, k)
		}
	}
	return nil
}

type memDocs struct {
	docs map[string]*entity.Document
}

func newMemDocs() *memDocs { return &memDocs{docs: make(map[string]*entity.Document)} }

func (r *memDocs) Create(doc *entity.Document) error {
	r.docs[doc.ID] = doc
	return nil
}
func (r *memDocs) GetByID(id string) (*entity.Document, error) { return r.docs[id], nil }
func (r *memDocs) ListByKind(kind, status string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.docs {
		if d.Kind == kind && (status == "" || d.Status == status) {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *memDocs) ClaimDraft(id, status string) (bool, error) {
	d, ok := r.docs[id]
	if !ok || d.Status != entity.StatusDraft {
		return false, nil
	}
	d.Status = status
	return true, nil
}
func (r *memDocs) UpdateItemFulfilled(itemID string, qty int64) error {
	for _, d := range r.docs {
		if it := d.FindItem(itemID); it != nil {
			it.FulfilledQty = qty
		}
	}
	return nil
}
func (r *memDocs) DeleteItemsByProduct(productID string) error { return nil }

type memProducts struct {
	products map[string]*entity.Product
}

func (r *memProducts) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProducts) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProducts) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *memProducts) Update(p *entity.Product) error               { return nil }
func (r *memProducts) List() ([]*entity.Product, error)             { return nil, nil }
func (r *memProducts) Delete(id string) error                       { return nil }

type memWarehouses struct {
	warehouses map[string]*entity.Warehouse
}

func (r *memWarehouses) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *memWarehouses) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}
func (r *memWarehouses) List() ([]*entity.Warehouse, error)        { return nil, nil }
func (r *memWarehouses) CountReferences(id string) (int64, error)  { return 0, nil }
func (r *memWarehouses) Delete(id string) error                    { return nil }

// memTxRunner imita el commit/rollback real: toma una instantánea del stock y
// de los documentos antes del callback y la restaura si este falla.
type memTxRunner struct {
	stock *memStock
	docs  *memDocs
}

func (tx *memTxRunner) Run(_ context.Context, fn func(
	docRepo repository.DocumentRepository,
	stockRepo repository.StockRepository,
) error) error {
	stockSnap := make(map[stockKey]int64, len(tx.stock.rows))
	for k, v := range tx.stock.rows {
		stockSnap[k] = v
	}
	type docSnap struct {
		status    string
		fulfilled map[string]int64
	}
	docsSnap := make(map[string]docSnap, len(tx.docs.docs))
	for id, d := range tx.docs.docs {
		s := docSnap{status: d.Status, fulfilled: make(map[string]int64, len(d.Items))}
		for _, it := range d.Items {
			s.fulfilled[it.ID] = it.FulfilledQty
		}
		docsSnap[id] = s
	}

	if err := fn(tx.docs, tx.stock); err != nil {
		tx.stock.rows = stockSnap
		for id, s := range docsSnap {
			d := tx.docs.docs[id]
			d.Status = s.status
			for _, it := range d.Items {
				it.FulfilledQty = s.fulfilled[it.ID]
			}
		}
		return err
	}
	return nil
}

// rivalTxRunner intercala una operación rival justo antes de abrir la
// transacción, reproduciendo a una transacción concurrente que comete entre
// la lectura del documento y el inicio de la propia.
type rivalTxRunner struct {
	inner *memTxRunner
	fire  func()
	fired bool
}

func (tx *rivalTxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	stockRepo repository.StockRepository,
) error) error {
	if !tx.fired && tx.fire != nil {
		tx.fired = true
		tx.fire()
	}
	return tx.inner.Run(ctx, fn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	stock *memStock
	docs  *memDocs
	uc    *workflow.UseCase
}

func newFixture() *fixture {
	stock := newMemStock()
	docs := newMemDocs()
	products := &memProducts{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "SKU-1", Name: "Tornillo 3mm", UOM: "unidad"},
		"prod-2": {ID: "prod-2", SKU: "SKU-2", Name: "Tuerca 3mm", UOM: "unidad"},
	}}
	warehouses := &memWarehouses{warehouses: map[string]*entity.Warehouse{
		"wh-1": {ID: "wh-1", Name: "Bodega Norte"},
		"wh-2": {ID: "wh-2", Name: "Bodega Sur"},
	}}
	uc := workflow.NewUseCase(&memTxRunner{stock: stock, docs: docs}, docs, products, warehouses)
	return &fixture{stock: stock, docs: docs, uc: uc}
}

func (f *fixture) quantity(productID, warehouseID string) int64 {
	return f.stock.rows[stockKey{productID, warehouseID}]
}

func (f *fixture) seedStock(productID, warehouseID string, qty int64) {
	f.stock.rows[stockKey{productID, warehouseID}] = qty
}

func fills(items []dto.DocumentItemResponse, qtys ...int64) []dto.FulfillmentItem {
	out := make([]dto.FulfillmentItem, len(qtys))
	for i, q := range qtys {
		out[i] = dto.FulfillmentItem{ItemID: items[i].ID, Qty: q}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Receipt
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipt_CicloCompleto_SumaStock(t *testing.T) {
	f := newFixture()

	draft, err := f.uc.CreateReceipt(dto.CreateReceiptRequest{
		Supplier:    "Proveedor SA",
		WarehouseID: "wh-1",
		Items:       []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, draft.Status)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, int64(0), draft.Items[0].FulfilledQty, "las líneas nacen sin cumplir")

	out, err := f.uc.Transition(context.Background(), entity.DocReceipt, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusValidated, out.Status)
	assert.Equal(t, int64(10), out.Items[0].FulfilledQty)
	assert.Equal(t, int64(10), f.quantity("prod-1", "wh-1"),
		"validar la recepción debe sumar en la bodega de la cabecera")
}

func TestReceipt_BodegaInexistente_Rechazada(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateReceipt(dto.CreateReceiptRequest{
		Supplier:    "Proveedor SA",
		WarehouseID: "wh-fantasma",
		Items:       []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceipt_SegundaTransicion_Rechazada(t *testing.T) {
	f := newFixture()
	draft, err := f.uc.CreateReceipt(dto.CreateReceiptRequest{
		Supplier:    "Proveedor SA",
		WarehouseID: "wh-1",
		Items:       []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 10}},
	})
	require.NoError(t, err)

	req := dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 10),
	}
	_, err = f.uc.Transition(context.Background(), entity.DocReceipt, req)
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), entity.DocReceipt, req)
	assert.ErrorIs(t, err, document.ErrNotDraft, "la máquina es de un solo disparo")
	assert.Equal(t, int64(10), f.quantity("prod-1", "wh-1"),
		"repetir la transición no debe duplicar el stock")
}

// Dos transiciones sobre el mismo borrador: ambas lo leen en draft, pero el
// reclamo condicional dentro de la transacción deja que solo una aplique su
// mutación. La rezagada debe fallar aunque su lectura previa viera draft.
func TestReceipt_TransicionesConcurrentes_SoloUnaSuma(t *testing.T) {
	stock := newMemStock()
	docs := newMemDocs()
	products := &memProducts{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "SKU-1", Name: "Tornillo 3mm", UOM: "unidad"},
	}}
	warehouses := &memWarehouses{warehouses: map[string]*entity.Warehouse{
		"wh-1": {ID: "wh-1", Name: "Bodega Norte"},
	}}
	runner := &rivalTxRunner{inner: &memTxRunner{stock: stock, docs: docs}}
	uc := workflow.NewUseCase(runner, docs, products, warehouses)

	draft, err := uc.CreateReceipt(dto.CreateReceiptRequest{
		Supplier:    "Proveedor SA",
		WarehouseID: "wh-1",
		Items:       []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 10}},
	})
	require.NoError(t, err)

	req := dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 10),
	}
	var rivalErr error
	runner.fire = func() {
		_, rivalErr = uc.Transition(context.Background(), entity.DocReceipt, req)
	}

	_, err = uc.Transition(context.Background(), entity.DocReceipt, req)
	require.NoError(t, rivalErr, "la transición que comete primero debe completarse")
	assert.ErrorIs(t, err, document.ErrNotDraft,
		"la rezagada debe fallar dentro de su propia transacción")

	assert.Equal(t, int64(10), stock.rows[stockKey{"prod-1", "wh-1"}],
		"el stock debe sumarse exactamente una vez")
	reread, err := uc.Get(entity.DocReceipt, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusValidated, reread.Status)
	assert.Equal(t, int64(10), reread.Items[0].FulfilledQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delivery
// ──────────────────────────────────────────────────────────────────────────────

func createDelivery(t *testing.T, f *fixture, items ...dto.CreateDocumentItem) *dto.DocumentResponse {
	t.Helper()
	out, err := f.uc.CreateDelivery(dto.CreateDeliveryRequest{Customer: "ACME", Items: items})
	require.NoError(t, err)
	return out
}

func TestDelivery_CicloCompleto_RestaStock(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 8)
	draft := createDelivery(t, f, dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5})

	out, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusValidated, out.Status)
	assert.Equal(t, int64(3), f.quantity("prod-1", "wh-1"),
		"validar la entrega debe restar de la bodega de la línea")
}

func TestDelivery_CumplidaMayorASolicitada_Rechazada(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 100)
	draft := createDelivery(t, f, dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5})

	_, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 6),
	})
	require.ErrorIs(t, err, document.ErrInvalidQty)
	assert.Equal(t, int64(100), f.quantity("prod-1", "wh-1"), "el stock debe quedar intacto")

	reread, err := f.uc.Get(entity.DocDelivery, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, reread.Status, "el documento debe seguir en draft")
}

func TestDelivery_StockInsuficiente_Rechazada(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 3)
	draft := createDelivery(t, f, dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5})

	_, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 5),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), f.quantity("prod-1", "wh-1"))
}

// Dos líneas sobre el mismo par (producto, bodega): la factibilidad se evalúa
// contra el saldo ya comprometido por las líneas anteriores, y el fallo de la
// segunda no deja aplicada la primera.
func TestDelivery_FalloParcial_NoMutaNada(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 8)
	draft := createDelivery(t, f,
		dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5},
		dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5},
	)

	_, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 5, 5), // 10 > 8 disponibles
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(8), f.quantity("prod-1", "wh-1"),
		"ninguna línea debe aplicarse si alguna falla")
	reread, err := f.uc.Get(entity.DocDelivery, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, reread.Status)
	for _, it := range reread.Items {
		assert.Equal(t, int64(0), it.FulfilledQty, "las cantidades cumplidas no deben persistirse")
	}
}

// Repetir la misma línea en los cumplimientos aplicaría la mutación de stock
// una vez por repetición; debe rechazarse sin tocar nada.
func TestDelivery_LineaRepetida_Rechazada(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 10)
	draft := createDelivery(t, f, dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5})

	_, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items: []dto.FulfillmentItem{
			{ItemID: draft.Items[0].ID, Qty: 5},
			{ItemID: draft.Items[0].ID, Qty: 5},
		},
	})
	require.ErrorIs(t, err, document.ErrDuplicateItem)

	assert.Equal(t, int64(10), f.quantity("prod-1", "wh-1"), "el stock debe quedar intacto")
	reread, err := f.uc.Get(entity.DocDelivery, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, reread.Status)
	assert.Equal(t, int64(0), reread.Items[0].FulfilledQty)
}

func TestDelivery_LineaSinBodega_Rechazada(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateDelivery(dto.CreateDeliveryRequest{
		Customer: "ACME",
		Items:    []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delivery exige bodega por línea")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_CicloCompleto_MueveStock(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 10)

	draft, err := f.uc.CreateTransfer(dto.CreateTransferRequest{
		FromWarehouseID: "wh-1",
		ToWarehouseID:   "wh-2",
		Items:           []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 10}},
	})
	require.NoError(t, err)

	out, err := f.uc.Transition(context.Background(), entity.DocTransfer, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusCompleted,
		Items:      fills(draft.Items, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, out.Status, "transfer termina en completed, no validated")
	assert.Equal(t, int64(0), f.quantity("prod-1", "wh-1"), "el origen debe quedar en cero")
	assert.Equal(t, int64(10), f.quantity("prod-1", "wh-2"), "el destino debe recibir todo")
}

func TestTransfer_MismaBodega_RechazadaAntesDeCrear(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateTransfer(dto.CreateTransferRequest{
		FromWarehouseID: "wh-1",
		ToWarehouseID:   "wh-1",
		Items:           []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 1}},
	})
	require.ErrorIs(t, err, document.ErrSameWarehouse)

	list, err := f.uc.List(entity.DocTransfer, "")
	require.NoError(t, err)
	assert.Empty(t, list, "no debe quedar borrador creado")
}

func TestTransfer_StockInsuficiente_NoMueveNada(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 4)
	draft, err := f.uc.CreateTransfer(dto.CreateTransferRequest{
		FromWarehouseID: "wh-1",
		ToWarehouseID:   "wh-2",
		Items:           []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 10}},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), entity.DocTransfer, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusCompleted,
		Items:      fills(draft.Items, 10),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(4), f.quantity("prod-1", "wh-1"))
	assert.Equal(t, int64(0), f.quantity("prod-1", "wh-2"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones no terminales
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_GuardarComoDraft_NoTocaStock(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 7)
	draft := createDelivery(t, f, dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5})

	out, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, out.Status)
	assert.Equal(t, int64(7), f.quantity("prod-1", "wh-1"))
}

func TestTransition_GuardarComoDraft_NoResucitaValidados(t *testing.T) {
	f := newFixture()
	f.seedStock("prod-1", "wh-1", 7)
	draft := createDelivery(t, f, dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5})

	_, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 5),
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusDraft,
	})
	assert.ErrorIs(t, err, document.ErrNotDraft,
		"guardar como draft no debe pisar un documento ya validado")
}

func TestTransition_EstadoDesconocido_Rechazado(t *testing.T) {
	f := newFixture()
	draft := createDelivery(t, f, dto.CreateDocumentItem{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 5})

	_, err := f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     "archived",
	})
	assert.ErrorIs(t, err, document.ErrUnknownStatus)
}

func TestTransition_DocumentoInexistente_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Transition(context.Background(), entity.DocReceipt, dto.TransitionRequest{
		DocumentID: "no-existe",
		Status:     entity.StatusValidated,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un id de receipt pedido vía la ruta de delivery no debe resolverse.
func TestTransition_TipoCruzado_NotFound(t *testing.T) {
	f := newFixture()
	draft, err := f.uc.CreateReceipt(dto.CreateReceiptRequest{
		Supplier:    "Proveedor SA",
		WarehouseID: "wh-1",
		Items:       []dto.CreateDocumentItem{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(context.Background(), entity.DocDelivery, dto.TransitionRequest{
		DocumentID: draft.ID,
		Status:     entity.StatusValidated,
		Items:      fills(draft.Items, 1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
