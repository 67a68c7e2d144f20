// Package workflow implementa el motor de documentos de inventario: creación
// de borradores y la transición draft → validated/completed que muta el stock
// de forma atómica.
package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/document"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de receipt/delivery/transfer.
type UseCase struct {
	txRunner      TxRunner
	docRepo       repository.DocumentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		docRepo:       docRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateReceipt crea una recepción en draft con FulfilledQty = 0 en cada línea.
func (uc *UseCase) CreateReceipt(in dto.CreateReceiptRequest) (*dto.DocumentResponse, error) {
	if in.Supplier == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: supplier, warehouse_id e items son requeridos", domain.ErrInvalidInput)
	}
	if err := uc.requireWarehouse(in.WarehouseID); err != nil {
		return nil, err
	}
	docDate := in.ReceiptDate
	if docDate.IsZero() {
		docDate = time.Now()
	}
	doc := &entity.Document{
		ID:           uuid.New().String(),
		Kind:         entity.DocReceipt,
		Status:       entity.StatusDraft,
		Supplier:     in.Supplier,
		WarehouseID:  in.WarehouseID,
		DocumentDate: docDate,
		CreatedAt:    time.Now(),
	}
	if err := uc.attachItems(doc, in.Items, false); err != nil {
		return nil, err
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return uc.getResponse(doc.ID)
}

// CreateDelivery crea una entrega en draft. Cada línea lleva su bodega origen;
// en receipt la bodega va en la cabecera.
func (uc *UseCase) CreateDelivery(in dto.CreateDeliveryRequest) (*dto.DocumentResponse, error) {
	if in.Customer == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: customer e items son requeridos", domain.ErrInvalidInput)
	}
	doc := &entity.Document{
		ID:        uuid.New().String(),
		Kind:      entity.DocDelivery,
		Status:    entity.StatusDraft,
		Customer:  in.Customer,
		CreatedAt: time.Now(),
	}
	if err := uc.attachItems(doc, in.Items, true); err != nil {
		return nil, err
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return uc.getResponse(doc.ID)
}

// CreateTransfer crea un traslado en draft. Origen y destino deben existir y
// ser distintos; la ruta se rechaza antes de que exista fila alguna.
func (uc *UseCase) CreateTransfer(in dto.CreateTransferRequest) (*dto.DocumentResponse, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: from_warehouse_id, to_warehouse_id e items son requeridos", domain.ErrInvalidInput)
	}
	if err := document.CheckTransferRoute(in.FromWarehouseID, in.ToWarehouseID); err != nil {
		return nil, err
	}
	if err := uc.requireWarehouse(in.FromWarehouseID); err != nil {
		return nil, err
	}
	if err := uc.requireWarehouse(in.ToWarehouseID); err != nil {
		return nil, err
	}
	doc := &entity.Document{
		ID:              uuid.New().String(),
		Kind:            entity.DocTransfer,
		Status:          entity.StatusDraft,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		CreatedAt:       time.Now(),
	}
	if err := uc.attachItems(doc, in.Items, false); err != nil {
		return nil, err
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return uc.getResponse(doc.ID)
}

// attachItems valida y agrega las líneas al borrador. perLineWarehouse exige
// bodega por línea (delivery).
func (uc *UseCase) attachItems(doc *entity.Document, items []dto.CreateDocumentItem, perLineWarehouse bool) error {
	for i, it := range items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: cantidad solicitada debe ser positiva (línea %d)", domain.ErrInvalidInput, i+1)
		}
		if product, err := uc.productRepo.GetByID(it.ProductID); err != nil {
			return err
		} else if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		if perLineWarehouse {
			if it.WarehouseID == "" {
				return fmt.Errorf("%w: warehouse_id es requerido por línea (línea %d)", domain.ErrInvalidInput, i+1)
			}
			if err := uc.requireWarehouse(it.WarehouseID); err != nil {
				return err
			}
		}
		doc.Items = append(doc.Items, &entity.DocumentItem{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
		})
	}
	return nil
}

func (uc *UseCase) requireWarehouse(id string) error {
	wh, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return nil
}
