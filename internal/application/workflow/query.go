package workflow

import (
	"fmt"

	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/entity"
)

// List lista documentos de un tipo, opcionalmente filtrados por estado,
// más reciente primero.
func (uc *UseCase) List(kind, status string) ([]dto.DocumentResponse, error) {
	docs, err := uc.docRepo.ListByKind(kind, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, *toDocumentResponse(d))
	}
	return out, nil
}

// Get devuelve un documento del tipo indicado con referencias resueltas.
func (uc *UseCase) Get(kind, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.loadDocument(kind, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// loadDocument carga un documento y verifica que sea del tipo esperado.
func (uc *UseCase) loadDocument(kind, id string) (*entity.Document, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Kind != kind {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
	}
	return doc, nil
}

func (uc *UseCase) getResponse(id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc), nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:                d.ID,
		Kind:              d.Kind,
		Status:            d.Status,
		Supplier:          d.Supplier,
		Customer:          d.Customer,
		WarehouseID:       d.WarehouseID,
		WarehouseName:     d.WarehouseName,
		FromWarehouseID:   d.FromWarehouseID,
		FromWarehouseName: d.FromWarehouseName,
		ToWarehouseID:     d.ToWarehouseID,
		ToWarehouseName:   d.ToWarehouseName,
		CreatedAt:         d.CreatedAt,
		Items:             make([]dto.DocumentItemResponse, 0, len(d.Items)),
	}
	if !d.DocumentDate.IsZero() {
		date := d.DocumentDate
		resp.DocumentDate = &date
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, dto.DocumentItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			ProductSKU:    it.ProductSKU,
			Category:      it.CategoryName,
			WarehouseID:   it.WarehouseID,
			WarehouseName: it.WarehouseName,
			Quantity:      it.Quantity,
			FulfilledQty:  it.FulfilledQty,
		})
	}
	return resp
}
