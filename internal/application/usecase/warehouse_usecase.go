package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega (nombre único).
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con sus stocks, ordenadas por nombre.
func (uc *WarehouseUseCase) List() (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Message: "bodegas obtenidas", Warehouses: items}, nil
}

// Delete elimina una bodega. Se rechaza con ErrConflict mientras existan
// filas de stock o líneas de documento que la referencien.
func (uc *WarehouseUseCase) Delete(id string) error {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.repo.CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: la bodega tiene %d referencias de stock o documentos", domain.ErrConflict, refs)
	}
	return uc.repo.Delete(id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	resp := &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Stocks:    make([]dto.StockResponse, 0, len(w.Stocks)),
		CreatedAt: w.CreatedAt,
	}
	for _, s := range w.Stocks {
		resp.Stocks = append(resp.Stocks, dto.StockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
		})
	}
	return resp
}
