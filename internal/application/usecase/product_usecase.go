package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

// PurgeTxRunner ejecuta el borrado en cascada de un producto (stock + líneas
// de documento + producto) como una sola transacción.
type PurgeTxRunner interface {
	RunPurge(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	stockRepo    repository.StockRepository
	purgeRunner  PurgeTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	stockRepo repository.StockRepository,
	purgeRunner PurgeTxRunner,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, stockRepo: stockRepo, purgeRunner: purgeRunner}
}

// Create crea un producto. SKU duplicado devuelve ErrDuplicate; la categoría
// se busca sin distinguir mayúsculas y se crea si no existe ("Uncategorized"
// cuando no viene). Si quantity > 0 y hay bodega, escribe el stock inicial.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" || in.UOM == "" {
		return nil, fmt.Errorf("%w: name, sku y uom son requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	categoryID, err := uc.findOrCreateCategory(in.Category)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		SKU:        in.SKU,
		Name:       in.Name,
		UOM:        in.UOM,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if in.Quantity > 0 && in.WarehouseID != "" {
		if err := uc.stockRepo.Upsert(&entity.Stock{
			ProductID:   product.ID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			UpdatedAt:   now,
		}); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(product.ID)
}

// GetByID obtiene un producto por ID con categoría y stocks.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza campos del producto (parcial). La categoría también se
// busca-o-crea si viene informada.
func (uc *ProductUseCase) Update(in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.ID == "" {
		return nil, fmt.Errorf("%w: id es requerido", domain.ErrInvalidInput)
	}
	product, err := uc.repo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != "" {
		product.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != "" {
		product.SKU = *in.SKU
	}
	if in.UOM != nil && *in.UOM != "" {
		product.UOM = *in.UOM
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		categoryID, err := uc.findOrCreateCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.GetByID(product.ID)
}

// List lista productos con categoría y stocks, más reciente primero.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Message: "productos obtenidos", Products: items}, nil
}

// Delete elimina un producto junto con sus filas de stock y las líneas de
// documento que lo referencian, todo en una transacción: las líneas son
// referencia débil hacia el producto y deben retirarse antes que él.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.purgeRunner.RunPurge(ctx, func(
		docRepo repository.DocumentRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := stockRepo.DeleteByProduct(id); err != nil {
			return err
		}
		if err := docRepo.DeleteItemsByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

// findOrCreateCategory resuelve el ID de la categoría: búsqueda
// case-insensitive por nombre, creación si falta. Vacío cae en la categoría
// por defecto.
func (uc *ProductUseCase) findOrCreateCategory(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = entity.DefaultCategoryName
	}
	category, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return "", err
	}
	if category != nil {
		return category.ID, nil
	}
	category = &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return "", err
	}
	return category.ID, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		UOM:       p.UOM,
		Category:  p.CategoryName,
		Stocks:    make([]dto.StockResponse, 0, len(p.Stocks)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, s := range p.Stocks {
		resp.Stocks = append(resp.Stocks, dto.StockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
		})
	}
	return resp
}
