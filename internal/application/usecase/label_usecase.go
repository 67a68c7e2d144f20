package usecase

import (
	"fmt"

	"github.com/jvillada/almacen-api/internal/domain"
)

// LabelGenerator es el puerto de salida para generar etiquetas QR en PNG.
type LabelGenerator interface {
	GenerateLabelPNG(content string) ([]byte, error)
}

// LabelUseCase genera la etiqueta QR de un producto para impresión de estante.
type LabelUseCase struct {
	products  *ProductUseCase
	generator LabelGenerator
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(products *ProductUseCase, generator LabelGenerator) *LabelUseCase {
	return &LabelUseCase{products: products, generator: generator}
}

// Generate devuelve el PNG de la etiqueta del producto. ErrNotFound si el
// producto no existe. El contenido codifica SKU|nombre|id para que un lector
// de mano resuelva el producto sin consultar la API.
func (uc *LabelUseCase) Generate(id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	content := fmt.Sprintf("%s|%s|%s", product.SKU, product.Name, product.ID)
	return uc.generator.GenerateLabelPNG(content)
}
