package workflow

import (
	"context"

	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del stock y la del
// documento (estado + cantidades cumplidas) commiteen como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// PrintoutGenerator genera la representación imprimible de un documento
// (nota de recepción / entrega / traslado).
type PrintoutGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document) ([]byte, error)
}
