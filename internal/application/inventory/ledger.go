// Package inventory implementa el libro de existencias: la vista autoritativa
// de (producto, bodega) → cantidad, con garantía de no-negatividad.
package inventory

import (
	"fmt"
	"time"

	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

// Ledger opera sobre un StockRepository. Para mutaciones debe construirse con
// un repositorio atado a la transacción en curso: GetForUpdate bloquea la fila
// y el check-más-resta queda serializado frente a decrementos concurrentes.
type Ledger struct {
	stock repository.StockRepository
}

// NewLedger construye el libro sobre el repositorio dado (pool o tx).
func NewLedger(stock repository.StockRepository) *Ledger {
	return &Ledger{stock: stock}
}

// Quantity devuelve la cantidad actual; un par sin fila se lee como cero.
func (l *Ledger) Quantity(productID, warehouseID string) (int64, error) {
	s, err := l.stock.Get(productID, warehouseID)
	if err != nil {
		return 0, err
	}
	return s.Quantity, nil
}

// Increment suma amount al par, creando la fila si no existe.
// amount debe ser positivo; el motor de validación filtra las líneas en cero
// antes de llegar aquí.
func (l *Ledger) Increment(productID, warehouseID string, amount int64, now time.Time) error {
	if amount <= 0 {
		return fmt.Errorf("%w: incremento no positivo %d", domain.ErrInvalidInput, amount)
	}
	s, err := l.stock.GetForUpdate(productID, warehouseID)
	if err != nil {
		return err
	}
	s.Quantity += amount
	s.UpdatedAt = now
	return l.stock.Upsert(s)
}

// Decrement resta amount del par. Falla con ErrInsufficientStock si la
// cantidad bloqueada es menor que amount; la fila queda intacta.
func (l *Ledger) Decrement(productID, warehouseID string, amount int64, now time.Time) error {
	if amount <= 0 {
		return fmt.Errorf("%w: decremento no positivo %d", domain.ErrInvalidInput, amount)
	}
	s, err := l.stock.GetForUpdate(productID, warehouseID)
	if err != nil {
		return err
	}
	if s.Quantity < amount {
		return fmt.Errorf("%w: producto %s en bodega %s (disponible %d, requerido %d)",
			domain.ErrInsufficientStock, productID, warehouseID, s.Quantity, amount)
	}
	s.Quantity -= amount
	s.UpdatedAt = now
	return l.stock.Upsert(s)
}
