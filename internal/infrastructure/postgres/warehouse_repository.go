package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `INSERT INTO warehouses (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, warehouse.ID, warehouse.Name, warehouse.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT id, name, created_at FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, id).Scan(&w.ID, &w.Name, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// List lista bodegas con sus stocks, ordenadas por nombre.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	query := `SELECT id, name, created_at FROM warehouses ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, w := range list {
		if err := r.loadStocks(w); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// CountReferences cuenta filas de stock y líneas de documento que apuntan a la
// bodega (incluidas cabeceras de receipt y extremos de transfer).
func (r *WarehouseRepo) CountReferences(id string) (int64, error) {
	query := `
		SELECT
			(SELECT count(*) FROM stock WHERE warehouse_id = $1) +
			(SELECT count(*) FROM document_items WHERE warehouse_id = $1) +
			(SELECT count(*) FROM documents
				WHERE warehouse_id = $1 OR from_warehouse_id = $1 OR to_warehouse_id = $1)`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count warehouse references: %w", err)
	}
	return n, nil
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) loadStocks(w *entity.Warehouse) error {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE warehouse_id = $1`
	rows, err := r.q.Query(context.Background(), query, w.ID)
	if err != nil {
		return fmt.Errorf("list stocks of warehouse: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return fmt.Errorf("scan stock: %w", err)
		}
		w.Stocks = append(w.Stocks, &s)
	}
	return rows.Err()
}
