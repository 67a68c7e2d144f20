package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	"github.com/jvillada/almacen-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL
// (usable con pool o tx). Cabecera en documents, líneas en document_items con
// borrado en cascada por FK.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	d.id, d.kind, d.status,
	COALESCE(d.supplier, ''), COALESCE(d.customer, ''),
	COALESCE(d.warehouse_id, ''), COALESCE(d.from_warehouse_id, ''), COALESCE(d.to_warehouse_id, ''),
	COALESCE(d.document_date, d.created_at), d.created_at,
	COALESCE(w.name, ''), COALESCE(fw.name, ''), COALESCE(tw.name, '')`

const documentJoins = `
	LEFT JOIN warehouses w  ON w.id  = d.warehouse_id
	LEFT JOIN warehouses fw ON fw.id = d.from_warehouse_id
	LEFT JOIN warehouses tw ON tw.id = d.to_warehouse_id`

// Create persiste cabecera y líneas. Las líneas nacen con fulfilled_qty = 0.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	ctx := context.Background()
	query := `
		INSERT INTO documents (id, kind, status, supplier, customer, warehouse_id, from_warehouse_id, to_warehouse_id, document_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Kind, doc.Status,
		nullable(doc.Supplier), nullable(doc.Customer),
		nullable(doc.WarehouseID), nullable(doc.FromWarehouseID), nullable(doc.ToWarehouseID),
		doc.DocumentDate, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	itemQuery := `
		INSERT INTO document_items (id, document_id, product_id, warehouse_id, quantity, fulfilled_qty)
		VALUES ($1, $2, $3, $4, $5, 0)`
	for _, it := range doc.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, doc.ID, it.ProductID, nullable(it.WarehouseID), it.Quantity,
		); err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el documento con líneas y nombres resueltos. Nil si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents d` + documentJoins + ` WHERE d.id = $1`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := r.loadItems(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListByKind lista documentos de un tipo, opcionalmente por estado, más
// reciente primero, con líneas y nombres resueltos.
func (r *DocumentRepo) ListByKind(kind, status string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents d` + documentJoins + ` WHERE d.kind = $1`
	args := []any{kind}
	if status != "" {
		query += ` AND d.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY d.created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, doc := range list {
		if err := r.loadItems(doc); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ClaimDraft actualización condicional: saca la cabecera de draft solo si
// sigue en draft. El UPDATE bloquea la fila del documento, así que una
// transición concurrente del mismo documento espera aquí y encuentra el
// estado ya reclamado (cero filas afectadas).
func (r *DocumentRepo) ClaimDraft(id, status string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE documents SET status = $2 WHERE id = $1 AND status = 'draft'`, id, status)
	if err != nil {
		return false, fmt.Errorf("claim document draft: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateItemFulfilled persiste la cantidad cumplida de una línea.
func (r *DocumentRepo) UpdateItemFulfilled(itemID string, qty int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE document_items SET fulfilled_qty = $2 WHERE id = $1`, itemID, qty)
	if err != nil {
		return fmt.Errorf("update item fulfilled qty: %w", err)
	}
	return nil
}

// DeleteItemsByProduct elimina las líneas que referencian un producto.
func (r *DocumentRepo) DeleteItemsByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM document_items WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete document items by product: %w", err)
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.Kind, &d.Status,
		&d.Supplier, &d.Customer,
		&d.WarehouseID, &d.FromWarehouseID, &d.ToWarehouseID,
		&d.DocumentDate, &d.CreatedAt,
		&d.WarehouseName, &d.FromWarehouseName, &d.ToWarehouseName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) loadItems(doc *entity.Document) error {
	query := `
		SELECT i.id, i.document_id, i.product_id, COALESCE(i.warehouse_id, ''),
			i.quantity, i.fulfilled_qty,
			COALESCE(p.name, ''), COALESCE(p.sku, ''), COALESCE(c.name, ''), COALESCE(w.name, '')
		FROM document_items i
		LEFT JOIN products p   ON p.id = i.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN warehouses w ON w.id = i.warehouse_id
		WHERE i.document_id = $1
		ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, doc.ID)
	if err != nil {
		return fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(
			&it.ID, &it.DocumentID, &it.ProductID, &it.WarehouseID,
			&it.Quantity, &it.FulfilledQty,
			&it.ProductName, &it.ProductSKU, &it.CategoryName, &it.WarehouseName,
		); err != nil {
			return fmt.Errorf("scan document item: %w", err)
		}
		doc.Items = append(doc.Items, &it)
	}
	return rows.Err()
}
