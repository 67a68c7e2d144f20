package dto

import "time"

// CreateDocumentItem línea al crear cualquier documento.
// WarehouseID solo aplica a líneas de delivery (bodega origen por línea).
type CreateDocumentItem struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateReceiptRequest entrada para POST /api/receipt.
type CreateReceiptRequest struct {
	Supplier    string               `json:"supplier" validate:"required"`
	WarehouseID string               `json:"warehouse_id" validate:"required"`
	ReceiptDate time.Time            `json:"receipt_date"`
	Items       []CreateDocumentItem `json:"items" validate:"required,min=1"`
}

// CreateDeliveryRequest entrada para POST /api/delivery.
type CreateDeliveryRequest struct {
	Customer string               `json:"customer" validate:"required"`
	Items    []CreateDocumentItem `json:"items" validate:"required,min=1"`
}

// CreateTransferRequest entrada para POST /api/transfer.
type CreateTransferRequest struct {
	FromWarehouseID string               `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string               `json:"to_warehouse_id" validate:"required"`
	Items           []CreateDocumentItem `json:"items" validate:"required,min=1"`
}

// FulfillmentItem cantidad cumplida declarada para una línea en el PATCH.
// El mismo campo sirve para los tres tipos de documento.
type FulfillmentItem struct {
	ItemID string `json:"item_id" validate:"required"`
	Qty    int64  `json:"qty"`
}

// TransitionRequest entrada para PATCH /api/{receipt,delivery,transfer}.
// Si Status es el estado terminal del tipo, Items es obligatorio y dispara
// las mutaciones de stock; otros estados solo persisten la cabecera.
type TransitionRequest struct {
	DocumentID string            `json:"document_id" validate:"required"`
	Status     string            `json:"status"`
	Items      []FulfillmentItem `json:"items"`
}

// DocumentItemResponse línea con referencias resueltas para el UI.
type DocumentItemResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	ProductSKU    string `json:"product_sku"`
	Category      string `json:"category"`
	WarehouseID   string `json:"warehouse_id,omitempty"`
	WarehouseName string `json:"warehouse_name,omitempty"`
	Quantity      int64  `json:"quantity"`
	FulfilledQty  int64  `json:"fulfilled_qty"`
}

// DocumentResponse cabecera + líneas de cualquier documento.
type DocumentResponse struct {
	ID                string                 `json:"id"`
	Kind              string                 `json:"kind"`
	Status            string                 `json:"status"`
	Supplier          string                 `json:"supplier,omitempty"`
	Customer          string                 `json:"customer,omitempty"`
	WarehouseID       string                 `json:"warehouse_id,omitempty"`
	WarehouseName     string                 `json:"warehouse_name,omitempty"`
	FromWarehouseID   string                 `json:"from_warehouse_id,omitempty"`
	FromWarehouseName string                 `json:"from_warehouse_name,omitempty"`
	ToWarehouseID     string                 `json:"to_warehouse_id,omitempty"`
	ToWarehouseName   string                 `json:"to_warehouse_name,omitempty"`
	DocumentDate      *time.Time             `json:"document_date,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	Items             []DocumentItemResponse `json:"items"`
}

// DocumentListResponse lista de documentos de un tipo.
type DocumentListResponse struct {
	Message   string             `json:"message"`
	Documents []DocumentResponse `json:"documents"`
}
