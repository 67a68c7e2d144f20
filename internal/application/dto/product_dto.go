package dto

import "time"

// CreateProductRequest entrada para POST /api/product/add.
// Quantity y WarehouseID opcionales: si ambos vienen, se escribe stock inicial.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	SKU         string `json:"sku" validate:"required,min=1,max=100"`
	UOM         string `json:"uom" validate:"required"`
	Category    string `json:"category"`
	Quantity    int64  `json:"quantity"`
	WarehouseID string `json:"warehouse_id"`
}

// UpdateProductRequest entrada para PUT /api/product/update (campos opcionales).
type UpdateProductRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     *string `json:"name"`
	SKU      *string `json:"sku"`
	UOM      *string `json:"uom"`
	Category *string `json:"category"`
}

// StockResponse una entrada del libro de existencias.
type StockResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

// ProductResponse salida de un producto con categoría y stocks.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UOM       string          `json:"uom"`
	Category  string          `json:"category"`
	Stocks    []StockResponse `json:"stocks"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Message  string            `json:"message"`
	Products []ProductResponse `json:"products"`
}
