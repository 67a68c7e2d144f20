package dto

import "time"

// CreateWarehouseRequest entrada para POST /api/warehouse.
type CreateWarehouseRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// WarehouseResponse salida de una bodega con sus stocks.
type WarehouseResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Stocks    []StockResponse `json:"stocks"`
	CreatedAt time.Time       `json:"created_at"`
}

// WarehouseListResponse lista de bodegas.
type WarehouseListResponse struct {
	Message    string              `json:"message"`
	Warehouses []WarehouseResponse `json:"warehouses"`
}
