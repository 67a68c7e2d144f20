package entity

import "time"

// DefaultCategoryName categoría asignada cuando el producto no trae una.
const DefaultCategoryName = "Uncategorized"

// Category representa una categoría de productos (nombre único, case-insensitive).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
