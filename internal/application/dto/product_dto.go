package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Category    string          `json:"categoria"`
}

// UpdateProductRequest patch de producto.
type UpdateProductRequest struct {
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	Category    *string          `json:"categoria"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Category    string          `json:"categoria"`
	CreatedAt   time.Time       `json:"created_at"`
}
