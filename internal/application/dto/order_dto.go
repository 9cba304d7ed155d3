package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateOrderRequest patch de pedido: solo la fecha es editable.
type UpdateOrderRequest struct {
	Date *time.Time `json:"fecha"`
}

// OrderResponse pedido en respuestas.
type OrderResponse struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"fecha"`
	ClientID  string    `json:"id_cliente"`
	VendorID  string    `json:"id_vendedor"`
	Finalized bool      `json:"finalizado"`
	LineIDs   []string  `json:"id_lineas"`
}

// AddOrderLineRequest body para añadir una línea. Price nil = precio del producto × cantidad.
type AddOrderLineRequest struct {
	ProductID string           `json:"id_producto"`
	Quantity  int              `json:"cantidad"`
	Price     *decimal.Decimal `json:"precio"`
}

// UpdateOrderLineRequest patch de línea.
type UpdateOrderLineRequest struct {
	Quantity *int             `json:"cantidad"`
	Price    *decimal.Decimal `json:"precio"`
}

// OrderLineResponse línea de pedido en respuestas.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"id_pedido"`
	ProductID string          `json:"id_producto"`
	Quantity  int             `json:"cantidad"`
	Price     decimal.Decimal `json:"precio"`
}
