package entity

import "github.com/shopspring/decimal"

// OrderLine representa una línea de pedido. Price es el importe total de la línea,
// se captura al crearla y es independiente del precio actual del producto.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal importe de la línea.
func (l *OrderLine) Subtotal() decimal.Decimal { return l.Price }

// UnitPrice precio unitario derivado (Price / Quantity), redondeado a 2 decimales.
func (l *OrderLine) UnitPrice() decimal.Decimal {
	if l.Quantity <= 0 {
		return l.Price
	}
	return l.Price.Div(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}
