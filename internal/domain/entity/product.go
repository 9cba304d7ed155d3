package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategoryAlimentacion = "ALIMENTACION"
	CategoryBebidas      = "BEBIDAS"
	CategoryLimpieza     = "LIMPIEZA"
	CategoryElectronica  = "ELECTRONICA"
	CategoryOtros        = "OTROS"
)

var validCategories = map[string]struct{}{
	CategoryAlimentacion: {},
	CategoryBebidas:      {},
	CategoryLimpieza:     {},
	CategoryElectronica:  {},
	CategoryOtros:        {},
}

// IsValidCategory valida una categoría de producto.
func IsValidCategory(c string) bool {
	_, ok := validCategories[c]
	return ok
}

// Product representa un producto del catálogo. Price es el precio base;
// cada línea de pedido captura su propio precio al crearse.
type Product struct {
	ID          string
	Description string
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
