package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderReport datos ya resueltos de un pedido finalizado, listos para renderizar
// (PDF o correo de confirmación).
type OrderReport struct {
	OrderID    string
	Date       time.Time
	ClientName string
	VendorName string
	Lines      []OrderReportLine
	Total      decimal.Decimal // suma de los Subtotal de Lines
}

// OrderReportLine una fila del informe.
type OrderReportLine struct {
	Product  string
	Quantity int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

// OrderReportRenderer genera el documento del informe de pedido.
type OrderReportRenderer interface {
	RenderOrderReport(ctx context.Context, report OrderReport) ([]byte, error)
}
