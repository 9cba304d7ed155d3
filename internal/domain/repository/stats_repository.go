package repository

import "context"

// StatsFilter limita la agregación a un vendedor o a un cliente. Vacío = global.
type StatsFilter struct {
	VendorID string
	ClientID string
}

// YearTotal ingreso total de un año (pedidos finalizados).
type YearTotal struct {
	Year  int
	Total float64
}

// ClientTotal ingreso total acumulado de un cliente.
type ClientTotal struct {
	ClientID   string
	ClientName string
	Total      float64
}

// StatsRepository consultas de solo lectura para estadísticas de ingresos.
type StatsRepository interface {
	// YearlyRevenue suma el importe (price) de las líneas de pedidos finalizados, agrupado
	// por año de la fecha del pedido y ordenado por año. Los años sin ingresos no aparecen.
	YearlyRevenue(ctx context.Context, filter StatsFilter) ([]YearTotal, error)

	// ClientTotalsByVendor suma de ingresos por cliente de un vendedor, ordenado por nombre.
	ClientTotalsByVendor(ctx context.Context, vendorID string) ([]ClientTotal, error)
}
