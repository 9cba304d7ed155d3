package postgres

import (
	"context"
	"fmt"

	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agregaciones de ingresos sobre pedidos finalizados.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// yearlyRevenueSQL arma la consulta de ingresos por año. Solo cuentan pedidos finalizados;
// VendorID y ClientID vacíos no filtran.
func yearlyRevenueSQL(f repository.StatsFilter) (string, []any) {
	w := &where{}
	w.eq("c.vendor_id", f.VendorID)
	w.eq("o.client_id", f.ClientID)
	query := `
		SELECT EXTRACT(YEAR FROM o.date)::int AS year, SUM(l.price::float8) AS total
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		JOIN clients c ON c.id = o.client_id
		WHERE o.finalized AND ` + w.SQL() + `
		GROUP BY year
		ORDER BY year`
	return query, w.args
}

// clientTotalsSQL ingreso por cliente de un vendedor; los clientes sin pedidos finalizados salen con 0.
const clientTotalsSQL = `
		SELECT c.id, c.name, COALESCE(SUM(l.price::float8) FILTER (WHERE o.finalized), 0) AS total
		FROM clients c
		LEFT JOIN orders o ON o.client_id = c.id
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE c.vendor_id = $1
		GROUP BY c.id, c.name
		ORDER BY c.name, c.id`

// YearlyRevenue suma como float8 cada línea de los pedidos finalizados, agrupando por año.
func (r *StatsRepo) YearlyRevenue(ctx context.Context, f repository.StatsFilter) ([]repository.YearTotal, error) {
	query, args := yearlyRevenueSQL(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("yearly revenue: %w", err)
	}
	defer rows.Close()
	var out []repository.YearTotal
	for rows.Next() {
		var t repository.YearTotal
		if err := rows.Scan(&t.Year, &t.Total); err != nil {
			return nil, fmt.Errorf("scan yearly revenue: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ClientTotalsByVendor ingreso acumulado por cliente (0 si no tiene pedidos finalizados).
func (r *StatsRepo) ClientTotalsByVendor(ctx context.Context, vendorID string) ([]repository.ClientTotal, error) {
	rows, err := r.q.Query(ctx, clientTotalsSQL, vendorID)
	if err != nil {
		return nil, fmt.Errorf("client totals: %w", err)
	}
	defer rows.Close()
	var out []repository.ClientTotal
	for rows.Next() {
		var t repository.ClientTotal
		if err := rows.Scan(&t.ClientID, &t.ClientName, &t.Total); err != nil {
			return nil, fmt.Errorf("scan client totals: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
