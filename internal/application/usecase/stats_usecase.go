package usecase

import (
	"context"
	"strconv"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

// StatsUseCase ingresos por año (solo pedidos finalizados).
type StatsUseCase struct {
	stats   repository.StatsRepository
	vendors repository.VendorRepository
	clients repository.ClientRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(stats repository.StatsRepository, vendors repository.VendorRepository, clients repository.ClientRepository) *StatsUseCase {
	return &StatsUseCase{stats: stats, vendors: vendors, clients: clients}
}

// Global ingresos de todos los pedidos.
func (uc *StatsUseCase) Global(ctx context.Context) (dto.YearlyStats, error) {
	return uc.yearly(ctx, repository.StatsFilter{})
}

// ByVendor ingresos de los clientes de un vendedor. nil si el vendedor no existe.
func (uc *StatsUseCase) ByVendor(ctx context.Context, vendorID string) (dto.YearlyStats, error) {
	v, err := uc.vendors.GetByID(ctx, vendorID)
	if err != nil || v == nil {
		return nil, err
	}
	return uc.yearly(ctx, repository.StatsFilter{VendorID: vendorID})
}

// ByClient ingresos de un cliente. scope.VendorID, si viene, restringe a los clientes de ese vendedor.
// nil si el cliente no existe o no pertenece.
func (uc *StatsUseCase) ByClient(ctx context.Context, scope repository.Scope) (dto.YearlyStats, error) {
	c, err := uc.clients.FindScoped(ctx, repository.Scope{VendorID: scope.VendorID, ClientID: scope.ClientID})
	if err != nil || c == nil {
		return nil, err
	}
	return uc.yearly(ctx, repository.StatsFilter{ClientID: c.ID})
}

// ClientTotals ingreso acumulado por cliente de un vendedor.
func (uc *StatsUseCase) ClientTotals(ctx context.Context, vendorID string) ([]dto.ClientTotalResponse, error) {
	list, err := uc.stats.ClientTotalsByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientTotalResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ClientTotalResponse{ClientID: t.ClientID, ClientName: t.ClientName, Total: t.Total})
	}
	return out, nil
}

func (uc *StatsUseCase) yearly(ctx context.Context, f repository.StatsFilter) (dto.YearlyStats, error) {
	rows, err := uc.stats.YearlyRevenue(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make(dto.YearlyStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.YearAmount{Year: strconv.Itoa(r.Year), Total: r.Total})
	}
	return out, nil
}
