package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/gestorventas/deposito-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderUseCase ciclo de vida del pedido: alta, consulta, cierre e informe.
type OrderUseCase struct {
	orders   repository.OrderRepository
	lines    repository.OrderLineRepository
	products repository.ProductRepository
	vendors  repository.VendorRepository
	clients  repository.ClientRepository
	guard    *OwnershipGuard
	notifier ports.OrderNotifier
	renderer ports.OrderReportRenderer
	metrics  ports.OrderMetrics
	log      *logger.Logger
	now      func() time.Time
}

// OrderDeps dependencias de OrderUseCase. Notifier, Metrics y Log son opcionales.
type OrderDeps struct {
	Orders   repository.OrderRepository
	Lines    repository.OrderLineRepository
	Products repository.ProductRepository
	Vendors  repository.VendorRepository
	Clients  repository.ClientRepository
	Guard    *OwnershipGuard
	Notifier ports.OrderNotifier
	Renderer ports.OrderReportRenderer
	Metrics  ports.OrderMetrics
	Log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(d OrderDeps) *OrderUseCase {
	uc := &OrderUseCase{
		orders:   d.Orders,
		lines:    d.Lines,
		products: d.Products,
		vendors:  d.Vendors,
		clients:  d.Clients,
		guard:    d.Guard,
		notifier: d.Notifier,
		renderer: d.Renderer,
		metrics:  d.Metrics,
		log:      d.Log,
		now:      time.Now,
	}
	if uc.metrics == nil {
		uc.metrics = ports.NopOrderMetrics{}
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// Create crea un pedido abierto con la fecha actual. Si vendorID no está vacío el cliente
// debe pertenecer a ese vendedor.
func (uc *OrderUseCase) Create(ctx context.Context, vendorID, clientID string) (*dto.OrderResponse, error) {
	if clientID == "" {
		return nil, invalid("id de cliente obligatorio")
	}
	chain, err := uc.guard.Resolve(ctx, repository.Scope{VendorID: vendorID, ClientID: clientID})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	o := &entity.Order{
		ID:        uuid.New().String(),
		ClientID:  chain.Client.ID,
		VendorID:  chain.Client.VendorID,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Get devuelve el pedido si cumple el scope; nil si no.
func (uc *OrderUseCase) Get(ctx context.Context, scope repository.Scope) (*dto.OrderResponse, error) {
	o, err := uc.orders.FindScoped(ctx, scope)
	if err != nil || o == nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// List lista los pedidos del scope.
func (uc *OrderUseCase) List(ctx context.Context, scope repository.Scope) ([]dto.OrderResponse, error) {
	list, err := uc.orders.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// Update cambia la fecha de un pedido abierto.
func (uc *OrderUseCase) Update(ctx context.Context, scope repository.Scope, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	chain, err := uc.guard.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	o := chain.Order
	if o.Finalized {
		return nil, domain.ErrOrderFinalized
	}
	if in.Date != nil && !in.Date.IsZero() {
		o.Date = *in.Date
	}
	o.UpdatedAt = uc.now()
	updated, err := uc.orders.UpdateOpen(ctx, o)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrOrderFinalized
	}
	return toOrderResponse(o), nil
}

// Delete elimina el pedido y sus líneas.
func (uc *OrderUseCase) Delete(ctx context.Context, scope repository.Scope) error {
	chain, err := uc.guard.Resolve(ctx, scope)
	if err != nil {
		return err
	}
	ok, err := uc.orders.Delete(ctx, chain.Order.ID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("pedido", chain.Order.ID)
	}
	return nil
}

// Close finaliza el pedido. Un segundo cierre devuelve domain.ErrOrderFinalized.
// El aviso por correo al vendedor es best-effort: si falla se registra y el cierre se mantiene.
func (uc *OrderUseCase) Close(ctx context.Context, scope repository.Scope) (*dto.OrderResponse, error) {
	if scope.OrderID == "" {
		return nil, invalid("id de pedido obligatorio")
	}
	chain, err := uc.guard.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	changed, err := uc.orders.MarkFinalized(ctx, chain.Order.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, domain.ErrOrderFinalized
	}
	chain.Order.Finalized = true
	uc.metrics.OrderClosed()
	uc.notifyClosed(ctx, chain)
	return toOrderResponse(chain.Order), nil
}

func (uc *OrderUseCase) notifyClosed(ctx context.Context, chain *Chain) {
	if uc.notifier == nil {
		return
	}
	report, vendor, err := uc.buildReport(ctx, chain)
	if err == nil {
		err = uc.notifier.NotifyOrderClosed(ctx, vendor.Email, *report)
	}
	if err != nil {
		uc.metrics.NotificationFailed()
		uc.log.Warn().Err(err).Str("order_id", chain.Order.ID).Msg("no se pudo enviar el aviso de pedido cerrado")
	}
}

// Report genera el informe (PDF) de un pedido finalizado. Devuelve también el nombre de archivo sugerido.
func (uc *OrderUseCase) Report(ctx context.Context, scope repository.Scope) ([]byte, string, error) {
	if scope.OrderID == "" {
		return nil, "", invalid("id de pedido obligatorio")
	}
	chain, err := uc.guard.Resolve(ctx, scope)
	if err != nil {
		return nil, "", err
	}
	if !chain.Order.Finalized {
		return nil, "", domain.ErrOrderNotFinalized
	}
	report, _, err := uc.buildReport(ctx, chain)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.renderer.RenderOrderReport(ctx, *report)
	if err != nil {
		return nil, "", fmt.Errorf("render informe: %w", err)
	}
	return doc, fmt.Sprintf("pedido_%s.pdf", chain.Order.ID), nil
}

// buildReport completa los eslabones que falten y calcula el total sumando subtotales.
func (uc *OrderUseCase) buildReport(ctx context.Context, chain *Chain) (*ports.OrderReport, *entity.Vendor, error) {
	o := chain.Order
	client := chain.Client
	if client == nil {
		c, err := uc.clients.GetByID(ctx, o.ClientID)
		if err != nil {
			return nil, nil, err
		}
		if c == nil {
			return nil, nil, notFound("cliente", o.ClientID)
		}
		client = c
	}
	vendor := chain.Vendor
	if vendor == nil {
		v, err := uc.vendors.GetByID(ctx, client.VendorID)
		if err != nil {
			return nil, nil, err
		}
		if v == nil {
			return nil, nil, notFound("vendedor", client.VendorID)
		}
		vendor = v
	}
	lines, err := uc.lines.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, nil, err
	}
	report := &ports.OrderReport{
		OrderID:    o.ID,
		Date:       o.Date,
		ClientName: client.Name,
		VendorName: vendor.Name,
		Lines:      make([]ports.OrderReportLine, 0, len(lines)),
		Total:      decimal.Zero,
	}
	names := make(map[string]string)
	for _, l := range lines {
		name, ok := names[l.ProductID]
		if !ok {
			p, err := uc.products.GetByID(ctx, l.ProductID)
			if err != nil {
				return nil, nil, err
			}
			name = l.ProductID
			if p != nil {
				name = p.Description
			}
			names[l.ProductID] = name
		}
		sub := l.Subtotal()
		report.Lines = append(report.Lines, ports.OrderReportLine{
			Product:  name,
			Quantity: l.Quantity,
			Price:    l.UnitPrice(),
			Subtotal: sub,
		})
		report.Total = report.Total.Add(sub)
	}
	return report, vendor, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	ids := o.LineIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		Date:      o.Date,
		ClientID:  o.ClientID,
		VendorID:  o.VendorID,
		Finalized: o.Finalized,
		LineIDs:   ids,
	}
}
