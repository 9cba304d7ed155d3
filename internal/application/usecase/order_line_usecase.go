package usecase

import (
	"context"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineUseCase altas, cambios y bajas de líneas. Toda mutación se hace dentro de una
// transacción que bloquea el pedido, así no compite con un cierre concurrente.
type OrderLineUseCase struct {
	lines    repository.OrderLineRepository
	products repository.ProductRepository
	guard    *OwnershipGuard
	tx       OrderTxRunner
	metrics  ports.OrderMetrics
}

// NewOrderLineUseCase construye el caso de uso. metrics puede ser nil.
func NewOrderLineUseCase(
	lines repository.OrderLineRepository,
	products repository.ProductRepository,
	guard *OwnershipGuard,
	tx OrderTxRunner,
	metrics ports.OrderMetrics,
) *OrderLineUseCase {
	if metrics == nil {
		metrics = ports.NopOrderMetrics{}
	}
	return &OrderLineUseCase{lines: lines, products: products, guard: guard, tx: tx, metrics: metrics}
}

// Add añade una línea a un pedido abierto. Comprueba, en este orden: vendedor, cliente del vendedor,
// pedido del cliente y abierto, producto, cantidad > 0 y precio ≥ 0. Sin precio se usa
// precio del producto × cantidad.
func (uc *OrderLineUseCase) Add(ctx context.Context, scope repository.Scope, in dto.AddOrderLineRequest) (*dto.OrderLineResponse, error) {
	if scope.VendorID == "" {
		return nil, notFound("vendedor", "")
	}
	if scope.ClientID == "" {
		return nil, notFound("cliente", "")
	}
	if _, err := uc.guard.Resolve(ctx, repository.Scope{VendorID: scope.VendorID, ClientID: scope.ClientID}); err != nil {
		return nil, err
	}
	var line *entity.OrderLine
	err := uc.tx.RunOrder(ctx, func(orders repository.OrderRepository, lines repository.OrderLineRepository) error {
		o, err := orders.GetForUpdate(ctx, scope.OrderID)
		if err != nil {
			return err
		}
		if o == nil || o.ClientID != scope.ClientID {
			return notFound("pedido", scope.OrderID)
		}
		if o.Finalized {
			return domain.ErrOrderFinalized
		}
		p, err := uc.products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("producto", in.ProductID)
		}
		if in.Quantity <= 0 {
			return invalid("la cantidad debe ser mayor que 0")
		}
		price := priceOrDefault(in.Price, p, in.Quantity)
		if price.IsNegative() {
			return invalid("el precio no puede ser negativo")
		}
		line = &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: p.ID,
			Quantity:  in.Quantity,
			Price:     price,
		}
		return lines.Create(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.LineAdded()
	return toOrderLineResponse(line), nil
}

// Get devuelve la línea si cumple el scope; nil si no.
func (uc *OrderLineUseCase) Get(ctx context.Context, scope repository.Scope) (*dto.OrderLineResponse, error) {
	l, err := uc.lines.FindScoped(ctx, scope)
	if err != nil || l == nil {
		return nil, err
	}
	return toOrderLineResponse(l), nil
}

// List lista las líneas del scope.
func (uc *OrderLineUseCase) List(ctx context.Context, scope repository.Scope) ([]dto.OrderLineResponse, error) {
	list, err := uc.lines.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderLineResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toOrderLineResponse(l))
	}
	return out, nil
}

// Update modifica cantidad y/o precio de una línea de un pedido abierto.
func (uc *OrderLineUseCase) Update(ctx context.Context, scope repository.Scope, in dto.UpdateOrderLineRequest) (*dto.OrderLineResponse, error) {
	chain, err := uc.resolveLine(ctx, scope)
	if err != nil {
		return nil, err
	}
	line := chain.Line
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, invalid("la cantidad debe ser mayor que 0")
	}
	var price *decimal.Decimal
	if in.Price != nil {
		r := in.Price.Round(2)
		if r.IsNegative() {
			return nil, invalid("el precio no puede ser negativo")
		}
		price = &r
	}
	err = uc.tx.RunOrder(ctx, func(orders repository.OrderRepository, lines repository.OrderLineRepository) error {
		if err := lockOpenOrder(ctx, orders, line.OrderID); err != nil {
			return err
		}
		if in.Quantity != nil {
			line.Quantity = *in.Quantity
		}
		if price != nil {
			line.Price = *price
		}
		return lines.Update(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	return toOrderLineResponse(line), nil
}

// Delete elimina una línea de un pedido abierto.
func (uc *OrderLineUseCase) Delete(ctx context.Context, scope repository.Scope) error {
	chain, err := uc.resolveLine(ctx, scope)
	if err != nil {
		return err
	}
	return uc.tx.RunOrder(ctx, func(orders repository.OrderRepository, lines repository.OrderLineRepository) error {
		if err := lockOpenOrder(ctx, orders, chain.Line.OrderID); err != nil {
			return err
		}
		ok, err := lines.Delete(ctx, chain.Line.ID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("línea", chain.Line.ID)
		}
		return nil
	})
}

func (uc *OrderLineUseCase) resolveLine(ctx context.Context, scope repository.Scope) (*Chain, error) {
	if scope.LineID == "" {
		return nil, invalid("id de línea obligatorio")
	}
	return uc.guard.Resolve(ctx, scope)
}

func lockOpenOrder(ctx context.Context, orders repository.OrderRepository, orderID string) error {
	o, err := orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return notFound("pedido", orderID)
	}
	if o.Finalized {
		return domain.ErrOrderFinalized
	}
	return nil
}

func toOrderLineResponse(l *entity.OrderLine) *dto.OrderLineResponse {
	return &dto.OrderLineResponse{
		ID:        l.ID,
		OrderID:   l.OrderID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Price:     l.Price,
	}
}
