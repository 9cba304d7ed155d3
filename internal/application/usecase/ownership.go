package usecase

import (
	"context"
	"fmt"

	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

// Chain entidades resueltas de la cadena vendedor → cliente → pedido → línea.
// Solo se rellenan los eslabones pedidos en el scope.
type Chain struct {
	Vendor *entity.Vendor
	Client *entity.Client
	Order  *entity.Order
	Line   *entity.OrderLine
}

// OwnershipGuard verifica eslabón a eslabón que cada id del scope existe y pertenece
// al anterior. El error nombra el primer eslabón roto.
type OwnershipGuard struct {
	vendors repository.VendorRepository
	clients repository.ClientRepository
	orders  repository.OrderRepository
	lines   repository.OrderLineRepository
}

// NewOwnershipGuard construye el guard.
func NewOwnershipGuard(
	vendors repository.VendorRepository,
	clients repository.ClientRepository,
	orders repository.OrderRepository,
	lines repository.OrderLineRepository,
) *OwnershipGuard {
	return &OwnershipGuard{vendors: vendors, clients: clients, orders: orders, lines: lines}
}

// Resolve recorre el scope en orden. Devuelve domain.ErrNotFound envuelto con el nombre del eslabón
// ("vendedor", "cliente", "pedido", "línea") cuando no existe o no pertenece al anterior.
func (g *OwnershipGuard) Resolve(ctx context.Context, s repository.Scope) (*Chain, error) {
	chain := &Chain{}
	if s.VendorID != "" {
		v, err := g.vendors.GetByID(ctx, s.VendorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, notFound("vendedor", s.VendorID)
		}
		chain.Vendor = v
	}
	if s.ClientID != "" {
		c, err := g.clients.GetByID(ctx, s.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil || (s.VendorID != "" && c.VendorID != s.VendorID) {
			return nil, notFound("cliente", s.ClientID)
		}
		chain.Client = c
	}
	if s.OrderID != "" {
		o, err := g.orders.GetByID(ctx, s.OrderID)
		if err != nil {
			return nil, err
		}
		if o == nil || (s.ClientID != "" && o.ClientID != s.ClientID) || (s.VendorID != "" && o.VendorID != s.VendorID) {
			return nil, notFound("pedido", s.OrderID)
		}
		chain.Order = o
	}
	if s.LineID != "" {
		l, err := g.lines.GetByID(ctx, s.LineID)
		if err != nil {
			return nil, err
		}
		if l == nil || (s.OrderID != "" && l.OrderID != s.OrderID) {
			return nil, notFound("línea", s.LineID)
		}
		chain.Line = l
	}
	return chain, nil
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
