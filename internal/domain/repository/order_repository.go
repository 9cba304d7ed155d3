package repository

import (
	"context"

	"github.com/gestorventas/deposito-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	FindScoped(ctx context.Context, scope Scope) (*entity.Order, error)
	List(ctx context.Context, scope Scope) ([]*entity.Order, error)
	// UpdateOpen cambia la fecha solo si el pedido sigue abierto. Devuelve false si ya estaba finalizado.
	UpdateOpen(ctx context.Context, order *entity.Order) (bool, error)
	// MarkFinalized pasa finalized de false a true. Devuelve false si ya estaba finalizado.
	MarkFinalized(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
