package repository

import (
	"context"

	"github.com/gestorventas/deposito-api/internal/domain/entity"
)

// OrderLineRepository define el puerto de persistencia para OrderLine.
type OrderLineRepository interface {
	Create(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.OrderLine, error)
	FindScoped(ctx context.Context, scope Scope) (*entity.OrderLine, error)
	List(ctx context.Context, scope Scope) ([]*entity.OrderLine, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	Update(ctx context.Context, line *entity.OrderLine) error
	Delete(ctx context.Context, id string) (bool, error)
}
