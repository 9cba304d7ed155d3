package usecase

import (
	"context"

	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción con repositorios
// de pedido y línea ligados a ella. Si fn devuelve error se hace rollback.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(orders repository.OrderRepository, lines repository.OrderLineRepository) error) error
}
