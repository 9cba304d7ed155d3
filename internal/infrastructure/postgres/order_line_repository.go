package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

const lineSelect = `
	SELECT l.id, l.order_id, l.product_id, l.quantity, l.price
	FROM order_lines l
	JOIN orders o ON o.id = l.order_id
	JOIN clients c ON c.id = o.client_id`

// OrderLineRepo implementación de OrderLineRepository (usable con pool o tx).
type OrderLineRepo struct {
	q Querier
}

// NewOrderLineRepository construye el adaptador.
func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

// Create persiste una línea.
func (r *OrderLineRepo) Create(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrderID, l.ProductID, l.Quantity, l.Price)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("%w: pedido o producto", domain.ErrNotFound)
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *OrderLineRepo) GetByID(ctx context.Context, id string) (*entity.OrderLine, error) {
	return r.FindScoped(ctx, repository.Scope{LineID: id})
}

// FindScoped devuelve la línea que cumple el scope; nil si no hay LineID o no coincide.
func (r *OrderLineRepo) FindScoped(ctx context.Context, scope repository.Scope) (*entity.OrderLine, error) {
	if scope.LineID == "" {
		return nil, nil
	}
	w := scopeWhere(scope, lineScopeCols)
	l, err := scanLine(r.q.QueryRow(ctx, lineSelect+` WHERE `+w.SQL(), w.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return l, nil
}

// List lista las líneas del scope.
func (r *OrderLineRepo) List(ctx context.Context, scope repository.Scope) ([]*entity.OrderLine, error) {
	w := scopeWhere(scope, lineScopeCols)
	rows, err := r.q.Query(ctx, lineSelect+` WHERE `+w.SQL()+` ORDER BY l.order_id, l.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ListByOrder lista las líneas de un pedido.
func (r *OrderLineRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	return r.List(ctx, repository.Scope{OrderID: orderID})
}

// Update actualiza cantidad y precio.
func (r *OrderLineRepo) Update(ctx context.Context, l *entity.OrderLine) error {
	if _, err := r.q.Exec(ctx, `UPDATE order_lines SET quantity = $2, price = $3 WHERE id = $1`, l.ID, l.Quantity, l.Price); err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	return nil
}

// Delete elimina una línea.
func (r *OrderLineRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order line: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanLine(row pgx.Row) (*entity.OrderLine, error) {
	var l entity.OrderLine
	if err := row.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.Price); err != nil {
		return nil, err
	}
	return &l, nil
}
