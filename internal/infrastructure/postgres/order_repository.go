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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// orderSelect incluye el vendedor (vía cliente) y los ids de las líneas.
const orderSelect = `
	SELECT o.id, o.client_id, c.vendor_id, o.date, o.finalized, o.created_at, o.updated_at,
		ARRAY(SELECT l.id FROM order_lines l WHERE l.order_id = o.id ORDER BY l.id)
	FROM orders o JOIN clients c ON c.id = o.client_id`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, client_id, date, finalized, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, o.ID, o.ClientID, o.Date, o.Finalized, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, o.ClientID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE o.id = $1`, id)
}

// GetForUpdate obtiene el pedido bloqueando su fila. Solo tiene efecto dentro de una transacción.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE o.id = $1 FOR UPDATE OF o`, id)
}

// FindScoped devuelve el pedido que cumple el scope; nil si no hay OrderID o no coincide.
func (r *OrderRepo) FindScoped(ctx context.Context, scope repository.Scope) (*entity.Order, error) {
	if scope.OrderID == "" {
		return nil, nil
	}
	w := scopeWhere(scope, orderScopeCols)
	return r.getOne(ctx, orderSelect+` WHERE `+w.SQL(), w.args...)
}

func (r *OrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// List lista pedidos del scope, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, scope repository.Scope) ([]*entity.Order, error) {
	w := scopeWhere(scope, orderScopeCols)
	rows, err := r.q.Query(ctx, orderSelect+` WHERE `+w.SQL()+` ORDER BY o.date DESC, o.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// orderUpdateOpenSQL solo toca pedidos abiertos; un cierre concurrente deja 0 filas afectadas.
const orderUpdateOpenSQL = `UPDATE orders SET date = $2, updated_at = $3 WHERE id = $1 AND finalized = false`

// UpdateOpen actualiza la fecha del pedido si sigue abierto. finalized solo cambia vía MarkFinalized.
func (r *OrderRepo) UpdateOpen(ctx context.Context, o *entity.Order) (bool, error) {
	tag, err := r.q.Exec(ctx, orderUpdateOpenSQL, o.ID, o.Date, o.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("update order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

const orderFinalizeSQL = `UPDATE orders SET finalized = true, updated_at = now() WHERE id = $1 AND finalized = false`

// MarkFinalized cierra el pedido de forma atómica: solo afecta a la fila si seguía abierta.
func (r *OrderRepo) MarkFinalized(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, orderFinalizeSQL, id)
	if err != nil {
		return false, fmt.Errorf("finalize order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete elimina un pedido y sus líneas.
func (r *OrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.ClientID, &o.VendorID, &o.Date, &o.Finalized, &o.CreatedAt, &o.UpdatedAt, &o.LineIDs); err != nil {
		return nil, err
	}
	return &o, nil
}
