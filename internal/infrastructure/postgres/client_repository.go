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

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientSelect = `SELECT c.id, c.vendor_id, c.name, c.created_at, c.updated_at FROM clients c`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente. Si el vendedor no existe devuelve domain.ErrNotFound.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, vendor_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, c.ID, c.VendorID, c.Name, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("%w: vendedor %s", domain.ErrNotFound, c.VendorID)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.FindScoped(ctx, repository.Scope{ClientID: id})
}

// FindScoped devuelve el cliente que cumple el scope. Sin ClientID no hay un único resultado: nil.
func (r *ClientRepo) FindScoped(ctx context.Context, scope repository.Scope) (*entity.Client, error) {
	if scope.ClientID == "" {
		return nil, nil
	}
	w := scopeWhere(scope, clientScopeCols)
	c, err := scanClient(r.q.QueryRow(ctx, clientSelect+` WHERE `+w.SQL(), w.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List lista clientes del scope ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context, scope repository.Scope) ([]*entity.Client, error) {
	w := scopeWhere(scope, clientScopeCols)
	rows, err := r.q.Query(ctx, clientSelect+` WHERE `+w.SQL()+` ORDER BY c.name, c.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza el nombre de un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `UPDATE clients SET name = $2, updated_at = $3 WHERE id = $1`, c.ID, c.Name, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID (cascada a pedidos y líneas).
func (r *ClientRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.VendorID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
