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

var _ repository.VendorRepository = (*VendorRepo)(nil)

const vendorColumns = `id, name, email, password_hash, roles, refresh_token, refresh_token_expiry,
	reset_code, reset_code_expiry, reset_attempts, created_at, updated_at`

// Perfil y credenciales de sesión se escriben por separado.
const (
	vendorUpdateSQL = `
		UPDATE vendors SET name = $2, email = $3, password_hash = $4, roles = $5, updated_at = $6
		WHERE id = $1`
	vendorUpdateTokensSQL = `
		UPDATE vendors SET refresh_token = $2, refresh_token_expiry = $3, reset_code = $4, reset_code_expiry = $5,
			reset_attempts = $6
		WHERE id = $1`
)

// VendorRepo implementación de VendorRepository (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un nuevo vendedor.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, email, password_hash, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, v.ID, v.Name, v.Email, v.PasswordHash, v.Roles, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

// GetByEmail obtiene un vendedor por email.
func (r *VendorRepo) GetByEmail(ctx context.Context, email string) (*entity.Vendor, error) {
	return r.getOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE email = $1`, email)
}

func (r *VendorRepo) getOne(ctx context.Context, query string, arg string) (*entity.Vendor, error) {
	v, err := scanVendor(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// List lista todos los vendedores por nombre.
func (r *VendorRepo) List(ctx context.Context) ([]*entity.Vendor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update actualiza perfil, roles y password. Tokens y código de recuperación van por UpdateTokens.
func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	_, err := r.q.Exec(ctx, vendorUpdateSQL, v.ID, v.Name, v.Email, v.PasswordHash, v.Roles, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}

// UpdateTokens persiste solo refresh token, código de recuperación y sus intentos fallidos.
func (r *VendorRepo) UpdateTokens(ctx context.Context, v *entity.Vendor) error {
	if _, err := r.q.Exec(ctx, vendorUpdateTokensSQL, v.ID, v.RefreshToken, v.RefreshTokenExpiry, v.ResetCode, v.ResetCodeExpiry,
		v.ResetAttempts); err != nil {
		return fmt.Errorf("update vendor tokens: %w", err)
	}
	return nil
}

// Delete elimina un vendedor por ID (cascada en la base de datos).
func (r *VendorRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete vendor: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(&v.ID, &v.Name, &v.Email, &v.PasswordHash, &v.Roles, &v.RefreshToken, &v.RefreshTokenExpiry,
		&v.ResetCode, &v.ResetCodeExpiry, &v.ResetAttempts, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
