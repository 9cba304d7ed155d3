package repository

import (
	"context"

	"github.com/gestorventas/deposito-api/internal/domain/entity"
)

// VendorRepository define el puerto de persistencia para Vendor (DIP).
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*entity.Vendor, error)
	List(ctx context.Context) ([]*entity.Vendor, error)
	// Update persiste perfil, roles y password. No toca tokens ni código de recuperación.
	Update(ctx context.Context, vendor *entity.Vendor) error
	// UpdateTokens persiste solo refresh token y código de recuperación (expiraciones e intentos incluidos).
	UpdateTokens(ctx context.Context, vendor *entity.Vendor) error
	// Delete elimina el vendedor; la base de datos borra en cascada clientes, pedidos y líneas.
	Delete(ctx context.Context, id string) (bool, error)
}
