package repository

import (
	"context"

	"github.com/gestorventas/deposito-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// FindScoped devuelve el cliente sólo si cumple el scope (VendorID/ClientID); nil si no.
	FindScoped(ctx context.Context, scope Scope) (*entity.Client, error)
	List(ctx context.Context, scope Scope) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) (bool, error)
}
