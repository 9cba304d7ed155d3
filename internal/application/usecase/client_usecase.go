package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/google/uuid"
)

// ClientUseCase casos de uso de clientes, siempre dentro del scope de un vendedor
// (salvo las vistas de administrador con scope vacío).
type ClientUseCase struct {
	clients repository.ClientRepository
	guard   *OwnershipGuard
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clients repository.ClientRepository, guard *OwnershipGuard) *ClientUseCase {
	return &ClientUseCase{clients: clients, guard: guard}
}

// Create crea un cliente para el vendedor. El vendedor debe existir.
func (uc *ClientUseCase) Create(ctx context.Context, vendorID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("nombre obligatorio")
	}
	if _, err := uc.guard.Resolve(ctx, repository.Scope{VendorID: vendorID}); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		VendorID:  vendorID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Get devuelve el cliente si cumple el scope; nil si no existe o no pertenece.
func (uc *ClientUseCase) Get(ctx context.Context, scope repository.Scope) (*dto.ClientResponse, error) {
	c, err := uc.clients.FindScoped(ctx, scope)
	if err != nil || c == nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista los clientes del scope (vacío = todos).
func (uc *ClientUseCase) List(ctx context.Context, scope repository.Scope) ([]dto.ClientResponse, error) {
	list, err := uc.clients.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Update cambia el nombre si viene informado.
func (uc *ClientUseCase) Update(ctx context.Context, scope repository.Scope, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	chain, err := uc.guard.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	c := chain.Client
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		c.Name = strings.TrimSpace(*in.Name)
	}
	c.UpdatedAt = time.Now()
	if err := uc.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Delete elimina el cliente con sus pedidos y líneas.
func (uc *ClientUseCase) Delete(ctx context.Context, scope repository.Scope) error {
	chain, err := uc.guard.Resolve(ctx, scope)
	if err != nil {
		return err
	}
	ok, err := uc.clients.Delete(ctx, chain.Client.ID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("cliente", chain.Client.ID)
	}
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		VendorID:  c.VendorID,
		CreatedAt: c.CreatedAt,
	}
}
