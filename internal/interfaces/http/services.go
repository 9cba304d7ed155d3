package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

// Contratos que consumen los handlers. Los implementan los use cases de
// internal/application; en tests se sustituyen por dobles.

type authService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error
}

type vendorService interface {
	vendorChecker
	Create(ctx context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error)
	List(ctx context.Context) ([]dto.VendorResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error)
	Delete(ctx context.Context, id string) error
}

type clientService interface {
	Create(ctx context.Context, vendorID string, in dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, scope repository.Scope) (*dto.ClientResponse, error)
	List(ctx context.Context, scope repository.Scope) ([]dto.ClientResponse, error)
	Update(ctx context.Context, scope repository.Scope, in dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, scope repository.Scope) error
}

type productService interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id string) (*dto.ProductResponse, error)
	List(ctx context.Context, category string) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type orderService interface {
	Create(ctx context.Context, vendorID, clientID string) (*dto.OrderResponse, error)
	Get(ctx context.Context, scope repository.Scope) (*dto.OrderResponse, error)
	List(ctx context.Context, scope repository.Scope) ([]dto.OrderResponse, error)
	Update(ctx context.Context, scope repository.Scope, in dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, scope repository.Scope) error
	Close(ctx context.Context, scope repository.Scope) (*dto.OrderResponse, error)
	Report(ctx context.Context, scope repository.Scope) ([]byte, string, error)
}

type lineService interface {
	Add(ctx context.Context, scope repository.Scope, in dto.AddOrderLineRequest) (*dto.OrderLineResponse, error)
	Get(ctx context.Context, scope repository.Scope) (*dto.OrderLineResponse, error)
	List(ctx context.Context, scope repository.Scope) ([]dto.OrderLineResponse, error)
	Update(ctx context.Context, scope repository.Scope, in dto.UpdateOrderLineRequest) (*dto.OrderLineResponse, error)
	Delete(ctx context.Context, scope repository.Scope) error
}

type statsService interface {
	Global(ctx context.Context) (dto.YearlyStats, error)
	ByVendor(ctx context.Context, vendorID string) (dto.YearlyStats, error)
	ByClient(ctx context.Context, scope repository.Scope) (dto.YearlyStats, error)
	ClientTotals(ctx context.Context, vendorID string) ([]dto.ClientTotalResponse, error)
}

// scopeFrom arma el alcance a partir de los parámetros de ruta. En las rutas
// propias (self) el vendedor sale del token; en las anidadas de admin, de :idVendedor.
func scopeFrom(c *fiber.Ctx, self bool) repository.Scope {
	s := repository.Scope{
		ClientID: c.Params("idCliente"),
		OrderID:  c.Params("idPedido"),
		LineID:   c.Params("idLinea"),
	}
	if self {
		s.VendorID = GetVendorID(c)
	} else {
		s.VendorID = c.Params("idVendedor")
	}
	return s
}

// scopeFromQuery alcance de los listados planos de admin (?vendedor=&cliente=&pedido=).
func scopeFromQuery(c *fiber.Ctx) repository.Scope {
	return repository.Scope{
		VendorID: c.Query("vendedor"),
		ClientID: c.Query("cliente"),
		OrderID:  c.Query("pedido"),
	}
}
