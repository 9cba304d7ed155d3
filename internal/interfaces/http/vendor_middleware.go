package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
)

// vendorChecker es el contrato mínimo que necesita el middleware para comprobar al vendedor.
// Lo implementa *usecase.VendorUseCase.
type vendorChecker interface {
	Get(ctx context.Context, id string) (*dto.VendorResponse, error)
}

// RequireVendor verifica que el vendedor del token siga existiendo. Debe usarse
// DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → vendedor borrado después de emitir el token.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireVendor(checker vendorChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendorID := GetVendorID(c)
		if vendorID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "vendor_id no encontrado en el token",
			})
		}

		v, err := checker.Get(c.UserContext(), vendorID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "VENDOR_CHECK_FAILED",
				Message: "no se pudo verificar el vendedor, intente más tarde",
			})
		}
		if v == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "el vendedor del token ya no existe",
			})
		}
		return c.Next()
	}
}
