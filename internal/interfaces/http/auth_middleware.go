package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/pkg/jwt"
)

// Locals keys con la identidad del vendedor autenticado.
const (
	LocalVendorID = "vendor_id"
	LocalEmail    = "email"
	LocalRoles    = "roles"
)

// Roles conocidos.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AuthMiddleware valida el Bearer Token JWT y deja vendor_id, email y roles en c.Locals.
// Los refresh tokens no sirven como credencial de acceso.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || claims.Refresh {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalVendorID, claims.VendorID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRoles, claims.Roles)
		return c.Next()
	}
}

// RequireRole deja pasar solo si el token trae alguno de los roles indicados.
// Debe ir después de AuthMiddleware. Sin roles en el token responde 401.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye roles"})
		}
		for _, r := range roles {
			for _, a := range allowed {
				if strings.EqualFold(r, a) {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
	}
}

// GetVendorID devuelve el id del vendedor autenticado.
func GetVendorID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalVendorID).(string)
	return s
}

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRoles devuelve los roles del token.
func GetRoles(c *fiber.Ctx) []string {
	r, _ := c.Locals(LocalRoles).([]string)
	return r
}

// IsAdmin indica si el vendedor autenticado tiene rol ADMIN.
func IsAdmin(c *fiber.Ctx) bool {
	for _, r := range GetRoles(c) {
		if strings.EqualFold(r, RoleAdmin) {
			return true
		}
	}
	return false
}
