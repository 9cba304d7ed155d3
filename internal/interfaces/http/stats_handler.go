package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

// StatsHandler expone los ingresos por año (solo pedidos finalizados).
type StatsHandler struct {
	uc statsService
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc statsService) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Global godoc
// @Summary      Ingresos por año de todos los vendedores
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]number
// @Router       /api/vendedor/stats [get]
func (h *StatsHandler) Global(c *fiber.Ctx) error {
	out, err := h.uc.Global(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MyStats godoc
// @Summary      Ingresos por año del vendedor autenticado
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]number
// @Router       /api/vendedor/me/stats [get]
func (h *StatsHandler) MyStats(c *fiber.Ctx) error {
	return h.byVendor(c, GetVendorID(c))
}

// VendorStats godoc
// @Summary      Ingresos por año de un vendedor
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vendedor"
// @Success      200  {object}  map[string]number
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendedor/{id}/stats [get]
func (h *StatsHandler) VendorStats(c *fiber.Ctx) error {
	return h.byVendor(c, c.Params("id"))
}

func (h *StatsHandler) byVendor(c *fiber.Ctx, vendorID string) error {
	out, err := h.uc.ByVendor(c.UserContext(), vendorID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "vendedor no encontrado")
	}
	return c.JSON(out)
}

// MyClientTotals godoc
// @Summary      Ingreso total por cliente del vendedor autenticado
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientTotalResponse
// @Router       /api/vendedor/me/stats/clientes [get]
func (h *StatsHandler) MyClientTotals(c *fiber.Ctx) error {
	out, err := h.uc.ClientTotals(c.UserContext(), GetVendorID(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		out = []dto.ClientTotalResponse{}
	}
	return c.JSON(out)
}

// ClientStats godoc
// @Summary      Ingresos por año de un cliente
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Success      200  {object}  map[string]number
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/stats [get]
func (h *StatsHandler) ClientStats(self bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.byClient(c, scopeFrom(c, self))
	}
}

// AdminClientStats godoc
// @Summary      Ingresos por año de cualquier cliente
// @Tags         estadisticas
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Success      200  {object}  map[string]number
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/admin/{idCliente}/stats [get]
func (h *StatsHandler) AdminClientStats(c *fiber.Ctx) error {
	return h.byClient(c, repository.Scope{ClientID: c.Params("idCliente")})
}

func (h *StatsHandler) byClient(c *fiber.Ctx, scope repository.Scope) error {
	out, err := h.uc.ByClient(c.UserContext(), scope)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return c.JSON(out)
}
