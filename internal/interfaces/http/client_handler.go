package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

// ClientHandler gestiona clientes. Con self=true opera sobre los clientes del
// vendedor autenticado; con self=false sobre los de :idVendedor (rutas de admin).
type ClientHandler struct {
	uc   clientService
	self bool
}

// NewClientHandler construye el handler.
func NewClientHandler(uc clientService, self bool) *ClientHandler {
	return &ClientHandler{uc: uc, self: self}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "nombre"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cliente [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scopeFrom(c, h.self).VendorID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/cliente [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), scopeFrom(c, h.self))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	return h.get(c, scopeFrom(c, h.self))
}

// AdminGet godoc
// @Summary      Obtener cualquier cliente por ID
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/admin/{idCliente} [get]
func (h *ClientHandler) AdminGet(c *fiber.Ctx) error {
	return h.get(c, repository.Scope{ClientID: c.Params("idCliente")})
}

func (h *ClientHandler) get(c *fiber.Ctx, scope repository.Scope) error {
	out, err := h.uc.Get(c.UserContext(), scope)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        idCliente  path  string                   true  "ID del cliente"
// @Param        body       body  dto.UpdateClientRequest  true  "nombre"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), scopeFrom(c, h.self), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar cliente (en cascada pedidos y líneas)
// @Tags         clientes
// @Security     Bearer
// @Param        idCliente  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), scopeFrom(c, h.self)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
