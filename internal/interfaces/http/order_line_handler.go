package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
)

// OrderLineHandler gestiona las líneas de un pedido.
type OrderLineHandler struct {
	uc   lineService
	self bool
}

// NewOrderLineHandler construye el handler.
func NewOrderLineHandler(uc lineService, self bool) *OrderLineHandler {
	return &OrderLineHandler{uc: uc, self: self}
}

// Add godoc
// @Summary      Añadir línea a un pedido abierto
// @Description  Sin precio explícito se usa precio del producto × cantidad.
// @Tags         lineas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        idCliente  path  string                   true  "ID del cliente"
// @Param        idPedido   path  string                   true  "ID del pedido"
// @Param        body       body  dto.AddOrderLineRequest  true  "producto, cantidad, precio opcional"
// @Success      201  {object}  dto.OrderLineResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido}/linea [post]
func (h *OrderLineHandler) Add(c *fiber.Ctx) error {
	var in dto.AddOrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), scopeFrom(c, h.self), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar líneas de un pedido
// @Tags         lineas
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Param        idPedido   path  string  true  "ID del pedido"
// @Success      200  {array}  dto.OrderLineResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido}/linea [get]
func (h *OrderLineHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), scopeFrom(c, h.self))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdminList godoc
// @Summary      Listar líneas con filtros opcionales
// @Tags         lineas
// @Security     Bearer
// @Produce      json
// @Param        vendedor  query  string  false  "ID del vendedor"
// @Param        cliente   query  string  false  "ID del cliente"
// @Param        pedido    query  string  false  "ID del pedido"
// @Success      200  {array}  dto.OrderLineResponse
// @Router       /api/linea/admin [get]
func (h *OrderLineHandler) AdminList(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), scopeFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener línea
// @Tags         lineas
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Param        idPedido   path  string  true  "ID del pedido"
// @Param        idLinea    path  string  true  "ID de la línea"
// @Success      200  {object}  dto.OrderLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido}/linea/{idLinea} [get]
func (h *OrderLineHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), scopeFrom(c, h.self))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "línea no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar cantidad o precio de una línea
// @Tags         lineas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        idCliente  path  string                      true  "ID del cliente"
// @Param        idPedido   path  string                      true  "ID del pedido"
// @Param        idLinea    path  string                      true  "ID de la línea"
// @Param        body       body  dto.UpdateOrderLineRequest  true  "cantidad, precio"
// @Success      200  {object}  dto.OrderLineResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido}/linea/{idLinea} [put]
func (h *OrderLineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderLineRequest
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
// @Summary      Borrar línea de un pedido abierto
// @Tags         lineas
// @Security     Bearer
// @Param        idCliente  path  string  true  "ID del cliente"
// @Param        idPedido   path  string  true  "ID del pedido"
// @Param        idLinea    path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido}/linea/{idLinea} [delete]
func (h *OrderLineHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), scopeFrom(c, h.self)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
