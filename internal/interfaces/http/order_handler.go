package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
)

// OrderHandler gestiona pedidos de un cliente. self tiene el mismo sentido que en ClientHandler.
type OrderHandler struct {
	uc   orderService
	self bool
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc orderService, self bool) *OrderHandler {
	return &OrderHandler{uc: uc, self: self}
}

// Create godoc
// @Summary      Crear pedido para un cliente
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Success      201  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	s := scopeFrom(c, h.self)
	out, err := h.uc.Create(c.UserContext(), s.VendorID, s.ClientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos de un cliente
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/cliente/{idCliente}/pedido [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), scopeFrom(c, h.self))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdminList godoc
// @Summary      Listar pedidos con filtros opcionales
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        vendedor  query  string  false  "ID del vendedor"
// @Param        cliente   query  string  false  "ID del cliente"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/pedido/admin [get]
func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	s := scopeFromQuery(c)
	s.OrderID = ""
	out, err := h.uc.List(c.UserContext(), s)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Param        idPedido   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), scopeFrom(c, h.self))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "pedido no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar la fecha de un pedido abierto
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        idCliente  path  string                  true  "ID del cliente"
// @Param        idPedido   path  string                  true  "ID del pedido"
// @Param        body       body  dto.UpdateOrderRequest  true  "fecha"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
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
// @Summary      Borrar pedido y sus líneas
// @Tags         pedidos
// @Security     Bearer
// @Param        idCliente  path  string  true  "ID del cliente"
// @Param        idPedido   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), scopeFrom(c, h.self)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Close godoc
// @Summary      Cerrar pedido
// @Description  Marca el pedido como finalizado y envía la confirmación por correo al vendedor.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        idCliente  path  string  true  "ID del cliente"
// @Param        idPedido   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido}/cerrar [post]
func (h *OrderHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.Close(c.UserContext(), scopeFrom(c, h.self))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe PDF de un pedido finalizado
// @Tags         pedidos
// @Security     Bearer
// @Produce      application/pdf
// @Param        idCliente  path  string  true  "ID del cliente"
// @Param        idPedido   path  string  true  "ID del pedido"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cliente/{idCliente}/pedido/{idPedido}/informe [get]
func (h *OrderHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Report(c.UserContext(), scopeFrom(c, h.self))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
