package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorventas/deposito-api/internal/application/dto"
)

// VendorHandler gestiona vendedores. Alta, listado, edición y borrado son de ADMIN.
type VendorHandler struct {
	uc vendorService
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc vendorService) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear vendedor
// @Tags         vendedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorRequest  true  "nombre, email, password"
// @Success      201   {object}  dto.VendorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendedor [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar vendedores
// @Tags         vendedores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VendorResponse
// @Router       /api/vendedor [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Vendedor autenticado
// @Tags         vendedores
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VendorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendedor/me [get]
func (h *VendorHandler) Me(c *fiber.Ctx) error {
	return h.get(c, GetVendorID(c))
}

// GetByID godoc
// @Summary      Obtener vendedor por ID
// @Description  Un vendedor solo puede consultarse a sí mismo salvo que sea ADMIN.
// @Tags         vendedores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.VendorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendedor/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != GetVendorID(c) && !IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo un ADMIN puede consultar otros vendedores"})
	}
	return h.get(c, id)
}

func (h *VendorHandler) get(c *fiber.Ctx, id string) error {
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "vendedor no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vendedor
// @Tags         vendedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del vendedor"
// @Param        body  body  dto.UpdateVendorRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.VendorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendedor/{id} [put]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar vendedor (en cascada clientes, pedidos y líneas)
// @Tags         vendedores
// @Security     Bearer
// @Param        id   path  string  true  "ID del vendedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendedor/{id} [delete]
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
