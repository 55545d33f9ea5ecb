package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andilac/lacteos-api/internal/application/catalog"
	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/application/validation"
)

// ProviderHandler maneja las peticiones HTTP para proveedores (protegido).
type ProviderHandler struct {
	uc *catalog.ProviderUseCase
	v  *validation.Validator
}

// NewProviderHandler construye el handler.
func NewProviderHandler(uc *catalog.ProviderUseCase, v *validation.Validator) *ProviderHandler {
	return &ProviderHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         providers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProviderRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProviderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/providers [post]
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProviderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.v.Struct(in); err != nil {
		return errorJSON(c, err)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         providers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.ProviderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/providers/{id} [get]
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         providers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateProviderRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProviderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/providers/{id} [put]
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateProviderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.v.Struct(in); err != nil {
		return errorJSON(c, err)
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ToggleStatus godoc
// @Summary      Alternar estado activo/inactivo del proveedor
// @Tags         providers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.ProviderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/providers/{id}/toggle-status [patch]
func (h *ProviderHandler) ToggleStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.ToggleStatus(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proveedores (búsqueda insensible a tildes)
// @Tags         providers
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto de búsqueda"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProviderListResponse
// @Router       /api/providers [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("search"), limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
