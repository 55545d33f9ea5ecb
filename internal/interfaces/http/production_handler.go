package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/application/production"
	"github.com/andilac/lacteos-api/internal/application/validation"
)

// ProductionHandler maneja el ciclo de las órdenes de producción.
type ProductionHandler struct {
	uc *production.ProductionUseCase
	v  *validation.Validator
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProductionUseCase, v *validation.Validator) *ProductionHandler {
	return &ProductionHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Crear orden de producción (requiere receta activa)
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-orders [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.v.Struct(in); err != nil {
		return errorJSON(c, err)
	}
	out, err := h.uc.Create(GetEmployeeID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de producción por ID
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.ProductionOrderResponse
// @Router       /api/production-orders [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("status"), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar producción (revalida stock de ingredientes)
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/start [post]
func (h *ProductionHandler) Start(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Start(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// UpdateProgress godoc
// @Summary      Actualizar avance (0-100; no completa la orden)
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateProgressRequest  true  "Avance"
// @Success      200   {object}  dto.ProductionOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/progress [patch]
func (h *ProductionHandler) UpdateProgress(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateProgressRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.v.Struct(in); err != nil {
		return errorJSON(c, err)
	}
	out, err := h.uc.UpdateProgress(id, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar orden: consume ingredientes FEFO y da entrada al producto
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.CompleteProductionRequest  true  "Cantidad real producida"
// @Success      200   {object}  dto.CompleteProductionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/complete [post]
func (h *ProductionHandler) Complete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.CompleteProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Complete(c.Context(), id, GetEmployeeID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden de producción (estados no terminales)
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/cancel [post]
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Cancel(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
