package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/application/validation"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// InventoryHandler maneja movimientos de inventario y consultas de stock.
type InventoryHandler struct {
	movementUC *appinv.RegisterMovementUseCase
	queryUC    *appinv.QueryUseCase
	v          *validation.Validator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movementUC *appinv.RegisterMovementUseCase, queryUC *appinv.QueryUseCase, v *validation.Validator) *InventoryHandler {
	return &InventoryHandler{movementUC: movementUC, queryUC: queryUC, v: v}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento (entry, exit, adjustment, transfer)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.BulkEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.v.Struct(in); err != nil {
		return errorJSON(c, err)
	}
	result, err := h.movementUC.RegisterMovementFromRequest(c.Context(), GetEmployeeID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}

	movements := make([]dto.MovementResponse, 0, len(result.Movements))
	for _, m := range result.Movements {
		movements = append(movements, appinv.ToMovementResponse(m))
	}
	batches := make([]dto.BatchResponse, 0, len(result.Batches))
	for _, b := range result.Batches {
		batches = append(batches, appinv.ToBatchResponse(b))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"movements": movements,
		"batches":   batches,
	})
}

// ListMovements godoc
// @Summary      Listar movimientos (kardex filtrable)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtro por producto"
// @Param        warehouse_id  query  string  false  "Filtro por bodega"
// @Param        type          query  string  false  "Filtro por tipo"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.MovementFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
		Limit:       limit,
		Offset:      offset,
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: fecha inválida (RFC3339)"})
		}
		filter.From = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: fecha inválida (RFC3339)"})
		}
		filter.To = t
	}
	out, err := h.queryUC.ListMovements(filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ValidateExit godoc
// @Summary      Validar stock disponible antes de una salida
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        quantity      query  string  true   "Cantidad solicitada"
// @Param        warehouse_id  query  string  false  "Bodega (vacío = global)"
// @Success      200  {object}  dto.ValidateExitResponse
// @Router       /api/inventory/validate-exit [get]
func (h *InventoryHandler) ValidateExit(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity inválida"})
	}
	out, err := h.queryUC.ValidateStockForExit(productID, quantity, c.Query("warehouse_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos por debajo de su stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.queryUC.LowStockProducts()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
