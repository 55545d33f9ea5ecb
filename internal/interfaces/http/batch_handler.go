package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
)

// BatchHandler maneja consultas de lotes y la etiqueta PDF con QR.
type BatchHandler struct {
	queryUC *appinv.QueryUseCase
	labels  appinv.BatchLabelGenerator
}

// NewBatchHandler construye el handler.
func NewBatchHandler(queryUC *appinv.QueryUseCase, labels appinv.BatchLabelGenerator) *BatchHandler {
	return &BatchHandler{queryUC: queryUC, labels: labels}
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtro por producto"
// @Param        warehouse_id  query  string  false  "Filtro por bodega"
// @Param        status        query  string  false  "Filtro por estado"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.queryUC.ListBatches(
		c.Query("product_id"), c.Query("warehouse_id"), c.Query("status"), limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.queryUC.GetBatch(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Lotes que vencen dentro de N días (default 7)
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(7)
// @Success      200   {array}  dto.BatchResponse
// @Router       /api/batches/expiring [get]
func (h *BatchHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.queryUC.ExpiringBatches(c.QueryInt("days", 0))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Descargar la etiqueta PDF del lote (con QR)
// @Tags         batches
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/label [get]
func (h *BatchHandler) Label(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	batch, product, err := h.queryUC.BatchForLabel(id)
	if err != nil {
		return errorJSON(c, err)
	}
	pdf, err := h.labels.GenerateBatchLabel(batch, product)
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, batch.Code))
	return c.Send(pdf)
}
