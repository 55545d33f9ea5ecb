package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/application/production"
	"github.com/andilac/lacteos-api/internal/application/validation"
)

// RecipeHandler maneja las peticiones HTTP para recetas versionadas.
type RecipeHandler struct {
	uc *production.RecipeUseCase
	v  *validation.Validator
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *production.RecipeUseCase, v *validation.Validator) *RecipeHandler {
	return &RecipeHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Crear receta (nueva versión para el producto)
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Datos de la receta"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
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
// @Summary      Obtener receta por ID
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar recetas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtro por producto terminado"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("product_id"), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Duplicate godoc
// @Summary      Duplicar receta como nueva versión
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta origen"
// @Success      201  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/duplicate [post]
func (h *RecipeHandler) Duplicate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Duplicate(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ToggleStatus godoc
// @Summary      Alternar estado activo/inactivo de la receta
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Router       /api/recipes/{id}/toggle-status [patch]
func (h *RecipeHandler) ToggleStatus(c *fiber.Ctx) error {
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

// ValidateStock godoc
// @Summary      Validar stock de ingredientes para producir una cantidad
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true  "ID de la receta"
// @Param        quantity  query  string  true  "Cantidad de producto terminado"
// @Success      200  {object}  dto.ValidateIngredientsResponse
// @Router       /api/recipes/{id}/validate-stock [get]
func (h *RecipeHandler) ValidateStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity inválida"})
	}
	out, err := h.uc.ValidateIngredientsStock(id, quantity)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
