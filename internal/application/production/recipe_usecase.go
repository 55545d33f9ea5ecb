package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// RecipeUseCase recetas versionadas (lista de materiales) para producción.
// Las versiones publicadas no se mutan: editar o duplicar crea una versión nueva.
type RecipeUseCase struct {
	recipeRepo  repository.RecipeRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo, productRepo: productRepo, stockRepo: stockRepo}
}

// Create crea una receta nueva para un producto. Requiere al menos un ingrediente
// con cantidad positiva; el producto terminado no puede ser su propio ingrediente.
func (uc *RecipeUseCase) Create(in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if len(in.Ingredients) == 0 || !in.YieldQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	recipeID := uuid.New().String()
	ingredients := make([]entity.RecipeIngredient, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if !ing.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if ing.ProductID == in.ProductID {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(ing.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		ingredients = append(ingredients, entity.RecipeIngredient{
			ID:        uuid.New().String(),
			RecipeID:  recipeID,
			ProductID: ing.ProductID,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
		})
	}

	maxVersion, err := uc.recipeRepo.MaxVersionForProduct(in.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &entity.ProductRecipe{
		ID:            recipeID,
		ProductID:     in.ProductID,
		Name:          in.Name,
		Version:       maxVersion + 1,
		Ingredients:   ingredients,
		YieldQuantity: in.YieldQuantity,
		YieldUnit:     in.YieldUnit,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// GetByID obtiene una receta con sus ingredientes.
func (uc *RecipeUseCase) GetByID(id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.getRecipe(id)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// List lista recetas, opcionalmente por producto.
func (uc *RecipeUseCase) List(productID string, page dto.PageRequest) ([]dto.RecipeResponse, error) {
	page.DefaultPage()
	recipes, err := uc.recipeRepo.List(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, *toRecipeResponse(r))
	}
	return out, nil
}

// Duplicate crea una copia de la receta como versión nueva del mismo producto.
func (uc *RecipeUseCase) Duplicate(id string) (*dto.RecipeResponse, error) {
	src, err := uc.getRecipe(id)
	if err != nil {
		return nil, err
	}
	maxVersion, err := uc.recipeRepo.MaxVersionForProduct(src.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	copyID := uuid.New().String()
	ingredients := make([]entity.RecipeIngredient, 0, len(src.Ingredients))
	for _, ing := range src.Ingredients {
		ingredients = append(ingredients, entity.RecipeIngredient{
			ID:        uuid.New().String(),
			RecipeID:  copyID,
			ProductID: ing.ProductID,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
		})
	}
	dup := &entity.ProductRecipe{
		ID:            copyID,
		ProductID:     src.ProductID,
		Name:          src.Name,
		Version:       maxVersion + 1,
		Ingredients:   ingredients,
		YieldQuantity: src.YieldQuantity,
		YieldUnit:     src.YieldUnit,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.recipeRepo.Create(dup); err != nil {
		return nil, err
	}
	return toRecipeResponse(dup), nil
}

// ToggleStatus activa o desactiva una receta.
func (uc *RecipeUseCase) ToggleStatus(id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.getRecipe(id)
	if err != nil {
		return nil, err
	}
	if recipe.Status == entity.StatusActive {
		recipe.Status = entity.StatusInactive
	} else {
		recipe.Status = entity.StatusActive
	}
	recipe.UpdatedAt = time.Now()
	if err := uc.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// ValidateIngredientsStock evalúa si hay stock para producir la cantidad pedida.
// El requerido de cada ingrediente se escala por quantity / YieldQuantity y se
// compara contra el stock total del ingrediente en todas las bodegas.
func (uc *RecipeUseCase) ValidateIngredientsStock(id string, quantity decimal.Decimal) (*dto.ValidateIngredientsResponse, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := uc.getRecipe(id)
	if err != nil {
		return nil, err
	}

	factor := quantity.Div(recipe.YieldQuantity)
	resp := &dto.ValidateIngredientsResponse{Valid: true}
	for _, ing := range recipe.Ingredients {
		required := ing.Quantity.Mul(factor)
		available, err := uc.stockRepo.TotalByProduct(ing.ProductID)
		if err != nil {
			return nil, err
		}
		if available.LessThan(required) {
			product, err := uc.productRepo.GetByID(ing.ProductID)
			if err != nil {
				return nil, err
			}
			name := ing.ProductID
			if product != nil {
				name = product.Name
			}
			resp.Valid = false
			resp.Missing = append(resp.Missing, dto.MissingIngredient{
				ProductID: ing.ProductID,
				Name:      name,
				Required:  required,
				Available: available,
				Missing:   required.Sub(available),
			})
		}
	}
	return resp, nil
}

func (uc *RecipeUseCase) getRecipe(id string) (*entity.ProductRecipe, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return recipe, nil
}

func toRecipeResponse(r *entity.ProductRecipe) *dto.RecipeResponse {
	ingredients := make([]dto.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, dto.RecipeIngredientResponse{
			ID:        ing.ID,
			ProductID: ing.ProductID,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
		})
	}
	return &dto.RecipeResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Name:          r.Name,
		Version:       r.Version,
		Ingredients:   ingredients,
		YieldQuantity: r.YieldQuantity,
		YieldUnit:     r.YieldUnit,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
