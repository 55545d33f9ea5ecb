package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL.
// La receta se persiste con sus ingredientes; las versiones publicadas no se mutan.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

const recipeColumns = `id, product_id, name, version, yield_quantity, yield_unit, status, created_at, updated_at`

// Create persiste la receta y sus ingredientes.
func (r *RecipeRepo) Create(recipe *entity.ProductRecipe) error {
	ctx := context.Background()
	query := `
		INSERT INTO product_recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		recipe.ID, recipe.ProductID, recipe.Name, recipe.Version,
		recipe.YieldQuantity, recipe.YieldUnit, recipe.Status,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	for i := range recipe.Ingredients {
		ing := &recipe.Ingredients[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_ingredients (id, recipe_id, product_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`,
			ing.ID, ing.RecipeID, ing.ProductID, ing.Quantity, ing.Unit,
		)
		if err != nil {
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la receta con sus ingredientes.
func (r *RecipeRepo) GetByID(id string) (*entity.ProductRecipe, error) {
	ctx := context.Background()
	var rec entity.ProductRecipe
	err := r.q.QueryRow(ctx, `SELECT `+recipeColumns+` FROM product_recipes WHERE id = $1`, id).Scan(
		&rec.ID, &rec.ProductID, &rec.Name, &rec.Version,
		&rec.YieldQuantity, &rec.YieldUnit, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	ingredients, err := r.listIngredients(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = ingredients
	return &rec, nil
}

func (r *RecipeRepo) listIngredients(ctx context.Context, recipeID string) ([]entity.RecipeIngredient, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, recipe_id, product_id, quantity, unit
		FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()

	var out []entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.ProductID, &ing.Quantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Update actualiza nombre y estado de la receta. Los ingredientes de una
// versión publicada no se modifican: editar crea una versión nueva.
func (r *RecipeRepo) Update(recipe *entity.ProductRecipe) error {
	query := `
		UPDATE product_recipes
		SET name = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Name, recipe.Status, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// List lista recetas, opcionalmente filtradas por producto terminado.
func (r *RecipeRepo) List(productID string, limit, offset int) ([]*entity.ProductRecipe, error) {
	ctx := context.Background()
	query := `SELECT ` + recipeColumns + ` FROM product_recipes`
	var args []any
	if productID != "" {
		query += " WHERE product_id = $1"
		args = append(args, productID)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY product_id, version DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductRecipe
	for rows.Next() {
		var rec entity.ProductRecipe
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.Name, &rec.Version,
			&rec.YieldQuantity, &rec.YieldUnit, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range out {
		ingredients, err := r.listIngredients(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Ingredients = ingredients
	}
	return out, nil
}

// MaxVersionForProduct versión más alta registrada para el producto (0 si no hay).
func (r *RecipeRepo) MaxVersionForProduct(productID string) (int, error) {
	var version int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(version), 0) FROM product_recipes WHERE product_id = $1`, productID,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("max recipe version: %w", err)
	}
	return version, nil
}
