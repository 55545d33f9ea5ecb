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

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo implementación del puerto ProviderRepository sobre PostgreSQL.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

// Create persiste un proveedor. El RUC tiene constraint único.
func (r *ProviderRepo) Create(provider *entity.Provider) error {
	query := `
		INSERT INTO providers (id, business_name, ruc, email, phone, address, type, categories, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		provider.ID, provider.BusinessName, provider.RUC, provider.Email, provider.Phone,
		provider.Address, provider.Type, provider.Categories, provider.Status,
		provider.CreatedAt, provider.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProviderRepo) GetByID(id string) (*entity.Provider, error) {
	return r.getBy("id = $1", id)
}

// GetByRUC obtiene un proveedor por RUC.
func (r *ProviderRepo) GetByRUC(ruc string) (*entity.Provider, error) {
	return r.getBy("ruc = $1", ruc)
}

func (r *ProviderRepo) getBy(where string, arg any) (*entity.Provider, error) {
	query := `
		SELECT id, business_name, ruc, email, phone, address, type, categories, status, created_at, updated_at
		FROM providers WHERE ` + where
	var p entity.Provider
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.BusinessName, &p.RUC, &p.Email, &p.Phone, &p.Address,
		&p.Type, &p.Categories, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return &p, nil
}

// Update actualiza un proveedor. El RUC no se modifica.
func (r *ProviderRepo) Update(provider *entity.Provider) error {
	query := `
		UPDATE providers
		SET business_name = $2, email = $3, phone = $4, address = $5, type = $6, categories = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		provider.ID, provider.BusinessName, provider.Email, provider.Phone, provider.Address,
		provider.Type, provider.Categories, provider.Status, provider.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

// List lista proveedores con paginación.
func (r *ProviderRepo) List(limit, offset int) ([]*entity.Provider, error) {
	query := `
		SELECT id, business_name, ruc, email, phone, address, type, categories, status, created_at, updated_at
		FROM providers ORDER BY business_name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(
			&p.ID, &p.BusinessName, &p.RUC, &p.Email, &p.Phone, &p.Address,
			&p.Type, &p.Categories, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
