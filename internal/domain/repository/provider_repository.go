package repository

import "github.com/andilac/lacteos-api/internal/domain/entity"

// ProviderRepository define el puerto de persistencia para Provider (DIP).
type ProviderRepository interface {
	Create(provider *entity.Provider) error
	GetByID(id string) (*entity.Provider, error)
	GetByRUC(ruc string) (*entity.Provider, error)
	Update(provider *entity.Provider) error
	List(limit, offset int) ([]*entity.Provider, error)
}
