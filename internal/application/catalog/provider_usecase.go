package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// ProviderUseCase casos de uso CRUD para proveedores. La baja es un toggle de estado.
type ProviderUseCase struct {
	repo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo}
}

// Create crea un proveedor. El RUC es único.
func (uc *ProviderUseCase) Create(in dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	existing, _ := uc.repo.GetByRUC(in.RUC)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	provider := &entity.Provider{
		ID:           uuid.New().String(),
		BusinessName: in.BusinessName,
		RUC:          in.RUC,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		Type:         in.Type,
		Categories:   in.Categories,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProviderUseCase) GetByID(id string) (*dto.ProviderResponse, error) {
	provider, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	return toProviderResponse(provider), nil
}

// Update actualiza un proveedor. El RUC no se modifica.
func (uc *ProviderUseCase) Update(id string, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	provider, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if in.BusinessName != nil {
		provider.BusinessName = *in.BusinessName
	}
	if in.Email != nil {
		provider.Email = *in.Email
	}
	if in.Phone != nil {
		provider.Phone = *in.Phone
	}
	if in.Address != nil {
		provider.Address = *in.Address
	}
	if in.Type != nil {
		provider.Type = *in.Type
	}
	if in.Categories != nil {
		provider.Categories = in.Categories
	}
	if in.Status != nil {
		provider.Status = *in.Status
	}
	provider.UpdatedAt = time.Now()
	if err := uc.repo.Update(provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// ToggleStatus alterna active/inactive (baja suave).
func (uc *ProviderUseCase) ToggleStatus(id string) (*dto.ProviderResponse, error) {
	provider, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if provider.Status == entity.StatusActive {
		provider.Status = entity.StatusInactive
	} else {
		provider.Status = entity.StatusActive
	}
	provider.UpdatedAt = time.Now()
	if err := uc.repo.Update(provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// List lista proveedores con paginación y búsqueda opcional por razón social
// (insensible a mayúsculas y tildes).
func (uc *ProviderUseCase) List(search string, limit, offset int) (*dto.ProviderListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProviderResponse, 0, len(list))
	for _, p := range list {
		if !Matches(p.BusinessName, search) && !Matches(p.RUC, search) {
			continue
		}
		items = append(items, *toProviderResponse(p))
	}
	return &dto.ProviderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		RUC:          p.RUC,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		Type:         p.Type,
		Categories:   p.Categories,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
