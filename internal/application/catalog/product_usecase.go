package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cost se maneja vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Cost inicia en 0. Los productos con control de
// vencimiento deben almacenarse por lote.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.RequiresExpiryControl && in.StorageType != entity.StorageTypeBatch {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:                    uuid.New().String(),
		Code:                  in.Code,
		Name:                  in.Name,
		Description:           in.Description,
		Category:              in.Category,
		Unit:                  in.Unit,
		StorageType:           in.StorageType,
		MinStock:              in.MinStock,
		RequiresExpiryControl: in.RequiresExpiryControl,
		Cost:                  decimal.Zero,
		Status:                entity.StatusActive,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Cost ni StorageType
// (cambiar el tipo de almacenamiento con lotes vivos corrompería el stock).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if in.MinStock.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.RequiresExpiryControl != nil {
		if *in.RequiresExpiryControl && product.StorageType != entity.StorageTypeBatch {
			return nil, domain.ErrInvalidInput
		}
		product.RequiresExpiryControl = *in.RequiresExpiryControl
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación y búsqueda opcional por nombre o código.
func (uc *ProductUseCase) List(search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if !Matches(p.Name, search) && !Matches(p.Code, search) {
			continue
		}
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                    p.ID,
		Code:                  p.Code,
		Name:                  p.Name,
		Description:           p.Description,
		Category:              p.Category,
		Unit:                  p.Unit,
		StorageType:           p.StorageType,
		MinStock:              p.MinStock,
		RequiresExpiryControl: p.RequiresExpiryControl,
		Cost:                  p.Cost,
		Status:                p.Status,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
