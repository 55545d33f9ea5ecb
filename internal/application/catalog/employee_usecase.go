package catalog

import (
	"time"

	"github.com/andilac/lacteos-api/internal/application/auth"
	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados. El alta (con contraseña)
// vive en auth.AuthUseCase; aquí van consulta y actualización.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// GetByID obtiene un empleado por ID.
func (uc *EmployeeUseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToEmployeeResponse(employee), nil
}

// Update actualiza un empleado (sin tocar email ni contraseña).
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		employee.Name = *in.Name
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if in.Department != nil {
		employee.Department = *in.Department
	}
	if in.Role != nil {
		employee.Role = *in.Role
	}
	if in.Status != nil {
		employee.Status = *in.Status
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(employee), nil
}

// List lista empleados con paginación y búsqueda opcional por nombre.
func (uc *EmployeeUseCase) List(search string, limit, offset int) (*dto.EmployeeListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		if !Matches(e.Name, search) {
			continue
		}
		items = append(items, *auth.ToEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}
