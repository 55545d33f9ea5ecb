package repository

import "github.com/andilac/lacteos-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	FindByEmail(email string) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	List(limit, offset int) ([]*entity.Employee, error)
}
