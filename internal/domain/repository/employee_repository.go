package repository

import "github.com/tu-usuario/nomina-pro/internal/domain/entity"

// EmployeeRepository acceso a trabajadores.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	Update(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	ListByCompany(companyID string) ([]*entity.Employee, error)
}

// ContractRepository acceso a contratos laborales.
type ContractRepository interface {
	Create(contract *entity.Contract) error
	Update(contract *entity.Contract) error
	GetByID(id string) (*entity.Contract, error)
	// GetActiveByEmployee devuelve el contrato vigente del empleado (nil si no hay).
	GetActiveByEmployee(employeeID string) (*entity.Contract, error)
}
