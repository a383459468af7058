package repository

import "github.com/tu-usuario/nomina-pro/internal/domain/entity"

// CompanyRepository acceso a empleadores.
type CompanyRepository interface {
	Create(company *entity.Company) error
	Update(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List() ([]*entity.Company, error)
}
