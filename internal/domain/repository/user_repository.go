package repository

import "github.com/tu-usuario/nomina-pro/internal/domain/entity"

// UserRepository acceso a usuarios del sistema.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
