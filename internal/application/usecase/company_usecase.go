package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empleadores.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea un empleador. Los porcentajes de recargos arrancan en los valores
// legales; SMMLV/UVT deben venir porque bloquean los cálculos si faltan.
func (uc *CompanyUseCase) Create(in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	company, err := companyFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	company.ID = uuid.New().String()
	company.Status = "active"
	company.CreatedAt = now
	company.UpdatedAt = now

	company.PctOvertimeDay = entity.DefaultPctOvertimeDay
	company.PctOvertimeNight = entity.DefaultPctOvertimeNight
	company.PctSurchargeNight = entity.DefaultPctSurchargeNight
	company.PctOvertimeDaySunday = entity.DefaultPctOvertimeDaySunday
	company.PctSurchargeDaySunday = entity.DefaultPctSurchargeDaySunday
	company.PctOvertimeNightSunday = entity.DefaultPctOvertimeNightSunday
	company.PctSurchargeNightSunday = entity.DefaultPctSurchargeNightSunday

	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

// Update actualiza datos y parámetros fiscales del empleador.
func (uc *CompanyUseCase) Update(id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	current, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	updated, err := companyFromRequest(in)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.Status = current.Status
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now()

	// Los porcentajes de recargos se conservan; se ajustan por separado.
	updated.PctOvertimeDay = current.PctOvertimeDay
	updated.PctOvertimeNight = current.PctOvertimeNight
	updated.PctSurchargeNight = current.PctSurchargeNight
	updated.PctOvertimeDaySunday = current.PctOvertimeDaySunday
	updated.PctSurchargeDaySunday = current.PctSurchargeDaySunday
	updated.PctOvertimeNightSunday = current.PctOvertimeNightSunday
	updated.PctSurchargeNightSunday = current.PctSurchargeNightSunday

	if err := uc.repo.Update(updated); err != nil {
		return nil, err
	}
	return companyToResponse(updated), nil
}

// GetByID obtiene un empleador por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

// List lista los empleadores.
func (uc *CompanyUseCase) List() ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *companyToResponse(c))
	}
	return items, nil
}

func companyFromRequest(in dto.CompanyRequest) (*entity.Company, error) {
	smmlv, err := parseMoney("smmlv", in.SMMLV)
	if err != nil {
		return nil, err
	}
	uvt, err := parseMoney("uvt", in.UVT)
	if err != nil {
		return nil, err
	}
	aux, err := parseMoney("transport_allowance", in.TransportAllowance)
	if err != nil {
		return nil, err
	}
	if smmlv.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrSMMLVNotConfigured
	}
	if uvt.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrUVTNotConfigured
	}

	periodicity := in.Periodicity
	if periodicity == "" {
		periodicity = "mensual"
	}

	return &entity.Company{
		Name:               in.Name,
		NIT:                in.NIT,
		DV:                 in.DV,
		Address:            in.Address,
		City:               in.City,
		Phone:              in.Phone,
		Email:              in.Email,
		SMMLV:              smmlv,
		UVT:                uvt,
		TransportAllowance: aux,
		Periodicity:        periodicity,
		PayrollEnabled:     in.PayrollEnabled,
		InProduction:       in.InProduction,
		TestSetID:          in.TestSetID,
	}, nil
}

func companyToResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		NIT:                c.NIT,
		DV:                 c.DV,
		Address:            c.Address,
		City:               c.City,
		Email:              c.Email,
		SMMLV:              c.SMMLV.StringFixed(2),
		UVT:                c.UVT.StringFixed(2),
		TransportAllowance: c.TransportAllowance.StringFixed(2),
		Periodicity:        c.Periodicity,
		PayrollEnabled:     c.PayrollEnabled,
		InProduction:       c.InProduction,
		TestSetID:          c.TestSetID,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt,
	}
}
