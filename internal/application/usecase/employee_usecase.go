package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// EmployeeUseCase aplica reglas de negocio para trabajadores y sus contratos.
type EmployeeUseCase struct {
	employees repository.EmployeeRepository
	contracts repository.ContractRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(employees repository.EmployeeRepository, contracts repository.ContractRepository) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, contracts: contracts}
}

// Create registra un trabajador. El nombre completo debe poder descomponerse en
// apellidos y nombres para el documento fiscal; se valida aquí para fallar temprano.
func (uc *EmployeeUseCase) Create(companyID string, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if surname, _, _, _ := nomina.SplitPersonName(in.FullName); surname == "" {
		return nil, fmt.Errorf("%w: el nombre debe incluir al menos un apellido", domain.ErrInvalidInput)
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		IdentType:      in.IdentType,
		Identification: in.Identification,
		FullName:       in.FullName,
		Email:          in.Email,
		Address:        in.Address,
		Municipality:   in.Municipality,
		Department:     in.Department,
		PaymentMethod:  in.PaymentMethod,
		Bank:           in.Bank,
		AccountType:    in.AccountType,
		AccountNumber:  in.AccountNumber,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if employee.PaymentMethod == "" {
		employee.PaymentMethod = entity.PaymentMethodTransfer
	}
	if err := uc.employees.Create(employee); err != nil {
		return nil, err
	}
	return employeeToResponse(employee), nil
}

// Update actualiza los datos del trabajador.
func (uc *EmployeeUseCase) Update(companyID, id string, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.employees.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if surname, _, _, _ := nomina.SplitPersonName(in.FullName); surname == "" {
		return nil, fmt.Errorf("%w: el nombre debe incluir al menos un apellido", domain.ErrInvalidInput)
	}
	employee.IdentType = in.IdentType
	employee.Identification = in.Identification
	employee.FullName = in.FullName
	employee.Email = in.Email
	employee.Address = in.Address
	employee.Municipality = in.Municipality
	employee.Department = in.Department
	if in.PaymentMethod != "" {
		employee.PaymentMethod = in.PaymentMethod
	}
	employee.Bank = in.Bank
	employee.AccountType = in.AccountType
	employee.AccountNumber = in.AccountNumber
	employee.UpdatedAt = time.Now()

	if err := uc.employees.Update(employee); err != nil {
		return nil, err
	}
	return employeeToResponse(employee), nil
}

// GetByID obtiene un trabajador de la empresa.
func (uc *EmployeeUseCase) GetByID(companyID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.employees.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return employeeToResponse(employee), nil
}

// ListByCompany lista los trabajadores de la empresa.
func (uc *EmployeeUseCase) ListByCompany(companyID string) ([]dto.EmployeeResponse, error) {
	list, err := uc.employees.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *employeeToResponse(e))
	}
	return items, nil
}

// ── Contratos ──

// CreateContract registra un contrato para un trabajador de la empresa.
func (uc *EmployeeUseCase) CreateContract(companyID string, in dto.ContractRequest) (*dto.ContractResponse, error) {
	employee, err := uc.employees.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	wage, err := parseMoney("wage", in.Wage)
	if err != nil {
		return nil, err
	}
	dateStart, err := parseDate("date_start", in.DateStart)
	if err != nil {
		return nil, err
	}
	dateEnd, err := parseDatePtr("date_end", in.DateEnd)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	contract := &entity.Contract{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		EmployeeID:        in.EmployeeID,
		Wage:              wage,
		IntegralSalary:    in.IntegralSalary,
		HighRiskPension:   in.HighRiskPension,
		TypeWorkerCode:    in.TypeWorkerCode,
		SubTypeWorkerCode: in.SubTypeWorkerCode,
		TypeContractCode:  in.TypeContractCode,
		ARLRiskLevel:      in.ARLRiskLevel,
		SchedulePay:       in.SchedulePay,
		DateStart:         dateStart,
		DateEnd:           dateEnd,
		Status:            "active",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if contract.SchedulePay == "" {
		contract.SchedulePay = "mensual"
	}
	if err := uc.contracts.Create(contract); err != nil {
		return nil, err
	}
	return contractToResponse(contract), nil
}

// UpdateContract actualiza el contrato.
func (uc *EmployeeUseCase) UpdateContract(companyID, id string, in dto.ContractRequest) (*dto.ContractResponse, error) {
	contract, err := uc.contracts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	wage, err := parseMoney("wage", in.Wage)
	if err != nil {
		return nil, err
	}
	dateStart, err := parseDate("date_start", in.DateStart)
	if err != nil {
		return nil, err
	}
	dateEnd, err := parseDatePtr("date_end", in.DateEnd)
	if err != nil {
		return nil, err
	}

	contract.Wage = wage
	contract.IntegralSalary = in.IntegralSalary
	contract.HighRiskPension = in.HighRiskPension
	contract.TypeWorkerCode = in.TypeWorkerCode
	contract.SubTypeWorkerCode = in.SubTypeWorkerCode
	contract.TypeContractCode = in.TypeContractCode
	contract.ARLRiskLevel = in.ARLRiskLevel
	if in.SchedulePay != "" {
		contract.SchedulePay = in.SchedulePay
	}
	contract.DateStart = dateStart
	contract.DateEnd = dateEnd
	contract.UpdatedAt = time.Now()

	if err := uc.contracts.Update(contract); err != nil {
		return nil, err
	}
	return contractToResponse(contract), nil
}

// GetActiveContract devuelve el contrato vigente del trabajador (nil si no hay).
func (uc *EmployeeUseCase) GetActiveContract(companyID, employeeID string) (*dto.ContractResponse, error) {
	employee, err := uc.employees.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	contract, err := uc.contracts.GetActiveByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, nil
	}
	return contractToResponse(contract), nil
}

func employeeToResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:             e.ID,
		CompanyID:      e.CompanyID,
		IdentType:      e.IdentType,
		Identification: e.Identification,
		FullName:       e.FullName,
		Email:          e.Email,
		Municipality:   e.Municipality,
		Department:     e.Department,
		PaymentMethod:  e.PaymentMethod,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
	}
}

func contractToResponse(c *entity.Contract) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:               c.ID,
		EmployeeID:       c.EmployeeID,
		Wage:             c.Wage.StringFixed(2),
		IntegralSalary:   c.IntegralSalary,
		TypeWorkerCode:   c.TypeWorkerCode,
		TypeContractCode: c.TypeContractCode,
		DateStart:        fmtDate(c.DateStart),
		DateEnd:          fmtDatePtr(c.DateEnd),
		Status:           c.Status,
	}
}
