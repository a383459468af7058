package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// RecurringItemUseCase gestiona conceptos fijos por empleado (libranzas, auxilios).
type RecurringItemUseCase struct {
	items     repository.RecurringItemRepository
	employees repository.EmployeeRepository
}

// NewRecurringItemUseCase construye el caso de uso.
func NewRecurringItemUseCase(items repository.RecurringItemRepository, employees repository.EmployeeRepository) *RecurringItemUseCase {
	return &RecurringItemUseCase{items: items, employees: employees}
}

// Create registra un ítem recurrente para un trabajador de la empresa.
func (uc *RecurringItemUseCase) Create(companyID string, in dto.RecurringItemRequest) (*dto.RecurringItemResponse, error) {
	employee, err := uc.employees.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	amount, err := parseMoney("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	totalAmount, err := parseMoney("total_amount", in.TotalAmount)
	if err != nil {
		return nil, err
	}
	dateFrom, err := parseDate("date_from", in.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseDatePtr("date_to", in.DateTo)
	if err != nil {
		return nil, err
	}
	if in.UseInstallments && (in.NumberOfInstallments <= 0 || totalAmount.IsZero()) {
		return nil, fmt.Errorf("%w: cuotas requieren number_of_installments y total_amount", domain.ErrInvalidInput)
	}

	now := time.Now()
	item := &entity.RecurringItem{
		ID:                   uuid.New().String(),
		CompanyID:            companyID,
		EmployeeID:           in.EmployeeID,
		Name:                 in.Name,
		TypeConcept:          in.TypeConcept,
		RuleCode:             in.RuleCode,
		AmountType:           in.AmountType,
		Amount:               amount,
		UseInstallments:      in.UseInstallments,
		NumberOfInstallments: in.NumberOfInstallments,
		TotalAmount:          totalAmount,
		DateFrom:             dateFrom,
		DateTo:               dateTo,
		Active:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	switch in.TypeConcept {
	case entity.ConceptEarn:
		item.EarnCategory = entity.EarnCategory(in.Category)
	case entity.ConceptDeduction:
		item.DeductionCategory = entity.DeductionCategory(in.Category)
	default:
		return nil, fmt.Errorf("%w: type_concept debe ser earn o deduction", domain.ErrInvalidInput)
	}

	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	return recurringToResponse(item), nil
}

// GetByID obtiene un ítem de la empresa.
func (uc *RecurringItemUseCase) GetByID(companyID, id string) (*dto.RecurringItemResponse, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return recurringToResponse(item), nil
}

// Deactivate desactiva el ítem; deja de aplicarse a periodos futuros.
func (uc *RecurringItemUseCase) Deactivate(companyID, id string) error {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return err
	}
	if item.CompanyID != companyID {
		return domain.ErrForbidden
	}
	item.Active = false
	item.UpdatedAt = time.Now()
	return uc.items.Update(item)
}

func recurringToResponse(item *entity.RecurringItem) *dto.RecurringItemResponse {
	return &dto.RecurringItemResponse{
		ID:                   item.ID,
		EmployeeID:           item.EmployeeID,
		Name:                 item.Name,
		TypeConcept:          item.TypeConcept,
		RuleCode:             item.RuleCode,
		AmountType:           item.AmountType,
		Amount:               item.Amount.StringFixed(2),
		UseInstallments:      item.UseInstallments,
		NumberOfInstallments: item.NumberOfInstallments,
		CurrentInstallment:   item.CurrentInstallment,
		RemainingBalance:     item.RemainingBalance().StringFixed(2),
		Active:               item.Active,
	}
}
