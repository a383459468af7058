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

// PayslipUseCase gestiona el ciclo administrativo de la nómina individual:
// apertura del periodo, registro de ausencias y detalles manuales, consulta.
// El cálculo de líneas y la confirmación viven en nomina.ComputeUseCase.
type PayslipUseCase struct {
	payslips  repository.PayslipRepository
	employees repository.EmployeeRepository
	contracts repository.ContractRepository
}

// NewPayslipUseCase construye el caso de uso.
func NewPayslipUseCase(
	payslips repository.PayslipRepository,
	employees repository.EmployeeRepository,
	contracts repository.ContractRepository,
) *PayslipUseCase {
	return &PayslipUseCase{payslips: payslips, employees: employees, contracts: contracts}
}

// Create abre una nómina en draft para el contrato vigente del trabajador.
func (uc *PayslipUseCase) Create(companyID string, in dto.PayslipCreateRequest) (*dto.PayslipResponse, error) {
	employee, err := uc.employees.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	contract, err := uc.contracts.GetActiveByEmployee(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("%w: el trabajador no tiene contrato vigente", domain.ErrInvalidInput)
	}

	dateFrom, err := parseDate("date_from", in.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseDate("date_to", in.DateTo)
	if err != nil {
		return nil, err
	}
	if dateTo.Before(dateFrom) {
		return nil, fmt.Errorf("%w: date_to anterior a date_from", domain.ErrInvalidInput)
	}
	paymentDate := dateTo
	if in.PaymentDate != "" {
		if paymentDate, err = parseDate("payment_date", in.PaymentDate); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	payslip := &entity.Payslip{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		EmployeeID:   in.EmployeeID,
		ContractID:   contract.ID,
		DateFrom:     dateFrom,
		DateTo:       dateTo,
		PaymentDate:  paymentDate,
		State:        entity.PayslipStateDraft,
		IsSettlement: in.IsSettlement,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.payslips.Create(payslip); err != nil {
		return nil, err
	}
	return PayslipToResponse(payslip), nil
}

// AddLeave registra una ausencia en un periodo en draft.
func (uc *PayslipUseCase) AddLeave(companyID, payslipID string, in dto.LeaveRequest) (*dto.PayslipResponse, error) {
	payslip, err := uc.ownedDraft(companyID, payslipID)
	if err != nil {
		return nil, err
	}
	dateFrom, err := parseDate("date_from", in.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseDate("date_to", in.DateTo)
	if err != nil {
		return nil, err
	}

	leave := entity.Leave{
		ID:       uuid.New().String(),
		TypeCode: in.TypeCode,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Days:     in.Days,
		ReducesBase: in.TypeCode == entity.LeaveUnpaid ||
			in.TypeCode == entity.LeaveSuspension,
	}
	payslip.Leaves = append(payslip.Leaves, leave)
	payslip.UpdatedAt = time.Now()

	if err := uc.payslips.Update(payslip); err != nil {
		return nil, err
	}
	return PayslipToResponse(payslip), nil
}

// AddEarnDetail registra un devengado detallado manualmente (horas extras, bonos).
func (uc *PayslipUseCase) AddEarnDetail(companyID, payslipID string, in dto.EarnDetailRequest) (*dto.PayslipResponse, error) {
	payslip, err := uc.ownedDraft(companyID, payslipID)
	if err != nil {
		return nil, err
	}
	amount, err := parseMoney("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	quantity, err := parseMoney("quantity", in.Quantity)
	if err != nil {
		return nil, err
	}
	percentage, err := parseMoney("percentage", in.Percentage)
	if err != nil {
		return nil, err
	}
	dateStart, err := parseDatePtr("date_start", in.DateStart)
	if err != nil {
		return nil, err
	}
	dateEnd, err := parseDatePtr("date_end", in.DateEnd)
	if err != nil {
		return nil, err
	}

	payslip.EarnDetails = append(payslip.EarnDetails, entity.EarnDetail{
		ID:          uuid.New().String(),
		Category:    entity.EarnCategory(in.Category),
		Amount:      amount,
		Quantity:    quantity,
		DateStart:   dateStart,
		TimeStart:   in.TimeStart,
		DateEnd:     dateEnd,
		TimeEnd:     in.TimeEnd,
		Percentage:  percentage,
		Description: in.Description,
	})
	payslip.UpdatedAt = time.Now()

	if err := uc.payslips.Update(payslip); err != nil {
		return nil, err
	}
	return PayslipToResponse(payslip), nil
}

// AddDeductionDetail registra una deducción detallada manualmente.
func (uc *PayslipUseCase) AddDeductionDetail(companyID, payslipID string, in dto.DeductionDetailRequest) (*dto.PayslipResponse, error) {
	payslip, err := uc.ownedDraft(companyID, payslipID)
	if err != nil {
		return nil, err
	}
	amount, err := parseMoney("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	payslip.DeductionDetails = append(payslip.DeductionDetails, entity.DeductionDetail{
		ID:          uuid.New().String(),
		Category:    entity.DeductionCategory(in.Category),
		Amount:      amount,
		Description: in.Description,
	})
	payslip.UpdatedAt = time.Now()

	if err := uc.payslips.Update(payslip); err != nil {
		return nil, err
	}
	return PayslipToResponse(payslip), nil
}

// GetByID obtiene la nómina completa de la empresa.
func (uc *PayslipUseCase) GetByID(companyID, id string) (*dto.PayslipResponse, error) {
	payslip, err := uc.payslips.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payslip.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return PayslipToResponse(payslip), nil
}

func (uc *PayslipUseCase) ownedDraft(companyID, payslipID string) (*entity.Payslip, error) {
	payslip, err := uc.payslips.GetByID(payslipID)
	if err != nil {
		return nil, err
	}
	if payslip.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if payslip.State != entity.PayslipStateDraft {
		return nil, domain.ErrDocumentNotDraft
	}
	return payslip, nil
}

// PayslipToResponse convierte la entidad al DTO de salida con montos formateados.
func PayslipToResponse(p *entity.Payslip) *dto.PayslipResponse {
	lines := make([]dto.PayslipLineResponse, 0, len(p.Lines))
	for i := range p.Lines {
		l := &p.Lines[i]
		lines = append(lines, dto.PayslipLineResponse{
			RuleCode: l.RuleCode,
			RuleName: l.RuleName,
			Quantity: l.Quantity.StringFixed(2),
			Rate:     l.Rate.StringFixed(2),
			Total:    l.Total.StringFixed(2),
		})
	}
	return &dto.PayslipResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		DateFrom:     fmtDate(p.DateFrom),
		DateTo:       fmtDate(p.DateTo),
		PaymentDate:  fmtDate(p.PaymentDate),
		State:        p.State,
		WorkedDays:   p.WorkedDays,
		IsSettlement: p.IsSettlement,
		Lines:        lines,
	}
}
