package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakePayslipRepo struct {
	slips map[string]*entity.Payslip
}

func (f *fakePayslipRepo) Create(p *entity.Payslip) error {
	if f.slips == nil {
		f.slips = make(map[string]*entity.Payslip)
	}
	f.slips[p.ID] = p
	return nil
}

func (f *fakePayslipRepo) Update(p *entity.Payslip) error {
	f.slips[p.ID] = p
	return nil
}

func (f *fakePayslipRepo) GetByID(id string) (*entity.Payslip, error) {
	p, ok := f.slips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePayslipRepo) ReplaceLines(string, []entity.PayslipLine) error { return nil }

func (f *fakePayslipRepo) ListForPeriod(string, string, int, time.Month) ([]*entity.Payslip, error) {
	return nil, nil
}

func (f *fakePayslipRepo) PreviousMonthIBC(string, time.Time) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

type fakeEmployeeRepo struct {
	employee *entity.Employee
}

func (f *fakeEmployeeRepo) Create(*entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) Update(*entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	if f.employee == nil || f.employee.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.employee, nil
}
func (f *fakeEmployeeRepo) ListByCompany(string) ([]*entity.Employee, error) {
	if f.employee == nil {
		return nil, nil
	}
	return []*entity.Employee{f.employee}, nil
}

type fakeContractRepo struct {
	contract *entity.Contract
}

func (f *fakeContractRepo) Create(*entity.Contract) error { return nil }
func (f *fakeContractRepo) Update(*entity.Contract) error { return nil }
func (f *fakeContractRepo) GetByID(id string) (*entity.Contract, error) {
	if f.contract == nil || f.contract.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.contract, nil
}
func (f *fakeContractRepo) GetActiveByEmployee(string) (*entity.Contract, error) {
	return f.contract, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func nuevoPayslipUC(contract *entity.Contract) (*usecase.PayslipUseCase, *fakePayslipRepo) {
	payslips := &fakePayslipRepo{slips: map[string]*entity.Payslip{}}
	employees := &fakeEmployeeRepo{employee: &entity.Employee{
		ID: "emp-1", CompanyID: "co-1", FullName: "García Pérez Ana",
	}}
	contracts := &fakeContractRepo{contract: contract}
	return usecase.NewPayslipUseCase(payslips, employees, contracts), payslips
}

func contratoVigente() *entity.Contract {
	return &entity.Contract{
		ID: "ct-1", CompanyID: "co-1", EmployeeID: "emp-1",
		Wage:      decimal.NewFromInt(2000000),
		DateStart: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:    "active",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearNominaAbreDraft(t *testing.T) {
	uc, payslips := nuevoPayslipUC(contratoVigente())

	out, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1",
		DateFrom:   "2025-03-01",
		DateTo:     "2025-03-30",
	})
	require.NoError(t, err)

	assert.Equal(t, "draft", out.State)
	assert.Equal(t, "2025-03-01", out.DateFrom)
	// Sin payment_date explícito la fecha de pago es el fin del periodo.
	assert.Equal(t, "2025-03-30", out.PaymentDate)

	stored := payslips.slips[out.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "ct-1", stored.ContractID)
}

func TestCrearNominaSinContratoVigenteFalla(t *testing.T) {
	uc, _ := nuevoPayslipUC(nil)

	_, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1",
		DateFrom:   "2025-03-01",
		DateTo:     "2025-03-30",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearNominaDeOtraEmpresaEsForbidden(t *testing.T) {
	uc, _ := nuevoPayslipUC(contratoVigente())

	_, err := uc.Create("otra-empresa", dto.PayslipCreateRequest{
		EmployeeID: "emp-1",
		DateFrom:   "2025-03-01",
		DateTo:     "2025-03-30",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrearNominaPeriodoInvertidoFalla(t *testing.T) {
	uc, _ := nuevoPayslipUC(contratoVigente())

	_, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1",
		DateFrom:   "2025-03-30",
		DateTo:     "2025-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAusenciaNoRemuneradaReduceBase(t *testing.T) {
	uc, payslips := nuevoPayslipUC(contratoVigente())

	out, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1", DateFrom: "2025-03-01", DateTo: "2025-03-30",
	})
	require.NoError(t, err)

	_, err = uc.AddLeave("co-1", out.ID, dto.LeaveRequest{
		TypeCode: entity.LeaveUnpaid,
		DateFrom: "2025-03-10",
		DateTo:   "2025-03-12",
		Days:     3,
	})
	require.NoError(t, err)

	stored := payslips.slips[out.ID]
	require.Len(t, stored.Leaves, 1)
	assert.True(t, stored.Leaves[0].ReducesBase,
		"la licencia no remunerada debe descontar días de la base de prestaciones")
	assert.Equal(t, 3, stored.Leaves[0].Days)
}

func TestIncapacidadNoReduceBase(t *testing.T) {
	uc, payslips := nuevoPayslipUC(contratoVigente())

	out, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1", DateFrom: "2025-03-01", DateTo: "2025-03-30",
	})
	require.NoError(t, err)

	_, err = uc.AddLeave("co-1", out.ID, dto.LeaveRequest{
		TypeCode: entity.LeaveSickness3_90,
		DateFrom: "2025-03-05",
		DateTo:   "2025-03-09",
		Days:     5,
	})
	require.NoError(t, err)

	stored := payslips.slips[out.ID]
	require.Len(t, stored.Leaves, 1)
	assert.False(t, stored.Leaves[0].ReducesBase)
}

func TestAgregarDetalleEnNominaConfirmadaFalla(t *testing.T) {
	uc, payslips := nuevoPayslipUC(contratoVigente())

	out, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1", DateFrom: "2025-03-01", DateTo: "2025-03-30",
	})
	require.NoError(t, err)
	payslips.slips[out.ID].State = entity.PayslipStateDone

	_, err = uc.AddEarnDetail("co-1", out.ID, dto.EarnDetailRequest{
		Category: string(entity.EarnOvertimeDay),
		Amount:   "50000",
		Quantity: "4",
	})
	assert.ErrorIs(t, err, domain.ErrDocumentNotDraft)
}

func TestAgregarDevengadoConMontoInvalidoFalla(t *testing.T) {
	uc, _ := nuevoPayslipUC(contratoVigente())

	out, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1", DateFrom: "2025-03-01", DateTo: "2025-03-30",
	})
	require.NoError(t, err)

	_, err = uc.AddEarnDetail("co-1", out.ID, dto.EarnDetailRequest{
		Category: string(entity.EarnBonuses),
		Amount:   "no-numerico",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAgregarDeduccionDetallada(t *testing.T) {
	uc, payslips := nuevoPayslipUC(contratoVigente())

	out, err := uc.Create("co-1", dto.PayslipCreateRequest{
		EmployeeID: "emp-1", DateFrom: "2025-03-01", DateTo: "2025-03-30",
	})
	require.NoError(t, err)

	_, err = uc.AddDeductionDetail("co-1", out.ID, dto.DeductionDetailRequest{
		Category:    string(entity.DeductionLibranzas),
		Amount:      "120000",
		Description: "Libranza banco",
	})
	require.NoError(t, err)

	stored := payslips.slips[out.ID]
	require.Len(t, stored.DeductionDetails, 1)
	assert.True(t, stored.DeductionDetails[0].Amount.Equal(decimal.NewFromInt(120000)))
}
