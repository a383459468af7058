package nomina_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

type fakeRecurringRepo struct {
	items    []*entity.RecurringItem
	advanced map[string]decimal.Decimal
}

func (f *fakeRecurringRepo) Create(*entity.RecurringItem) error { return nil }
func (f *fakeRecurringRepo) Update(*entity.RecurringItem) error { return nil }
func (f *fakeRecurringRepo) GetByID(string) (*entity.RecurringItem, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeRecurringRepo) ListActiveForEmployee(string, time.Time, time.Time) ([]*entity.RecurringItem, error) {
	return f.items, nil
}
func (f *fakeRecurringRepo) AdvanceInstallment(_ context.Context, itemID string, amount decimal.Decimal) error {
	if f.advanced == nil {
		f.advanced = make(map[string]decimal.Decimal)
	}
	f.advanced[itemID] = f.advanced[itemID].Add(amount)
	return nil
}

func reglasComputo() map[string]*entity.SalaryRule {
	return map[string]*entity.SalaryRule{
		entity.RuleCodeBasic: {
			Code: entity.RuleCodeBasic, Name: "Salario básico",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnBasic,
			AggregationCategories: []string{entity.RuleCategoryIBC, entity.RuleCategoryTotalRet},
		},
		entity.RuleCodeTransportAid: {
			Code: entity.RuleCodeTransportAid, Name: "Auxilio de transporte",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnTransportsAssistance,
		},
		entity.RuleCodeIBC: {
			Code: entity.RuleCodeIBC, Name: "Base de cotización",
			TypeConcept: entity.ConceptOther,
		},
		entity.RuleCodeHealthEmployee: {
			Code: entity.RuleCodeHealthEmployee, Name: "Salud empleado",
			TypeConcept: entity.ConceptDeduction, DeductionCategory: entity.DeductionHealth,
		},
		entity.RuleCodePensionEmployee: {
			Code: entity.RuleCodePensionEmployee, Name: "Pensión empleado",
			TypeConcept: entity.ConceptDeduction, DeductionCategory: entity.DeductionPensionFund,
		},
		entity.RuleCodeFSPSolidarity: {
			Code: entity.RuleCodeFSPSolidarity, Name: "FSP solidaridad",
			TypeConcept: entity.ConceptDeduction, DeductionCategory: entity.DeductionPensionSecurityFund,
		},
		entity.RuleCodeFSPSubsistence: {
			Code: entity.RuleCodeFSPSubsistence, Name: "FSP subsistencia",
			TypeConcept: entity.ConceptDeduction, DeductionCategory: entity.DeductionPensionSecuritySubsist,
		},
		entity.RuleCodeRetefuente: {
			Code: entity.RuleCodeRetefuente, Name: "Retención en la fuente",
			TypeConcept: entity.ConceptDeduction, DeductionCategory: entity.DeductionWithholdingSource,
		},
		entity.RuleCodePrima: {
			Code: entity.RuleCodePrima, Name: "Prima de servicios",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnPrimas,
		},
		entity.RuleCodeSeverance: {
			Code: entity.RuleCodeSeverance, Name: "Cesantías",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnLayoffs,
		},
		entity.RuleCodeSeveranceInterest: {
			Code: entity.RuleCodeSeveranceInterest, Name: "Intereses de cesantías",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnLayoffsInterest,
		},
		"LIBRANZA": {
			Code: "LIBRANZA", Name: "Libranza",
			TypeConcept: entity.ConceptDeduction, DeductionCategory: entity.DeductionLibranzas,
		},
		"IGE3_90": {
			Code: "IGE3_90", Name: "Incapacidad general 3-90",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnIncapacityCommon,
		},
		"HED": {
			Code: "HED", Name: "Hora extra diurna",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnOvertimeDay,
			AmountStrategy: entity.AmountStrategyCompany,
		},
		"RN": {
			Code: "RN", Name: "Recargo nocturno",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnSurchargeNight,
			AmountStrategy: entity.AmountStrategyCompany,
		},
		"BONO_MENSUAL": {
			Code: "BONO_MENSUAL", Name: "Bono mensual",
			TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnBonuses,
			AmountStrategy: entity.AmountStrategyFixed, FixedAmount: decimal.NewFromInt(150000),
		},
	}
}

type computeFixture struct {
	uc        *nomina.ComputeUseCase
	payslips  *fakePayslipRepo
	recurring *fakeRecurringRepo
}

func nuevoComputo(t *testing.T, payslip *entity.Payslip) *computeFixture {
	t.Helper()

	payslips := &fakePayslipRepo{slips: map[string]*entity.Payslip{payslip.ID: payslip}}
	recurring := &fakeRecurringRepo{}
	uc := nomina.NewComputeUseCase(
		payslips,
		&fakeContractRepo{contract: &entity.Contract{
			ID: "ct-1", Wage: decimal.NewFromInt(1300000), TypeWorkerCode: "01",
			DateStart: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		&fakeCompanyRepo{company: &entity.Company{
			ID: "co-1", SMMLV: decimal.NewFromInt(1300000),
			UVT:                decimal.NewFromInt(47065),
			TransportAllowance: decimal.NewFromInt(162000),
			PctOvertimeDay:     entity.DefaultPctOvertimeDay,
			PctSurchargeNight:  entity.DefaultPctSurchargeNight,
		}},
		&fakeRuleRepo{rules: reglasComputo()},
		recurring,
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	return &computeFixture{uc: uc, payslips: payslips, recurring: recurring}
}

func nominaEnero() *entity.Payslip {
	return &entity.Payslip{
		ID: "slip-1", CompanyID: "co-1", EmployeeID: "emp-1", ContractID: "ct-1",
		DateFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		State:    entity.PayslipStateDraft,
	}
}

func totalDe(lines []entity.PayslipLine, code string) decimal.Decimal {
	for i := range lines {
		if lines[i].RuleCode == code {
			return lines[i].Total
		}
	}
	return decimal.Zero
}

func lineaDe(lines []entity.PayslipLine, code string) *entity.PayslipLine {
	for i := range lines {
		if lines[i].RuleCode == code {
			return &lines[i]
		}
	}
	return nil
}

func tieneLinea(lines []entity.PayslipLine, code string) bool {
	for i := range lines {
		if lines[i].RuleCode == code {
			return true
		}
	}
	return false
}

func TestCompute_MesOrdinarioSalarioMinimo(t *testing.T) {
	fx := nuevoComputo(t, nominaEnero())

	out, err := fx.uc.Compute(context.Background(), "slip-1")
	require.NoError(t, err)

	lines := fx.payslips.replaced
	assert.True(t, decimal.NewFromInt(1300000).Equal(totalDe(lines, entity.RuleCodeBasic)))
	assert.True(t, decimal.NewFromInt(162000).Equal(totalDe(lines, entity.RuleCodeTransportAid)))
	// IBC = básico + auxilio por estar bajo 2 SMMLV
	assert.True(t, decimal.NewFromInt(1462000).Equal(totalDe(lines, entity.RuleCodeIBC)))
	// salud y pensión 4% del IBC, negativos
	assert.True(t, decimal.NewFromInt(-58480).Equal(totalDe(lines, entity.RuleCodeHealthEmployee)))
	assert.True(t, decimal.NewFromInt(-58480).Equal(totalDe(lines, entity.RuleCodePensionEmployee)))

	// enero: sin prima ni cesantías; bajo umbral: sin FSP ni retención
	assert.False(t, tieneLinea(lines, entity.RuleCodePrima))
	assert.False(t, tieneLinea(lines, entity.RuleCodeSeverance))
	assert.False(t, tieneLinea(lines, entity.RuleCodeFSPSolidarity))
	assert.False(t, tieneLinea(lines, entity.RuleCodeRetefuente))

	assert.Equal(t, 30, out.WorkedDays)
}

func TestCompute_SoloEnDraft(t *testing.T) {
	payslip := nominaEnero()
	payslip.State = entity.PayslipStateDone
	fx := nuevoComputo(t, payslip)

	_, err := fx.uc.Compute(context.Background(), "slip-1")
	assert.ErrorIs(t, err, domain.ErrDocumentNotDraft)
}

func TestCompute_IncapacidadSobreIBCDelMesAnterior(t *testing.T) {
	payslip := nominaEnero()
	payslip.Leaves = []entity.Leave{{
		TypeCode: entity.LeaveSickness3_90,
		DateFrom: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC),
		Days:     10,
	}}
	fx := nuevoComputo(t, payslip)
	fx.payslips.prevIBC = decimal.NewFromInt(3000000)
	fx.payslips.prevFound = true

	out, err := fx.uc.Compute(context.Background(), "slip-1")
	require.NoError(t, err)

	lines := fx.payslips.replaced
	// básico proporcional a 20 días
	esperadoBasico := decimal.NewFromInt(1300000).
		Mul(decimal.NewFromInt(20)).Div(decimal.NewFromInt(30))
	assert.True(t, esperadoBasico.Equal(totalDe(lines, entity.RuleCodeBasic)))

	// subsidio: 3.000.000/30 × 10 × 66.67%
	esperadoSubsidio := decimal.NewFromInt(3000000).Div(decimal.NewFromInt(30)).
		Mul(decimal.NewFromInt(10)).
		Mul(decimal.NewFromFloat(66.67)).Div(decimal.NewFromInt(100))
	assert.True(t, esperadoSubsidio.Equal(totalDe(lines, "IGE3_90")))

	assert.Equal(t, 20, out.WorkedDays)
}

func TestCompute_LicenciaNoRemuneradaSinLinea(t *testing.T) {
	payslip := nominaEnero()
	payslip.Leaves = []entity.Leave{{
		TypeCode: entity.LeaveUnpaid,
		DateFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Days:     15, ReducesBase: true,
	}}
	fx := nuevoComputo(t, payslip)

	out, err := fx.uc.Compute(context.Background(), "slip-1")
	require.NoError(t, err)

	lines := fx.payslips.replaced
	assert.False(t, tieneLinea(lines, entity.LeaveUnpaid), "la licencia no remunerada no genera línea")
	assert.Equal(t, 15, out.WorkedDays)
	esperadoBasico := decimal.NewFromInt(1300000).
		Mul(decimal.NewFromInt(15)).Div(decimal.NewFromInt(30))
	assert.True(t, esperadoBasico.Equal(totalDe(lines, entity.RuleCodeBasic)))
}

func TestCompute_ItemRecurrenteGeneraDeduccion(t *testing.T) {
	fx := nuevoComputo(t, nominaEnero())
	fx.recurring.items = []*entity.RecurringItem{{
		ID: "item-1", RuleCode: "LIBRANZA",
		TypeConcept: entity.ConceptDeduction, DeductionCategory: entity.DeductionLibranzas,
		AmountType: entity.RecurringAmountFixed, Amount: decimal.NewFromInt(200000),
		DateFrom: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Active: true,
	}}

	_, err := fx.uc.Compute(context.Background(), "slip-1")
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(-200000).Equal(totalDe(fx.payslips.replaced, "LIBRANZA")))
}

func TestCompute_ReglaDeMontoFijoIgnoraElValorDelItem(t *testing.T) {
	fx := nuevoComputo(t, nominaEnero())
	fx.recurring.items = []*entity.RecurringItem{{
		ID: "item-bono", RuleCode: "BONO_MENSUAL",
		TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnBonuses,
		AmountType: entity.RecurringAmountFixed, Amount: decimal.NewFromInt(999999),
		DateFrom: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Active: true,
	}}

	_, err := fx.uc.Compute(context.Background(), "slip-1")
	require.NoError(t, err)

	// manda el valor fijo de la regla, no el configurado en el ítem
	assert.True(t, decimal.NewFromInt(150000).Equal(totalDe(fx.payslips.replaced, "BONO_MENSUAL")))
}

func TestCompute_RecargoNocturnoConPorcentajeDeLaEmpresa(t *testing.T) {
	fx := nuevoComputo(t, nominaEnero())
	// turno nocturno habitual: 16 horas de recargo al mes
	fx.recurring.items = []*entity.RecurringItem{{
		ID: "item-rn", RuleCode: "RN",
		TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnSurchargeNight,
		AmountType: entity.RecurringAmountFixed, Amount: decimal.NewFromInt(16),
		DateFrom: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Active: true,
	}}

	_, err := fx.uc.Compute(context.Background(), "slip-1")
	require.NoError(t, err)

	// el recargo paga solo el 35% sobre la hora ordinaria: 1.300.000/240 × 16 × 0,35
	linea := lineaDe(fx.payslips.replaced, "RN")
	require.NotNil(t, linea)
	assert.True(t, decimal.NewFromInt(30333).Equal(linea.Total), "total %s", linea.Total)
	assert.True(t, decimal.NewFromInt(16).Equal(linea.Quantity))
	assert.True(t, entity.DefaultPctSurchargeNight.Equal(linea.Rate))
}

func TestCompute_HoraExtraDiurnaPagaHoraCompletaMasRecargo(t *testing.T) {
	fx := nuevoComputo(t, nominaEnero())
	fx.recurring.items = []*entity.RecurringItem{{
		ID: "item-hed", RuleCode: "HED",
		TypeConcept: entity.ConceptEarn, EarnCategory: entity.EarnOvertimeDay,
		AmountType: entity.RecurringAmountFixed, Amount: decimal.NewFromInt(10),
		DateFrom: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Active: true,
	}}

	_, err := fx.uc.Compute(context.Background(), "slip-1")
	require.NoError(t, err)

	// hora extra al 125%: 1.300.000/240 × 10 × 1,25
	linea := lineaDe(fx.payslips.replaced, "HED")
	require.NotNil(t, linea)
	assert.True(t, decimal.NewFromInt(67708).Equal(linea.Total), "total %s", linea.Total)
	assert.True(t, entity.DefaultPctOvertimeDay.Equal(linea.Rate))
}

func TestFinalize_AvanzaCuotaUnaVezPorPeriodo(t *testing.T) {
	payslip := nominaEnero()
	payslip.Lines = []entity.PayslipLine{
		{RuleCode: "LIBRANZA", Total: decimal.NewFromInt(-200000)},
	}
	fx := nuevoComputo(t, payslip)
	fx.recurring.items = []*entity.RecurringItem{{
		ID: "item-1", RuleCode: "LIBRANZA",
		TypeConcept: entity.ConceptDeduction,
		AmountType:  entity.RecurringAmountFixed, Amount: decimal.NewFromInt(200000),
		UseInstallments: true, NumberOfInstallments: 10,
		TotalAmount: decimal.NewFromInt(2000000),
		DateFrom:    time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Active: true,
	}}

	out, err := fx.uc.Finalize(context.Background(), "slip-1")
	require.NoError(t, err)

	assert.Equal(t, entity.PayslipStateDone, out.State)
	require.Contains(t, fx.recurring.advanced, "item-1")
	assert.True(t, decimal.NewFromInt(200000).Equal(fx.recurring.advanced["item-1"]))

	// confirmar de nuevo es inválido: el avance de cuota no puede repetirse
	_, err = fx.uc.Finalize(context.Background(), "slip-1")
	assert.ErrorIs(t, err, domain.ErrDocumentNotDraft)
}

func TestCompute_SinSMMLVConfigurado(t *testing.T) {
	fx := nuevoComputo(t, nominaEnero())
	// misma empresa sin parámetros fiscales
	fx2 := &fakeCompanyRepo{company: &entity.Company{ID: "co-1"}}
	uc := nomina.NewComputeUseCase(
		fx.payslips,
		&fakeContractRepo{contract: &entity.Contract{ID: "ct-1", Wage: decimal.NewFromInt(1300000)}},
		fx2,
		&fakeRuleRepo{rules: reglasComputo()},
		fx.recurring,
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)

	_, err := uc.Compute(context.Background(), "slip-1")
	assert.ErrorIs(t, err, domain.ErrSMMLVNotConfigured)
}
