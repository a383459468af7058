package nomina

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
	"github.com/tu-usuario/nomina-pro/internal/payroll"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

// los montos por debajo de medio centavo no generan línea ni consumen cuota
var minLineAmount = decimal.New(5, -3) // 0.005

// ComputeUseCase calcula la hoja de una nómina individual: evalúa las reglas
// sobre el periodo (básico, auxilio, ausencias, ítems recurrentes, prestaciones,
// seguridad social y retención) y reemplaza las líneas de la nómina en draft.
type ComputeUseCase struct {
	payslips  repository.PayslipRepository
	contracts repository.ContractRepository
	companies repository.CompanyRepository
	rules     repository.SalaryRuleRepository
	recurring repository.RecurringItemRepository
	log       *logger.Logger
}

// NewComputeUseCase crea el caso de uso.
func NewComputeUseCase(
	payslips repository.PayslipRepository,
	contracts repository.ContractRepository,
	companies repository.CompanyRepository,
	rules repository.SalaryRuleRepository,
	recurring repository.RecurringItemRepository,
	log *logger.Logger,
) *ComputeUseCase {
	return &ComputeUseCase{
		payslips:  payslips,
		contracts: contracts,
		companies: companies,
		rules:     rules,
		recurring: recurring,
		log:       log,
	}
}

// Compute recalcula las líneas de la nómina. Solo válido en draft: las líneas de
// una nómina confirmada son inmutables.
func (uc *ComputeUseCase) Compute(ctx context.Context, payslipID string) (*entity.Payslip, error) {
	payslip, err := uc.payslips.GetByID(payslipID)
	if err != nil {
		return nil, err
	}
	if payslip.State != entity.PayslipStateDraft {
		return nil, domain.ErrDocumentNotDraft
	}

	contract, err := uc.contracts.GetByID(payslip.ContractID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(payslip.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.SMMLV.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrSMMLVNotConfigured
	}

	ruleList, err := uc.rules.ListActive(payslip.CompanyID)
	if err != nil {
		return nil, err
	}
	rules := make(map[string]*entity.SalaryRule, len(ruleList))
	for _, r := range ruleList {
		rules[r.Code] = r
	}

	lines, err := uc.buildLines(ctx, payslip, contract, company, rules)
	if err != nil {
		return nil, err
	}

	if err := uc.payslips.ReplaceLines(payslip.ID, lines); err != nil {
		return nil, fmt.Errorf("reemplazando líneas de la nómina: %w", err)
	}
	payslip.Lines = lines
	payslip.WorkedDays = workedDays(payslip)
	if err := uc.payslips.Update(payslip); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("payslip_id", payslip.ID).
		Int("lineas", len(lines)).
		Msg("Nómina calculada")

	return payslip, nil
}

// Finalize confirma la nómina (draft → done) y avanza la cuota de los ítems
// recurrentes que efectivamente aportaron línea al periodo. El avance ocurre
// exactamente una vez por periodo, después de confirmar.
func (uc *ComputeUseCase) Finalize(ctx context.Context, payslipID string) (*entity.Payslip, error) {
	payslip, err := uc.payslips.GetByID(payslipID)
	if err != nil {
		return nil, err
	}
	if payslip.State != entity.PayslipStateDraft {
		return nil, domain.ErrDocumentNotDraft
	}

	payslip.State = entity.PayslipStateDone
	if err := uc.payslips.Update(payslip); err != nil {
		return nil, err
	}

	items, err := uc.recurring.ListActiveForEmployee(payslip.EmployeeID, payslip.DateFrom, payslip.DateTo)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		total := payslip.LineTotal(item.RuleCode).Abs()
		if total.LessThan(minLineAmount) {
			continue
		}
		if err := uc.recurring.AdvanceInstallment(ctx, item.ID, total); err != nil {
			return nil, fmt.Errorf("avanzando cuota del ítem %s: %w", item.ID, err)
		}
	}

	uc.log.Info().Str("payslip_id", payslip.ID).Msg("Nómina confirmada")
	return payslip, nil
}

// buildLines evalúa todas las computaciones del periodo. Solo emite línea para
// reglas configuradas y con monto significativo.
func (uc *ComputeUseCase) buildLines(
	ctx context.Context,
	payslip *entity.Payslip,
	contract *entity.Contract,
	company *entity.Company,
	rules map[string]*entity.SalaryRule,
) ([]entity.PayslipLine, error) {
	var lines []entity.PayslipLine
	add := func(code string, qty, rate, total decimal.Decimal) {
		rule, ok := rules[code]
		if !ok {
			uc.log.Warn().Str("regla", code).Msg("Regla no configurada, se omite la línea")
			return
		}
		if total.Abs().LessThan(minLineAmount) {
			return
		}
		lines = append(lines, entity.PayslipLine{
			PayslipID: payslip.ID,
			RuleCode:  rule.Code,
			RuleName:  rule.Name,
			Quantity:  qty,
			Rate:      rate,
			Total:     total,
		})
	}

	days := decimal.NewFromInt(int64(workedDays(payslip)))
	thirty := decimal.NewFromInt(30)
	wage := contract.Wage

	// Básico proporcional a los días del periodo.
	basic := wage.Mul(days).Div(thirty)
	add(entity.RuleCodeBasic, days, decimal.Zero, basic)

	// Auxilio de transporte: solo salarios inferiores a 2 SMMLV, nunca integral ni aprendiz.
	transportPaid := decimal.Zero
	if !contract.IntegralSalary && !contract.IsApprentice() &&
		wage.LessThan(company.SMMLV.Mul(decimal.NewFromInt(2))) {
		transportPaid = company.TransportAllowance.Mul(days).Div(thirty)
		add(entity.RuleCodeTransportAid, days, decimal.Zero, transportPaid)
	}

	// Ausencias remuneradas: vacaciones, licencias pagas e incapacidades.
	if err := uc.addLeaveLines(add, payslip, contract, wage); err != nil {
		return nil, err
	}

	// Ítems recurrentes vigentes en el periodo. La estrategia de la regla decide
	// el monto: fija ignora lo configurado en el ítem, de empresa interpreta el
	// valor del ítem como horas y liquida sobre el porcentaje del empleador.
	items, err := uc.recurring.ListActiveForEmployee(payslip.EmployeeID, payslip.DateFrom, payslip.DateTo)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if !item.AppliesTo(payslip.DateFrom, payslip.DateTo) {
			continue
		}
		rule, ok := rules[item.RuleCode]
		if !ok {
			uc.log.Warn().Str("regla", item.RuleCode).Msg("Regla no configurada, se omite la línea")
			continue
		}

		qty, rate := decimal.NewFromInt(1), decimal.Zero
		var amount decimal.Decimal
		switch rule.AmountStrategy {
		case entity.AmountStrategyFixed:
			amount = item.ClampToBalance(rule.FixedAmount)
		case entity.AmountStrategyCompany:
			pct := company.OvertimePct(rule.EarnCategory)
			hours := item.Amount
			amount = item.ClampToBalance(
				payroll.HourValue(wage, hours, pct, rule.EarnCategory.SurchargeOnly()))
			qty, rate = hours, pct
		default:
			amount = item.PeriodAmount(wage)
		}

		if amount.LessThan(minLineAmount) {
			continue
		}
		if item.TypeConcept == entity.ConceptDeduction {
			amount = amount.Neg()
		}
		add(item.RuleCode, qty, rate, amount)
	}

	// Prestaciones sociales: las funciones ya guardan el mes de corte, fuera de
	// junio/diciembre/liquidación devuelven cero.
	ent := payroll.EntitlementParams{
		Wage:               wage,
		ContractStart:      contract.DateStart,
		PeriodEnd:          payslip.DateTo,
		IsSettlement:       payslip.IsSettlement,
		SMMLV:              company.SMMLV,
		TransportAllowance: company.TransportAllowance,
		TransportPaid:      transportPaid.IsPositive(),
		Absences:           absences(payslip),
	}
	add(entity.RuleCodePrima, decimal.NewFromInt(1), decimal.Zero, payroll.PrimaServicios(ent))
	severance := payroll.Cesantias(ent)
	add(entity.RuleCodeSeverance, decimal.NewFromInt(1), decimal.Zero, severance)
	add(entity.RuleCodeSeveranceInterest, decimal.NewFromInt(1), decimal.NewFromInt(12),
		payroll.InteresesCesantias(severance, ent))

	// IBC sobre las líneas marcadas con la categoría de agregación IBC.
	ibc := payroll.IBC(payroll.IBCParams{
		IsApprentice:     contract.IsApprentice(),
		IntegralSalary:   contract.IntegralSalary,
		Wage:             wage,
		SMMLV:            company.SMMLV,
		IBCCategoryTotal: sumByAggregation(lines, rules, entity.RuleCategoryIBC),
		TransportPaid:    transportPaid,
		UnpaidDays:       payslip.UnpaidLeaveDays(payslip.DateFrom, payslip.DateTo),
	})
	add(entity.RuleCodeIBC, decimal.NewFromInt(1), decimal.Zero, ibc)

	// Aportes del empleado: salud y pensión 4% del IBC cada uno; FSP a partir de 4 SMMLV.
	pct4 := decimal.New(4, -2)
	health := ibc.Mul(pct4).Round(0)
	pension := ibc.Mul(pct4).Round(0)
	add(entity.RuleCodeHealthEmployee, decimal.NewFromInt(1), decimal.NewFromInt(4), health.Neg())
	add(entity.RuleCodePensionEmployee, decimal.NewFromInt(1), decimal.NewFromInt(4), pension.Neg())

	solidarity, subsistence := decimal.Zero, decimal.Zero
	if ibc.GreaterThanOrEqual(company.SMMLV.Mul(decimal.NewFromInt(4))) {
		half := decimal.New(5, -3) // 0.5%
		solidarity = ibc.Mul(half).Round(0)
		subsistence = ibc.Mul(half).Round(0)
		add(entity.RuleCodeFSPSolidarity, decimal.NewFromInt(1), decimal.New(5, -1), solidarity.Neg())
		add(entity.RuleCodeFSPSubsistence, decimal.NewFromInt(1), decimal.New(5, -1), subsistence.Neg())
	}

	// Retención en la fuente (procedimiento 1, Art. 383 ET).
	if _, ok := rules[entity.RuleCodeRetefuente]; ok {
		ret, err := payroll.Retefuente(payroll.RetefuenteParams{
			UVT:             company.UVT,
			TotalIncome:     sumByAggregation(lines, rules, entity.RuleCategoryTotalRet),
			HealthEmployee:  health,
			PensionEmployee: pension,
			SolidarityFund:  solidarity,
			SubsistenceFund: subsistence,
		})
		if err != nil {
			return nil, err
		}
		add(entity.RuleCodeRetefuente, decimal.NewFromInt(1), decimal.Zero, ret.Neg())
	}

	return lines, nil
}

// addLeaveLines genera las líneas de ausencias remuneradas del periodo. El
// subsidio de incapacidad se liquida sobre el IBC del mes anterior; sin historia
// previa se usa el salario del contrato como base.
func (uc *ComputeUseCase) addLeaveLines(
	add func(code string, qty, rate, total decimal.Decimal),
	payslip *entity.Payslip,
	contract *entity.Contract,
	wage decimal.Decimal,
) error {
	thirty := decimal.NewFromInt(30)

	for i := range payslip.Leaves {
		leave := &payslip.Leaves[i]
		qty := decimal.NewFromInt(int64(leave.Days))

		switch leave.TypeCode {
		case entity.LeaveVacation, entity.LeavePaid:
			// remuneradas a salario pleno
			add(leave.TypeCode, qty, decimal.Zero, wage.Mul(qty).Div(thirty))

		case entity.LeaveSickness1_2, entity.LeaveSickness3_90, entity.LeaveSickness91_180,
			entity.LeaveSickness181Plus, entity.LeaveWorkAccident, entity.LeaveMaternity:
			base, found, err := uc.payslips.PreviousMonthIBC(contract.ID, leave.DateFrom)
			if err != nil {
				return err
			}
			if !found || !base.IsPositive() {
				base = wage
			}
			pct := payroll.SubsidyPercent(leave.TypeCode)
			add(leave.TypeCode, qty, pct, payroll.IncapacitySubsidy(base, leave.Days, leave.TypeCode))

		case entity.LeaveUnpaid, entity.LeaveSuspension:
			// no remuneradas: no generan línea, descuentan días del básico y del IBC
		}
	}
	return nil
}

// workedDays devuelve los días del periodo en base 30 menos toda ausencia, nunca
// negativo.
func workedDays(p *entity.Payslip) int {
	days := 30 - p.AbsentDays()
	if days < 0 {
		return 0
	}
	return days
}

func absences(p *entity.Payslip) []payroll.Absence {
	var out []payroll.Absence
	for i := range p.Leaves {
		l := &p.Leaves[i]
		out = append(out, payroll.Absence{
			From:        l.DateFrom,
			To:          l.DateTo,
			Days:        l.Days,
			ReducesBase: l.ReducesBase,
		})
	}
	return out
}

// sumByAggregation suma las líneas cuya regla aporta a la categoría de agregación dada.
func sumByAggregation(lines []entity.PayslipLine, rules map[string]*entity.SalaryRule, category string) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		rule, ok := rules[lines[i].RuleCode]
		if !ok {
			continue
		}
		for _, c := range rule.AggregationCategories {
			if c == category {
				total = total.Add(lines[i].Total)
				break
			}
		}
	}
	return total
}
