package nomina

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/dian"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/payroll"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BuildInput reúne todo lo que el constructor necesita para armar el documento.
// El constructor no consulta repositorios: recibe las entidades ya cargadas y
// falla con errores bloqueantes si falta un dato de referencia.
type BuildInput struct {
	Document *entity.PayrollDocument
	Company  *entity.Company
	Employee *entity.Employee
	Contract *entity.Contract
	Origin   *entity.PayrollDocument // solo para notas de ajuste

	Aggregate *Aggregate
	Notes     []string

	SoftwareID  string
	SoftwarePin string
}

// DocumentBuilderService arma el JSON del documento fiscal a partir del agregado
// por categorías y calcula el CUNE con los totales definitivos.
type DocumentBuilderService struct {
	cune *dian.CuneCalculatorService
}

// NewDocumentBuilderService crea el servicio.
func NewDocumentBuilderService(cune *dian.CuneCalculatorService) *DocumentBuilderService {
	return &DocumentBuilderService{cune: cune}
}

// Build construye el payload completo. El CUNE calculado queda en payload.CUNE.
func (s *DocumentBuilderService) Build(in *BuildInput) (*PayrollPayload, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	doc := in.Document
	company := in.Company
	employee := in.Employee
	contract := in.Contract

	payload := &PayrollPayload{
		TypeXML:     doc.TypeXMLCode(),
		Environment: PayloadEnvironment{Code: company.Environment()},
		Sequence:    PayloadSequence{Prefix: doc.Prefix, Number: doc.Number},
	}

	// ── Periodo ──
	periodStart := time.Date(doc.Year, time.Month(doc.Month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	// Tiempo laborado del contrato: si el contrato terminó dentro del periodo se
	// liquida hasta su fecha fin, si no hasta el cierre del periodo.
	timeWorkedEnd := periodEnd
	withdrawal := ""
	if contract.DateEnd != nil {
		withdrawal = fmtDate(*contract.DateEnd)
		if !contract.DateEnd.After(periodEnd) {
			timeWorkedEnd = *contract.DateEnd
		}
	}
	payload.Period = PayloadPeriod{
		DateIssue:           fmtDate(doc.Date),
		TimeIssue:           doc.IssueTime,
		SettlementStartDate: fmtDate(periodStart),
		SettlementEndDate:   fmtDate(periodEnd),
		AdmissionDate:       fmtDate(contract.DateStart),
		WithdrawalDate:      withdrawal,
		AmountTime:          payroll.TimeWorked(contract.DateStart, timeWorkedEnd),
	}

	payload.Info = PayloadInfo{
		PayrollPeriodCode: periodicityCode(company.Periodicity),
		CurrencyCode:      "COP",
		TRM:               "0",
	}

	// ── Empleador / trabajador ──
	payload.Employer = PayloadEmployer{
		Name:             normalizeName(company.Name),
		IDNumber:         company.NIT,
		DV:               company.DV,
		CountryCode:      "CO",
		DepartmentCode:   "",
		MunicipalityCode: "",
		Address:          company.Address,
		LanguageCode:     "es",
	}

	surname, secondSurname, firstName, otherNames := SplitPersonName(employee.FullName)
	payload.Employee = PayloadEmployee{
		TypeWorkerCode:    contract.TypeWorkerCode,
		SubTypeWorkerCode: contract.SubTypeWorkerCode,
		HighRiskPension:   contract.HighRiskPension,
		IntegralSalary:    contract.IntegralSalary,
		ContractCode:      contract.TypeContractCode,
		Salary:            fmtMoney(contract.Wage),
		IDCode:            employee.IdentType,
		IDNumber:          employee.Identification,
		Surname:           normalizeName(surname),
		SecondSurname:     normalizeName(secondSurname),
		FirstName:         normalizeName(firstName),
		OtherNames:        normalizeName(otherNames),
		Address:           employee.Address,
		CountryCode:       "CO",
		DepartmentCode:    employee.Department,
		MunicipalityCode:  employee.Municipality,
		WorkerCode:        employee.ID,
	}

	payload.Payment = PayloadPayment{
		MethodCode:    employee.PaymentMethod,
		Bank:          employee.Bank,
		AccountType:   employee.AccountType,
		AccountNumber: employee.AccountNumber,
	}
	for _, d := range doc.PaymentDates {
		payload.Dates = append(payload.Dates, PayloadPayDate{Date: fmtDate(d)})
	}

	payload.Provider = PayloadProvider{
		NIT:        company.NIT,
		DV:         company.DV,
		SoftwareID: in.SoftwareID,
	}

	for _, n := range in.Notes {
		if n != "" {
			payload.Notes = append(payload.Notes, PayloadNote{Text: n})
		}
	}

	// ── Devengados y deducciones ──
	s.mapEarns(payload, in.Aggregate, doc.WorkedDays)
	s.mapDeductions(payload, in.Aggregate)

	// ── Totales con delta de redondeo ──
	accrued := in.Aggregate.AccruedTotal()
	deductions := in.Aggregate.DeductionsTotal()
	net := accrued.Sub(deductions)
	netRounded := net.Round(2)

	payload.AccruedTotal = fmtMoney(accrued)
	payload.DeductionsTotal = fmtMoney(deductions)
	payload.Total = fmtMoney(netRounded)
	payload.Rounding = fmtMoney(netRounded.Sub(net))

	// ── Nota de ajuste ──
	if doc.CreditNote {
		if in.Origin == nil || in.Origin.CUNE == "" {
			return nil, fmt.Errorf("%w: la nota de ajuste requiere el documento original aceptado", domain.ErrInvalidInput)
		}
		payload.NoteType = "1" // reemplazar
		payload.Predecessor = &PayloadPredecessor{
			SequenceNumber: in.Origin.Number,
			SequencePrefix: in.Origin.Prefix,
			CUNE:           in.Origin.CUNE,
			IssueDate:      fmtDate(in.Origin.Date),
		}
	}

	// ── CUNE sobre los totales definitivos ──
	cune, err := s.cune.Calculate(&dian.CuneParams{
		NumNom:      doc.Name,
		FecNom:      fmtDate(doc.Date),
		HorNom:      doc.IssueTime,
		TipXML:      doc.TypeXMLCode(),
		NitEmp:      company.NIT,
		NumEmp:      employee.Identification,
		ValDev:      accrued,
		ValDed:      deductions,
		ValTol:      netRounded,
		SoftwarePin: in.SoftwarePin,
		TipAmb:      company.Environment(),
	})
	if err != nil {
		return nil, fmt.Errorf("calculando CUNE: %w", err)
	}
	payload.CUNE = cune

	return payload, nil
}

func validateInput(in *BuildInput) error {
	switch {
	case in == nil || in.Document == nil:
		return fmt.Errorf("%w: documento requerido", domain.ErrInvalidInput)
	case in.Company == nil:
		return fmt.Errorf("%w: la empresa del documento no existe", domain.ErrInvalidInput)
	case in.Employee == nil:
		return fmt.Errorf("%w: el trabajador del documento no existe", domain.ErrInvalidInput)
	case in.Contract == nil:
		return fmt.Errorf("%w: el trabajador no tiene contrato activo", domain.ErrInvalidInput)
	case in.Aggregate == nil:
		return fmt.Errorf("%w: el documento no tiene conceptos agregados", domain.ErrInvalidInput)
	case in.Document.Name == "" || in.Document.Number == 0:
		return fmt.Errorf("%w: el documento no tiene consecutivo asignado", domain.ErrResolutionRequired)
	}
	return nil
}

// orden estable de categorías de horas extras según la tabla DIAN TipoHora (1..7)
var overtimeOrder = []entity.EarnCategory{
	entity.EarnOvertimeDay,
	entity.EarnOvertimeNight,
	entity.EarnSurchargeNight,
	entity.EarnOvertimeDaySunday,
	entity.EarnSurchargeDaySunday,
	entity.EarnOvertimeNightSunday,
	entity.EarnSurchargeNightSunday,
}

var incapacityOrder = []entity.EarnCategory{
	entity.EarnIncapacityCommon,
	entity.EarnIncapacityProfessional,
	entity.EarnIncapacityWorking,
}

func (s *DocumentBuilderService) mapEarns(payload *PayrollPayload, agg *Aggregate, workedDays int) {
	earn := &payload.Earn

	// Básico: días trabajados del documento + salario devengado del periodo.
	earn.Basic = PayloadBasic{WorkedDays: workedDays, WorkerSalary: "0.00"}
	if b := agg.Earns[entity.EarnBasic]; b != nil {
		earn.Basic.WorkerSalary = fmtMoney(b.Total)
	}

	// Transporte.
	transport := PayloadTransport{}
	hasTransport := false
	if b := agg.Earns[entity.EarnTransportsAssistance]; b != nil && b.Total.IsPositive() {
		transport.Assistance = fmtMoney(b.Total)
		hasTransport = true
	}
	if b := agg.Earns[entity.EarnTransportsViatic]; b != nil && b.Total.IsPositive() {
		transport.Viatic = fmtMoney(b.Total)
		hasTransport = true
	}
	if b := agg.Earns[entity.EarnTransportsNonSalaryViatic]; b != nil && b.Total.IsPositive() {
		transport.NonSalaryViatic = fmtMoney(b.Total)
		hasTransport = true
	}
	if hasTransport {
		earn.Transports = []PayloadTransport{transport}
	}

	// Horas extras y recargos: una fila por tramo, código de hora 1..7.
	for _, cat := range overtimeOrder {
		b := agg.Earns[cat]
		if b == nil {
			continue
		}
		for _, row := range b.Rows {
			if !row.Amount.IsPositive() && !row.Quantity.IsPositive() {
				continue
			}
			pct := row.Percentage
			if pct.IsZero() {
				pct = lastRate(b)
			}
			earn.OvertimesSurcharges = append(earn.OvertimesSurcharges, PayloadOvertime{
				Quantity:   row.Quantity.String(),
				TimeCode:   entity.OvertimeTypeCodes[cat],
				Percentage: fmtMoney(pct),
				Payment:    fmtMoney(row.Amount),
				Start:      FormatDateHours(row.DateStart, row.TimeStart),
				End:        FormatDateHours(row.DateEnd, row.TimeEnd),
			})
		}
	}

	// Vacaciones.
	vacation := &PayloadVacation{}
	if b := agg.Earns[entity.EarnVacationCommon]; b != nil {
		vacation.Common = quantityPaymentRows(b)
	}
	if b := agg.Earns[entity.EarnVacationCompensated]; b != nil {
		vacation.Compensated = quantityPaymentRows(b)
	}
	if len(vacation.Common) > 0 || len(vacation.Compensated) > 0 {
		earn.Vacation = vacation
	}

	// Prima de servicios.
	primasTotal, primasQty := bucketTotalQty(agg.Earns[entity.EarnPrimas])
	primasNS, _ := bucketTotalQty(agg.Earns[entity.EarnPrimasNonSalary])
	if primasTotal.IsPositive() || primasNS.IsPositive() {
		p := &PayloadPrimas{Quantity: roundInt(primasQty), Payment: fmtMoney(primasTotal)}
		if primasNS.IsPositive() {
			p.NonSalaryPayment = fmtMoney(primasNS)
		}
		earn.Primas = p
	}

	// Cesantías e intereses.
	layoffs, _ := bucketTotalQty(agg.Earns[entity.EarnLayoffs])
	interest, _ := bucketTotalQty(agg.Earns[entity.EarnLayoffsInterest])
	if layoffs.IsPositive() || interest.IsPositive() {
		earn.Layoffs = &PayloadLayoffs{
			Payment:         fmtMoney(layoffs),
			Percentage:      fmtMoney(lastRate(agg.Earns[entity.EarnLayoffsInterest])),
			InterestPayment: fmtMoney(interest),
		}
	}

	// Incapacidades: una fila por tramo con su código.
	for _, cat := range incapacityOrder {
		b := agg.Earns[cat]
		if b == nil {
			continue
		}
		for _, row := range b.Rows {
			if !row.Amount.IsPositive() && !row.Quantity.IsPositive() {
				continue
			}
			earn.Incapacities = append(earn.Incapacities, PayloadIncapacity{
				Quantity:       roundInt(row.Quantity),
				IncapacityCode: entity.IncapacityTypeCodes[cat],
				Payment:        fmtMoney(row.Amount),
				Start:          fmtDatePtr(row.DateStart),
				End:            fmtDatePtr(row.DateEnd),
			})
		}
	}

	// Licencias.
	lic := &PayloadLicensings{}
	if b := agg.Earns[entity.EarnLicensingsMaternity]; b != nil {
		lic.MaternityOrPaternity = quantityPaymentRows(b)
	}
	if b := agg.Earns[entity.EarnLicensingsPermit]; b != nil {
		lic.PermitOrPaid = quantityPaymentRows(b)
	}
	if b := agg.Earns[entity.EarnLicensingsSuspension]; b != nil {
		lic.SuspensionOrUnpaid = quantityPaymentRows(b)
	}
	if len(lic.MaternityOrPaternity) > 0 || len(lic.PermitOrPaid) > 0 || len(lic.SuspensionOrUnpaid) > 0 {
		earn.Licensings = lic
	}

	// Huelgas legales: llevan días y fechas, sin pago.
	if b := agg.Earns[entity.EarnLegalStrikes]; b != nil {
		for _, row := range b.Rows {
			if !row.Quantity.IsPositive() {
				continue
			}
			earn.LegalStrikes = append(earn.LegalStrikes, PayloadDateRange{
				Quantity: roundInt(row.Quantity),
				Start:    fmtDatePtr(row.DateStart),
				End:      fmtDatePtr(row.DateEnd),
			})
		}
	}

	// Grupos con pago salarial / no salarial.
	earn.Bonuses = splitAmount(agg, entity.EarnBonuses, entity.EarnBonusesNonSalary)
	earn.Assistances = splitAmount(agg, entity.EarnAssistances, entity.EarnAssistancesNonSalary)

	ordinary, _ := bucketTotalQty(agg.Earns[entity.EarnCompensationsOrdinary])
	extra, _ := bucketTotalQty(agg.Earns[entity.EarnCompensationsExtra])
	if ordinary.IsPositive() || extra.IsPositive() {
		c := PayloadCompensations{}
		if ordinary.IsPositive() {
			c.Ordinary = fmtMoney(ordinary)
		}
		if extra.IsPositive() {
			c.Extraordinary = fmtMoney(extra)
		}
		earn.Compensations = []PayloadCompensations{c}
	}

	vouchers := PayloadVouchers{}
	hasVouchers := false
	if t, _ := bucketTotalQty(agg.Earns[entity.EarnVouchers]); t.IsPositive() {
		vouchers.Payment = fmtMoney(t)
		hasVouchers = true
	}
	if t, _ := bucketTotalQty(agg.Earns[entity.EarnVouchersNonSalary]); t.IsPositive() {
		vouchers.NonSalaryPayment = fmtMoney(t)
		hasVouchers = true
	}
	if t, _ := bucketTotalQty(agg.Earns[entity.EarnVouchersSalaryFood]); t.IsPositive() {
		vouchers.SalaryFoodPayment = fmtMoney(t)
		hasVouchers = true
	}
	if t, _ := bucketTotalQty(agg.Earns[entity.EarnVouchersNonSalaryFood]); t.IsPositive() {
		vouchers.NonSalaryFoodPayment = fmtMoney(t)
		hasVouchers = true
	}
	if hasVouchers {
		earn.Vouchers = []PayloadVouchers{vouchers}
	}

	earn.Commissions = singleAmount(agg.Earns[entity.EarnCommissions])
	earn.ThirdPartyPayments = singleAmount(agg.Earns[entity.EarnThirdPartyPayments])
	earn.Advances = singleAmount(agg.Earns[entity.EarnAdvances])

	// Otros conceptos: cada fila con su descripción.
	if b := agg.Earns[entity.EarnOtherConcepts]; b != nil {
		for _, row := range b.Rows {
			if row.Amount.IsPositive() {
				earn.OtherConcepts = append(earn.OtherConcepts, PayloadDescribed{
					Description: row.Description, Payment: fmtMoney(row.Amount),
				})
			}
		}
	}
	if b := agg.Earns[entity.EarnOtherConceptsNonSalary]; b != nil {
		for _, row := range b.Rows {
			if row.Amount.IsPositive() {
				earn.OtherConcepts = append(earn.OtherConcepts, PayloadDescribed{
					Description: row.Description, NonSalaryPayment: fmtMoney(row.Amount),
				})
			}
		}
	}

	// Devengados de valor único.
	earn.Endowment = singleMoney(agg.Earns[entity.EarnEndowment])
	earn.SustainmentSupport = singleMoney(agg.Earns[entity.EarnSustainmentSupport])
	earn.Telecommuting = singleMoney(agg.Earns[entity.EarnTelecommuting])
	earn.CompanyWithdrawalBonus = singleMoney(agg.Earns[entity.EarnCompanyWithdrawalBonus])
	earn.Compensation = singleMoney(agg.Earns[entity.EarnCompensation])
	earn.Refund = singleMoney(agg.Earns[entity.EarnRefund])
}

func (s *DocumentBuilderService) mapDeductions(payload *PayrollPayload, agg *Aggregate) {
	ded := &payload.Deduction

	if b := agg.Deductions[entity.DeductionHealth]; b != nil && b.Total.IsPositive() {
		ded.Health = &PayloadRatedPayment{Percentage: fmtMoney(lastRate(b)), Payment: fmtMoney(b.Total)}
	}
	if b := agg.Deductions[entity.DeductionPensionFund]; b != nil && b.Total.IsPositive() {
		ded.PensionFund = &PayloadRatedPayment{Percentage: fmtMoney(lastRate(b)), Payment: fmtMoney(b.Total)}
	}

	fsp := agg.Deductions[entity.DeductionPensionSecurityFund]
	fspSub := agg.Deductions[entity.DeductionPensionSecuritySubsist]
	fspTotal, _ := bucketTotalQty(fsp)
	fspSubTotal, _ := bucketTotalQty(fspSub)
	if fspTotal.IsPositive() || fspSubTotal.IsPositive() {
		ded.PensionSecurityFund = &PayloadFSP{
			Percentage:            fmtMoney(lastRate(fsp)),
			Payment:               fmtMoney(fspTotal),
			PercentageSubsistence: fmtMoney(lastRate(fspSub)),
			PaymentSubsistence:    fmtMoney(fspSubTotal),
		}
	}

	if b := agg.Deductions[entity.DeductionTradeUnions]; b != nil {
		for _, row := range b.Rows {
			if !row.Amount.IsPositive() {
				continue
			}
			desc := row.Description
			if desc == "" {
				desc = "Cuota sindical"
			}
			ded.TradeUnions = append(ded.TradeUnions, PayloadUnionDue{
				Description: desc,
				Percentage:  fmtMoney(row.Percentage),
				Payment:     fmtMoney(row.Amount),
			})
		}
	}

	pub, _ := bucketTotalQty(agg.Deductions[entity.DeductionSanctionsPublic])
	priv, _ := bucketTotalQty(agg.Deductions[entity.DeductionSanctionsPrivate])
	if pub.IsPositive() || priv.IsPositive() {
		ded.Sanctions = []PayloadSanction{{
			PaymentPublic:  fmtMoney(pub),
			PaymentPrivate: fmtMoney(priv),
		}}
	}

	if b := agg.Deductions[entity.DeductionLibranzas]; b != nil {
		for _, row := range b.Rows {
			if !row.Amount.IsPositive() {
				continue
			}
			desc := row.Description
			if desc == "" {
				desc = "Libranza"
			}
			ded.Libranzas = append(ded.Libranzas, PayloadLibranza{Description: desc, Payment: fmtMoney(row.Amount)})
		}
	}

	ded.ThirdPartyPayments = singleAmountDed(agg.Deductions[entity.DeductionThirdPartyPayments])
	ded.Advances = singleAmountDed(agg.Deductions[entity.DeductionAdvances])

	if b := agg.Deductions[entity.DeductionOtherDeductions]; b != nil {
		for _, row := range b.Rows {
			if row.Amount.IsPositive() {
				ded.OtherDeductions = append(ded.OtherDeductions, PayloadDescribed{
					Description: row.Description, Payment: fmtMoney(row.Amount),
				})
			}
		}
	}

	ded.VoluntaryPension = singleMoneyDed(agg.Deductions[entity.DeductionVoluntaryPension])
	ded.WithholdingSource = singleMoneyDed(agg.Deductions[entity.DeductionWithholdingSource])
	ded.AFC = singleMoneyDed(agg.Deductions[entity.DeductionAFC])
	ded.Cooperative = singleMoneyDed(agg.Deductions[entity.DeductionCooperative])
	ded.TaxLien = singleMoneyDed(agg.Deductions[entity.DeductionTaxLien])
	ded.ComplementaryPlans = singleMoneyDed(agg.Deductions[entity.DeductionComplementaryPlans])
	ded.Education = singleMoneyDed(agg.Deductions[entity.DeductionEducation])
	ded.Refund = singleMoneyDed(agg.Deductions[entity.DeductionRefund])
	ded.Debt = singleMoneyDed(agg.Deductions[entity.DeductionDebt])
}

// ── Helpers de mapeo ──

func bucketTotalQty(b *Bucket) (decimal.Decimal, decimal.Decimal) {
	if b == nil {
		return decimal.Zero, decimal.Zero
	}
	return b.Total, b.Quantity
}

func lastRate(b *Bucket) decimal.Decimal {
	if b == nil || len(b.Rates) == 0 {
		return decimal.Zero
	}
	return b.Rates[len(b.Rates)-1]
}

func quantityPaymentRows(b *Bucket) []PayloadQuantityPayment {
	var rows []PayloadQuantityPayment
	for _, row := range b.Rows {
		if !row.Amount.IsPositive() && !row.Quantity.IsPositive() {
			continue
		}
		rows = append(rows, PayloadQuantityPayment{
			Quantity: roundInt(row.Quantity),
			Payment:  fmtMoney(row.Amount),
			Start:    fmtDatePtr(row.DateStart),
			End:      fmtDatePtr(row.DateEnd),
		})
	}
	return rows
}

func splitAmount(agg *Aggregate, salary, nonSalary entity.EarnCategory) []PayloadSplitAmount {
	st, _ := bucketTotalQty(agg.Earns[salary])
	nst, _ := bucketTotalQty(agg.Earns[nonSalary])
	if !st.IsPositive() && !nst.IsPositive() {
		return nil
	}
	item := PayloadSplitAmount{}
	if st.IsPositive() {
		item.Payment = fmtMoney(st)
	}
	if nst.IsPositive() {
		item.NonSalaryPayment = fmtMoney(nst)
	}
	return []PayloadSplitAmount{item}
}

func singleAmount(b *Bucket) []PayloadAmount {
	if b == nil || !b.Total.IsPositive() {
		return nil
	}
	return []PayloadAmount{{Payment: fmtMoney(b.Total)}}
}

func singleAmountDed(b *Bucket) []PayloadAmount {
	return singleAmount(b)
}

func singleMoney(b *Bucket) string {
	if b == nil || !b.Total.IsPositive() {
		return ""
	}
	return fmtMoney(b.Total)
}

func singleMoneyDed(b *Bucket) string {
	return singleMoney(b)
}

func roundInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}

func fmtMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtDate(*t)
}

func periodicityCode(periodicity string) string {
	if periodicity == "quincenal" {
		return "4"
	}
	return "5" // mensual
}

// FormatDateHours combina una fecha con una hora fraccional (13.5 = 13:30) en el
// formato "YYYY-MM-DD HH:MM:SS-05:00" que exigen HoraInicio/HoraFin. Entradas
// malformadas degradan a cadena vacía, el campo es opcional en el documento.
func FormatDateHours(date *time.Time, hours float64) string {
	if date == nil || date.IsZero() || hours < 0 || hours >= 24 {
		return ""
	}
	totalMinutes := int(hours*60 + 0.5)
	h := totalMinutes / 60
	m := totalMinutes % 60
	if h >= 24 {
		return ""
	}
	return fmt.Sprintf("%s %02d:%02d:00-05:00", date.Format("2006-01-02"), h, m)
}

// SplitPersonName descompone un nombre completo en (primer apellido, segundo
// apellido, primer nombre, otros nombres). Con coma se respeta la convención
// "Apellidos, Nombres"; sin coma se aplica la heurística por cantidad de tokens:
// 1 token = solo nombre, 2 = nombre y apellido, 3 o más = los dos últimos son apellidos.
func SplitPersonName(fullName string) (surname, secondSurname, firstName, otherNames string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return
	}

	if idx := strings.Index(fullName, ","); idx >= 0 {
		lastNames := strings.Fields(fullName[:idx])
		firstNames := strings.Fields(fullName[idx+1:])
		if len(lastNames) > 0 {
			surname = lastNames[0]
			secondSurname = strings.Join(lastNames[1:], " ")
		}
		if len(firstNames) > 0 {
			firstName = firstNames[0]
			otherNames = strings.Join(firstNames[1:], " ")
		}
		return
	}

	parts := strings.Fields(fullName)
	switch {
	case len(parts) >= 3:
		firstName = parts[0]
		otherNames = strings.Join(parts[1:len(parts)-2], " ")
		surname = parts[len(parts)-2]
		secondSurname = parts[len(parts)-1]
	case len(parts) == 2:
		firstName = parts[0]
		surname = parts[1]
	case len(parts) == 1:
		firstName = parts[0]
	}
	return
}

var nameTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName quita marcas diacríticas (tildes, diéresis) de los nombres: el
// validador del proveedor rechaza caracteres fuera de su alfabeto esperado.
func normalizeName(s string) string {
	out, _, err := transform.String(nameTransformer, s)
	if err != nil {
		return s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}
