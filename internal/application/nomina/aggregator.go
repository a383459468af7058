package nomina

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// MergePolicy define cómo se fusionan el total calculado por reglas y los
// detalles manuales de una misma categoría. La política es una tabla explícita
// por categoría, no se infiere del flujo de control.
type MergePolicy int

const (
	// MergeSummed: total calculado + total detallado, sumados sin condición.
	MergeSummed MergePolicy = iota
	// MergeDetailPriority: si hay filas de detalle, salen solo las filas de
	// detalle (con sus fechas); el total calculado solo aparece como fila
	// sintética cuando no hay detalle. Evita el doble conteo.
	MergeDetailPriority
	// MergeDescribed: el concepto exige descripción legible; el detalle la
	// aporta y el total calculado solo sintetiza una genérica si ningún
	// detalle cubre el concepto.
	MergeDescribed
)

// earnPolicies: política de fusión por categoría de devengado.
var earnPolicies = map[entity.EarnCategory]MergePolicy{
	entity.EarnBasic:                     MergeSummed,
	entity.EarnTransportsAssistance:      MergeSummed,
	entity.EarnTransportsViatic:          MergeSummed,
	entity.EarnTransportsNonSalaryViatic: MergeSummed,
	entity.EarnPrimas:                    MergeSummed,
	entity.EarnPrimasNonSalary:           MergeSummed,
	entity.EarnLayoffs:                   MergeSummed,
	entity.EarnLayoffsInterest:           MergeSummed,
	entity.EarnEndowment:                 MergeSummed,
	entity.EarnSustainmentSupport:        MergeSummed,
	entity.EarnTelecommuting:             MergeSummed,
	entity.EarnCompanyWithdrawalBonus:    MergeSummed,
	entity.EarnCompensation:              MergeSummed,
	entity.EarnRefund:                    MergeSummed,
	entity.EarnBonuses:                   MergeSummed,
	entity.EarnBonusesNonSalary:          MergeSummed,
	entity.EarnAssistances:               MergeSummed,
	entity.EarnAssistancesNonSalary:      MergeSummed,
	entity.EarnCompensationsOrdinary:     MergeSummed,
	entity.EarnCompensationsExtra:        MergeSummed,
	entity.EarnVouchers:                  MergeSummed,
	entity.EarnVouchersNonSalary:         MergeSummed,
	entity.EarnVouchersSalaryFood:        MergeSummed,
	entity.EarnVouchersNonSalaryFood:     MergeSummed,
	entity.EarnCommissions:               MergeSummed,
	entity.EarnThirdPartyPayments:        MergeSummed,
	entity.EarnAdvances:                  MergeSummed,

	entity.EarnOvertimeDay:            MergeDetailPriority,
	entity.EarnOvertimeNight:          MergeDetailPriority,
	entity.EarnSurchargeNight:         MergeDetailPriority,
	entity.EarnOvertimeDaySunday:      MergeDetailPriority,
	entity.EarnSurchargeDaySunday:     MergeDetailPriority,
	entity.EarnOvertimeNightSunday:    MergeDetailPriority,
	entity.EarnSurchargeNightSunday:   MergeDetailPriority,
	entity.EarnVacationCommon:         MergeDetailPriority,
	entity.EarnVacationCompensated:    MergeDetailPriority,
	entity.EarnIncapacityCommon:       MergeDetailPriority,
	entity.EarnIncapacityProfessional: MergeDetailPriority,
	entity.EarnIncapacityWorking:      MergeDetailPriority,
	entity.EarnLicensingsMaternity:    MergeDetailPriority,
	entity.EarnLicensingsPermit:       MergeDetailPriority,
	entity.EarnLicensingsSuspension:   MergeDetailPriority,
	entity.EarnLegalStrikes:           MergeDetailPriority,

	entity.EarnOtherConcepts:          MergeDescribed,
	entity.EarnOtherConceptsNonSalary: MergeDescribed,
}

// deductionPolicies: política de fusión por categoría de deducción.
var deductionPolicies = map[entity.DeductionCategory]MergePolicy{
	entity.DeductionHealth:                 MergeSummed,
	entity.DeductionPensionFund:            MergeSummed,
	entity.DeductionPensionSecurityFund:    MergeSummed,
	entity.DeductionPensionSecuritySubsist: MergeSummed,
	entity.DeductionVoluntaryPension:       MergeSummed,
	entity.DeductionWithholdingSource:      MergeSummed,
	entity.DeductionAFC:                    MergeSummed,
	entity.DeductionCooperative:            MergeSummed,
	entity.DeductionTaxLien:                MergeSummed,
	entity.DeductionComplementaryPlans:     MergeSummed,
	entity.DeductionEducation:              MergeSummed,
	entity.DeductionRefund:                 MergeSummed,
	entity.DeductionDebt:                   MergeSummed,
	entity.DeductionSanctionsPublic:        MergeSummed,
	entity.DeductionSanctionsPrivate:       MergeSummed,
	entity.DeductionThirdPartyPayments:     MergeSummed,
	entity.DeductionAdvances:               MergeSummed,

	entity.DeductionTradeUnions: MergeDetailPriority,
	entity.DeductionLibranzas:   MergeDetailPriority,

	entity.DeductionOtherDeductions: MergeDescribed,
}

// BucketRow es una fila de salida de una categoría (con fechas cuando el
// concepto las lleva, ej: tramos de horas extras o incapacidades).
type BucketRow struct {
	Amount      decimal.Decimal
	Quantity    decimal.Decimal
	Percentage  decimal.Decimal
	DateStart   *time.Time
	TimeStart   float64
	DateEnd     *time.Time
	TimeEnd     float64
	Description string
	Synthetic   bool // fila generada desde el total calculado, no desde detalle
}

// Bucket es el agregado de una categoría: total, cantidad y filas de salida,
// con etiquetas de procedencia explícitas.
type Bucket struct {
	Total      decimal.Decimal
	Quantity   decimal.Decimal
	Rates      []decimal.Decimal
	Rows       []BucketRow
	FromRule   bool // alguna línea calculada aportó a la categoría
	FromDetail bool // algún detalle manual aportó a la categoría
}

// Aggregate es el resultado del agregador: categoría → bucket, deducciones en
// magnitud positiva. Alimenta directamente al constructor del documento; aquí
// no hay formateo ni redondeo de moneda, solo suma.
type Aggregate struct {
	Earns      map[entity.EarnCategory]*Bucket
	Deductions map[entity.DeductionCategory]*Bucket
}

// AccruedTotal suma los totales de todos los devengados.
func (a *Aggregate) AccruedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, b := range a.Earns {
		total = total.Add(b.Total)
	}
	return total
}

// DeductionsTotal suma los totales de todas las deducciones (ya positivas).
func (a *Aggregate) DeductionsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, b := range a.Deductions {
		total = total.Add(b.Total)
	}
	return total
}

// AggregatorService colapsa líneas calculadas y detalles manuales en buckets
// por categoría según la política de fusión de cada concepto.
type AggregatorService struct{}

// NewAggregatorService crea el servicio.
func NewAggregatorService() *AggregatorService {
	return &AggregatorService{}
}

// Aggregate procesa las líneas del periodo contra la configuración de reglas.
// Las reglas marcadas Detailed no aportan su total (el valor llega pre-detallado);
// las de concepto "other" no van al documento.
func (s *AggregatorService) Aggregate(
	rules map[string]*entity.SalaryRule,
	lines []entity.PayslipLine,
	earnDetails []entity.EarnDetail,
	deductionDetails []entity.DeductionDetail,
) *Aggregate {
	agg := &Aggregate{
		Earns:      make(map[entity.EarnCategory]*Bucket),
		Deductions: make(map[entity.DeductionCategory]*Bucket),
	}

	type ruleAcc struct {
		total    decimal.Decimal
		quantity decimal.Decimal
		rates    []decimal.Decimal
	}
	earnFromRules := make(map[entity.EarnCategory]*ruleAcc)
	dedFromRules := make(map[entity.DeductionCategory]*ruleAcc)

	// 1) acumular líneas calculadas por categoría
	for i := range lines {
		line := &lines[i]
		rule, ok := rules[line.RuleCode]
		if !ok || rule.Detailed || rule.TypeConcept == entity.ConceptOther {
			continue
		}
		switch rule.TypeConcept {
		case entity.ConceptEarn:
			acc := earnFromRules[rule.EarnCategory]
			if acc == nil {
				acc = &ruleAcc{total: decimal.Zero, quantity: decimal.Zero}
				earnFromRules[rule.EarnCategory] = acc
			}
			acc.total = acc.total.Add(line.Total)
			acc.quantity = acc.quantity.Add(line.Quantity)
			if !line.Rate.IsZero() {
				acc.rates = append(acc.rates, line.Rate)
			}
		case entity.ConceptDeduction:
			acc := dedFromRules[rule.DeductionCategory]
			if acc == nil {
				acc = &ruleAcc{total: decimal.Zero, quantity: decimal.Zero}
				dedFromRules[rule.DeductionCategory] = acc
			}
			// las deducciones vienen negativas de la evaluación de reglas:
			// el documento fiscal siempre las lleva en magnitud positiva
			acc.total = acc.total.Add(line.Total.Abs())
			acc.quantity = acc.quantity.Add(line.Quantity)
			if !line.Rate.IsZero() {
				acc.rates = append(acc.rates, line.Rate)
			}
		}
	}

	// 2) agrupar detalles manuales por categoría
	earnDetailRows := make(map[entity.EarnCategory][]BucketRow)
	for i := range earnDetails {
		d := &earnDetails[i]
		earnDetailRows[d.Category] = append(earnDetailRows[d.Category], BucketRow{
			Amount:      d.Amount.Abs(),
			Quantity:    d.Quantity,
			Percentage:  d.Percentage,
			DateStart:   d.DateStart,
			TimeStart:   d.TimeStart,
			DateEnd:     d.DateEnd,
			TimeEnd:     d.TimeEnd,
			Description: d.Description,
		})
	}
	dedDetailRows := make(map[entity.DeductionCategory][]BucketRow)
	for i := range deductionDetails {
		d := &deductionDetails[i]
		dedDetailRows[d.Category] = append(dedDetailRows[d.Category], BucketRow{
			Amount:      d.Amount.Abs(),
			Description: d.Description,
		})
	}

	// 3) resolver cada categoría con su política
	for cat, acc := range earnFromRules {
		agg.Earns[cat] = resolveBucket(policyForEarn(cat), acc.total, acc.quantity, acc.rates, earnDetailRows[cat])
	}
	for cat, rows := range earnDetailRows {
		if _, done := agg.Earns[cat]; !done {
			agg.Earns[cat] = resolveBucket(policyForEarn(cat), decimal.Zero, decimal.Zero, nil, rows)
		}
	}
	for cat, acc := range dedFromRules {
		agg.Deductions[cat] = resolveBucket(policyForDeduction(cat), acc.total, acc.quantity, acc.rates, dedDetailRows[cat])
	}
	for cat, rows := range dedDetailRows {
		if _, done := agg.Deductions[cat]; !done {
			agg.Deductions[cat] = resolveBucket(policyForDeduction(cat), decimal.Zero, decimal.Zero, nil, rows)
		}
	}

	return agg
}

func policyForEarn(cat entity.EarnCategory) MergePolicy {
	if p, ok := earnPolicies[cat]; ok {
		return p
	}
	return MergeSummed
}

func policyForDeduction(cat entity.DeductionCategory) MergePolicy {
	if p, ok := deductionPolicies[cat]; ok {
		return p
	}
	return MergeSummed
}

// resolveBucket aplica la política de fusión a una categoría.
func resolveBucket(policy MergePolicy, ruleTotal, ruleQty decimal.Decimal, rates []decimal.Decimal, detailRows []BucketRow) *Bucket {
	b := &Bucket{
		Total:      decimal.Zero,
		Quantity:   decimal.Zero,
		Rates:      rates,
		FromRule:   !ruleTotal.IsZero(),
		FromDetail: len(detailRows) > 0,
	}

	detailTotal := decimal.Zero
	detailQty := decimal.Zero
	for _, r := range detailRows {
		detailTotal = detailTotal.Add(r.Amount)
		detailQty = detailQty.Add(r.Quantity)
	}

	switch policy {
	case MergeSummed:
		b.Total = ruleTotal.Add(detailTotal)
		b.Quantity = ruleQty.Add(detailQty)
		b.Rows = append(b.Rows, detailRows...)
		if !ruleTotal.IsZero() {
			b.Rows = append(b.Rows, BucketRow{Amount: ruleTotal, Quantity: ruleQty, Synthetic: true})
		}

	case MergeDetailPriority:
		if len(detailRows) > 0 {
			// hay detalle: salen solo las filas detalladas, el total calculado
			// se descarta para no contar el concepto dos veces
			b.Total = detailTotal
			b.Quantity = detailQty
			b.Rows = detailRows
		} else if !ruleTotal.IsZero() {
			b.Total = ruleTotal
			b.Quantity = ruleQty
			b.Rows = []BucketRow{{Amount: ruleTotal, Quantity: ruleQty, Synthetic: true}}
		}

	case MergeDescribed:
		b.Total = detailTotal
		b.Quantity = detailQty
		b.Rows = append(b.Rows, detailRows...)
		if !ruleTotal.IsZero() && len(detailRows) == 0 {
			// sin detalle que lo describa: fila sintética con descripción genérica
			b.Total = b.Total.Add(ruleTotal)
			b.Quantity = b.Quantity.Add(ruleQty)
			b.Rows = append(b.Rows, BucketRow{
				Amount: ruleTotal, Quantity: ruleQty,
				Description: "Otros conceptos del periodo", Synthetic: true,
			})
		}
	}

	return b
}
