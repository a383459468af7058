package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
)

// Tramos de la tabla de retención del Art. 383 ET, en UVT.
// Verificar contra la normativa vigente del año liquidado: los límites y sumandos
// fijos cambian por reforma tributaria.
var retencionBrackets = []struct {
	upTo  decimal.Decimal // límite superior del tramo en UVT
	rate  decimal.Decimal // tarifa marginal sobre el exceso
	base  decimal.Decimal // UVT del tramo inferior
	fixed decimal.Decimal // sumando fijo en UVT
}{
	{decimal.NewFromInt(95), decimal.Zero, decimal.Zero, decimal.Zero},
	{decimal.NewFromInt(150), decimal.NewFromFloat(0.19), decimal.NewFromInt(95), decimal.Zero},
	{decimal.NewFromInt(360), decimal.NewFromFloat(0.28), decimal.NewFromInt(150), decimal.NewFromInt(10)},
	{decimal.NewFromInt(640), decimal.NewFromFloat(0.33), decimal.NewFromInt(360), decimal.NewFromInt(69)},
	{decimal.NewFromInt(945), decimal.NewFromFloat(0.35), decimal.NewFromInt(640), decimal.NewFromInt(162)},
	{decimal.NewFromInt(2300), decimal.NewFromFloat(0.37), decimal.NewFromInt(945), decimal.NewFromInt(268)},
}

// Tramo abierto final: sobre 2300 UVT.
var retencionTopBracket = struct {
	rate  decimal.Decimal
	base  decimal.Decimal
	fixed decimal.Decimal
}{decimal.NewFromFloat(0.39), decimal.NewFromInt(2300), decimal.NewFromInt(770)}

// Topes individuales mensuales de las deducciones adicionales, en UVT (Art. 387 ET).
var (
	capHousingInterestUVT = decimal.NewFromInt(100)
	capPrepaidHealthUVT   = decimal.NewFromInt(16)
	capDependentsUVT      = decimal.NewFromInt(32)
)

// RetefuenteParams son los insumos de la retención en la fuente del periodo.
// Los aportes del empleado llegan con el signo que tengan en las líneas; aquí
// se toman en valor absoluto.
type RetefuenteParams struct {
	UVT decimal.Decimal

	// TotalIncome es la suma de la categoría de agregación TOTAL_RET.
	TotalIncome decimal.Decimal

	// Aportes obligatorios del empleado (INCRNGO).
	HealthEmployee  decimal.Decimal
	PensionEmployee decimal.Decimal
	SolidarityFund  decimal.Decimal
	SubsistenceFund decimal.Decimal

	// Deducciones adicionales declaradas por el empleado (Art. 387 ET).
	HousingInterest decimal.Decimal
	PrepaidHealth   decimal.Decimal
	Dependents      decimal.Decimal
}

// Retefuente aplica el procedimiento 1 del Art. 383 ET:
//
//  1. ingresos gravables del mes (categoría TOTAL_RET)
//  2. INCRNGO = salud + pensión + fondo de solidaridad del empleado
//  3. base = max(0, ingresos − INCRNGO)
//  4. deducciones adicionales, cada una con su tope individual en UVT
//  5. renta exenta = 25% de (base − deducciones), tope 790 UVT/12
//  6. límite global = min(40% de la base, 1340 UVT/12); deducciones+exenta se acotan a él
//  7. base gravable en pesos → UVT
//  8. tabla progresiva en UVT
//  9. a pesos, truncando al múltiplo de 1000 inferior
//
// Error si la UVT no está configurada: proceder con UVT en cero produciría una
// retención fiscalmente sin sentido.
func Retefuente(p RetefuenteParams) (decimal.Decimal, error) {
	if p.UVT.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrUVTNotConfigured
	}
	if p.TotalIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	incrngo := p.HealthEmployee.Abs().
		Add(p.PensionEmployee.Abs()).
		Add(p.SolidarityFund.Abs()).
		Add(p.SubsistenceFund.Abs())

	base := p.TotalIncome.Sub(incrngo)
	if base.IsNegative() {
		base = decimal.Zero
	}

	additional := capAt(p.HousingInterest, capHousingInterestUVT, p.UVT).
		Add(capAt(p.PrepaidHealth, capPrepaidHealthUVT, p.UVT)).
		Add(capAt(p.Dependents, capDependentsUVT, p.UVT))

	exemptBase := base.Sub(additional)
	if exemptBase.IsNegative() {
		exemptBase = decimal.Zero
	}
	exempt := exemptBase.Mul(decimal.NewFromFloat(0.25))
	exemptCap := decimal.NewFromInt(790).Div(decimal.NewFromInt(12)).Mul(p.UVT)
	if exempt.GreaterThan(exemptCap) {
		exempt = exemptCap
	}

	// Límite global del 40% y 1340 UVT anuales (Art. 336 ET)
	globalLimit := base.Mul(decimal.NewFromFloat(0.40))
	limit1340 := decimal.NewFromInt(1340).Mul(p.UVT).Div(decimal.NewFromInt(12))
	if limit1340.LessThan(globalLimit) {
		globalLimit = limit1340
	}
	reductions := additional.Add(exempt)
	if reductions.GreaterThan(globalLimit) {
		reductions = globalLimit
	}

	taxablePesos := base.Sub(reductions)
	if taxablePesos.IsNegative() {
		taxablePesos = decimal.Zero
	}
	taxableUVT := taxablePesos.Div(p.UVT)

	withholdingUVT := bracketWithholding(taxableUVT)
	withholdingPesos := withholdingUVT.Mul(p.UVT)
	if withholdingPesos.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	// Redondeo DIAN: truncar al múltiplo de 1000 inferior.
	thousand := decimal.NewFromInt(1000)
	return withholdingPesos.Div(thousand).Floor().Mul(thousand), nil
}

func bracketWithholding(uvt decimal.Decimal) decimal.Decimal {
	for _, b := range retencionBrackets {
		if uvt.LessThanOrEqual(b.upTo) {
			return uvt.Sub(b.base).Mul(b.rate).Add(b.fixed)
		}
	}
	t := retencionTopBracket
	return uvt.Sub(t.base).Mul(t.rate).Add(t.fixed)
}

// capAt acota un valor al tope mensual expresado en UVT.
func capAt(v, capUVT, uvt decimal.Decimal) decimal.Decimal {
	if v.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	top := capUVT.Mul(uvt)
	if v.GreaterThan(top) {
		return top
	}
	return v
}
