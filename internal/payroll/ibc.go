package payroll

import "github.com/shopspring/decimal"

var (
	pct70        = decimal.NewFromFloat(0.70)
	maxIBCFactor = decimal.NewFromInt(25)
)

// IBCParams son los insumos del Ingreso Base de Cotización del periodo.
type IBCParams struct {
	IsApprentice   bool
	IntegralSalary bool
	Wage           decimal.Decimal
	SMMLV          decimal.Decimal
	// IBCCategoryTotal es la suma de las líneas marcadas con categoría IBC.
	IBCCategoryTotal decimal.Decimal
	// TransportPaid es el auxilio de transporte pagado en el periodo (0 si no aplica).
	TransportPaid decimal.Decimal
	// UnpaidDays son los días de ausencia no remunerada del periodo.
	UnpaidDays int
}

// IBC calcula el Ingreso Base de Cotización mensual:
//
//   - Aprendices SENA: 0 (no cotizan).
//   - Salario integral: 70% del salario, acotado a [SMMLV, 25×SMMLV], redondeado
//     hacia arriba al peso.
//   - Régimen ordinario: suma de líneas IBC más auxilio de transporte cuando esa
//     suma es inferior a 2 SMMLV; días cotizables = min(30, 30 − días no remunerados),
//     y con 0 días no hay base. Acotado a [SMMLV×días/30, 25×SMMLV] y redondeado
//     hacia arriba.
func IBC(p IBCParams) decimal.Decimal {
	if p.IsApprentice {
		return decimal.Zero
	}
	ceiling := p.SMMLV.Mul(maxIBCFactor)

	if p.IntegralSalary {
		base := p.Wage.Mul(pct70)
		return clamp(base, p.SMMLV, ceiling).Ceil()
	}

	days := 30 - p.UnpaidDays
	if days > 30 {
		days = 30
	}
	if days <= 0 {
		return decimal.Zero
	}

	base := p.IBCCategoryTotal
	if base.LessThan(p.SMMLV.Mul(two)) {
		base = base.Add(p.TransportPaid)
	}

	floor := p.SMMLV.Mul(decimal.NewFromInt(int64(days))).Div(thirty)
	return clamp(base, floor, ceiling).Ceil()
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
