package payroll

import "github.com/shopspring/decimal"

// jornada mensual de referencia para la base horaria: 30 días × 8 horas
var monthlyHours = decimal.NewFromInt(240)

// HourValue liquida horas extra o recargos sobre la base horaria del salario
// mensual. Las horas extra pagan la hora completa más el porcentaje; los
// recargos pagan solo el porcentaje adicional, porque la hora ordinaria ya
// está remunerada en el básico. Cero si falta salario, horas o porcentaje.
func HourValue(wage, hours, pct decimal.Decimal, surchargeOnly bool) decimal.Decimal {
	if wage.LessThanOrEqual(decimal.Zero) || hours.LessThanOrEqual(decimal.Zero) ||
		pct.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	factor := pct.Div(oneHundred)
	if !surchargeOnly {
		factor = factor.Add(decimal.NewFromInt(1))
	}
	return wage.Div(monthlyHours).Mul(hours).Mul(factor).Round(0)
}
