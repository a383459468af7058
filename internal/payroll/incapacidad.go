package payroll

import "github.com/shopspring/decimal"

// Porcentajes de subsidio por tipo de ausencia. Los umbrales de días y porcentajes
// provienen de la regulación vigente (Ley 100, Decreto 780); deben revisarse cuando
// cambie la norma, no están derivados de una tabla oficial embebida.
var subsidyPercents = map[string]decimal.Decimal{
	"IGE1_2":     decimal.Zero,                // días 1-2 a cargo del empleador (100% salario, no subsidio)
	"IGE3_90":    decimal.NewFromFloat(66.67), // enfermedad general días 3-90
	"IGE91_180":  decimal.NewFromInt(50),      // enfermedad general días 91-180
	"IGE181_MAS": decimal.NewFromInt(50),      // enfermedad general días 181+
	"ATEP":       decimal.NewFromInt(100),     // accidente de trabajo / enfermedad profesional
	"LMA":        decimal.NewFromInt(100),     // licencia de maternidad/paternidad
}

// SubsidyPercent devuelve el porcentaje de subsidio del tipo de ausencia (0 si no aplica).
func SubsidyPercent(leaveTypeCode string) decimal.Decimal {
	if pct, ok := subsidyPercents[leaveTypeCode]; ok {
		return pct
	}
	return decimal.Zero
}

// IncapacitySubsidy calcula el subsidio de una incapacidad o licencia:
// base diaria = IBC del mes anterior / 30; resultado = base diaria × días × porcentaje.
// prevMonthIBC proviene de la última nómina cerrada del contrato; si no existe,
// el llamador pasa el salario del contrato como respaldo.
func IncapacitySubsidy(prevMonthIBC decimal.Decimal, days int, leaveTypeCode string) decimal.Decimal {
	if days <= 0 || prevMonthIBC.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	daily := prevMonthIBC.Div(thirty)
	pct := SubsidyPercent(leaveTypeCode)
	return daily.Mul(decimal.NewFromInt(int64(days))).Mul(pct).Div(oneHundred)
}
