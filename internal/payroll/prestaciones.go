package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	two        = decimal.NewFromInt(2)
	thirty     = decimal.NewFromInt(30)
	year360    = decimal.NewFromInt(360)
	oneHundred = decimal.NewFromInt(100)
)

// Absence es una ausencia dentro del periodo, vista por los cálculos.
// ReducesBase marca las que descuentan días de la base de prestaciones (LNR, SUS).
type Absence struct {
	From        time.Time
	To          time.Time
	Days        int
	ReducesBase bool
}

// unpaidDaysInWindow suma los días de ausencias que reducen base y tocan la ventana.
func unpaidDaysInWindow(absences []Absence, from, to time.Time) int {
	days := 0
	for _, a := range absences {
		if !a.ReducesBase {
			continue
		}
		if a.From.After(to) || a.To.Before(from) {
			continue
		}
		days += a.Days
	}
	return days
}

// EntitlementParams son los insumos comunes de prima y cesantías.
type EntitlementParams struct {
	Wage               decimal.Decimal
	ContractStart      time.Time
	PeriodEnd          time.Time // date_to de la nómina que liquida
	IsSettlement       bool      // liquidación definitiva: la ventana cierra en PeriodEnd
	SMMLV              decimal.Decimal
	TransportAllowance decimal.Decimal // auxilio de transporte mensual vigente
	TransportPaid      bool            // el auxilio se pagó efectivamente en la ventana
	Absences           []Absence
}

// PrimaServicios liquida la prima de servicios del semestre en curso.
//
// Ventana: semestre calendario del periodo (ene-jun o jul-dic), recortada al inicio
// del contrato; en liquidación definitiva cierra en PeriodEnd. Solo paga en junio,
// diciembre o liquidación; en cualquier otro mes devuelve 0 (no es error).
// Base = salario, más auxilio de transporte solo si el salario es inferior a 2 SMMLV.
// Resultado = base × días / 360, con los días de licencia no remunerada descontados.
func PrimaServicios(p EntitlementParams) decimal.Decimal {
	if p.Wage.LessThanOrEqual(decimal.Zero) || p.PeriodEnd.IsZero() {
		return decimal.Zero
	}
	month := p.PeriodEnd.Month()
	if month != time.June && month != time.December && !p.IsSettlement {
		return decimal.Zero
	}

	winStart, winEnd := semesterWindow(p.PeriodEnd)
	if p.ContractStart.After(winStart) {
		winStart = p.ContractStart
	}
	if p.IsSettlement {
		winEnd = p.PeriodEnd
	}

	days := Days360(winStart, winEnd) - unpaidDaysInWindow(p.Absences, winStart, winEnd)
	if days <= 0 {
		return decimal.Zero
	}

	base := p.Wage
	if p.Wage.LessThan(p.SMMLV.Mul(two)) {
		base = base.Add(p.TransportAllowance)
	}
	return base.Mul(decimal.NewFromInt(int64(days))).Div(year360)
}

// Cesantias liquida el auxilio de cesantías del año en curso.
//
// Ventana: 1 de enero (o inicio del contrato) hasta el 31 de diciembre, o hasta
// PeriodEnd en liquidación definitiva. Solo paga en diciembre o liquidación.
// A diferencia de la prima, el auxilio de transporte entra a la base siempre que
// se haya pagado, sin el umbral de 2 SMMLV.
func Cesantias(p EntitlementParams) decimal.Decimal {
	if p.Wage.LessThanOrEqual(decimal.Zero) || p.PeriodEnd.IsZero() {
		return decimal.Zero
	}
	if p.PeriodEnd.Month() != time.December && !p.IsSettlement {
		return decimal.Zero
	}

	winStart, winEnd := yearWindow(p)
	days := Days360(winStart, winEnd) - unpaidDaysInWindow(p.Absences, winStart, winEnd)
	if days <= 0 {
		return decimal.Zero
	}

	base := p.Wage
	if p.TransportPaid {
		base = base.Add(p.TransportAllowance)
	}
	return base.Mul(decimal.NewFromInt(int64(days))).Div(year360)
}

// InteresesCesantias liquida los intereses sobre cesantías: 12% anual sobre el
// valor de cesantías ya calculado en el mismo periodo, proporcional a los días
// de la ventana anual. severance es el total de la línea de cesantías del periodo.
func InteresesCesantias(severance decimal.Decimal, p EntitlementParams) decimal.Decimal {
	if severance.LessThanOrEqual(decimal.Zero) || p.PeriodEnd.IsZero() {
		return decimal.Zero
	}
	if p.PeriodEnd.Month() != time.December && !p.IsSettlement {
		return decimal.Zero
	}

	winStart, winEnd := yearWindow(p)
	days := Days360(winStart, winEnd) - unpaidDaysInWindow(p.Absences, winStart, winEnd)
	if days <= 0 {
		return decimal.Zero
	}

	rate := decimal.NewFromFloat(0.12)
	return severance.Mul(decimal.NewFromInt(int64(days))).Mul(rate).Div(year360)
}

// semesterWindow devuelve el semestre calendario que contiene la fecha.
func semesterWindow(date time.Time) (time.Time, time.Time) {
	year := date.Year()
	if date.Month() <= time.June {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// yearWindow devuelve la ventana anual de cesantías recortada al contrato y,
// en liquidación, al fin del periodo.
func yearWindow(p EntitlementParams) (time.Time, time.Time) {
	year := p.PeriodEnd.Year()
	winStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if p.ContractStart.After(winStart) {
		winStart = p.ContractStart
	}
	winEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if p.IsSettlement {
		winEnd = p.PeriodEnd
	}
	return winStart, winEnd
}
