package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una nómina individual.
const (
	PayslipStateDraft  = "draft"
	PayslipStateDone   = "done"
	PayslipStatePaid   = "paid"
	PayslipStateCancel = "cancel"
)

// Payslip representa una liquidación de nómina de un contrato en un periodo.
// Las líneas se recalculan (reemplazan) cada vez que se computa en draft y quedan
// inmutables al pasar a done/paid.
type Payslip struct {
	ID         string
	CompanyID  string
	EmployeeID string
	ContractID string

	DateFrom    time.Time
	DateTo      time.Time
	PaymentDate time.Time

	State        string // ver constantes PayslipState*
	WorkedDays   int
	IsSettlement bool // liquidación definitiva del contrato

	// Nómina de ajuste: referencia unidireccional al periodo original.
	OriginID   *string
	CreditNote bool

	Lines            []PayslipLine
	EarnDetails      []EarnDetail
	DeductionDetails []DeductionDetail
	Leaves           []Leave

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayslipLine es el resultado de evaluar una regla salarial sobre el periodo.
// El signo codifica la dirección: deducciones negativas en esta capa; el agregador
// siempre normaliza a magnitud positiva para el documento fiscal.
type PayslipLine struct {
	ID        string
	PayslipID string
	RuleCode  string
	RuleName  string
	Quantity  decimal.Decimal
	Rate      decimal.Decimal
	Total     decimal.Decimal
}

// LineTotal busca el total de la línea con el código de regla dado. Cero si no existe.
func (p *Payslip) LineTotal(ruleCode string) decimal.Decimal {
	for i := range p.Lines {
		if p.Lines[i].RuleCode == ruleCode {
			return p.Lines[i].Total
		}
	}
	return decimal.Zero
}

// EarnDetail es un devengado detallado manualmente (ej: tramos de horas extras,
// tramos de incapacidad con fechas). Solo editable con el periodo en draft.
type EarnDetail struct {
	ID          string
	PayslipID   string
	Category    EarnCategory
	Amount      decimal.Decimal
	Quantity    decimal.Decimal
	DateStart   *time.Time
	TimeStart   float64 // hora fraccional 0..24 (ej: 13.5 = 13:30)
	DateEnd     *time.Time
	TimeEnd     float64
	Percentage  decimal.Decimal // horas extras: porcentaje de recargo aplicado
	Description string
}

// DeductionDetail es una deducción detallada manualmente.
type DeductionDetail struct {
	ID          string
	PayslipID   string
	Category    DeductionCategory
	Amount      decimal.Decimal
	Description string
}

// Códigos de tipos de ausencia usados en los cálculos de prestaciones.
const (
	LeaveUnpaid          = "LNR"       // licencia no remunerada
	LeaveSuspension      = "SUS"       // suspensión del contrato
	LeaveSickness1_2     = "IGE1_2"    // incapacidad general días 1-2
	LeaveSickness3_90    = "IGE3_90"   // incapacidad general días 3-90
	LeaveSickness91_180  = "IGE91_180" // incapacidad general días 91-180
	LeaveSickness181Plus = "IGE181_MAS"
	LeaveWorkAccident    = "ATEP" // accidente de trabajo / enfermedad profesional
	LeaveMaternity       = "LMA"  // licencia de maternidad/paternidad
	LeavePaid            = "LR"   // licencia remunerada
	LeaveVacation        = "VACDISF"
)

// Leave es una ausencia registrada dentro del periodo.
type Leave struct {
	ID          string
	PayslipID   string
	TypeCode    string // ver constantes Leave*
	DateFrom    time.Time
	DateTo      time.Time
	Days        int
	ReducesBase bool // descuenta días de la base de prestaciones (LNR, SUS)
}

// UnpaidLeaveDays suma los días de ausencias que reducen base dentro de la ventana dada.
func (p *Payslip) UnpaidLeaveDays(from, to time.Time) int {
	days := 0
	for i := range p.Leaves {
		l := &p.Leaves[i]
		if !l.ReducesBase {
			continue
		}
		if l.DateFrom.After(to) || l.DateTo.Before(from) {
			continue
		}
		days += l.Days
	}
	return days
}

// AbsentDays suma los días de toda ausencia del periodo (para días trabajados del documento).
func (p *Payslip) AbsentDays() int {
	days := 0
	for i := range p.Leaves {
		days += p.Leaves[i].Days
	}
	return days
}
