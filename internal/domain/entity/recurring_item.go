package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de monto de un ítem recurrente.
const (
	RecurringAmountFixed      = "fix"        // valor fijo por periodo
	RecurringAmountPercentage = "percentage" // porcentaje del salario del contrato
)

// RecurringItem es un concepto fijo por empleado (ej: libranza descontada por nómina)
// con seguimiento opcional de cuotas. Invariantes:
//
//	remaining_balance      = total_amount − paid_amount ≥ 0
//	remaining_installments = number_of_installments − current_installment ≥ 0
//
// El avance de cuota ocurre exactamente una vez por periodo que consumió el ítem,
// después de confirmar las líneas del periodo; al agotarse cuotas o saldo se desactiva.
type RecurringItem struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Name       string

	TypeConcept       string // earn | deduction
	EarnCategory      EarnCategory
	DeductionCategory DeductionCategory
	RuleCode          string

	AmountType string          // fix | percentage
	Amount     decimal.Decimal // valor fijo o porcentaje según AmountType

	UseInstallments      bool
	NumberOfInstallments int
	CurrentInstallment   int
	TotalAmount          decimal.Decimal
	PaidAmount           decimal.Decimal

	DateFrom time.Time
	DateTo   *time.Time
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingInstallments devuelve las cuotas pendientes (nunca negativo).
func (r *RecurringItem) RemainingInstallments() int {
	n := r.NumberOfInstallments - r.CurrentInstallment
	if n < 0 {
		return 0
	}
	return n
}

// RemainingBalance devuelve el saldo pendiente (nunca negativo).
func (r *RecurringItem) RemainingBalance() decimal.Decimal {
	b := r.TotalAmount.Sub(r.PaidAmount)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// PeriodAmount devuelve el monto que el ítem aporta a un periodo: el valor
// configurado (fijo o porcentaje del salario), recortado al saldo pendiente
// cuando hay cuotas activas. Cero si el recorte agota el monto.
func (r *RecurringItem) PeriodAmount(wage decimal.Decimal) decimal.Decimal {
	amount := r.Amount
	if r.AmountType == RecurringAmountPercentage {
		amount = wage.Mul(r.Amount).Div(decimal.NewFromInt(100))
	}
	return r.ClampToBalance(amount)
}

// ClampToBalance recorta un monto al saldo pendiente cuando hay cuotas activas.
func (r *RecurringItem) ClampToBalance(amount decimal.Decimal) decimal.Decimal {
	if r.UseInstallments {
		if balance := r.RemainingBalance(); amount.GreaterThan(balance) {
			return balance
		}
	}
	return amount
}

// AppliesTo indica si el ítem está vigente para el rango de fechas del periodo.
func (r *RecurringItem) AppliesTo(dateFrom, dateTo time.Time) bool {
	if !r.Active {
		return false
	}
	if r.DateFrom.After(dateTo) {
		return false
	}
	if r.DateTo != nil && r.DateTo.Before(dateFrom) {
		return false
	}
	if r.UseInstallments && (r.RemainingInstallments() <= 0 || r.RemainingBalance().IsZero()) {
		return false
	}
	return true
}

// AdvanceInstallment registra el consumo de una cuota con el monto efectivamente
// aplicado en el periodo. Desactiva el ítem al agotar cuotas o saldo.
func (r *RecurringItem) AdvanceInstallment(amount decimal.Decimal) {
	r.CurrentInstallment++
	r.PaidAmount = r.PaidAmount.Add(amount)
	if r.RemainingInstallments() <= 0 || r.RemainingBalance().IsZero() {
		r.Active = false
	}
	r.UpdatedAt = time.Now()
}
