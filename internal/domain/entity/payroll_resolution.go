package entity

import "time"

// Tipos de documento de nómina electrónica DIAN.
const (
	DocTypePayroll           = "9"  // nómina individual (NumeroDocumento 102)
	DocTypePayrollAdjustment = "10" // nota de ajuste (103)
)

// Estados de una resolución de numeración.
const (
	ResolutionActive   = "active"
	ResolutionInactive = "inactive"
)

// PayrollResolution es el rango de numeración autorizado por la DIAN que legitima
// el consecutivo de un documento. Invariante: rangos activos sin traslape por
// empresa/tipo de documento/prefijo.
type PayrollResolution struct {
	ID               string
	CompanyID        string
	ResolutionNumber string
	TypeDocumentCode string // ver constantes DocType*
	Prefix           string
	FromNumber       int64
	ToNumber         int64
	DateFrom         time.Time
	DateTo           time.Time
	State            string // active | inactive
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Contains indica si un consecutivo cae dentro del rango autorizado.
func (r *PayrollResolution) Contains(number int64) bool {
	return number >= r.FromNumber && number <= r.ToNumber
}

// Overlaps indica si dos rangos se traslapan: (from ≤ other.to) && (to ≥ other.from).
func (r *PayrollResolution) Overlaps(other *PayrollResolution) bool {
	return r.FromNumber <= other.ToNumber && r.ToNumber >= other.FromNumber
}
