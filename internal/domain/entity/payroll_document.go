package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida local del documento consolidado.
const (
	DocStateDraft  = "draft"
	DocStateDone   = "done"
	DocStateCancel = "cancel"
)

// Estados del ciclo de envío ante la DIAN (se superponen al estado local).
const (
	EdiStateToSend   = "to_send"
	EdiStateSent     = "sent"
	EdiStateAccepted = "accepted"
	EdiStateRejected = "rejected"
	EdiStateError    = "error"
)

// PayrollDocument es el documento fiscal consolidado del mes: agrega una o más
// nóminas individuales de un empleado y lleva los identificadores asignados por
// la autoridad (CUNE, zip key) una vez enviado.
//
// Ciclo: draft → done (asigna consecutivo de la resolución) → estados de envío.
// Solo es eliminable en draft/cancel; la cancelación se bloquea tras la aceptación.
type PayrollDocument struct {
	ID         string
	CompanyID  string
	EmployeeID string

	Prefix string
	Number int64  // consecutivo asignado al finalizar; 0 en draft
	Name   string // prefijo + consecutivo (NumNom del CUNE)

	Year  int
	Month int // periodo de liquidación consolidado

	Date         time.Time // fecha de generación (FecNom)
	IssueTime    string    // hora de generación HH:MM:SS-05:00 (HorNom)
	PaymentDates []time.Time

	State    string // draft | done | cancel
	EdiState string // to_send | sent | accepted | rejected | error

	// Nota de ajuste: referencia unidireccional al documento original.
	CreditNote bool
	OriginID   *string

	// Identificadores y rastro del envío.
	CUNE          string
	ZipKey        string
	StatusMessage string
	EdiErrors     string
	QRData        string

	// Totales del documento (con delta de redondeo final).
	AccruedTotal    decimal.Decimal
	DeductionsTotal decimal.Decimal
	NetTotal        decimal.Decimal
	Rounding        decimal.Decimal

	WorkedDays int // tiempo laborado base 360 de las nóminas del mes menos ausencias, nunca negativo

	PayslipIDs []string // nóminas constituyentes (referencia de solo lectura)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TypeXMLCode devuelve el código de tipo de XML: 102 nómina, 103 nota de ajuste.
func (d *PayrollDocument) TypeXMLCode() string {
	if d.CreditNote {
		return "103"
	}
	return "102"
}

// Accepted indica si la DIAN ya validó el documento (idempotencia del envío).
func (d *PayrollDocument) Accepted() bool {
	return d.EdiState == EdiStateAccepted
}

// Rejected indica si la DIAN rechazó el documento; es terminal, se corrige con
// uno nuevo.
func (d *PayrollDocument) Rejected() bool {
	return d.EdiState == EdiStateRejected
}

// Deletable indica si el documento puede eliminarse (solo draft o cancelado).
func (d *PayrollDocument) Deletable() bool {
	return d.State == DocStateDraft || d.State == DocStateCancel
}
