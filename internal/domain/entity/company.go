package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa un empleador (enfoque Colombia, nómina electrónica DIAN).
// Además de la identidad tributaria carga los parámetros fiscales del año en curso:
// SMMLV, UVT y auxilio de transporte, que gobiernan topes y bases de las prestaciones.
type Company struct {
	ID      string
	Name    string
	NIT     string // NIT colombiano sin dígito de verificación
	DV      string // dígito de verificación
	Address string
	City    string
	Phone   string
	Email   string
	Status  string // active, suspended, inactive

	// Parámetros fiscales vigentes (se actualizan cada año por decreto).
	SMMLV              decimal.Decimal // salario mínimo mensual legal vigente
	UVT                decimal.Decimal // unidad de valor tributario
	TransportAllowance decimal.Decimal // auxilio de transporte mensual

	// Porcentajes de recargos y horas extras (editables; la ley fija los vigentes).
	PctOvertimeDay          decimal.Decimal // HED: hora extra diurna
	PctOvertimeNight        decimal.Decimal // HEN: hora extra nocturna
	PctSurchargeNight       decimal.Decimal // RN: recargo nocturno
	PctOvertimeDaySunday    decimal.Decimal // HEDDF: extra diurna dominical/festiva
	PctSurchargeDaySunday   decimal.Decimal // HRDDF: recargo diurno dominical/festivo
	PctOvertimeNightSunday  decimal.Decimal // HENDF: extra nocturna dominical/festiva
	PctSurchargeNightSunday decimal.Decimal // HRNDF: recargo nocturno dominical/festivo

	// Nómina electrónica.
	PayrollEnabled bool   // habilita generación y envío de documentos
	InProduction   bool   // true = ambiente 1 (producción); false = habilitación
	TestSetID      string // set de pruebas asignado por la DIAN (solo habilitación)
	Periodicity    string // mensual | quincenal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Porcentajes legales por defecto para recargos y horas extras (CST, Colombia).
var (
	DefaultPctOvertimeDay          = decimal.NewFromInt(25)
	DefaultPctOvertimeNight        = decimal.NewFromInt(75)
	DefaultPctSurchargeNight       = decimal.NewFromInt(35)
	DefaultPctOvertimeDaySunday    = decimal.NewFromInt(100)
	DefaultPctSurchargeDaySunday   = decimal.NewFromInt(75)
	DefaultPctOvertimeNightSunday  = decimal.NewFromInt(150)
	DefaultPctSurchargeNightSunday = decimal.NewFromInt(110)
)

// OvertimePct devuelve el porcentaje configurado por la empresa para una
// categoría de hora extra o recargo; cero para categorías sin porcentaje.
func (c *Company) OvertimePct(cat EarnCategory) decimal.Decimal {
	switch cat {
	case EarnOvertimeDay:
		return c.PctOvertimeDay
	case EarnOvertimeNight:
		return c.PctOvertimeNight
	case EarnSurchargeNight:
		return c.PctSurchargeNight
	case EarnOvertimeDaySunday:
		return c.PctOvertimeDaySunday
	case EarnSurchargeDaySunday:
		return c.PctSurchargeDaySunday
	case EarnOvertimeNightSunday:
		return c.PctOvertimeNightSunday
	case EarnSurchargeNightSunday:
		return c.PctSurchargeNightSunday
	}
	return decimal.Zero
}

// Environment devuelve el código de ambiente DIAN: "1" producción, "2" habilitación.
func (c *Company) Environment() string {
	if c.InProduction {
		return "1"
	}
	return "2"
}
