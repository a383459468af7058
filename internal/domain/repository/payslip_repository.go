package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// PayslipRepository acceso a nóminas individuales con sus líneas, detalles y ausencias.
type PayslipRepository interface {
	Create(payslip *entity.Payslip) error
	Update(payslip *entity.Payslip) error
	// GetByID carga la nómina completa (líneas, detalles manuales y ausencias).
	GetByID(id string) (*entity.Payslip, error)
	// ReplaceLines borra y reinserta las líneas calculadas (solo válido en draft).
	ReplaceLines(payslipID string, lines []entity.PayslipLine) error
	// ListForPeriod devuelve las nóminas done/paid de un empleado cuyo periodo cae
	// dentro del mes del documento consolidado.
	ListForPeriod(companyID, employeeID string, year int, month time.Month) ([]*entity.Payslip, error)
	// PreviousMonthIBC busca la línea IBC de la nómina done/paid más reciente del
	// contrato que termina en el mes calendario anterior a before. found=false si no hay.
	PreviousMonthIBC(contractID string, before time.Time) (ibc decimal.Decimal, found bool, err error)
}

// SalaryRuleRepository acceso a la configuración de reglas salariales.
type SalaryRuleRepository interface {
	GetByCode(companyID, code string) (*entity.SalaryRule, error)
	ListActive(companyID string) ([]*entity.SalaryRule, error)
}
