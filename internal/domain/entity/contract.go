package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de trabajador DIAN que no cotizan IBC (aprendices SENA).
const (
	WorkerTypeApprenticeLective    = "12" // aprendiz etapa lectiva
	WorkerTypeApprenticeProductive = "19" // aprendiz etapa productiva
)

// Tipos de contrato DIAN.
const (
	ContractTypeFixed      = "1" // término fijo
	ContractTypeIndefinite = "2" // término indefinido
	ContractTypeWork       = "3" // obra o labor
	ContractTypeLearning   = "4" // aprendizaje
	ContractTypeInternship = "5" // prácticas o pasantías
)

// Contract representa el vínculo laboral de un Employee con una Company.
type Contract struct {
	ID         string
	CompanyID  string
	EmployeeID string

	Wage            decimal.Decimal // salario mensual pactado
	IntegralSalary  bool            // salario integral (IBC = 70% del salario)
	HighRiskPension bool

	TypeWorkerCode    string // tabla DIAN tipo de trabajador ("01" ordinario, "12"/"19" aprendiz...)
	SubTypeWorkerCode string // "00" normal, "01" pensionado por vejez activo
	TypeContractCode  string // ver constantes ContractType*
	ARLRiskLevel      string // I..V

	SchedulePay string // mensual | quincenal

	DateStart time.Time
	DateEnd   *time.Time // nil = vigente

	Status    string // active, finished
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApprentice indica si el trabajador es aprendiz SENA (no cotiza IBC).
func (c *Contract) IsApprentice() bool {
	return c.TypeWorkerCode == WorkerTypeApprenticeLective ||
		c.TypeWorkerCode == WorkerTypeApprenticeProductive
}
