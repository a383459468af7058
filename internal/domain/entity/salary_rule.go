package entity

import "github.com/shopspring/decimal"

// Tipo de concepto de una regla salarial.
const (
	ConceptEarn      = "earn"
	ConceptDeduction = "deduction"
	ConceptOther     = "other"
)

// Estrategias cerradas para calcular el porcentaje/cantidad de una regla en el
// documento fiscal. Sustituyen al eval de expresiones de configuraciones abiertas:
// el contexto de lectura es el mismo (periodo, contrato, totales) pero sin código arbitrario.
const (
	AmountStrategyDefault = "default" // usa el total de la línea tal cual
	AmountStrategyFixed   = "fixed"   // valor fijo configurado en la regla
	AmountStrategyCompany = "company" // lee un porcentaje de la Company (ej: PctOvertimeDay)
)

// Categorías de agregación usadas por los cálculos (no van al documento; agrupan líneas).
const (
	RuleCategoryIBC      = "IBC"       // suma para la base de cotización
	RuleCategoryTotalRet = "TOTAL_RET" // suma para la base de retención en la fuente
)

// Códigos de regla consultados por nombre en los cálculos.
const (
	RuleCodeBasic             = "BASIC"
	RuleCodeTransportAid      = "AUXTRANS"
	RuleCodeSeverance         = "CESANTIA_CALC"
	RuleCodeSeveranceInterest = "INT_CESANTIA_CALC"
	RuleCodePrima             = "PRIMA_CALC"
	RuleCodeIBC               = "IBC_CALC"
	RuleCodeRetefuente        = "RTEFTE"
	RuleCodeHealthEmployee    = "SALUD_EMP"
	RuleCodePensionEmployee   = "PENSION_EMP"
	RuleCodeFSPSolidarity     = "FSP_SOL"
	RuleCodeFSPSubsistence    = "FSP_SUB"
)

// SalaryRule clasifica una computación de nómina. Configuración estática,
// de solo lectura durante el procesamiento de un periodo.
type SalaryRule struct {
	ID   string
	Code string
	Name string

	TypeConcept       string // earn | deduction | other
	EarnCategory      EarnCategory
	DeductionCategory DeductionCategory

	// Categorías de agregación interna (IBC, TOTAL_RET) a las que aporta la regla.
	AggregationCategories []string

	// Detailed indica que el valor llega pre-detallado (EarnDetail/DeductionDetail)
	// y no debe contarse dos veces en la agregación.
	Detailed bool

	AmountStrategy string          // ver constantes AmountStrategy*
	FixedAmount    decimal.Decimal // usado con AmountStrategyFixed

	Sequence int
	Active   bool
}
