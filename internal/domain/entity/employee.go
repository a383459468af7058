package entity

import "time"

// Tipos de documento de identificación DIAN (los más usados en nómina).
const (
	IdentTypeCC  = "13" // cédula de ciudadanía
	IdentTypeCE  = "22" // cédula de extranjería
	IdentTypeNIT = "31" // NIT
	IdentTypePEP = "47" // permiso especial de permanencia
)

// Métodos de pago DIAN (tabla 5.3.3.10 del anexo técnico).
const (
	PaymentMethodCash     = "10" // efectivo
	PaymentMethodTransfer = "47" // transferencia débito bancaria
	PaymentMethodCheck    = "20" // cheque
)

// Employee representa un trabajador vinculado a una Company.
// El nombre se guarda completo; el builder del documento fiscal lo descompone
// en apellidos/nombres según la convención "Apellidos, Nombres" o heurística por tokens.
type Employee struct {
	ID             string
	CompanyID      string
	IdentType      string // ver constantes IdentType*
	Identification string // número de documento, solo dígitos para la DIAN
	FullName       string
	Email          string
	Address        string
	Municipality   string // código DANE del municipio
	Department     string // código DANE del departamento

	// Datos de pago.
	PaymentMethod string // ver constantes PaymentMethod*
	Bank          string
	AccountType   string // AHORROS | CORRIENTE
	AccountNumber string

	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
