package dto

import "time"

// ── Empresas ──

// CompanyRequest entrada para crear/actualizar un empleador.
type CompanyRequest struct {
	Name               string `json:"name" validate:"required,min=1,max=200"`
	NIT                string `json:"nit" validate:"required,numeric"`
	DV                 string `json:"dv" validate:"required,len=1"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Phone              string `json:"phone"`
	Email              string `json:"email" validate:"omitempty,email"`
	SMMLV              string `json:"smmlv" validate:"required"`
	UVT                string `json:"uvt" validate:"required"`
	TransportAllowance string `json:"transport_allowance" validate:"required"`
	Periodicity        string `json:"periodicity" validate:"omitempty,oneof=mensual quincenal"`
	PayrollEnabled     bool   `json:"payroll_enabled"`
	InProduction       bool   `json:"in_production"`
	TestSetID          string `json:"test_set_id"`
}

// CompanyResponse salida de un empleador.
type CompanyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	NIT                string    `json:"nit"`
	DV                 string    `json:"dv"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	Email              string    `json:"email"`
	SMMLV              string    `json:"smmlv"`
	UVT                string    `json:"uvt"`
	TransportAllowance string    `json:"transport_allowance"`
	Periodicity        string    `json:"periodicity"`
	PayrollEnabled     bool      `json:"payroll_enabled"`
	InProduction       bool      `json:"in_production"`
	TestSetID          string    `json:"test_set_id"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// ── Empleados y contratos ──

// EmployeeRequest entrada para crear/actualizar un trabajador.
type EmployeeRequest struct {
	IdentType      string `json:"ident_type" validate:"required,oneof=13 22 31 47"`
	Identification string `json:"identification" validate:"required,numeric"`
	FullName       string `json:"full_name" validate:"required,min=1,max=200"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address"`
	Municipality   string `json:"municipality"`
	Department     string `json:"department"`
	PaymentMethod  string `json:"payment_method" validate:"omitempty,oneof=10 20 47"`
	Bank           string `json:"bank"`
	AccountType    string `json:"account_type" validate:"omitempty,oneof=AHORROS CORRIENTE"`
	AccountNumber  string `json:"account_number"`
}

// EmployeeResponse salida de un trabajador.
type EmployeeResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	IdentType      string    `json:"ident_type"`
	Identification string    `json:"identification"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Municipality   string    `json:"municipality"`
	Department     string    `json:"department"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ContractRequest entrada para crear/actualizar un contrato.
type ContractRequest struct {
	EmployeeID        string  `json:"employee_id" validate:"required,uuid"`
	Wage              string  `json:"wage" validate:"required"`
	IntegralSalary    bool    `json:"integral_salary"`
	HighRiskPension   bool    `json:"high_risk_pension"`
	TypeWorkerCode    string  `json:"type_worker_code" validate:"required"`
	SubTypeWorkerCode string  `json:"subtype_worker_code"`
	TypeContractCode  string  `json:"type_contract_code" validate:"required,oneof=1 2 3 4 5"`
	ARLRiskLevel      string  `json:"arl_risk_level"`
	SchedulePay       string  `json:"schedule_pay" validate:"omitempty,oneof=mensual quincenal"`
	DateStart         string  `json:"date_start" validate:"required"` // YYYY-MM-DD
	DateEnd           *string `json:"date_end"`
}

// ContractResponse salida de un contrato.
type ContractResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Wage             string  `json:"wage"`
	IntegralSalary   bool    `json:"integral_salary"`
	TypeWorkerCode   string  `json:"type_worker_code"`
	TypeContractCode string  `json:"type_contract_code"`
	DateStart        string  `json:"date_start"`
	DateEnd          *string `json:"date_end,omitempty"`
	Status           string  `json:"status"`
}

// ── Nóminas individuales ──

// PayslipCreateRequest entrada para abrir una nómina de un periodo.
type PayslipCreateRequest struct {
	EmployeeID   string `json:"employee_id" validate:"required,uuid"`
	DateFrom     string `json:"date_from" validate:"required"` // YYYY-MM-DD
	DateTo       string `json:"date_to" validate:"required"`
	PaymentDate  string `json:"payment_date"`
	IsSettlement bool   `json:"is_settlement"`
}

// LeaveRequest ausencia registrada dentro del periodo.
type LeaveRequest struct {
	TypeCode string `json:"type_code" validate:"required"`
	DateFrom string `json:"date_from" validate:"required"`
	DateTo   string `json:"date_to" validate:"required"`
	Days     int    `json:"days" validate:"required,min=1"`
}

// EarnDetailRequest devengado detallado manualmente.
type EarnDetailRequest struct {
	Category    string  `json:"category" validate:"required"`
	Amount      string  `json:"amount" validate:"required"`
	Quantity    string  `json:"quantity"`
	DateStart   *string `json:"date_start"`
	TimeStart   float64 `json:"time_start"`
	DateEnd     *string `json:"date_end"`
	TimeEnd     float64 `json:"time_end"`
	Percentage  string  `json:"percentage"`
	Description string  `json:"description"`
}

// DeductionDetailRequest deducción detallada manualmente.
type DeductionDetailRequest struct {
	Category    string `json:"category" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description"`
}

// PayslipLineResponse línea calculada de la nómina.
type PayslipLineResponse struct {
	RuleCode string `json:"rule_code"`
	RuleName string `json:"rule_name"`
	Quantity string `json:"quantity"`
	Rate     string `json:"rate"`
	Total    string `json:"total"`
}

// PayslipResponse salida de una nómina individual.
type PayslipResponse struct {
	ID           string                `json:"id"`
	EmployeeID   string                `json:"employee_id"`
	DateFrom     string                `json:"date_from"`
	DateTo       string                `json:"date_to"`
	PaymentDate  string                `json:"payment_date"`
	State        string                `json:"state"`
	WorkedDays   int                   `json:"worked_days"`
	IsSettlement bool                  `json:"is_settlement"`
	Lines        []PayslipLineResponse `json:"lines"`
}

// ── Documentos consolidados ──

// ConsolidateRequest entrada para crear el documento del mes.
type ConsolidateRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Year       int    `json:"year" validate:"required,min=2020"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
}

// PayrollDocumentResponse salida del documento consolidado.
type PayrollDocumentResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	Name            string `json:"name"`
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	State           string `json:"state"`
	EdiState        string `json:"edi_state"`
	CreditNote      bool   `json:"credit_note"`
	CUNE            string `json:"cune,omitempty"`
	ZipKey          string `json:"zip_key,omitempty"`
	StatusMessage   string `json:"status_message,omitempty"`
	EdiErrors       string `json:"edi_errors,omitempty"`
	QRData          string `json:"qr_data,omitempty"`
	AccruedTotal    string `json:"accrued_total"`
	DeductionsTotal string `json:"deductions_total"`
	NetTotal        string `json:"net_total"`
	WorkedDays      int    `json:"worked_days"`
}

// ProviderSetupRequest configuración del emisor ante el proveedor tecnológico.
// El certificado va en base64 del .p12; vacío solo registra el software.
type ProviderSetupRequest struct {
	Certificate string `json:"certificate"`
	Password    string `json:"password"`
}

// ── Resoluciones ──

// ResolutionRequest entrada para registrar una resolución de numeración.
type ResolutionRequest struct {
	ResolutionNumber string `json:"resolution_number" validate:"required"`
	TypeDocumentCode string `json:"type_document_code" validate:"required,oneof=9 10"`
	Prefix           string `json:"prefix" validate:"required,max=10"`
	FromNumber       int64  `json:"from_number" validate:"required,min=1"`
	ToNumber         int64  `json:"to_number" validate:"required,min=1"`
	DateFrom         string `json:"date_from" validate:"required"`
	DateTo           string `json:"date_to" validate:"required"`
}

// ResolutionResponse salida de una resolución.
type ResolutionResponse struct {
	ID               string `json:"id"`
	ResolutionNumber string `json:"resolution_number"`
	TypeDocumentCode string `json:"type_document_code"`
	Prefix           string `json:"prefix"`
	FromNumber       int64  `json:"from_number"`
	ToNumber         int64  `json:"to_number"`
	DateFrom         string `json:"date_from"`
	DateTo           string `json:"date_to"`
	State            string `json:"state"`
}

// ── Ítems recurrentes ──

// RecurringItemRequest entrada para crear/actualizar un ítem recurrente.
type RecurringItemRequest struct {
	EmployeeID           string  `json:"employee_id" validate:"required,uuid"`
	Name                 string  `json:"name" validate:"required,min=1,max=200"`
	TypeConcept          string  `json:"type_concept" validate:"required,oneof=earn deduction"`
	Category             string  `json:"category" validate:"required"`
	RuleCode             string  `json:"rule_code" validate:"required"`
	AmountType           string  `json:"amount_type" validate:"required,oneof=fix percentage"`
	Amount               string  `json:"amount" validate:"required"`
	UseInstallments      bool    `json:"use_installments"`
	NumberOfInstallments int     `json:"number_of_installments" validate:"omitempty,min=1"`
	TotalAmount          string  `json:"total_amount"`
	DateFrom             string  `json:"date_from" validate:"required"`
	DateTo               *string `json:"date_to"`
}

// RecurringItemResponse salida de un ítem recurrente.
type RecurringItemResponse struct {
	ID                   string `json:"id"`
	EmployeeID           string `json:"employee_id"`
	Name                 string `json:"name"`
	TypeConcept          string `json:"type_concept"`
	RuleCode             string `json:"rule_code"`
	AmountType           string `json:"amount_type"`
	Amount               string `json:"amount"`
	UseInstallments      bool   `json:"use_installments"`
	NumberOfInstallments int    `json:"number_of_installments"`
	CurrentInstallment   int    `json:"current_installment"`
	RemainingBalance     string `json:"remaining_balance"`
	Active               bool   `json:"active"`
}
