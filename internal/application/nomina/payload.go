package nomina

// Estructura JSON del documento de nómina electrónica que consume el proveedor.
// Los montos viajan como cadenas con dos decimales fijos (mismo formato que las
// entradas del CUNE), las cantidades como enteros o cadenas según el campo.

// PayrollPayload es el documento completo listo para enviar.
type PayrollPayload struct {
	TypeXML     string             `json:"type_xml"` // 102 nómina | 103 nota de ajuste
	Environment PayloadEnvironment `json:"environment"`
	CUNE        string             `json:"cune"`

	Sequence PayloadSequence  `json:"sequence"`
	Period   PayloadPeriod    `json:"period"`
	Info     PayloadInfo      `json:"information"`
	Employer PayloadEmployer  `json:"employer"`
	Employee PayloadEmployee  `json:"employee"`
	Payment  PayloadPayment   `json:"payment"`
	Dates    []PayloadPayDate `json:"payment_dates"`
	Provider PayloadProvider  `json:"provider"`

	Earn      PayloadEarn      `json:"earn"`
	Deduction PayloadDeduction `json:"deduction"`

	AccruedTotal    string `json:"accrued_total"`
	DeductionsTotal string `json:"deductions_total"`
	Total           string `json:"total"`
	Rounding        string `json:"rounding"`

	Notes []PayloadNote `json:"notes,omitempty"`

	// Solo en notas de ajuste (103).
	NoteType    string              `json:"note_type,omitempty"`
	Predecessor *PayloadPredecessor `json:"predecessor,omitempty"`
}

type PayloadEnvironment struct {
	Code string `json:"code"` // 1 producción | 2 habilitación
}

type PayloadSequence struct {
	Prefix string `json:"prefix"`
	Number int64  `json:"number"`
}

type PayloadPeriod struct {
	DateIssue           string `json:"date_issue"`
	TimeIssue           string `json:"time_issue"`
	SettlementStartDate string `json:"settlement_start_date"`
	SettlementEndDate   string `json:"settlement_end_date"`
	AdmissionDate       string `json:"admission_date"`
	WithdrawalDate      string `json:"withdrawal_date,omitempty"`
	AmountTime          int    `json:"amount_time"` // días trabajados del contrato en base 360
}

type PayloadInfo struct {
	PayrollPeriodCode string `json:"payroll_period_code"` // 4 quincenal | 5 mensual
	CurrencyCode      string `json:"currency_code_alpha"`
	TRM               string `json:"trm"`
}

type PayloadEmployer struct {
	Name             string `json:"name"`
	IDNumber         string `json:"id_number"`
	DV               string `json:"dv"`
	CountryCode      string `json:"country_code"`
	DepartmentCode   string `json:"department_code"`
	MunicipalityCode string `json:"municipality_code"`
	Address          string `json:"address"`
	LanguageCode     string `json:"language_code"`
}

type PayloadEmployee struct {
	TypeWorkerCode    string `json:"type_worker_code"`
	SubTypeWorkerCode string `json:"subtype_worker_code"`
	HighRiskPension   bool   `json:"high_risk_pension"`
	IntegralSalary    bool   `json:"integral_salary"`
	ContractCode      string `json:"contract_code"`
	Salary            string `json:"salary"`
	IDCode            string `json:"id_code"`
	IDNumber          string `json:"id_number"`
	Surname           string `json:"surname"`
	SecondSurname     string `json:"second_surname"`
	FirstName         string `json:"first_name"`
	OtherNames        string `json:"other_names"`
	Address           string `json:"address"`
	CountryCode       string `json:"country_code"`
	DepartmentCode    string `json:"department_code"`
	MunicipalityCode  string `json:"municipality_code"`
	WorkerCode        string `json:"worker_code"`
}

type PayloadPayment struct {
	MethodCode    string `json:"method_code"`
	Bank          string `json:"bank,omitempty"`
	AccountType   string `json:"account_type,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
}

type PayloadPayDate struct {
	Date string `json:"date"`
}

type PayloadProvider struct {
	NIT        string `json:"nit"`
	DV         string `json:"dv"`
	SoftwareID string `json:"software_id"`
}

type PayloadNote struct {
	Text string `json:"text"`
}

type PayloadPredecessor struct {
	SequenceNumber int64  `json:"sequence_number"`
	SequencePrefix string `json:"sequence_prefix"`
	CUNE           string `json:"cune"`
	IssueDate      string `json:"issue_date"`
}

// ── Devengados ──

type PayloadEarn struct {
	Basic PayloadBasic `json:"basic"`

	Transports          []PayloadTransport  `json:"transports,omitempty"`
	OvertimesSurcharges []PayloadOvertime   `json:"overtimes_surcharges,omitempty"`
	Vacation            *PayloadVacation    `json:"vacation,omitempty"`
	Primas              *PayloadPrimas      `json:"primas,omitempty"`
	Layoffs             *PayloadLayoffs     `json:"layoffs,omitempty"`
	Incapacities        []PayloadIncapacity `json:"incapacities,omitempty"`
	Licensings          *PayloadLicensings  `json:"licensings,omitempty"`
	LegalStrikes        []PayloadDateRange  `json:"legal_strikes,omitempty"`

	Bonuses            []PayloadSplitAmount   `json:"bonuses,omitempty"`
	Assistances        []PayloadSplitAmount   `json:"assistances,omitempty"`
	Compensations      []PayloadCompensations `json:"compensations,omitempty"`
	Vouchers           []PayloadVouchers      `json:"vouchers,omitempty"`
	Commissions        []PayloadAmount        `json:"commissions,omitempty"`
	ThirdPartyPayments []PayloadAmount        `json:"third_party_payments,omitempty"`
	Advances           []PayloadAmount        `json:"advances,omitempty"`
	OtherConcepts      []PayloadDescribed     `json:"other_concepts,omitempty"`

	Endowment              string `json:"endowment,omitempty"`
	SustainmentSupport     string `json:"sustainment_support,omitempty"`
	Telecommuting          string `json:"telecommuting,omitempty"`
	CompanyWithdrawalBonus string `json:"company_withdrawal_bonus,omitempty"`
	Compensation           string `json:"compensation,omitempty"`
	Refund                 string `json:"refund,omitempty"`
}

type PayloadBasic struct {
	WorkedDays   int    `json:"worked_days"`
	WorkerSalary string `json:"worker_salary"`
}

type PayloadTransport struct {
	Assistance      string `json:"assistance,omitempty"`
	Viatic          string `json:"viatic,omitempty"`
	NonSalaryViatic string `json:"non_salary_viatic,omitempty"`
}

type PayloadOvertime struct {
	Quantity   string `json:"quantity"`
	TimeCode   int    `json:"time_code"` // 1..7 según tabla DIAN TipoHora
	Percentage string `json:"percentage"`
	Payment    string `json:"payment"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
}

type PayloadVacation struct {
	Common      []PayloadQuantityPayment `json:"common,omitempty"`
	Compensated []PayloadQuantityPayment `json:"compensated,omitempty"`
}

type PayloadQuantityPayment struct {
	Quantity int    `json:"quantity"`
	Payment  string `json:"payment"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

type PayloadPrimas struct {
	Quantity         int    `json:"quantity"`
	Payment          string `json:"payment"`
	NonSalaryPayment string `json:"non_salary_payment,omitempty"`
}

type PayloadLayoffs struct {
	Payment         string `json:"payment"`
	Percentage      string `json:"percentage"`
	InterestPayment string `json:"interest_payment"`
}

type PayloadIncapacity struct {
	Quantity       int    `json:"quantity"`
	IncapacityCode int    `json:"incapacity_code"` // 1 común | 2 profesional | 3 laboral
	Payment        string `json:"payment"`
	Start          string `json:"start,omitempty"`
	End            string `json:"end,omitempty"`
}

type PayloadLicensings struct {
	MaternityOrPaternity []PayloadQuantityPayment `json:"licensings_maternity_or_paternity_leaves,omitempty"`
	PermitOrPaid         []PayloadQuantityPayment `json:"licensings_permit_or_paid_licenses,omitempty"`
	SuspensionOrUnpaid   []PayloadQuantityPayment `json:"licensings_suspension_or_unpaid_leaves,omitempty"`
}

type PayloadDateRange struct {
	Quantity int    `json:"quantity"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

type PayloadSplitAmount struct {
	Payment          string `json:"payment,omitempty"`
	NonSalaryPayment string `json:"non_salary_payment,omitempty"`
}

type PayloadCompensations struct {
	Ordinary      string `json:"ordinary,omitempty"`
	Extraordinary string `json:"extraordinary,omitempty"`
}

type PayloadVouchers struct {
	Payment              string `json:"payment,omitempty"`
	NonSalaryPayment     string `json:"non_salary_payment,omitempty"`
	SalaryFoodPayment    string `json:"salary_food_payment,omitempty"`
	NonSalaryFoodPayment string `json:"non_salary_food_payment,omitempty"`
}

type PayloadAmount struct {
	Payment string `json:"payment"`
}

type PayloadDescribed struct {
	Description      string `json:"description"`
	Payment          string `json:"payment,omitempty"`
	NonSalaryPayment string `json:"non_salary_payment,omitempty"`
}

// ── Deducciones ──

type PayloadDeduction struct {
	Health              *PayloadRatedPayment `json:"health,omitempty"`
	PensionFund         *PayloadRatedPayment `json:"pension_fund,omitempty"`
	PensionSecurityFund *PayloadFSP          `json:"pension_security_fund,omitempty"`
	TradeUnions         []PayloadUnionDue    `json:"trade_unions,omitempty"`
	Sanctions           []PayloadSanction    `json:"sanctions,omitempty"`
	Libranzas           []PayloadLibranza    `json:"libranzas,omitempty"`
	ThirdPartyPayments  []PayloadAmount      `json:"third_party_payments,omitempty"`
	Advances            []PayloadAmount      `json:"advances,omitempty"`
	OtherDeductions     []PayloadDescribed   `json:"other_deductions,omitempty"`

	VoluntaryPension   string `json:"voluntary_pension,omitempty"`
	WithholdingSource  string `json:"withholding_source,omitempty"`
	AFC                string `json:"afc,omitempty"`
	Cooperative        string `json:"cooperative,omitempty"`
	TaxLien            string `json:"tax_lien,omitempty"`
	ComplementaryPlans string `json:"complementary_plans,omitempty"`
	Education          string `json:"education,omitempty"`
	Refund             string `json:"refund,omitempty"`
	Debt               string `json:"debt,omitempty"`
}

type PayloadRatedPayment struct {
	Percentage string `json:"percentage"`
	Payment    string `json:"payment"`
}

type PayloadFSP struct {
	Percentage            string `json:"percentage"`
	Payment               string `json:"payment"`
	PercentageSubsistence string `json:"percentage_subsistence"`
	PaymentSubsistence    string `json:"payment_subsistence"`
}

type PayloadUnionDue struct {
	Description string `json:"description"`
	Percentage  string `json:"percentage"`
	Payment     string `json:"payment"`
}

type PayloadSanction struct {
	PaymentPublic  string `json:"payment_public"`
	PaymentPrivate string `json:"payment_private"`
}

type PayloadLibranza struct {
	Description string `json:"description"`
	Payment     string `json:"payment"`
}
