package entity

// EarnCategory clasifica un concepto devengado del documento de nómina electrónica.
// Enumeración cerrada: el agregador hace match exhaustivo sobre estos valores y la
// política de fusión (sumado vs. detalle) se define por categoría, no por flujo de control.
type EarnCategory string

const (
	EarnBasic                     EarnCategory = "basic"
	EarnVacationCommon            EarnCategory = "vacation_common"
	EarnVacationCompensated       EarnCategory = "vacation_compensated"
	EarnPrimas                    EarnCategory = "primas"
	EarnPrimasNonSalary           EarnCategory = "primas_non_salary"
	EarnLayoffs                   EarnCategory = "layoffs"
	EarnLayoffsInterest           EarnCategory = "layoffs_interest"
	EarnLicensingsMaternity       EarnCategory = "licensings_maternity_or_paternity_leaves"
	EarnLicensingsPermit          EarnCategory = "licensings_permit_or_paid_licenses"
	EarnLicensingsSuspension      EarnCategory = "licensings_suspension_or_unpaid_leaves"
	EarnEndowment                 EarnCategory = "endowment"
	EarnSustainmentSupport        EarnCategory = "sustainment_support"
	EarnTelecommuting             EarnCategory = "telecommuting"
	EarnCompanyWithdrawalBonus    EarnCategory = "company_withdrawal_bonus"
	EarnCompensation              EarnCategory = "compensation"
	EarnRefund                    EarnCategory = "refund"
	EarnTransportsAssistance      EarnCategory = "transports_assistance"
	EarnTransportsViatic          EarnCategory = "transports_viatic"
	EarnTransportsNonSalaryViatic EarnCategory = "transports_non_salary_viatic"
	EarnOvertimeDay               EarnCategory = "daily_overtime"
	EarnOvertimeNight             EarnCategory = "overtime_night_hours"
	EarnSurchargeNight            EarnCategory = "hours_night_surcharge"
	EarnOvertimeDaySunday         EarnCategory = "sunday_holiday_daily_overtime"
	EarnSurchargeDaySunday        EarnCategory = "daily_surcharge_hours_sundays_holidays"
	EarnOvertimeNightSunday       EarnCategory = "sunday_night_overtime_holidays"
	EarnSurchargeNightSunday      EarnCategory = "sunday_holidays_night_surcharge_hours"
	EarnIncapacityCommon          EarnCategory = "incapacities_common"
	EarnIncapacityProfessional    EarnCategory = "incapacities_professional"
	EarnIncapacityWorking         EarnCategory = "incapacities_working"
	EarnBonuses                   EarnCategory = "bonuses"
	EarnBonusesNonSalary          EarnCategory = "bonuses_non_salary"
	EarnAssistances               EarnCategory = "assistances"
	EarnAssistancesNonSalary      EarnCategory = "assistances_non_salary"
	EarnLegalStrikes              EarnCategory = "legal_strikes"
	EarnOtherConcepts             EarnCategory = "other_concepts"
	EarnOtherConceptsNonSalary    EarnCategory = "other_concepts_non_salary"
	EarnCompensationsOrdinary     EarnCategory = "compensations_ordinary"
	EarnCompensationsExtra        EarnCategory = "compensations_extraordinary"
	EarnVouchers                  EarnCategory = "vouchers"
	EarnVouchersNonSalary         EarnCategory = "vouchers_non_salary"
	EarnVouchersSalaryFood        EarnCategory = "vouchers_salary_food"
	EarnVouchersNonSalaryFood     EarnCategory = "vouchers_non_salary_food"
	EarnCommissions               EarnCategory = "commissions"
	EarnThirdPartyPayments        EarnCategory = "third_party_payments"
	EarnAdvances                  EarnCategory = "advances"
)

// DeductionCategory clasifica un concepto de deducción del documento.
type DeductionCategory string

const (
	DeductionHealth                 DeductionCategory = "health"
	DeductionPensionFund            DeductionCategory = "pension_fund"
	DeductionPensionSecurityFund    DeductionCategory = "pension_security_fund"
	DeductionPensionSecuritySubsist DeductionCategory = "pension_security_fund_subsistence"
	DeductionVoluntaryPension       DeductionCategory = "voluntary_pension"
	DeductionWithholdingSource      DeductionCategory = "withholding_source"
	DeductionAFC                    DeductionCategory = "afc"
	DeductionCooperative            DeductionCategory = "cooperative"
	DeductionTaxLien                DeductionCategory = "tax_lien"
	DeductionComplementaryPlans     DeductionCategory = "complementary_plans"
	DeductionEducation              DeductionCategory = "education"
	DeductionRefund                 DeductionCategory = "refund"
	DeductionDebt                   DeductionCategory = "debt"
	DeductionTradeUnions            DeductionCategory = "trade_unions"
	DeductionSanctionsPublic        DeductionCategory = "sanctions_public"
	DeductionSanctionsPrivate       DeductionCategory = "sanctions_private"
	DeductionLibranzas              DeductionCategory = "libranzas"
	DeductionThirdPartyPayments     DeductionCategory = "third_party_payments"
	DeductionAdvances               DeductionCategory = "advances"
	DeductionOtherDeductions        DeductionCategory = "other_deductions"
)

// Códigos DIAN de tipo de hora extra / recargo (campo TipoHora del anexo técnico).
var OvertimeTypeCodes = map[EarnCategory]int{
	EarnOvertimeDay:          1,
	EarnOvertimeNight:        2,
	EarnSurchargeNight:       3,
	EarnOvertimeDaySunday:    4,
	EarnSurchargeDaySunday:   5,
	EarnOvertimeNightSunday:  6,
	EarnSurchargeNightSunday: 7,
}

// SurchargeOnly marca las categorías que remuneran solo el recargo porcentual;
// la hora ordinaria ya está pagada en el básico. Las horas extra pagan la hora
// completa más el recargo.
func (c EarnCategory) SurchargeOnly() bool {
	switch c {
	case EarnSurchargeNight, EarnSurchargeDaySunday, EarnSurchargeNightSunday:
		return true
	}
	return false
}

// Códigos DIAN de tipo de incapacidad.
var IncapacityTypeCodes = map[EarnCategory]int{
	EarnIncapacityCommon:       1, // enfermedad general
	EarnIncapacityProfessional: 2, // enfermedad profesional
	EarnIncapacityWorking:      3, // accidente de trabajo
}
