package nomina

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
	"github.com/tu-usuario/nomina-pro/internal/payroll"
	"github.com/tu-usuario/nomina-pro/pkg/config"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

// zona horaria fija de Colombia para fecha y hora de generación
var bogota = time.FixedZone("-05:00", -5*3600)

// OrchestratorUseCase gobierna el ciclo del documento consolidado de nómina
// electrónica:
//
//	draft → done (consecutivo de resolución) → envío → accepted | rejected | error
//
// Reenviar un documento aceptado es un no-op sin llamada externa; la consulta de
// estado y la cancelación respetan el mismo estado terminal.
type OrchestratorUseCase struct {
	docs        repository.PayrollDocumentRepository
	resolutions repository.PayrollResolutionRepository
	payslips    repository.PayslipRepository
	companies   repository.CompanyRepository
	employees   repository.EmployeeRepository
	contracts   repository.ContractRepository
	rules       repository.SalaryRuleRepository

	aggregator *AggregatorService
	builder    *DocumentBuilderService
	client     ApidianClient
	cfg        config.ApidianConfig
	log        *logger.Logger
}

// NewOrchestratorUseCase construye el orquestador con todas sus dependencias.
// client puede ser nil solo si la nómina electrónica está deshabilitada.
func NewOrchestratorUseCase(
	docs repository.PayrollDocumentRepository,
	resolutions repository.PayrollResolutionRepository,
	payslips repository.PayslipRepository,
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	contracts repository.ContractRepository,
	rules repository.SalaryRuleRepository,
	aggregator *AggregatorService,
	builder *DocumentBuilderService,
	client ApidianClient,
	cfg config.ApidianConfig,
	log *logger.Logger,
) *OrchestratorUseCase {
	return &OrchestratorUseCase{
		docs:        docs,
		resolutions: resolutions,
		payslips:    payslips,
		companies:   companies,
		employees:   employees,
		contracts:   contracts,
		rules:       rules,
		aggregator:  aggregator,
		builder:     builder,
		client:      client,
		cfg:         cfg,
		log:         log,
	}
}

// GetByID obtiene un documento verificando que pertenezca a la empresa.
func (o *OrchestratorUseCase) GetByID(ctx context.Context, companyID, docID string) (*entity.PayrollDocument, error) {
	doc, err := o.docs.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// ListByCompany lista los documentos consolidados de la empresa.
func (o *OrchestratorUseCase) ListByCompany(ctx context.Context, companyID string) ([]*entity.PayrollDocument, error) {
	return o.docs.ListByCompany(companyID)
}

// Consolidate crea el documento consolidado del mes para un empleado a partir
// de sus nóminas confirmadas del periodo. Nace en draft, sin consecutivo.
func (o *OrchestratorUseCase) Consolidate(ctx context.Context, companyID, employeeID string, year, month int) (*entity.PayrollDocument, error) {
	slips, err := o.payslips.ListForPeriod(companyID, employeeID, year, time.Month(month))
	if err != nil {
		return nil, err
	}
	if len(slips) == 0 {
		return nil, fmt.Errorf("%w: el empleado no tiene nóminas confirmadas en %d-%02d", domain.ErrNotFound, year, month)
	}

	doc := &entity.PayrollDocument{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		State:      entity.DocStateDraft,
		EdiState:   entity.EdiStateToSend,
	}

	// Días trabajados del documento: tiempo laborado base 360 de cada nómina
	// constituyente menos sus ausencias. Una nómina de medio mes reporta medio mes.
	worked, absent := 0, 0
	for _, s := range slips {
		doc.PayslipIDs = append(doc.PayslipIDs, s.ID)
		if !s.PaymentDate.IsZero() {
			doc.PaymentDates = append(doc.PaymentDates, s.PaymentDate)
		}
		worked += payroll.TimeWorked(s.DateFrom, s.DateTo)
		absent += s.AbsentDays()
	}
	doc.WorkedDays = worked - absent
	if doc.WorkedDays < 0 {
		doc.WorkedDays = 0
	}

	if err := o.docs.Create(doc); err != nil {
		return nil, err
	}
	o.log.Info().Str("document_id", doc.ID).Int("nominas", len(slips)).Msg("Documento consolidado creado")
	return doc, nil
}

// Finalize asigna el consecutivo de la resolución activa y pasa el documento a
// done. El consecutivo se reserva bajo bloqueo de fila: dos finalizaciones
// concurrentes nunca comparten número.
func (o *OrchestratorUseCase) Finalize(ctx context.Context, docID string) (*entity.PayrollDocument, error) {
	doc, err := o.docs.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc.State != entity.DocStateDraft {
		return nil, domain.ErrDocumentNotDraft
	}

	typeCode := entity.DocTypePayroll
	if doc.CreditNote {
		typeCode = entity.DocTypePayrollAdjustment
	}
	res, err := o.resolutions.GetActive(ctx, doc.CompanyID, typeCode, doc.Prefix)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrResolutionRequired
		}
		return nil, err
	}

	number, err := o.resolutions.ConsumeNextNumber(ctx, res.ID)
	if err != nil {
		return nil, fmt.Errorf("consumiendo consecutivo de la resolución %s: %w", res.ResolutionNumber, err)
	}

	now := time.Now().In(bogota)
	doc.Prefix = res.Prefix
	doc.Number = number
	doc.Name = res.Prefix + strconv.FormatInt(number, 10)
	doc.Date = now
	doc.IssueTime = now.Format("15:04:05-05:00")
	doc.State = entity.DocStateDone

	if err := o.docs.Update(doc); err != nil {
		return nil, err
	}
	o.log.Info().Str("document_id", doc.ID).Str("numero", doc.Name).Msg("Documento finalizado")
	return doc, nil
}

// Submit envía el documento al proveedor. Idempotente sobre documentos aceptados:
// retorna sin llamada externa. El resultado sincrónico o asíncrono del proveedor
// decide el estado: accepted con CUNE definitivo, o sent con zip key pendiente.
func (o *OrchestratorUseCase) Submit(ctx context.Context, docID string) (*entity.PayrollDocument, error) {
	doc, err := o.docs.GetByID(docID)
	if err != nil {
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 0. Guardas de estado
	// ═══════════════════════════════════════════════════════════════════════════
	if doc.Accepted() {
		o.log.Info().Str("document_id", doc.ID).Msg("Documento ya aceptado, reenvío ignorado")
		return doc, nil
	}
	if doc.State != entity.DocStateDone {
		return nil, domain.ErrDocumentNotFinished
	}

	company, err := o.companies.GetByID(doc.CompanyID)
	if err != nil {
		return nil, err
	}
	if !o.cfg.Enabled {
		return nil, domain.ErrPayrollDisabled
	}
	// Empresa con nómina electrónica apagada: el envío se omite sin error y el
	// documento queda como está, listo para reenviarse al habilitarla.
	if !company.PayrollEnabled {
		o.log.Info().Str("document_id", doc.ID).Str("company_id", company.ID).
			Msg("Nómina electrónica deshabilitada para la empresa, envío omitido")
		return doc, nil
	}

	// markError deja el rastro del fallo en el documento antes de propagar.
	markError := func(step string, cause error) error {
		doc.EdiState = entity.EdiStateError
		doc.StatusMessage = fmt.Sprintf("%s: %v", step, cause)
		if uerr := o.docs.Update(doc); uerr != nil {
			o.log.Error().Err(uerr).Str("document_id", doc.ID).Msg("No se pudo persistir el estado de error")
		}
		o.log.Error().Err(cause).Str("document_id", doc.ID).Str("paso", step).Msg("Envío fallido")
		return cause
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 1. Cargar referencias y construir el documento
	// ═══════════════════════════════════════════════════════════════════════════
	payload, err := o.buildPayload(ctx, doc, company)
	if err != nil {
		return nil, markError("build", err)
	}

	doc.CUNE = payload.CUNE
	doc.AccruedTotal = mustDecimal(payload.AccruedTotal)
	doc.DeductionsTotal = mustDecimal(payload.DeductionsTotal)
	doc.NetTotal = mustDecimal(payload.Total)
	doc.Rounding = mustDecimal(payload.Rounding)

	// ═══════════════════════════════════════════════════════════════════════════
	// 2. Envío al proveedor (set de pruebas solo en habilitación)
	// ═══════════════════════════════════════════════════════════════════════════
	testSetID := ""
	if !company.InProduction {
		testSetID = company.TestSetID
		if testSetID == "" {
			testSetID = o.cfg.TestSetID
		}
	}

	var result *SubmissionResult
	if doc.CreditNote {
		result, err = o.client.SendAdjustment(ctx, payload, testSetID)
	} else {
		result, err = o.client.SendPayroll(ctx, payload, testSetID)
	}
	if err != nil {
		return nil, markError("send", err)
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 3. Aplicar el resultado
	// ═══════════════════════════════════════════════════════════════════════════
	doc.StatusMessage = result.Message
	if result.Immediate {
		doc.EdiState = entity.EdiStateAccepted
		doc.CUNE = result.CUNE
		doc.QRData = qrLink(result.CUNE, company.Environment())
		o.log.Info().Str("document_id", doc.ID).Str("cune", doc.CUNE).Msg("Documento aceptado por la DIAN")
	} else {
		doc.EdiState = entity.EdiStateSent
		doc.ZipKey = result.ZipKey
		o.log.Info().Str("document_id", doc.ID).Str("zip_key", doc.ZipKey).Msg("Documento en cola del proveedor")
	}

	if err := o.docs.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CheckStatus consulta un documento pendiente por su zip key y aplica el
// resultado. Sobre documentos en estado terminal (aceptado o rechazado) es un
// no-op sin llamada externa.
func (o *OrchestratorUseCase) CheckStatus(ctx context.Context, docID string) (*entity.PayrollDocument, error) {
	doc, err := o.docs.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc.Accepted() || doc.Rejected() {
		return doc, nil
	}
	if doc.ZipKey == "" {
		return nil, fmt.Errorf("%w: el documento no tiene zip key pendiente", domain.ErrInvalidInput)
	}

	status, err := o.client.PayrollStatus(ctx, doc.ZipKey)
	if err != nil {
		return nil, err
	}
	if !status.Finished {
		o.log.Info().Str("document_id", doc.ID).Msg("Lote aún en proceso en el proveedor")
		return doc, nil
	}

	company, err := o.companies.GetByID(doc.CompanyID)
	if err != nil {
		return nil, err
	}

	doc.StatusMessage = status.Message
	if status.Accepted {
		doc.EdiState = entity.EdiStateAccepted
		if status.CUNE != "" {
			doc.CUNE = status.CUNE
		}
		doc.QRData = qrLink(doc.CUNE, company.Environment())
		o.log.Info().Str("document_id", doc.ID).Str("cune", doc.CUNE).Msg("Documento aceptado por la DIAN")
	} else {
		doc.EdiState = entity.EdiStateRejected
		doc.EdiErrors = status.Errors
		o.log.Warn().Str("document_id", doc.ID).Str("errores", doc.EdiErrors).Msg("Documento rechazado por la DIAN")
	}

	if err := o.docs.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Cancel cancela un documento local. Un documento aceptado por la DIAN ya no se
// cancela: se corrige con una nota de ajuste.
func (o *OrchestratorUseCase) Cancel(ctx context.Context, docID string) (*entity.PayrollDocument, error) {
	doc, err := o.docs.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc.Accepted() {
		return nil, domain.ErrDocumentAccepted
	}
	doc.State = entity.DocStateCancel
	if err := o.docs.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete elimina un documento en draft o cancelado.
func (o *OrchestratorUseCase) Delete(ctx context.Context, docID string) error {
	doc, err := o.docs.GetByID(docID)
	if err != nil {
		return err
	}
	if !doc.Deletable() {
		return fmt.Errorf("%w: solo se eliminan documentos en draft o cancelados", domain.ErrConflict)
	}
	return o.docs.Delete(docID)
}

// CreateAdjustment crea la nota de ajuste (103) de un documento aceptado, en
// draft y con referencia unidireccional al original.
func (o *OrchestratorUseCase) CreateAdjustment(ctx context.Context, originID string) (*entity.PayrollDocument, error) {
	origin, err := o.docs.GetByID(originID)
	if err != nil {
		return nil, err
	}
	if !origin.Accepted() {
		return nil, fmt.Errorf("%w: solo se ajustan documentos aceptados", domain.ErrConflict)
	}

	doc := &entity.PayrollDocument{
		ID:           uuid.NewString(),
		CompanyID:    origin.CompanyID,
		EmployeeID:   origin.EmployeeID,
		Year:         origin.Year,
		Month:        origin.Month,
		State:        entity.DocStateDraft,
		EdiState:     entity.EdiStateToSend,
		CreditNote:   true,
		OriginID:     &origin.ID,
		WorkedDays:   origin.WorkedDays,
		PaymentDates: origin.PaymentDates,
		PayslipIDs:   origin.PayslipIDs,
	}
	if err := o.docs.Create(doc); err != nil {
		return nil, err
	}
	o.log.Info().Str("document_id", doc.ID).Str("origen", origin.Name).Msg("Nota de ajuste creada")
	return doc, nil
}

// buildPayload carga las referencias del documento, agrega las líneas de sus
// nóminas constituyentes y arma el payload con CUNE.
func (o *OrchestratorUseCase) buildPayload(ctx context.Context, doc *entity.PayrollDocument, company *entity.Company) (*PayrollPayload, error) {
	employee, err := o.employees.GetByID(doc.EmployeeID)
	if err != nil {
		return nil, err
	}
	contract, err := o.contracts.GetActiveByEmployee(doc.EmployeeID)
	if err != nil {
		return nil, err
	}

	ruleList, err := o.rules.ListActive(doc.CompanyID)
	if err != nil {
		return nil, err
	}
	rules := make(map[string]*entity.SalaryRule, len(ruleList))
	for _, r := range ruleList {
		rules[r.Code] = r
	}

	var (
		lines       []entity.PayslipLine
		earnDetails []entity.EarnDetail
		dedDetails  []entity.DeductionDetail
	)
	for _, id := range doc.PayslipIDs {
		slip, err := o.payslips.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("cargando nómina constituyente %s: %w", id, err)
		}
		lines = append(lines, slip.Lines...)
		earnDetails = append(earnDetails, slip.EarnDetails...)
		dedDetails = append(dedDetails, slip.DeductionDetails...)
	}

	var origin *entity.PayrollDocument
	if doc.OriginID != nil {
		if origin, err = o.docs.GetByID(*doc.OriginID); err != nil {
			return nil, err
		}
	}

	return o.builder.Build(&BuildInput{
		Document:    doc,
		Company:     company,
		Employee:    employee,
		Contract:    contract,
		Origin:      origin,
		Aggregate:   o.aggregator.Aggregate(rules, lines, earnDetails, dedDetails),
		SoftwareID:  o.cfg.SoftwareID,
		SoftwarePin: o.cfg.SoftwarePin,
	})
}

const (
	qrBaseHabilitacion = "https://catalogo-vpfe-hab.dian.gov.co/document/searchqr?documentkey="
	qrBaseProduccion   = "https://catalogo-vpfe.dian.gov.co/document/searchqr?documentkey="
)

// mustDecimal revierte los montos formateados del payload; siempre provienen de
// fmtMoney y son parseables.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func qrLink(cune, environment string) string {
	if environment == "1" {
		return qrBaseProduccion + cune
	}
	return qrBaseHabilitacion + cune
}
