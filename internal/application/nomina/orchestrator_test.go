package nomina_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/dian"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/pkg/config"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

// ── fakes en memoria ──

type fakeDocRepo struct {
	docs map[string]*entity.PayrollDocument
}

func (f *fakeDocRepo) Create(d *entity.PayrollDocument) error { f.docs[d.ID] = d; return nil }
func (f *fakeDocRepo) Update(d *entity.PayrollDocument) error { f.docs[d.ID] = d; return nil }
func (f *fakeDocRepo) GetByID(id string) (*entity.PayrollDocument, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copia := *d
	return &copia, nil
}
func (f *fakeDocRepo) Delete(id string) error                                  { delete(f.docs, id); return nil }
func (f *fakeDocRepo) ListByCompany(string) ([]*entity.PayrollDocument, error) { return nil, nil }

type fakeResolutionRepo struct {
	active *entity.PayrollResolution
	next   int64
}

func (f *fakeResolutionRepo) Create(*entity.PayrollResolution) error { return nil }
func (f *fakeResolutionRepo) Update(*entity.PayrollResolution) error { return nil }
func (f *fakeResolutionRepo) GetByID(string) (*entity.PayrollResolution, error) {
	return f.active, nil
}
func (f *fakeResolutionRepo) GetActive(context.Context, string, string, string) (*entity.PayrollResolution, error) {
	if f.active == nil {
		return nil, domain.ErrNotFound
	}
	return f.active, nil
}
func (f *fakeResolutionRepo) ListActiveByType(string, string, string) ([]*entity.PayrollResolution, error) {
	return nil, nil
}
func (f *fakeResolutionRepo) ConsumeNextNumber(context.Context, string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakePayslipRepo struct {
	slips     map[string]*entity.Payslip
	replaced  []entity.PayslipLine
	prevIBC   decimal.Decimal
	prevFound bool
}

func (f *fakePayslipRepo) Create(p *entity.Payslip) error { f.slips[p.ID] = p; return nil }
func (f *fakePayslipRepo) Update(p *entity.Payslip) error { f.slips[p.ID] = p; return nil }
func (f *fakePayslipRepo) GetByID(id string) (*entity.Payslip, error) {
	p, ok := f.slips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (f *fakePayslipRepo) ReplaceLines(_ string, lines []entity.PayslipLine) error {
	f.replaced = lines
	return nil
}
func (f *fakePayslipRepo) ListForPeriod(string, string, int, time.Month) ([]*entity.Payslip, error) {
	var out []*entity.Payslip
	for _, p := range f.slips {
		out = append(out, p)
	}
	return out, nil
}
func (f *fakePayslipRepo) PreviousMonthIBC(string, time.Time) (decimal.Decimal, bool, error) {
	return f.prevIBC, f.prevFound, nil
}

type fakeCompanyRepo struct{ company *entity.Company }

func (f *fakeCompanyRepo) Create(*entity.Company) error { return nil }
func (f *fakeCompanyRepo) Update(*entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(string) (*entity.Company, error) {
	return f.company, nil
}
func (f *fakeCompanyRepo) List() ([]*entity.Company, error) { return nil, nil }

type fakeEmployeeRepo struct{ employee *entity.Employee }

func (f *fakeEmployeeRepo) Create(*entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) Update(*entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByID(string) (*entity.Employee, error) {
	return f.employee, nil
}
func (f *fakeEmployeeRepo) ListByCompany(string) ([]*entity.Employee, error) { return nil, nil }

type fakeContractRepo struct{ contract *entity.Contract }

func (f *fakeContractRepo) Create(*entity.Contract) error { return nil }
func (f *fakeContractRepo) Update(*entity.Contract) error { return nil }
func (f *fakeContractRepo) GetByID(string) (*entity.Contract, error) {
	return f.contract, nil
}
func (f *fakeContractRepo) GetActiveByEmployee(string) (*entity.Contract, error) {
	return f.contract, nil
}

type fakeRuleRepo struct{ rules map[string]*entity.SalaryRule }

func (f *fakeRuleRepo) GetByCode(_, code string) (*entity.SalaryRule, error) {
	r, ok := f.rules[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}
func (f *fakeRuleRepo) ListActive(string) ([]*entity.SalaryRule, error) {
	var out []*entity.SalaryRule
	for _, r := range f.rules {
		out = append(out, r)
	}
	return out, nil
}

type fakeApidianClient struct {
	sendCalls    int
	statusCalls  int
	sendResult   *nomina.SubmissionResult
	statusResult *nomina.StatusResult
	sendErr      error
}

func (f *fakeApidianClient) SendPayroll(context.Context, *nomina.PayrollPayload, string) (*nomina.SubmissionResult, error) {
	f.sendCalls++
	return f.sendResult, f.sendErr
}
func (f *fakeApidianClient) SendAdjustment(ctx context.Context, p *nomina.PayrollPayload, ts string) (*nomina.SubmissionResult, error) {
	return f.SendPayroll(ctx, p, ts)
}
func (f *fakeApidianClient) PayrollStatus(context.Context, string) (*nomina.StatusResult, error) {
	f.statusCalls++
	return f.statusResult, nil
}
func (f *fakeApidianClient) ConfigureSoftware(context.Context, string, string) error    { return nil }
func (f *fakeApidianClient) ConfigureCertificate(context.Context, string, string) error { return nil }
func (f *fakeApidianClient) ConfigureResolution(context.Context, *entity.PayrollResolution) error {
	return nil
}

// ── fixture ──

type orchestratorFixture struct {
	uc      *nomina.OrchestratorUseCase
	docs    *fakeDocRepo
	client  *fakeApidianClient
	res     *fakeResolutionRepo
	slips   *fakePayslipRepo
	company *fakeCompanyRepo
}

func nuevoOrquestador(t *testing.T) *orchestratorFixture {
	t.Helper()

	inicio := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	docs := &fakeDocRepo{docs: make(map[string]*entity.PayrollDocument)}
	client := &fakeApidianClient{}
	res := &fakeResolutionRepo{active: &entity.PayrollResolution{
		ID: "res-1", ResolutionNumber: "18760000001", Prefix: "NE",
		TypeDocumentCode: entity.DocTypePayroll,
		FromNumber:       1, ToNumber: 10000, State: entity.ResolutionActive,
	}}
	slips := &fakePayslipRepo{slips: map[string]*entity.Payslip{
		"slip-1": {
			ID: "slip-1", CompanyID: "co-1", EmployeeID: "emp-1", ContractID: "ct-1",
			State:    entity.PayslipStateDone,
			DateFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			Lines: []entity.PayslipLine{
				{RuleCode: "BASIC", Quantity: decimal.NewFromInt(30), Total: decimal.NewFromInt(1500000)},
				{RuleCode: "SALUD_EMP", Total: decimal.NewFromInt(-60000), Rate: decimal.NewFromInt(4)},
			},
			PaymentDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}}
	company := &fakeCompanyRepo{company: &entity.Company{
		ID: "co-1", Name: "Empresa SAS", NIT: "900123456", DV: "7",
		Periodicity: "mensual", PayrollEnabled: true,
		TestSetID: "ts-1",
	}}

	uc := nomina.NewOrchestratorUseCase(
		docs, res, slips,
		company,
		&fakeEmployeeRepo{employee: &entity.Employee{
			ID: "emp-1", IdentType: entity.IdentTypeCC, Identification: "1018456789",
			FullName: "Pérez Gómez, Juan", PaymentMethod: entity.PaymentMethodTransfer,
		}},
		&fakeContractRepo{contract: &entity.Contract{
			ID: "ct-1", Wage: decimal.NewFromInt(1500000), TypeWorkerCode: "01",
			SubTypeWorkerCode: "00", TypeContractCode: entity.ContractTypeIndefinite,
			DateStart: inicio,
		}},
		&fakeRuleRepo{rules: reglasDePrueba()},
		nomina.NewAggregatorService(),
		nomina.NewDocumentBuilderService(dian.NewCuneCalculatorService()),
		client,
		config.ApidianConfig{Enabled: true, SoftwareID: "soft-1", SoftwarePin: "693ff6f2a4"},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	return &orchestratorFixture{uc: uc, docs: docs, client: client, res: res, slips: slips, company: company}
}

func (fx *orchestratorFixture) documentoFinalizado() *entity.PayrollDocument {
	doc := &entity.PayrollDocument{
		ID: "doc-1", CompanyID: "co-1", EmployeeID: "emp-1",
		Prefix: "NE", Number: 1, Name: "NE1",
		Year: 2024, Month: 1,
		Date:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		IssueTime: "10:30:00-05:00",
		State:     entity.DocStateDone, EdiState: entity.EdiStateToSend,
		PayslipIDs: []string{"slip-1"},
		WorkedDays: 30,
	}
	fx.docs.docs[doc.ID] = doc
	return doc
}

// ── pruebas ──

func TestSubmit_DocumentoAceptadoEsNoOpSinLlamadaExterna(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	doc.EdiState = entity.EdiStateAccepted
	doc.CUNE = "cune-previo"

	out, err := fx.uc.Submit(context.Background(), doc.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateAccepted, out.EdiState)
	assert.Equal(t, "cune-previo", out.CUNE)
	assert.Zero(t, fx.client.sendCalls, "un documento aceptado nunca debe reenviarse")
}

func TestSubmit_RespuestaSincronicaAcepta(t *testing.T) {
	fx := nuevoOrquestador(t)
	fx.documentoFinalizado()
	// un cuerpo de más de 36 caracteres ya llegó traducido como Immediate+CUNE
	cune := "0123456789abcdef0123456789abcdef0123456789abcdef"
	fx.client.sendResult = &nomina.SubmissionResult{Immediate: true, CUNE: cune, Message: "Procesado Correctamente"}

	out, err := fx.uc.Submit(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateAccepted, out.EdiState)
	assert.Equal(t, cune, out.CUNE)
	assert.Contains(t, out.QRData, "catalogo-vpfe-hab", "en habilitación el QR apunta al catálogo hab")
	assert.Contains(t, out.QRData, cune)
	assert.Equal(t, 1, fx.client.sendCalls)
}

func TestSubmit_RespuestaEnColaQuedaPendiente(t *testing.T) {
	fx := nuevoOrquestador(t)
	fx.documentoFinalizado()
	fx.client.sendResult = &nomina.SubmissionResult{Immediate: false, ZipKey: "zip-abc", Message: "En cola"}

	out, err := fx.uc.Submit(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateSent, out.EdiState)
	assert.Equal(t, "zip-abc", out.ZipKey)
	assert.Empty(t, out.QRData)
}

func TestSubmit_GuardasDeEstado(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	doc.State = entity.DocStateDraft

	_, err := fx.uc.Submit(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFinished)
	assert.Zero(t, fx.client.sendCalls)
}

func TestSubmit_ErrorDelProveedorDejaRastro(t *testing.T) {
	fx := nuevoOrquestador(t)
	fx.documentoFinalizado()
	fx.client.sendErr = assert.AnError

	_, err := fx.uc.Submit(context.Background(), "doc-1")

	require.Error(t, err)
	persistido := fx.docs.docs["doc-1"]
	assert.Equal(t, entity.EdiStateError, persistido.EdiState)
	assert.Contains(t, persistido.StatusMessage, "send:")
}

func TestCheckStatus_AplicaAceptacionYRechazo(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	doc.EdiState = entity.EdiStateSent
	doc.ZipKey = "zip-abc"

	fx.client.statusResult = &nomina.StatusResult{Finished: true, Accepted: true, CUNE: "cune-final"}
	out, err := fx.uc.CheckStatus(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateAccepted, out.EdiState)
	assert.Equal(t, "cune-final", out.CUNE)

	// una vez aceptado, consultar de nuevo no toca el documento ni llama al proveedor
	llamadas := fx.client.statusCalls
	out, err = fx.uc.CheckStatus(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateAccepted, out.EdiState)
	assert.Equal(t, llamadas, fx.client.statusCalls)
}

func TestCheckStatus_RechazoConservaErrores(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	doc.EdiState = entity.EdiStateSent
	doc.ZipKey = "zip-abc"
	fx.client.statusResult = &nomina.StatusResult{
		Finished: true, Accepted: false,
		Message: "Documento con errores",
		Errors:  "Regla: NIE020, Rechazo: valor no corresponde",
	}

	out, err := fx.uc.CheckStatus(context.Background(), doc.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateRejected, out.EdiState)
	assert.Contains(t, out.EdiErrors, "NIE020")
}

func TestCheckStatus_LotePendienteNoCambiaEstado(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	doc.EdiState = entity.EdiStateSent
	doc.ZipKey = "zip-abc"
	fx.client.statusResult = &nomina.StatusResult{Finished: false}

	out, err := fx.uc.CheckStatus(context.Background(), doc.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateSent, out.EdiState)
}

func TestFinalize_AsignaConsecutivoDeLaResolucion(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := &entity.PayrollDocument{
		ID: "doc-d", CompanyID: "co-1", EmployeeID: "emp-1",
		Year: 2024, Month: 1, State: entity.DocStateDraft,
	}
	fx.docs.docs[doc.ID] = doc

	out, err := fx.uc.Finalize(context.Background(), doc.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.DocStateDone, out.State)
	assert.Equal(t, "NE", out.Prefix)
	assert.Equal(t, int64(1), out.Number)
	assert.Equal(t, "NE1", out.Name)
	assert.NotEmpty(t, out.IssueTime)

	// el siguiente documento recibe el siguiente número, nunca el mismo
	doc2 := &entity.PayrollDocument{
		ID: "doc-d2", CompanyID: "co-1", EmployeeID: "emp-1",
		Year: 2024, Month: 2, State: entity.DocStateDraft,
	}
	fx.docs.docs[doc2.ID] = doc2
	out2, err := fx.uc.Finalize(context.Background(), doc2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out2.Number)
}

func TestFinalize_SinResolucionActiva(t *testing.T) {
	fx := nuevoOrquestador(t)
	fx.res.active = nil
	doc := &entity.PayrollDocument{ID: "doc-d", CompanyID: "co-1", State: entity.DocStateDraft}
	fx.docs.docs[doc.ID] = doc

	_, err := fx.uc.Finalize(context.Background(), doc.ID)

	assert.ErrorIs(t, err, domain.ErrResolutionRequired)
}

func TestCancel_BloqueadoTrasAceptacion(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	doc.EdiState = entity.EdiStateAccepted

	_, err := fx.uc.Cancel(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentAccepted)

	doc.EdiState = entity.EdiStateToSend
	out, err := fx.uc.Cancel(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStateCancel, out.State)
}

func TestCreateAdjustment_SoloDesdeAceptados(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()

	_, err := fx.uc.CreateAdjustment(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	doc.EdiState = entity.EdiStateAccepted
	doc.CUNE = "cune-original"
	nota, err := fx.uc.CreateAdjustment(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.True(t, nota.CreditNote)
	assert.Equal(t, entity.DocStateDraft, nota.State)
	require.NotNil(t, nota.OriginID)
	assert.Equal(t, doc.ID, *nota.OriginID)
}

func TestConsolidate_CreaDraftConNominasDelPeriodo(t *testing.T) {
	fx := nuevoOrquestador(t)

	doc, err := fx.uc.Consolidate(context.Background(), "co-1", "emp-1", 2024, 1)

	require.NoError(t, err)
	assert.Equal(t, entity.DocStateDraft, doc.State)
	assert.Equal(t, entity.EdiStateToSend, doc.EdiState)
	assert.Equal(t, []string{"slip-1"}, doc.PayslipIDs)
	assert.Equal(t, 30, doc.WorkedDays)
	assert.Len(t, doc.PaymentDates, 1)
}

func TestConsolidate_IngresoAMitadDeMesReportaDiasParciales(t *testing.T) {
	fx := nuevoOrquestador(t)
	// contratado el 20: la única nómina del mes cubre del 20 al 31
	fx.slips.slips = map[string]*entity.Payslip{
		"slip-parcial": {
			ID: "slip-parcial", CompanyID: "co-1", EmployeeID: "emp-1", ContractID: "ct-1",
			State:       entity.PayslipStateDone,
			DateFrom:    time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			DateTo:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			PaymentDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	doc, err := fx.uc.Consolidate(context.Background(), "co-1", "emp-1", 2024, 1)

	require.NoError(t, err)
	assert.Equal(t, 11, doc.WorkedDays, "el tiempo laborado sale del periodo de la nómina, no del mes teórico")
}

func TestConsolidate_DescuentaAusenciasDelTiempoLaborado(t *testing.T) {
	fx := nuevoOrquestador(t)
	fx.slips.slips["slip-1"].Leaves = []entity.Leave{{
		TypeCode: entity.LeaveUnpaid,
		DateFrom: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		Days:     5, ReducesBase: true,
	}}

	doc, err := fx.uc.Consolidate(context.Background(), "co-1", "emp-1", 2024, 1)

	require.NoError(t, err)
	assert.Equal(t, 25, doc.WorkedDays)
}

func TestSubmit_EmpresaDeshabilitadaOmiteElEnvio(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	fx.company.company.PayrollEnabled = false

	out, err := fx.uc.Submit(context.Background(), doc.ID)

	require.NoError(t, err, "una empresa con nómina electrónica apagada no es un error")
	assert.Equal(t, entity.EdiStateToSend, out.EdiState)
	assert.Zero(t, fx.client.sendCalls)

	// al habilitarla, el mismo documento se envía con normalidad
	fx.company.company.PayrollEnabled = true
	fx.client.sendResult = &nomina.SubmissionResult{Immediate: false, ZipKey: "zip-abc"}
	out, err = fx.uc.Submit(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateSent, out.EdiState)
}

func TestCheckStatus_RechazadoEsTerminalSinConsulta(t *testing.T) {
	fx := nuevoOrquestador(t)
	doc := fx.documentoFinalizado()
	doc.EdiState = entity.EdiStateRejected
	doc.ZipKey = "zip-abc"
	doc.EdiErrors = "Regla: NIE020, Rechazo: valor no corresponde"

	out, err := fx.uc.CheckStatus(context.Background(), doc.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.EdiStateRejected, out.EdiState)
	assert.Contains(t, out.EdiErrors, "NIE020")
	assert.Zero(t, fx.client.statusCalls, "un rechazo es terminal, no se vuelve a consultar")
}
