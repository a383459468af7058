package nomina_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/dian"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

func TestSplitPersonName_ConvencionConComa(t *testing.T) {
	surname, second, first, others := nomina.SplitPersonName("García Márquez, Gabriel José")

	assert.Equal(t, "García", surname)
	assert.Equal(t, "Márquez", second)
	assert.Equal(t, "Gabriel", first)
	assert.Equal(t, "José", others)
}

func TestSplitPersonName_HeuristicaPorTokens(t *testing.T) {
	casos := []struct {
		nombre                         string
		surname, second, first, others string
	}{
		{"Juan", "", "", "Juan", ""},
		{"Juan Pérez", "Pérez", "", "Juan", ""},
		{"Juan Pérez Gómez", "Pérez", "Gómez", "Juan", ""},
		{"Juan Carlos Pérez Gómez", "Pérez", "Gómez", "Juan", "Carlos"},
		{"Ana María del Pilar Rojas Díaz", "Rojas", "Díaz", "Ana", "María del Pilar"},
		{"", "", "", "", ""},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			surname, second, first, others := nomina.SplitPersonName(c.nombre)
			assert.Equal(t, c.surname, surname)
			assert.Equal(t, c.second, second)
			assert.Equal(t, c.first, first)
			assert.Equal(t, c.others, others)
		})
	}
}

func TestFormatDateHours_FormatoYDegradacion(t *testing.T) {
	fecha := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-15 13:30:00-05:00", nomina.FormatDateHours(&fecha, 13.5))
	assert.Equal(t, "2024-01-15 00:00:00-05:00", nomina.FormatDateHours(&fecha, 0))
	assert.Equal(t, "2024-01-15 23:45:00-05:00", nomina.FormatDateHours(&fecha, 23.75))

	// entradas malformadas degradan a cadena vacía
	assert.Empty(t, nomina.FormatDateHours(nil, 10))
	assert.Empty(t, nomina.FormatDateHours(&fecha, -1))
	assert.Empty(t, nomina.FormatDateHours(&fecha, 24))
}

func entradaDePrueba() *nomina.BuildInput {
	svc := nomina.NewAggregatorService()
	agg := svc.Aggregate(reglasDePrueba(), []entity.PayslipLine{
		{RuleCode: "BASIC", Quantity: decimal.NewFromInt(30), Total: decimal.NewFromInt(1500000)},
		{RuleCode: "SALUD_EMP", Total: decimal.NewFromInt(-60000), Rate: decimal.NewFromInt(4)},
	}, nil, nil)

	inicio := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	return &nomina.BuildInput{
		Document: &entity.PayrollDocument{
			Prefix: "NE", Number: 1, Name: "NE1",
			Year: 2024, Month: 1,
			Date:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			IssueTime: "10:30:00-05:00",
			PaymentDates: []time.Time{
				time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			},
			WorkedDays: 30,
		},
		Company: &entity.Company{
			Name: "Empresa Años S.A.S.", NIT: "900123456", DV: "7",
			Periodicity: "mensual",
		},
		Employee: &entity.Employee{
			ID: "emp-1", IdentType: entity.IdentTypeCC, Identification: "1018456789",
			FullName:     "Peñaranda Gutiérrez, José María",
			Municipality: "11001", Department: "11",
			PaymentMethod: entity.PaymentMethodTransfer,
		},
		Contract: &entity.Contract{
			Wage: decimal.NewFromInt(1500000), TypeWorkerCode: "01",
			SubTypeWorkerCode: "00", TypeContractCode: entity.ContractTypeIndefinite,
			DateStart: inicio,
		},
		Aggregate:   agg,
		SoftwareID:  "soft-1",
		SoftwarePin: "693ff6f2a4",
	}
}

func TestBuild_TotalesYRedondeo(t *testing.T) {
	builder := nomina.NewDocumentBuilderService(dian.NewCuneCalculatorService())

	payload, err := builder.Build(entradaDePrueba())
	require.NoError(t, err)

	assert.Equal(t, "102", payload.TypeXML)
	assert.Equal(t, "2", payload.Environment.Code)
	assert.Equal(t, "1500000.00", payload.AccruedTotal)
	assert.Equal(t, "60000.00", payload.DeductionsTotal)
	assert.Equal(t, "1440000.00", payload.Total)
	assert.Equal(t, "0.00", payload.Rounding)
	assert.Len(t, payload.CUNE, 96)
	assert.Equal(t, 30, payload.Earn.Basic.WorkedDays)
	assert.Equal(t, "1500000.00", payload.Earn.Basic.WorkerSalary)
	require.NotNil(t, payload.Deduction.Health)
	assert.Equal(t, "60000.00", payload.Deduction.Health.Payment)
	assert.Equal(t, "4.00", payload.Deduction.Health.Percentage)
}

func TestBuild_NormalizaNombresParaElProveedor(t *testing.T) {
	builder := nomina.NewDocumentBuilderService(dian.NewCuneCalculatorService())

	payload, err := builder.Build(entradaDePrueba())
	require.NoError(t, err)

	// sin tildes ni eñes, en mayúsculas
	assert.Equal(t, "PENARANDA", payload.Employee.Surname)
	assert.Equal(t, "GUTIERREZ", payload.Employee.SecondSurname)
	assert.Equal(t, "JOSE", payload.Employee.FirstName)
	assert.Equal(t, "MARIA", payload.Employee.OtherNames)
	assert.Equal(t, "EMPRESA ANOS S.A.S.", payload.Employer.Name)
}

func TestBuild_PeriodoYContrato(t *testing.T) {
	builder := nomina.NewDocumentBuilderService(dian.NewCuneCalculatorService())

	payload, err := builder.Build(entradaDePrueba())
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", payload.Period.SettlementStartDate)
	assert.Equal(t, "2024-01-31", payload.Period.SettlementEndDate)
	assert.Equal(t, "2022-03-01", payload.Period.AdmissionDate)
	assert.Empty(t, payload.Period.WithdrawalDate)
	// 2022-03-01 → 2024-01-31 en base 360: 23 meses de 30 días
	assert.Equal(t, 690, payload.Period.AmountTime)
	assert.Equal(t, "5", payload.Info.PayrollPeriodCode)
}

func TestBuild_ErroresBloqueantesPorReferenciasFaltantes(t *testing.T) {
	builder := nomina.NewDocumentBuilderService(dian.NewCuneCalculatorService())

	in := entradaDePrueba()
	in.Contract = nil
	_, err := builder.Build(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = entradaDePrueba()
	in.Employee = nil
	_, err = builder.Build(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// sin consecutivo asignado no hay documento válido
	in = entradaDePrueba()
	in.Document.Number = 0
	in.Document.Name = ""
	_, err = builder.Build(in)
	assert.ErrorIs(t, err, domain.ErrResolutionRequired)
}

func TestBuild_NotaDeAjusteExigePredecesor(t *testing.T) {
	builder := nomina.NewDocumentBuilderService(dian.NewCuneCalculatorService())

	in := entradaDePrueba()
	in.Document.CreditNote = true
	_, err := builder.Build(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin documento original no hay nota de ajuste")

	in.Origin = &entity.PayrollDocument{
		Prefix: "NE", Number: 1,
		CUNE: "abc123",
		Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	payload, err := builder.Build(in)
	require.NoError(t, err)
	assert.Equal(t, "103", payload.TypeXML)
	require.NotNil(t, payload.Predecessor)
	assert.Equal(t, int64(1), payload.Predecessor.SequenceNumber)
	assert.Equal(t, "abc123", payload.Predecessor.CUNE)
	assert.Equal(t, "1", payload.NoteType)
}
