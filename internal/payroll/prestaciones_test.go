package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/payroll"
)

var (
	smmlvTest    = decimal.NewFromInt(1_300_000)
	auxTransTest = decimal.NewFromInt(162_000)
)

func paramsBase() payroll.EntitlementParams {
	return payroll.EntitlementParams{
		Wage:               decimal.NewFromInt(1_300_000),
		ContractStart:      fecha(2024, time.January, 1),
		PeriodEnd:          fecha(2024, time.December, 31),
		SMMLV:              smmlvTest,
		TransportAllowance: auxTransTest,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cesantías: ventana anual, solo diciembre o liquidación, auxilio si se pagó.
// ──────────────────────────────────────────────────────────────────────────────

func TestCesantias_AnioCompletoSinAuxilioEsElSalario(t *testing.T) {
	// Ventana ene 1 – dic 31 = 360 días: cesantías = salario × 360/360 = salario
	p := paramsBase()
	got := payroll.Cesantias(p)
	assert.True(t, got.Equal(p.Wage),
		"cesantías de año completo sin auxilio deben ser exactamente el salario: %s", got)
}

func TestCesantias_IncluyeAuxilioSiSePago(t *testing.T) {
	p := paramsBase()
	p.TransportPaid = true
	want := p.Wage.Add(auxTransTest)
	assert.True(t, payroll.Cesantias(p).Equal(want),
		"el auxilio de transporte entra a la base de cesantías siempre que se haya pagado")
}

func TestCesantias_SoloPagaEnDiciembreOLiquidacion(t *testing.T) {
	p := paramsBase()
	p.PeriodEnd = fecha(2024, time.May, 31)
	assert.True(t, payroll.Cesantias(p).IsZero(), "mayo no es mes de pago de cesantías")

	p.IsSettlement = true
	assert.False(t, payroll.Cesantias(p).IsZero(), "en liquidación definitiva sí se liquidan")
}

func TestCesantias_VentanaRecortadaAlContrato(t *testing.T) {
	// Contrato inicia jul 1: ventana jul 1 – dic 31 = 180 días → salario/2
	p := paramsBase()
	p.ContractStart = fecha(2024, time.July, 1)
	want := p.Wage.Div(decimal.NewFromInt(2))
	assert.True(t, payroll.Cesantias(p).Equal(want))
}

func TestCesantias_DescuentaLicenciaNoRemunerada(t *testing.T) {
	p := paramsBase()
	p.Absences = []payroll.Absence{{
		From: fecha(2024, time.March, 1), To: fecha(2024, time.March, 30),
		Days: 30, ReducesBase: true,
	}}
	want := p.Wage.Mul(decimal.NewFromInt(330)).Div(decimal.NewFromInt(360))
	assert.True(t, payroll.Cesantias(p).Equal(want))
}

// ──────────────────────────────────────────────────────────────────────────────
// Intereses sobre cesantías: 12% anual proporcional a los días de la ventana.
// ──────────────────────────────────────────────────────────────────────────────

func TestInteresesCesantias_AnioCompletoEs12Porciento(t *testing.T) {
	p := paramsBase()
	severance := decimal.NewFromInt(1_300_000)
	want := severance.Mul(decimal.NewFromFloat(0.12))
	assert.True(t, payroll.InteresesCesantias(severance, p).Equal(want),
		"360 días → intereses = cesantías × 12%%")
}

func TestInteresesCesantias_SinCesantiasEsCero(t *testing.T) {
	p := paramsBase()
	assert.True(t, payroll.InteresesCesantias(decimal.Zero, p).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Prima de servicios: ventana semestral, junio/diciembre o liquidación,
// auxilio solo con salario < 2 SMMLV.
// ──────────────────────────────────────────────────────────────────────────────

func TestPrima_SemestreCompletoConAuxilio(t *testing.T) {
	// Salario < 2 SMMLV: base = salario + auxilio. Semestre jul-dic = 180 días → base/2.
	p := paramsBase()
	want := p.Wage.Add(auxTransTest).Div(decimal.NewFromInt(2))
	assert.True(t, payroll.PrimaServicios(p).Equal(want))
}

func TestPrima_SalarioAltoNoIncluyeAuxilio(t *testing.T) {
	p := paramsBase()
	p.Wage = smmlvTest.Mul(decimal.NewFromInt(3)) // ≥ 2 SMMLV
	want := p.Wage.Div(decimal.NewFromInt(2))
	assert.True(t, payroll.PrimaServicios(p).Equal(want),
		"con salario ≥ 2 SMMLV el auxilio no entra a la base de la prima")
}

func TestPrima_FueraDeMesDePagoEsCero(t *testing.T) {
	p := paramsBase()
	p.PeriodEnd = fecha(2024, time.August, 31)
	assert.True(t, payroll.PrimaServicios(p).IsZero())
}

func TestPrima_LiquidacionCierraVentanaEnElPeriodo(t *testing.T) {
	// Liquidación al 30 de septiembre: ventana jul 1 – sep 30 = 90 días
	p := paramsBase()
	p.PeriodEnd = fecha(2024, time.September, 30)
	p.IsSettlement = true
	want := p.Wage.Add(auxTransTest).Mul(decimal.NewFromInt(90)).Div(decimal.NewFromInt(360))
	got := payroll.PrimaServicios(p)
	assert.True(t, got.Equal(want), "esperado %s, obtenido %s", want, got)
}

func TestPrima_SinSalarioEsCero(t *testing.T) {
	p := paramsBase()
	p.Wage = decimal.Zero
	assert.True(t, payroll.PrimaServicios(p).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// IBC
// ──────────────────────────────────────────────────────────────────────────────

func TestIBC_AprendizEsCero(t *testing.T) {
	got := payroll.IBC(payroll.IBCParams{
		IsApprentice:     true,
		Wage:             decimal.NewFromInt(1_300_000),
		SMMLV:            smmlvTest,
		IBCCategoryTotal: decimal.NewFromInt(1_300_000),
	})
	assert.True(t, got.IsZero(), "los aprendices SENA no cotizan")
}

func TestIBC_SalarioIntegralEs70PorcientoConPiso(t *testing.T) {
	// 70% de 10 SMMLV = 7 SMMLV, dentro de [SMMLV, 25 SMMLV]
	wage := smmlvTest.Mul(decimal.NewFromInt(10))
	got := payroll.IBC(payroll.IBCParams{
		IntegralSalary: true,
		Wage:           wage,
		SMMLV:          smmlvTest,
	})
	want := wage.Mul(decimal.NewFromFloat(0.70)).Ceil()
	assert.True(t, got.Equal(want))
}

func TestIBC_NuncaExcede25SMMLV(t *testing.T) {
	got := payroll.IBC(payroll.IBCParams{
		Wage:             smmlvTest.Mul(decimal.NewFromInt(100)),
		SMMLV:            smmlvTest,
		IBCCategoryTotal: smmlvTest.Mul(decimal.NewFromInt(100)),
	})
	assert.True(t, got.Equal(smmlvTest.Mul(decimal.NewFromInt(25))),
		"el IBC se acota a 25 SMMLV")
}

func TestIBC_PisoProporcionalADias(t *testing.T) {
	// 15 días no remunerados → 15 cotizables; base ínfima sube al piso SMMLV×15/30
	got := payroll.IBC(payroll.IBCParams{
		Wage:             smmlvTest,
		SMMLV:            smmlvTest,
		IBCCategoryTotal: decimal.NewFromInt(100_000),
		UnpaidDays:       15,
	})
	want := smmlvTest.Mul(decimal.NewFromInt(15)).Div(decimal.NewFromInt(30)).Ceil()
	assert.True(t, got.Equal(want))
}

func TestIBC_SinDiasCotizablesEsCero(t *testing.T) {
	got := payroll.IBC(payroll.IBCParams{
		Wage:             smmlvTest,
		SMMLV:            smmlvTest,
		IBCCategoryTotal: smmlvTest,
		UnpaidDays:       30,
	})
	assert.True(t, got.IsZero(), "sin días cotizables no hay base")
}

func TestIBC_MonotonoConElSalario(t *testing.T) {
	// Subir el ingreso nunca baja el IBC (dentro de piso y tope)
	prev := decimal.Zero
	for _, millones := range []int64{1, 2, 5, 10, 20, 40} {
		total := decimal.NewFromInt(millones * 1_000_000)
		got := payroll.IBC(payroll.IBCParams{
			Wage: total, SMMLV: smmlvTest, IBCCategoryTotal: total,
		})
		assert.True(t, got.GreaterThanOrEqual(prev),
			"IBC no puede decrecer al subir el ingreso: %s < %s", got, prev)
		prev = got
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Subsidios por incapacidad
// ──────────────────────────────────────────────────────────────────────────────

func TestIncapacidad_PorcentajesPorTipo(t *testing.T) {
	ibc := decimal.NewFromInt(3_000_000) // base diaria 100.000
	casos := []struct {
		tipo string
		want decimal.Decimal
	}{
		{"IGE1_2", decimal.Zero},
		{"IGE3_90", decimal.NewFromFloat(666_700)}, // 10 días × 100.000 × 66.67%
		{"IGE91_180", decimal.NewFromInt(500_000)},
		{"ATEP", decimal.NewFromInt(1_000_000)},
		{"LMA", decimal.NewFromInt(1_000_000)},
	}
	for _, c := range casos {
		got := payroll.IncapacitySubsidy(ibc, 10, c.tipo)
		assert.True(t, got.Equal(c.want), "tipo %s: esperado %s, obtenido %s", c.tipo, c.want, got)
	}
}

func TestIncapacidad_SinIBCPrevioEsCero(t *testing.T) {
	assert.True(t, payroll.IncapacitySubsidy(decimal.Zero, 10, "IGE3_90").IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Retención en la fuente (Art. 383 ET)
// ──────────────────────────────────────────────────────────────────────────────

var uvtTest = decimal.NewFromInt(47_065)

func TestRetefuente_ErrorSinUVT(t *testing.T) {
	_, err := payroll.Retefuente(payroll.RetefuenteParams{
		TotalIncome: decimal.NewFromInt(5_000_000),
	})
	require.Error(t, err, "calcular sin UVT configurada debe bloquear la operación")
}

func TestRetefuente_Bajo95UVTEsCero(t *testing.T) {
	// Ingresos 3.000.000, aportes 240.000 → base gravable ≈ 44 UVT, tramo exento
	got, err := payroll.Retefuente(payroll.RetefuenteParams{
		UVT:             uvtTest,
		TotalIncome:     decimal.NewFromInt(3_000_000),
		HealthEmployee:  decimal.NewFromInt(120_000),
		PensionEmployee: decimal.NewFromInt(120_000),
	})
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "base gravable ≤ 95 UVT no retiene: %s", got)
}

func TestRetefuente_TramoDel19PorcientoRedondeadoAMiles(t *testing.T) {
	// Ingresos 10.000.000, salud+pensión 800.000 → base 9.200.000;
	// exenta 25% = 2.300.000 (bajo tope); base gravable 6.900.000 ≈ 146,6 UVT;
	// retención (146,6−95)×0,19 UVT → $461.476 → truncado a $461.000.
	got, err := payroll.Retefuente(payroll.RetefuenteParams{
		UVT:             uvtTest,
		TotalIncome:     decimal.NewFromInt(10_000_000),
		HealthEmployee:  decimal.NewFromInt(400_000),
		PensionEmployee: decimal.NewFromInt(400_000),
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(461_000)),
		"esperado 461.000, obtenido %s", got)
}

func TestRetefuente_SiempreMultiploDeMil(t *testing.T) {
	mil := decimal.NewFromInt(1000)
	for _, ingreso := range []int64{5_000_000, 8_750_331, 12_345_678, 30_000_000} {
		got, err := payroll.Retefuente(payroll.RetefuenteParams{
			UVT:         uvtTest,
			TotalIncome: decimal.NewFromInt(ingreso),
		})
		require.NoError(t, err)
		assert.True(t, got.Mod(mil).IsZero(), "retención %s no es múltiplo de 1000", got)
	}
}

func TestRetefuente_DeduccionesAdicionalesConTope(t *testing.T) {
	// Medicina prepagada por encima del tope de 16 UVT se acota al tope.
	sinTope, err := payroll.Retefuente(payroll.RetefuenteParams{
		UVT:           uvtTest,
		TotalIncome:   decimal.NewFromInt(15_000_000),
		PrepaidHealth: uvtTest.Mul(decimal.NewFromInt(16)),
	})
	require.NoError(t, err)
	excedido, err := payroll.Retefuente(payroll.RetefuenteParams{
		UVT:           uvtTest,
		TotalIncome:   decimal.NewFromInt(15_000_000),
		PrepaidHealth: uvtTest.Mul(decimal.NewFromInt(60)),
	})
	require.NoError(t, err)
	assert.True(t, sinTope.Equal(excedido),
		"por encima del tope de 16 UVT la deducción no sigue bajando la retención")
}
