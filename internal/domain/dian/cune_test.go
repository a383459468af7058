package dian_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/domain/dian"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestCalculateCune valida que el cálculo SHA-384 del CUNE produce el hash
// exacto esperado para parámetros conocidos.
//
// Si alguien modifica inadvertidamente la cadena de concatenación, el orden de
// los campos, el algoritmo o el formato de los montos, este test falla de
// inmediato: un CUNE mal calculado es rechazado por la DIAN en producción.
//
// Vector de prueba calculado manualmente con SHA-384:
//
//	Cadena = NumNom + FecNom + HorNom + TipXML + NitEmp + NumEmp +
//	         ValDev + ValDed + ValTol + SoftwarePin + TipAmb
//	       = "NE990000001" + "2024-01-31" + "10:30:00-05:00" + "102" +
//	         "900123456" + "1018456789" + "1500000.00" + "120000.00" +
//	         "1380000.00" + "693ff6f2a4" + "2"
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCuneExpected = "682e595a0f91b4e3e1e1dedcf3a836c67daeedf15e48cfc5ddf79a6fc08c12d4760c48383390cfe10d440afa94e1bbc7"

	testNumNom = "NE990000001"
	testFecNom = "2024-01-31"
	testHorNom = "10:30:00-05:00"
	testNitEmp = "900123456"
	testNumEmp = "1018456789"
	testPin    = "693ff6f2a4"
)

func buildTestParams() *dian.CuneParams {
	return &dian.CuneParams{
		NumNom:      testNumNom,
		FecNom:      testFecNom,
		HorNom:      testHorNom,
		TipXML:      dian.TipXMLNomina,
		NitEmp:      testNitEmp,
		NumEmp:      testNumEmp,
		ValDev:      decimal.NewFromInt(1_500_000),
		ValDed:      decimal.NewFromInt(120_000),
		ValTol:      decimal.NewFromInt(1_380_000),
		SoftwarePin: testPin,
		TipAmb:      "2",
	}
}

func TestCalculateCune_VectorExacto(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	cune, err := svc.Calculate(buildTestParams())
	require.NoError(t, err, "Calculate no debe retornar error con parámetros válidos")
	assert.Equal(t, testCuneExpected, cune,
		"El CUNE debe coincidir exactamente con el vector SHA-384 de referencia")
}

func TestCalculateCune_Longitud96Hex(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	cune, err := svc.Calculate(buildTestParams())
	require.NoError(t, err)
	assert.Len(t, cune, 96, "SHA-384 en hexadecimal son 96 caracteres")
	assert.Equal(t, strings.ToLower(cune), cune, "el digest debe ser hex minúscula")
}

// TestCalculateCune_Determinista verifica que el mismo input produce siempre
// el mismo hash (idempotente).
func TestCalculateCune_Determinista(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	cune1, err1 := svc.Calculate(buildTestParams())
	cune2, err2 := svc.Calculate(buildTestParams())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, cune1, cune2, "el mismo input siempre debe producir el mismo CUNE")
}

// TestCalculateCune_SensibleAlDevengado verifica que cambiar un centavo del
// total devengado cambia el digest.
func TestCalculateCune_SensibleAlDevengado(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	p1 := buildTestParams()
	p2 := buildTestParams()
	p2.ValDev = p2.ValDev.Add(decimal.NewFromFloat(0.01))

	cune1, _ := svc.Calculate(p1)
	cune2, _ := svc.Calculate(p2)

	assert.NotEqual(t, cune1, cune2,
		"un centavo de diferencia en ValDev debe producir un CUNE distinto")
}

func TestCalculateCune_TipoAmbienteAfectaHash(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	pPruebas := buildTestParams()
	pProduccion := buildTestParams()
	pProduccion.TipAmb = "1"

	cunePruebas, _ := svc.Calculate(pPruebas)
	cuneProduccion, _ := svc.Calculate(pProduccion)

	assert.NotEqual(t, cunePruebas, cuneProduccion,
		"los CUNE de ambiente pruebas y producción deben ser distintos")
}

func TestCalculateCune_ElOrdenDeCamposImporta(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	p1 := buildTestParams()
	// Intercambiar devengado y deducciones simula un reordenamiento de la cadena
	p2 := buildTestParams()
	p2.ValDev, p2.ValDed = p2.ValDed, p2.ValDev

	cune1, _ := svc.Calculate(p1)
	cune2, _ := svc.Calculate(p2)

	assert.NotEqual(t, cune1, cune2)
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestCalculateCune_ErrorSiNilParams(t *testing.T) {
	svc := dian.NewCuneCalculatorService()
	_, err := svc.Calculate(nil)
	assert.Error(t, err)
}

func TestCalculateCune_ErrorCamposObligatorios(t *testing.T) {
	svc := dian.NewCuneCalculatorService()

	casos := []struct {
		nombre string
		mutar  func(*dian.CuneParams)
	}{
		{"NumNom vacío", func(p *dian.CuneParams) { p.NumNom = "  " }},
		{"FecNom vacía", func(p *dian.CuneParams) { p.FecNom = "" }},
		{"HorNom vacía", func(p *dian.CuneParams) { p.HorNom = "" }},
		{"TipXML vacío", func(p *dian.CuneParams) { p.TipXML = "" }},
		{"NitEmp vacío", func(p *dian.CuneParams) { p.NitEmp = "" }},
		{"NumEmp sin dígitos", func(p *dian.CuneParams) { p.NumEmp = "ABC" }},
		{"SoftwarePin vacío", func(p *dian.CuneParams) { p.SoftwarePin = "" }},
		{"TipAmb vacío", func(p *dian.CuneParams) { p.TipAmb = "" }},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			p := buildTestParams()
			c.mutar(p)
			_, err := svc.Calculate(p)
			assert.Error(t, err, "un CUNE incompleto es peor que ningún documento")
		})
	}
}
