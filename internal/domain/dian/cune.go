// Package dian: cálculo del CUNE (Código Único de Nómina Electrónica) según el
// Anexo Técnico de Nómina Electrónica DIAN 1.0. Algoritmo: SHA-384 sobre la
// concatenación de campos en el orden estricto definido por la DIAN.
package dian

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Códigos de tipo de XML del documento de nómina.
const (
	TipXMLNomina = "102" // nómina individual
	TipXMLAjuste = "103" // nota de ajuste
)

// CuneParams contiene los datos para calcular el CUNE en el orden exigido por la DIAN.
// El orden es semánticamente significativo: cualquier reordenamiento produce un
// código distinto e inválido.
type CuneParams struct {
	NumNom      string          // Número del documento (prefijo + consecutivo, sin espacios)
	FecNom      string          // Fecha de generación YYYY-MM-DD
	HorNom      string          // Hora de generación HH:MM:SS-05:00
	TipXML      string          // "102" nómina, "103" nota de ajuste
	NitEmp      string          // NIT del empleador (solo dígitos)
	NumEmp      string          // Número de documento del trabajador (solo dígitos)
	ValDev      decimal.Decimal // Total devengados
	ValDed      decimal.Decimal // Total deducciones
	ValTol      decimal.Decimal // Total neto (comprobante)
	SoftwarePin string          // PIN del software registrado ante la DIAN
	TipAmb      string          // "1" = Producción, "2" = Pruebas
}

// CuneCalculatorService calcula el CUNE según el Anexo Técnico de Nómina 1.0.
type CuneCalculatorService struct{}

// NewCuneCalculatorService crea el servicio.
func NewCuneCalculatorService() *CuneCalculatorService {
	return &CuneCalculatorService{}
}

// Calculate genera el CUNE (hash hexadecimal en minúsculas) a partir de los parámetros.
// Fórmula (sin separadores): NumNom + FecNom + HorNom + TipXML + NitEmp + NumEmp +
// ValDev + ValDed + ValTol + SoftwarePin + TipAmb.
// Algoritmo: SHA-384. Montos sin separador de miles, con punto decimal y 2 decimales.
// Un CUNE con campos faltantes sería silenciosamente incorrecto, por eso cada
// campo obligatorio vacío es un error.
func (s *CuneCalculatorService) Calculate(p *CuneParams) (string, error) {
	if p == nil {
		return "", fmt.Errorf("dian: CuneParams es obligatorio")
	}

	numNom := regexp.MustCompile(`\s+`).ReplaceAllString(strings.TrimSpace(p.NumNom), "")
	if numNom == "" {
		return "", fmt.Errorf("dian: NumNom es obligatorio")
	}
	if p.FecNom == "" {
		return "", fmt.Errorf("dian: FecNom es obligatoria (YYYY-MM-DD)")
	}
	if p.HorNom == "" {
		return "", fmt.Errorf("dian: HorNom es obligatoria (HH:MM:SS-05:00)")
	}
	tipXML := p.TipXML
	if tipXML == "" {
		return "", fmt.Errorf("dian: TipXML es obligatorio (102 o 103)")
	}

	nitEmp := onlyDigits(p.NitEmp)
	numEmp := onlyDigits(p.NumEmp)
	if nitEmp == "" {
		return "", fmt.Errorf("dian: NitEmp es obligatorio para el CUNE")
	}
	if numEmp == "" {
		return "", fmt.Errorf("dian: NumEmp es obligatorio para el CUNE")
	}
	if p.SoftwarePin == "" {
		return "", fmt.Errorf("dian: SoftwarePin es obligatorio para el CUNE")
	}
	if p.TipAmb == "" {
		return "", fmt.Errorf("dian: TipAmb es obligatorio (1 o 2)")
	}

	// Orden estricto DIAN (sin separadores)
	cadena := numNom +
		p.FecNom +
		p.HorNom +
		tipXML +
		nitEmp +
		numEmp +
		formatAmount(p.ValDev) +
		formatAmount(p.ValDed) +
		formatAmount(p.ValTol) +
		p.SoftwarePin +
		p.TipAmb

	hash := sha512.Sum384([]byte(cadena))
	return hex.EncodeToString(hash[:]), nil
}

// formatAmount formatea montos para la cadena CUNE: sin separador de miles,
// punto decimal, 2 decimales (ej: 1500000.00).
func formatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// onlyDigits deja solo dígitos 0-9 (para NIT y documento del trabajador).
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
