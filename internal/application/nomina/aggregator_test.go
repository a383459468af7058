package nomina_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

func reglasDePrueba() map[string]*entity.SalaryRule {
	return map[string]*entity.SalaryRule{
		"BASIC": {
			Code: "BASIC", TypeConcept: entity.ConceptEarn,
			EarnCategory: entity.EarnBasic,
		},
		"AUXTRANS": {
			Code: "AUXTRANS", TypeConcept: entity.ConceptEarn,
			EarnCategory: entity.EarnTransportsAssistance,
		},
		"HED": {
			Code: "HED", TypeConcept: entity.ConceptEarn,
			EarnCategory: entity.EarnOvertimeDay,
		},
		"SALUD_EMP": {
			Code: "SALUD_EMP", TypeConcept: entity.ConceptDeduction,
			DeductionCategory: entity.DeductionHealth,
		},
		"OTROS": {
			Code: "OTROS", TypeConcept: entity.ConceptEarn,
			EarnCategory: entity.EarnOtherConcepts,
		},
		"IBC_CALC": {
			Code: "IBC_CALC", TypeConcept: entity.ConceptOther,
		},
		"BONO_DET": {
			Code: "BONO_DET", TypeConcept: entity.ConceptEarn,
			EarnCategory: entity.EarnBonuses, Detailed: true,
		},
	}
}

func TestAggregate_SumaLineasDeLaMismaCategoria(t *testing.T) {
	svc := nomina.NewAggregatorService()

	lines := []entity.PayslipLine{
		{RuleCode: "BASIC", Quantity: decimal.NewFromInt(30), Total: decimal.NewFromInt(1300000)},
		{RuleCode: "AUXTRANS", Quantity: decimal.NewFromInt(30), Total: decimal.NewFromInt(162000)},
	}

	agg := svc.Aggregate(reglasDePrueba(), lines, nil, nil)

	require.Contains(t, agg.Earns, entity.EarnBasic)
	assert.True(t, decimal.NewFromInt(1300000).Equal(agg.Earns[entity.EarnBasic].Total))
	assert.True(t, decimal.NewFromInt(162000).Equal(agg.Earns[entity.EarnTransportsAssistance].Total))
	assert.True(t, decimal.NewFromInt(1462000).Equal(agg.AccruedTotal()))
}

func TestAggregate_DeduccionesSiempreEnMagnitudPositiva(t *testing.T) {
	svc := nomina.NewAggregatorService()

	// la evaluación de reglas produce deducciones negativas
	lines := []entity.PayslipLine{
		{RuleCode: "SALUD_EMP", Total: decimal.NewFromInt(-52000)},
	}
	dedDetails := []entity.DeductionDetail{
		{Category: entity.DeductionLibranzas, Amount: decimal.NewFromInt(-80000), Description: "Libranza Banco X"},
	}

	agg := svc.Aggregate(reglasDePrueba(), lines, nil, dedDetails)

	assert.True(t, decimal.NewFromInt(52000).Equal(agg.Deductions[entity.DeductionHealth].Total))
	assert.True(t, decimal.NewFromInt(80000).Equal(agg.Deductions[entity.DeductionLibranzas].Total))
	assert.True(t, decimal.NewFromInt(132000).Equal(agg.DeductionsTotal()))
}

func TestAggregate_DetallePrioritarioNoDuplicaHorasExtras(t *testing.T) {
	svc := nomina.NewAggregatorService()
	inicio := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	// línea calculada Y detalles manuales para la misma categoría de hora extra:
	// el total del documento debe salir solo del detalle
	lines := []entity.PayslipLine{
		{RuleCode: "HED", Quantity: decimal.NewFromInt(4), Total: decimal.NewFromInt(27083)},
	}
	earnDetails := []entity.EarnDetail{
		{
			Category: entity.EarnOvertimeDay, Amount: decimal.NewFromInt(13541),
			Quantity: decimal.NewFromInt(2), DateStart: &inicio, TimeStart: 18,
			Percentage: decimal.NewFromInt(25),
		},
		{
			Category: entity.EarnOvertimeDay, Amount: decimal.NewFromInt(13542),
			Quantity: decimal.NewFromInt(2), DateStart: &inicio, TimeStart: 20,
			Percentage: decimal.NewFromInt(25),
		},
	}

	agg := svc.Aggregate(reglasDePrueba(), lines, earnDetails, nil)

	bucket := agg.Earns[entity.EarnOvertimeDay]
	require.NotNil(t, bucket)
	assert.True(t, decimal.NewFromInt(27083).Equal(bucket.Total),
		"el total debe venir solo del detalle, no del detalle más la línea calculada")
	assert.Len(t, bucket.Rows, 2)
	for _, row := range bucket.Rows {
		assert.False(t, row.Synthetic)
		assert.NotNil(t, row.DateStart)
	}
	assert.True(t, bucket.FromRule)
	assert.True(t, bucket.FromDetail)
}

func TestAggregate_DetallePrioritarioSinDetalleGeneraFilaSintetica(t *testing.T) {
	svc := nomina.NewAggregatorService()

	lines := []entity.PayslipLine{
		{RuleCode: "HED", Quantity: decimal.NewFromInt(4), Total: decimal.NewFromInt(27083)},
	}

	agg := svc.Aggregate(reglasDePrueba(), lines, nil, nil)

	bucket := agg.Earns[entity.EarnOvertimeDay]
	require.NotNil(t, bucket)
	assert.True(t, decimal.NewFromInt(27083).Equal(bucket.Total))
	require.Len(t, bucket.Rows, 1)
	assert.True(t, bucket.Rows[0].Synthetic)
}

func TestAggregate_OtrosConceptosExigenDescripcion(t *testing.T) {
	svc := nomina.NewAggregatorService()

	// con detalle: la descripción del detalle manda
	earnDetails := []entity.EarnDetail{
		{Category: entity.EarnOtherConcepts, Amount: decimal.NewFromInt(50000), Description: "Reintegro de caja menor"},
	}
	agg := svc.Aggregate(reglasDePrueba(), nil, earnDetails, nil)
	bucket := agg.Earns[entity.EarnOtherConcepts]
	require.Len(t, bucket.Rows, 1)
	assert.Equal(t, "Reintegro de caja menor", bucket.Rows[0].Description)

	// sin detalle: fila sintética con descripción genérica, nunca vacía
	lines := []entity.PayslipLine{
		{RuleCode: "OTROS", Total: decimal.NewFromInt(30000)},
	}
	agg = svc.Aggregate(reglasDePrueba(), lines, nil, nil)
	bucket = agg.Earns[entity.EarnOtherConcepts]
	require.Len(t, bucket.Rows, 1)
	assert.NotEmpty(t, bucket.Rows[0].Description)
	assert.True(t, bucket.Rows[0].Synthetic)
}

func TestAggregate_IgnoraReglasInternasYDetalladas(t *testing.T) {
	svc := nomina.NewAggregatorService()

	lines := []entity.PayslipLine{
		// concepto "other": base interna, no va al documento
		{RuleCode: "IBC_CALC", Total: decimal.NewFromInt(1300000)},
		// regla marcada Detailed: el valor llega por EarnDetail, la línea no suma
		{RuleCode: "BONO_DET", Total: decimal.NewFromInt(99999)},
		// regla desconocida: se ignora
		{RuleCode: "NO_EXISTE", Total: decimal.NewFromInt(5)},
	}
	earnDetails := []entity.EarnDetail{
		{Category: entity.EarnBonuses, Amount: decimal.NewFromInt(99999)},
	}

	agg := svc.Aggregate(reglasDePrueba(), lines, earnDetails, nil)

	assert.True(t, decimal.NewFromInt(99999).Equal(agg.AccruedTotal()),
		"solo el detalle del bono debe contar, una única vez")
}
