package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

func rango(from, to int64) *entity.PayrollResolution {
	return &entity.PayrollResolution{FromNumber: from, ToNumber: to}
}

func TestResolution_Contains(t *testing.T) {
	r := rango(100, 200)

	assert.True(t, r.Contains(100))
	assert.True(t, r.Contains(200))
	assert.True(t, r.Contains(150))
	assert.False(t, r.Contains(99))
	assert.False(t, r.Contains(201))
}

func TestResolution_Overlaps(t *testing.T) {
	r := rango(100, 200)

	assert.True(t, r.Overlaps(rango(200, 300)), "tocar el borde es traslape")
	assert.True(t, r.Overlaps(rango(1, 100)))
	assert.True(t, r.Overlaps(rango(150, 160)), "rango contenido")
	assert.True(t, r.Overlaps(rango(1, 500)), "rango que contiene")
	assert.False(t, r.Overlaps(rango(201, 300)))
	assert.False(t, r.Overlaps(rango(1, 99)))
}

func TestDocument_CicloDeVida(t *testing.T) {
	doc := &entity.PayrollDocument{State: entity.DocStateDraft}
	assert.True(t, doc.Deletable())
	assert.Equal(t, "102", doc.TypeXMLCode())

	doc.State = entity.DocStateDone
	assert.False(t, doc.Deletable())

	doc.State = entity.DocStateCancel
	assert.True(t, doc.Deletable())

	doc.CreditNote = true
	assert.Equal(t, "103", doc.TypeXMLCode())

	doc.EdiState = entity.EdiStateAccepted
	assert.True(t, doc.Accepted())
}
