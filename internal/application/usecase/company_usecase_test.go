package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	if f.companies == nil {
		f.companies = make(map[string]*entity.Company)
	}
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) Update(c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) List() ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}

func solicitudEmpresa() dto.CompanyRequest {
	return dto.CompanyRequest{
		Name:               "Acme Colombia SAS",
		NIT:                "900123456",
		DV:                 "7",
		SMMLV:              "1423500",
		UVT:                "49799",
		TransportAllowance: "200000",
	}
}

func TestCrearEmpresaConValoresLegalesPorDefecto(t *testing.T) {
	repo := &fakeCompanyRepo{}
	uc := usecase.NewCompanyUseCase(repo)

	out, err := uc.Create(solicitudEmpresa())
	require.NoError(t, err)

	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "mensual", out.Periodicity, "la periodicidad por defecto es mensual")
	assert.Equal(t, "1423500.00", out.SMMLV)

	stored := repo.companies[out.ID]
	require.NotNil(t, stored)
	// Los porcentajes de recargos arrancan en los valores legales.
	assert.True(t, stored.PctOvertimeDay.Equal(entity.DefaultPctOvertimeDay))
	assert.True(t, stored.PctSurchargeNight.Equal(entity.DefaultPctSurchargeNight))
}

func TestCrearEmpresaSinSMMLVFalla(t *testing.T) {
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{})

	in := solicitudEmpresa()
	in.SMMLV = "0"

	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrSMMLVNotConfigured)
}

func TestCrearEmpresaSinUVTFalla(t *testing.T) {
	uc := usecase.NewCompanyUseCase(&fakeCompanyRepo{})

	in := solicitudEmpresa()
	in.UVT = ""

	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrUVTNotConfigured)
}

func TestActualizarEmpresaConservaRecargos(t *testing.T) {
	repo := &fakeCompanyRepo{}
	uc := usecase.NewCompanyUseCase(repo)

	created, err := uc.Create(solicitudEmpresa())
	require.NoError(t, err)

	in := solicitudEmpresa()
	in.SMMLV = "1500000"
	updated, err := uc.Update(created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "1500000.00", updated.SMMLV)
	stored := repo.companies[created.ID]
	assert.True(t, stored.PctOvertimeDay.Equal(entity.DefaultPctOvertimeDay),
		"los porcentajes de recargos se conservan en la actualización")
}
