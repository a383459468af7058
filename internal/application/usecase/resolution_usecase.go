package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

// ResolutionUseCase gestiona las resoluciones de numeración de nómina electrónica.
// Al registrar una resolución también se configura ante el proveedor tecnológico.
type ResolutionUseCase struct {
	repo   repository.PayrollResolutionRepository
	client nomina.ApidianClient // puede ser nil si el envío está deshabilitado
	log    *logger.Logger
}

// NewResolutionUseCase construye el caso de uso.
func NewResolutionUseCase(repo repository.PayrollResolutionRepository, client nomina.ApidianClient, log *logger.Logger) *ResolutionUseCase {
	return &ResolutionUseCase{repo: repo, client: client, log: log}
}

// Create registra una resolución validando que el rango no traslape con las
// activas del mismo tipo/prefijo. Rangos traslapados producirían consecutivos
// duplicados ante la DIAN.
func (uc *ResolutionUseCase) Create(ctx context.Context, companyID string, in dto.ResolutionRequest) (*dto.ResolutionResponse, error) {
	if in.FromNumber > in.ToNumber {
		return nil, fmt.Errorf("%w: from_number no puede ser mayor que to_number", domain.ErrInvalidInput)
	}
	dateFrom, err := parseDate("date_from", in.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseDate("date_to", in.DateTo)
	if err != nil {
		return nil, err
	}

	res := &entity.PayrollResolution{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		ResolutionNumber: in.ResolutionNumber,
		TypeDocumentCode: in.TypeDocumentCode,
		Prefix:           in.Prefix,
		FromNumber:       in.FromNumber,
		ToNumber:         in.ToNumber,
		DateFrom:         dateFrom,
		DateTo:           dateTo,
		State:            entity.ResolutionActive,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	active, err := uc.repo.ListActiveByType(companyID, in.TypeDocumentCode, in.Prefix)
	if err != nil {
		return nil, err
	}
	for _, other := range active {
		if res.Overlaps(other) {
			return nil, fmt.Errorf("%w: el rango traslapa con la resolución %s", domain.ErrConflict, other.ResolutionNumber)
		}
	}

	if err := uc.repo.Create(res); err != nil {
		return nil, err
	}

	// El registro ante el proveedor es idempotente; un fallo no invalida la
	// resolución local, se reintenta en el siguiente envío.
	if uc.client != nil {
		if err := uc.client.ConfigureResolution(ctx, res); err != nil {
			uc.log.Warn().Err(err).Str("resolution", res.ResolutionNumber).
				Msg("No se pudo registrar la resolución ante el proveedor")
		}
	}
	return resolutionToResponse(res), nil
}

// GetByID obtiene una resolución de la empresa.
func (uc *ResolutionUseCase) GetByID(companyID, id string) (*dto.ResolutionResponse, error) {
	res, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if res.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return resolutionToResponse(res), nil
}

// ListActive lista las resoluciones activas de un tipo/prefijo.
func (uc *ResolutionUseCase) ListActive(companyID, typeDocumentCode, prefix string) ([]dto.ResolutionResponse, error) {
	list, err := uc.repo.ListActiveByType(companyID, typeDocumentCode, prefix)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResolutionResponse, 0, len(list))
	for _, res := range list {
		items = append(items, *resolutionToResponse(res))
	}
	return items, nil
}

// Deactivate marca la resolución como inactiva.
func (uc *ResolutionUseCase) Deactivate(companyID, id string) error {
	res, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if res.CompanyID != companyID {
		return domain.ErrForbidden
	}
	res.State = entity.ResolutionInactive
	res.UpdatedAt = time.Now()
	return uc.repo.Update(res)
}

func resolutionToResponse(res *entity.PayrollResolution) *dto.ResolutionResponse {
	return &dto.ResolutionResponse{
		ID:               res.ID,
		ResolutionNumber: res.ResolutionNumber,
		TypeDocumentCode: res.TypeDocumentCode,
		Prefix:           res.Prefix,
		FromNumber:       res.FromNumber,
		ToNumber:         res.ToNumber,
		DateFrom:         fmtDate(res.DateFrom),
		DateTo:           fmtDate(res.DateTo),
		State:            res.State,
	}
}
