package repository

import (
	"context"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// PayrollDocumentRepository acceso a documentos consolidados de nómina electrónica.
type PayrollDocumentRepository interface {
	Create(doc *entity.PayrollDocument) error
	Update(doc *entity.PayrollDocument) error
	GetByID(id string) (*entity.PayrollDocument, error)
	// Delete elimina el documento; el caso de uso garantiza que solo draft/cancel llegan aquí.
	Delete(id string) error
	ListByCompany(companyID string) ([]*entity.PayrollDocument, error)
}

// PayrollResolutionRepository acceso a resoluciones de numeración.
type PayrollResolutionRepository interface {
	Create(res *entity.PayrollResolution) error
	Update(res *entity.PayrollResolution) error
	GetByID(id string) (*entity.PayrollResolution, error)
	// GetActive devuelve la resolución activa para empresa/tipo de documento/prefijo.
	GetActive(ctx context.Context, companyID, typeDocumentCode, prefix string) (*entity.PayrollResolution, error)
	// ListActiveByType lista las resoluciones activas del mismo tipo/prefijo (validación de traslape).
	ListActiveByType(companyID, typeDocumentCode, prefix string) ([]*entity.PayrollResolution, error)
	// ConsumeNextNumber asigna y reserva el siguiente consecutivo del rango bajo
	// bloqueo de fila. Error si el rango está agotado.
	ConsumeNextNumber(ctx context.Context, resolutionID string) (int64, error)
}
