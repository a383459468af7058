package nomina

import (
	"context"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// SubmissionResult es el resultado normalizado de un envío al proveedor.
// La distinción sincrónico/asíncrono se resuelve en el cliente (frontera con el
// API): aquí solo llega el resultado ya etiquetado.
type SubmissionResult struct {
	// Immediate en true indica validación sincrónica: CUNE es definitivo.
	// En false el lote quedó en cola y ZipKey permite consultar el estado.
	Immediate bool
	CUNE      string
	ZipKey    string

	Message   string
	QRLink    string
	XMLBase64 string
	PDFBase64 string
}

// StatusResult es el resultado de consultar un lote pendiente por zip key.
type StatusResult struct {
	Finished bool // el proveedor terminó de procesar el lote
	Accepted bool
	CUNE     string
	Message  string
	Errors   string
}

// ApidianClient es el puerto hacia el proveedor de nómina electrónica.
// Las implementaciones traducen el contrato HTTP del proveedor a estos tipos.
type ApidianClient interface {
	// SendPayroll envía el documento. En habilitación testSetID va en la URL.
	SendPayroll(ctx context.Context, payload *PayrollPayload, testSetID string) (*SubmissionResult, error)
	// SendAdjustment envía una nota de ajuste (tipo 103).
	SendAdjustment(ctx context.Context, payload *PayrollPayload, testSetID string) (*SubmissionResult, error)
	// PayrollStatus consulta un lote pendiente por su zip key.
	PayrollStatus(ctx context.Context, zipKey string) (*StatusResult, error)

	// Configuración idempotente del emisor ante el proveedor.
	ConfigureSoftware(ctx context.Context, softwareID, pin string) error
	ConfigureCertificate(ctx context.Context, certificateB64, password string) error
	ConfigureResolution(ctx context.Context, res *entity.PayrollResolution) error
}
