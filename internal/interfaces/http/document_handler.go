package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// DocumentHandler maneja el ciclo del documento consolidado de nómina
// electrónica: consolidar, finalizar, enviar a la DIAN, consultar estado,
// notas de ajuste y comprobante PDF.
type DocumentHandler struct {
	orchestrator *nomina.OrchestratorUseCase
	voucher      *nomina.VoucherUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(orchestrator *nomina.OrchestratorUseCase, voucher *nomina.VoucherUseCase) *DocumentHandler {
	return &DocumentHandler{orchestrator: orchestrator, voucher: voucher}
}

// Consolidate crea el documento del mes a partir de las nóminas confirmadas.
// POST /api/payroll-documents/consolidate
func (h *DocumentHandler) Consolidate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConsolidateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmployeeID == "" || in.Year == 0 || in.Month < 1 || in.Month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employee_id, year y month son requeridos"})
	}
	doc, err := h.orchestrator.Consolidate(c.Context(), companyID, in.EmployeeID, in.Year, in.Month)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(documentToResponse(doc))
}

// GetByID obtiene un documento.
// GET /api/payroll-documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	doc, err := h.orchestrator.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(documentToResponse(doc))
}

// List lista los documentos de la empresa.
// GET /api/payroll-documents
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	docs, err := h.orchestrator.ListByCompany(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PayrollDocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentToResponse(d))
	}
	return c.JSON(out)
}

// Finalize asigna el consecutivo de la resolución activa y pasa el documento a done.
// POST /api/payroll-documents/:id/finalize
func (h *DocumentHandler) Finalize(c *fiber.Ctx) error {
	return h.transition(c, h.orchestrator.Finalize)
}

// Submit envía el documento al proveedor tecnológico.
// POST /api/payroll-documents/:id/submit
func (h *DocumentHandler) Submit(c *fiber.Ctx) error {
	return h.transition(c, h.orchestrator.Submit)
}

// CheckStatus consulta el resultado de un envío asíncrono pendiente.
// POST /api/payroll-documents/:id/status
func (h *DocumentHandler) CheckStatus(c *fiber.Ctx) error {
	return h.transition(c, h.orchestrator.CheckStatus)
}

// Cancel cancela un documento no aceptado.
// POST /api/payroll-documents/:id/cancel
func (h *DocumentHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.orchestrator.Cancel)
}

// CreateAdjustment crea la nota de ajuste de un documento aceptado.
// POST /api/payroll-documents/:id/adjustment
func (h *DocumentHandler) CreateAdjustment(c *fiber.Ctx) error {
	return h.transition(c, h.orchestrator.CreateAdjustment)
}

// Delete elimina un documento en draft o cancelado.
// DELETE /api/payroll-documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if _, err := h.orchestrator.GetByID(c.Context(), companyID, id); err != nil {
		return respondError(c, err)
	}
	if err := h.orchestrator.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Voucher genera el comprobante PDF del documento.
// GET /api/payroll-documents/:id/voucher
func (h *DocumentHandler) Voucher(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if _, err := h.orchestrator.GetByID(c.Context(), companyID, id); err != nil {
		return respondError(c, err)
	}
	pdf, err := h.voucher.Generate(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-nomina.pdf"`)
	return c.Send(pdf)
}

// transition aplica una transición de estado del orquestador con verificación
// de pertenencia previa.
func (h *DocumentHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, docID string) (*entity.PayrollDocument, error)) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if _, err := h.orchestrator.GetByID(c.Context(), companyID, id); err != nil {
		return respondError(c, err)
	}
	doc, err := fn(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(documentToResponse(doc))
}

func documentToResponse(d *entity.PayrollDocument) *dto.PayrollDocumentResponse {
	return &dto.PayrollDocumentResponse{
		ID:              d.ID,
		EmployeeID:      d.EmployeeID,
		Name:            d.Name,
		Year:            d.Year,
		Month:           d.Month,
		State:           d.State,
		EdiState:        d.EdiState,
		CreditNote:      d.CreditNote,
		CUNE:            d.CUNE,
		ZipKey:          d.ZipKey,
		StatusMessage:   d.StatusMessage,
		EdiErrors:       d.EdiErrors,
		QRData:          d.QRData,
		AccruedTotal:    d.AccruedTotal.StringFixed(2),
		DeductionsTotal: d.DeductionsTotal.StringFixed(2),
		NetTotal:        d.NetTotal.StringFixed(2),
		WorkedDays:      d.WorkedDays,
	}
}
