package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
)

// PayslipHandler maneja las peticiones HTTP de nóminas individuales (protegido).
type PayslipHandler struct {
	uc      *usecase.PayslipUseCase
	compute *nomina.ComputeUseCase
}

// NewPayslipHandler construye el handler.
func NewPayslipHandler(uc *usecase.PayslipUseCase, compute *nomina.ComputeUseCase) *PayslipHandler {
	return &PayslipHandler{uc: uc, compute: compute}
}

// Create abre una nómina en draft para el contrato vigente del trabajador.
// POST /api/payslips
func (h *PayslipHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PayslipCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmployeeID == "" || in.DateFrom == "" || in.DateTo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employee_id, date_from y date_to son requeridos"})
	}
	payslip, err := h.uc.Create(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payslip)
}

// GetByID obtiene la nómina con sus líneas calculadas.
// GET /api/payslips/:id
func (h *PayslipHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	payslip, err := h.uc.GetByID(companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payslip)
}

// AddLeave registra una ausencia en el periodo.
// POST /api/payslips/:id/leaves
func (h *PayslipHandler) AddLeave(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	var in dto.LeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TypeCode == "" || in.Days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type_code y days son requeridos"})
	}
	payslip, err := h.uc.AddLeave(companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payslip)
}

// AddEarnDetail registra un devengado detallado manualmente.
// POST /api/payslips/:id/earn-details
func (h *PayslipHandler) AddEarnDetail(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	var in dto.EarnDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category es requerido"})
	}
	payslip, err := h.uc.AddEarnDetail(companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payslip)
}

// AddDeductionDetail registra una deducción detallada manualmente.
// POST /api/payslips/:id/deduction-details
func (h *PayslipHandler) AddDeductionDetail(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	var in dto.DeductionDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category es requerido"})
	}
	payslip, err := h.uc.AddDeductionDetail(companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payslip)
}

// Compute recalcula las líneas de la nómina en draft.
// POST /api/payslips/:id/compute
func (h *PayslipHandler) Compute(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	// La verificación de pertenencia va antes de tocar el periodo.
	if _, err := h.uc.GetByID(companyID, id); err != nil {
		return respondError(c, err)
	}
	payslip, err := h.compute.Compute(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(usecase.PayslipToResponse(payslip))
}

// Finalize confirma la nómina: recalcula y pasa a done.
// POST /api/payslips/:id/finalize
func (h *PayslipHandler) Finalize(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if _, err := h.uc.GetByID(companyID, id); err != nil {
		return respondError(c, err)
	}
	payslip, err := h.compute.Finalize(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(usecase.PayslipToResponse(payslip))
}
