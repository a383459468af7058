package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/domain"
)

// sentinelStatus mapea cada error de dominio a su código HTTP y código de error.
// Los casos de uso envuelven los sentinelas con %w, por eso errors.Is.
var sentinelStatus = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrSMMLVNotConfigured, fiber.StatusBadRequest, "COMPANY_NOT_CONFIGURED"},
	{domain.ErrUVTNotConfigured, fiber.StatusBadRequest, "COMPANY_NOT_CONFIGURED"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrResolutionRequired, fiber.StatusConflict, "RESOLUTION_REQUIRED"},
	{domain.ErrDocumentNotDraft, fiber.StatusConflict, "NOT_DRAFT"},
	{domain.ErrDocumentNotFinished, fiber.StatusConflict, "NOT_FINISHED"},
	{domain.ErrDocumentAccepted, fiber.StatusConflict, "ALREADY_ACCEPTED"},
	{domain.ErrPayrollDisabled, fiber.StatusConflict, "PAYROLL_DISABLED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError traduce un error de caso de uso a la respuesta HTTP correspondiente.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range sentinelStatus {
		if errors.Is(err, m.sentinel) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
