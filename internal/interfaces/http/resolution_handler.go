package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
)

// ResolutionHandler maneja las resoluciones de numeración DIAN y la
// configuración del emisor ante el proveedor (protegido, solo admin).
type ResolutionHandler struct {
	uc       *usecase.ResolutionUseCase
	provider *usecase.ProviderUseCase
}

// NewResolutionHandler construye el handler.
func NewResolutionHandler(uc *usecase.ResolutionUseCase, provider *usecase.ProviderUseCase) *ResolutionHandler {
	return &ResolutionHandler{uc: uc, provider: provider}
}

// ProviderSetup registra software y certificado ante el proveedor tecnológico.
// POST /api/provider/setup
func (h *ResolutionHandler) ProviderSetup(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ProviderSetupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.provider.Setup(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Create registra una resolución y la propaga al proveedor tecnológico.
// POST /api/resolutions
func (h *ResolutionHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ResolutionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ResolutionNumber == "" || in.Prefix == "" || in.FromNumber <= 0 || in.ToNumber <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "resolution_number, prefix, from_number y to_number son requeridos"})
	}
	res, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetByID obtiene una resolución.
// GET /api/resolutions/:id
func (h *ResolutionHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	res, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// List lista las resoluciones activas, filtrables por tipo y prefijo.
// GET /api/resolutions?type_document_code=9&prefix=NE
func (h *ResolutionHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resolutions, err := h.uc.ListActive(companyID, c.Query("type_document_code"), c.Query("prefix"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resolutions)
}

// Deactivate desactiva una resolución.
// POST /api/resolutions/:id/deactivate
func (h *ResolutionHandler) Deactivate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Deactivate(companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
