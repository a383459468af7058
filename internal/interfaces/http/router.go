package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/nomina-pro/internal/application/auth"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	PayslipUC    *usecase.PayslipUseCase
	ResolutionUC *usecase.ResolutionUseCase
	RecurringUC  *usecase.RecurringItemUseCase
	ProviderUC   *usecase.ProviderUseCase
	ComputeUC    *nomina.ComputeUseCase
	Orchestrator *nomina.OrchestratorUseCase
	VoucherUC    *nomina.VoucherUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: registro público, el resto requiere token
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protectedCompanies := protected.Group("/companies")
	protectedCompanies.Get("/", companyHandler.List)
	protectedCompanies.Get("/:id", companyHandler.GetByID)
	protectedCompanies.Put("/:id", RequireRole(entity.RoleAdmin), companyHandler.Update)

	// Employees y contratos (protegido)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Get("/:id/contract", employeeHandler.GetActiveContract)

	contracts := protected.Group("/contracts")
	contracts.Post("/", employeeHandler.CreateContract)
	contracts.Put("/:id", employeeHandler.UpdateContract)

	// Payslips (protegido; escritura solo admin/nominista)
	payslips := protected.Group("/payslips")
	payslipHandler := NewPayslipHandler(deps.PayslipUC, deps.ComputeUC)
	liquidador := RequireRole(entity.RoleAdmin, entity.RoleNominista)
	payslips.Post("/", liquidador, payslipHandler.Create)
	payslips.Get("/:id", payslipHandler.GetByID)
	payslips.Post("/:id/leaves", liquidador, payslipHandler.AddLeave)
	payslips.Post("/:id/earn-details", liquidador, payslipHandler.AddEarnDetail)
	payslips.Post("/:id/deduction-details", liquidador, payslipHandler.AddDeductionDetail)
	payslips.Post("/:id/compute", liquidador, payslipHandler.Compute)
	payslips.Post("/:id/finalize", liquidador, payslipHandler.Finalize)

	// Documentos consolidados de nómina electrónica (protegido)
	documents := protected.Group("/payroll-documents")
	documentHandler := NewDocumentHandler(deps.Orchestrator, deps.VoucherUC)
	documents.Post("/consolidate", liquidador, documentHandler.Consolidate)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Post("/:id/finalize", liquidador, documentHandler.Finalize)
	documents.Post("/:id/submit", liquidador, documentHandler.Submit)
	documents.Post("/:id/status", liquidador, documentHandler.CheckStatus)
	documents.Post("/:id/cancel", liquidador, documentHandler.Cancel)
	documents.Post("/:id/adjustment", liquidador, documentHandler.CreateAdjustment)
	documents.Delete("/:id", RequireRole(entity.RoleAdmin), documentHandler.Delete)
	documents.Get("/:id/voucher", documentHandler.Voucher)

	// Resoluciones de numeración y setup del proveedor (protegido, solo admin)
	resolutionHandler := NewResolutionHandler(deps.ResolutionUC, deps.ProviderUC)
	resolutions := protected.Group("/resolutions")
	resolutions.Post("/", RequireRole(entity.RoleAdmin), resolutionHandler.Create)
	resolutions.Get("/", resolutionHandler.List)
	resolutions.Get("/:id", resolutionHandler.GetByID)
	resolutions.Post("/:id/deactivate", RequireRole(entity.RoleAdmin), resolutionHandler.Deactivate)
	protected.Post("/provider/setup", RequireRole(entity.RoleAdmin), resolutionHandler.ProviderSetup)

	// Ítems recurrentes (protegido)
	recurring := protected.Group("/recurring-items")
	recurringHandler := NewRecurringHandler(deps.RecurringUC)
	recurring.Post("/", liquidador, recurringHandler.Create)
	recurring.Get("/:id", recurringHandler.GetByID)
	recurring.Post("/:id/deactivate", liquidador, recurringHandler.Deactivate)
}
