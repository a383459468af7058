package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/nomina-pro/internal/application/auth"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/application/usecase"
	"github.com/tu-usuario/nomina-pro/internal/domain/dian"
	"github.com/tu-usuario/nomina-pro/internal/infrastructure/apidian"
	infrapdf "github.com/tu-usuario/nomina-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/nomina-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/nomina-pro/internal/interfaces/http"
	"github.com/tu-usuario/nomina-pro/pkg/config"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	payslipRepo := postgres.NewPayslipRepository(pool)
	ruleRepo := postgres.NewSalaryRuleRepository(pool)
	recurringRepo := postgres.NewRecurringItemRepository(pool)
	resolutionRepo := postgres.NewPayrollResolutionRepository(pool)
	documentRepo := postgres.NewPayrollDocumentRepository(pool)

	// Cliente del proveedor tecnológico — nil si la nómina electrónica está
	// deshabilitada; el orquestador lo rechaza antes de cualquier envío.
	var apidianClient nomina.ApidianClient
	if cfg.Apidian.Enabled {
		apidianClient = apidian.NewClient(cfg.Apidian, log)
	}

	// Ciclo del documento: agregación → CUNE → payload → envío REST → update DB
	aggregator := nomina.NewAggregatorService()
	builder := nomina.NewDocumentBuilderService(dian.NewCuneCalculatorService())
	orchestratorUC := nomina.NewOrchestratorUseCase(
		documentRepo, resolutionRepo, payslipRepo,
		companyRepo, employeeRepo, contractRepo, ruleRepo,
		aggregator, builder, apidianClient, cfg.Apidian, log,
	)

	computeUC := nomina.NewComputeUseCase(
		payslipRepo, contractRepo, companyRepo, ruleRepo, recurringRepo, log,
	)

	// PDF: desprendible de pago del documento consolidado
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	voucherUC := nomina.NewVoucherUseCase(
		documentRepo, companyRepo, employeeRepo, payslipRepo, pdfGenerator,
	)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, contractRepo)
	payslipUC := usecase.NewPayslipUseCase(payslipRepo, employeeRepo, contractRepo)
	resolutionUC := usecase.NewResolutionUseCase(resolutionRepo, apidianClient, log)
	recurringUC := usecase.NewRecurringItemUseCase(recurringRepo, employeeRepo)
	providerUC := usecase.NewProviderUseCase(apidianClient, cfg.Apidian, log)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nómina Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		EmployeeUC:   employeeUC,
		PayslipUC:    payslipUC,
		ResolutionUC: resolutionUC,
		RecurringUC:  recurringUC,
		ProviderUC:   providerUC,
		ComputeUC:    computeUC,
		Orchestrator: orchestratorUC,
		VoucherUC:    voucherUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
