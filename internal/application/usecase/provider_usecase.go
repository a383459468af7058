package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/nomina-pro/internal/application/dto"
	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/pkg/config"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

// ProviderUseCase configura el emisor ante el proveedor tecnológico: identificador
// y PIN del software registrado ante la DIAN, y el certificado de firma. Todas las
// llamadas son idempotentes y pueden repetirse sin efectos secundarios.
type ProviderUseCase struct {
	client nomina.ApidianClient // nil si el envío está deshabilitado
	cfg    config.ApidianConfig
	log    *logger.Logger
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(client nomina.ApidianClient, cfg config.ApidianConfig, log *logger.Logger) *ProviderUseCase {
	return &ProviderUseCase{client: client, cfg: cfg, log: log}
}

// Setup registra el software de nómina ante el proveedor y, si viene en la
// petición, sube el certificado de firma.
func (uc *ProviderUseCase) Setup(ctx context.Context, in dto.ProviderSetupRequest) error {
	if uc.client == nil {
		return domain.ErrPayrollDisabled
	}
	if uc.cfg.SoftwareID == "" || uc.cfg.SoftwarePin == "" {
		return fmt.Errorf("%w: software id y pin del proveedor no configurados", domain.ErrInvalidInput)
	}

	if err := uc.client.ConfigureSoftware(ctx, uc.cfg.SoftwareID, uc.cfg.SoftwarePin); err != nil {
		return fmt.Errorf("registrando software de nómina: %w", err)
	}
	uc.log.Info().Str("software_id", uc.cfg.SoftwareID).Msg("Software de nómina registrado ante el proveedor")

	if in.Certificate != "" {
		if in.Password == "" {
			return fmt.Errorf("%w: el certificado requiere password", domain.ErrInvalidInput)
		}
		if err := uc.client.ConfigureCertificate(ctx, in.Certificate, in.Password); err != nil {
			return fmt.Errorf("subiendo certificado de firma: %w", err)
		}
		uc.log.Info().Msg("Certificado de firma actualizado ante el proveedor")
	}
	return nil
}
