package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
)

// RecurringItemRepository acceso a ítems recurrentes (libranzas, préstamos, auxilios fijos).
type RecurringItemRepository interface {
	Create(item *entity.RecurringItem) error
	Update(item *entity.RecurringItem) error
	GetByID(id string) (*entity.RecurringItem, error)
	// ListActiveForEmployee devuelve los ítems vigentes para el rango del periodo
	// (activos, dentro de fechas, con cuotas/saldo pendiente).
	ListActiveForEmployee(employeeID string, from, to time.Time) ([]*entity.RecurringItem, error)
	// AdvanceInstallment avanza la cuota del ítem bajo bloqueo de fila
	// (SELECT ... FOR UPDATE): es el único recurso mutable compartido entre
	// periodos y no debe avanzarse dos veces por procesamiento concurrente.
	AdvanceInstallment(ctx context.Context, itemID string, amount decimal.Decimal) error
}
