package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.RecurringItemRepository = (*RecurringItemRepo)(nil)

// RecurringItemRepo implementación del puerto RecurringItemRepository sobre PostgreSQL.
type RecurringItemRepo struct {
	pool *pgxpool.Pool
}

// NewRecurringItemRepository construye el adaptador de persistencia para ítems recurrentes.
func NewRecurringItemRepository(pool *pgxpool.Pool) *RecurringItemRepo {
	return &RecurringItemRepo{pool: pool}
}

const recurringItemColumns = `
	id, company_id, employee_id, name, type_concept, earn_category, deduction_category,
	rule_code, amount_type, amount, use_installments, number_of_installments,
	current_installment, total_amount, paid_amount, date_from, date_to, active,
	created_at, updated_at`

// Create persiste un nuevo ítem recurrente.
func (r *RecurringItemRepo) Create(item *entity.RecurringItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recurring_items (` + recurringItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.EmployeeID, item.Name,
		item.TypeConcept, item.EarnCategory, item.DeductionCategory,
		item.RuleCode, item.AmountType, item.Amount,
		item.UseInstallments, item.NumberOfInstallments, item.CurrentInstallment,
		item.TotalAmount, item.PaidAmount, item.DateFrom, item.DateTo, item.Active,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recurring item: %w", err)
	}
	return nil
}

// Update actualiza la configuración del ítem. El avance de cuotas usa
// AdvanceInstallment, no este método.
func (r *RecurringItemRepo) Update(item *entity.RecurringItem) error {
	query := `
		UPDATE recurring_items
		SET name = $2, type_concept = $3, earn_category = $4, deduction_category = $5,
		    rule_code = $6, amount_type = $7, amount = $8, use_installments = $9,
		    number_of_installments = $10, total_amount = $11, date_from = $12,
		    date_to = $13, active = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.Name, item.TypeConcept, item.EarnCategory, item.DeductionCategory,
		item.RuleCode, item.AmountType, item.Amount, item.UseInstallments,
		item.NumberOfInstallments, item.TotalAmount, item.DateFrom,
		item.DateTo, item.Active, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recurring item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *RecurringItemRepo) GetByID(id string) (*entity.RecurringItem, error) {
	query := `SELECT ` + recurringItemColumns + ` FROM recurring_items WHERE id = $1`
	item, err := scanRecurringItem(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get recurring item: %w", err)
	}
	return item, nil
}

// ListActiveForEmployee devuelve los ítems vigentes para el rango del periodo.
// El filtro fino de cuotas/saldo lo hace la entidad (AppliesTo); aquí solo se
// descartan los claramente fuera de vigencia.
func (r *RecurringItemRepo) ListActiveForEmployee(employeeID string, from, to time.Time) ([]*entity.RecurringItem, error) {
	query := `
		SELECT ` + recurringItemColumns + `
		FROM recurring_items
		WHERE employee_id = $1
		  AND active = true
		  AND date_from <= $3
		  AND (date_to IS NULL OR date_to >= $2)
		ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list recurring items: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecurringItem
	for rows.Next() {
		item, err := scanRecurringItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// AdvanceInstallment avanza la cuota del ítem bajo bloqueo de fila. El ítem es
// el único recurso mutable compartido entre periodos: el SELECT ... FOR UPDATE
// impide que dos confirmaciones concurrentes avancen la misma cuota dos veces.
func (r *RecurringItemRepo) AdvanceInstallment(ctx context.Context, itemID string, amount decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `SELECT ` + recurringItemColumns + ` FROM recurring_items WHERE id = $1 FOR UPDATE`
	item, err := scanRecurringItem(tx.QueryRow(ctx, query, itemID))
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock recurring item: %w", err)
	}

	item.AdvanceInstallment(amount)

	_, err = tx.Exec(ctx, `
		UPDATE recurring_items
		SET current_installment = $2, paid_amount = $3, active = $4, updated_at = $5
		WHERE id = $1`,
		item.ID, item.CurrentInstallment, item.PaidAmount, item.Active, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("advance installment: %w", err)
	}
	return tx.Commit(ctx)
}

func scanRecurringItem(row pgxScanner) (*entity.RecurringItem, error) {
	var item entity.RecurringItem
	err := row.Scan(
		&item.ID, &item.CompanyID, &item.EmployeeID, &item.Name,
		&item.TypeConcept, &item.EarnCategory, &item.DeductionCategory,
		&item.RuleCode, &item.AmountType, &item.Amount,
		&item.UseInstallments, &item.NumberOfInstallments, &item.CurrentInstallment,
		&item.TotalAmount, &item.PaidAmount, &item.DateFrom, &item.DateTo, &item.Active,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
