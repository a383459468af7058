package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.SalaryRuleRepository = (*SalaryRuleRepo)(nil)

// SalaryRuleRepo implementación del puerto SalaryRuleRepository sobre PostgreSQL.
// Las reglas son configuración de solo lectura durante el procesamiento de un periodo.
type SalaryRuleRepo struct {
	pool *pgxpool.Pool
}

// NewSalaryRuleRepository construye el adaptador de persistencia para reglas salariales.
func NewSalaryRuleRepository(pool *pgxpool.Pool) *SalaryRuleRepo {
	return &SalaryRuleRepo{pool: pool}
}

const salaryRuleColumns = `
	id, code, name, type_concept, earn_category, deduction_category,
	aggregation_categories, detailed, amount_strategy, fixed_amount, sequence, active`

// GetByCode obtiene una regla por código dentro de la empresa.
func (r *SalaryRuleRepo) GetByCode(companyID, code string) (*entity.SalaryRule, error) {
	query := `SELECT ` + salaryRuleColumns + ` FROM salary_rules WHERE company_id = $1 AND code = $2`
	rule, err := scanSalaryRule(r.pool.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get salary rule: %w", err)
	}
	return rule, nil
}

// ListActive devuelve las reglas activas de la empresa en orden de secuencia.
func (r *SalaryRuleRepo) ListActive(companyID string) ([]*entity.SalaryRule, error) {
	query := `
		SELECT ` + salaryRuleColumns + `
		FROM salary_rules
		WHERE company_id = $1 AND active = true
		ORDER BY sequence, code`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list salary rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalaryRule
	for rows.Next() {
		rule, err := scanSalaryRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan salary rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

func scanSalaryRule(row pgxScanner) (*entity.SalaryRule, error) {
	var rule entity.SalaryRule
	err := row.Scan(
		&rule.ID, &rule.Code, &rule.Name, &rule.TypeConcept,
		&rule.EarnCategory, &rule.DeductionCategory,
		&rule.AggregationCategories, &rule.Detailed,
		&rule.AmountStrategy, &rule.FixedAmount, &rule.Sequence, &rule.Active,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
