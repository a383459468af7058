package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/nomina-pro/internal/domain"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación del puerto ContractRepository sobre PostgreSQL.
type ContractRepo struct {
	pool *pgxpool.Pool
}

// NewContractRepository construye el adaptador de persistencia para contratos.
func NewContractRepository(pool *pgxpool.Pool) *ContractRepo {
	return &ContractRepo{pool: pool}
}

const contractColumns = `
	id, company_id, employee_id, wage, integral_salary, high_risk_pension,
	type_worker_code, subtype_worker_code, type_contract_code, arl_risk_level,
	schedule_pay, date_start, date_end, status, created_at, updated_at`

// Create persiste un nuevo contrato.
func (r *ContractRepo) Create(contract *entity.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.New().String()
	}
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(context.Background(), query,
		contract.ID, contract.CompanyID, contract.EmployeeID,
		contract.Wage, contract.IntegralSalary, contract.HighRiskPension,
		contract.TypeWorkerCode, contract.SubTypeWorkerCode, contract.TypeContractCode,
		contract.ARLRiskLevel, contract.SchedulePay,
		contract.DateStart, contract.DateEnd, contract.Status,
		contract.CreatedAt, contract.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// Update actualiza el contrato.
func (r *ContractRepo) Update(contract *entity.Contract) error {
	query := `
		UPDATE contracts
		SET wage = $2, integral_salary = $3, high_risk_pension = $4,
		    type_worker_code = $5, subtype_worker_code = $6, type_contract_code = $7,
		    arl_risk_level = $8, schedule_pay = $9, date_start = $10, date_end = $11,
		    status = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		contract.ID, contract.Wage, contract.IntegralSalary, contract.HighRiskPension,
		contract.TypeWorkerCode, contract.SubTypeWorkerCode, contract.TypeContractCode,
		contract.ARLRiskLevel, contract.SchedulePay, contract.DateStart, contract.DateEnd,
		contract.Status, contract.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID.
func (r *ContractRepo) GetByID(id string) (*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

// GetActiveByEmployee devuelve el contrato vigente del empleado (nil si no hay).
func (r *ContractRepo) GetActiveByEmployee(employeeID string) (*entity.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE employee_id = $1 AND status = 'active'
		ORDER BY date_start DESC
		LIMIT 1`
	c, err := scanContract(r.pool.QueryRow(context.Background(), query, employeeID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active contract: %w", err)
	}
	return c, nil
}

func scanContract(row pgxScanner) (*entity.Contract, error) {
	var c entity.Contract
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.EmployeeID, &c.Wage, &c.IntegralSalary, &c.HighRiskPension,
		&c.TypeWorkerCode, &c.SubTypeWorkerCode, &c.TypeContractCode, &c.ARLRiskLevel,
		&c.SchedulePay, &c.DateStart, &c.DateEnd, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
