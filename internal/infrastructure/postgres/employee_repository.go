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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository construye el adaptador de persistencia para trabajadores.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

const employeeColumns = `
	id, company_id, ident_type, identification, full_name, email, address,
	municipality, department, payment_method, bank, account_type, account_number,
	status, created_at, updated_at`

// Create persiste un nuevo trabajador.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(context.Background(), query,
		employee.ID, employee.CompanyID, employee.IdentType, employee.Identification,
		employee.FullName, employee.Email, employee.Address,
		employee.Municipality, employee.Department,
		employee.PaymentMethod, employee.Bank, employee.AccountType, employee.AccountNumber,
		employee.Status, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: identificación ya registrada para la empresa", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// Update actualiza los datos del trabajador.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees
		SET ident_type = $2, identification = $3, full_name = $4, email = $5,
		    address = $6, municipality = $7, department = $8, payment_method = $9,
		    bank = $10, account_type = $11, account_number = $12, status = $13,
		    updated_at = $14
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		employee.ID, employee.IdentType, employee.Identification, employee.FullName,
		employee.Email, employee.Address, employee.Municipality, employee.Department,
		employee.PaymentMethod, employee.Bank, employee.AccountType, employee.AccountNumber,
		employee.Status, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajador por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// ListByCompany devuelve los trabajadores de una empresa.
func (r *EmployeeRepo) ListByCompany(companyID string) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 ORDER BY full_name`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEmployee(row pgxScanner) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.IdentType, &e.Identification, &e.FullName, &e.Email,
		&e.Address, &e.Municipality, &e.Department,
		&e.PaymentMethod, &e.Bank, &e.AccountType, &e.AccountNumber,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
