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

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empleadores.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `
	id, name, nit, dv, address, city, phone, email, status,
	smmlv, uvt, transport_allowance,
	pct_overtime_day, pct_overtime_night, pct_surcharge_night,
	pct_overtime_day_sunday, pct_surcharge_day_sunday,
	pct_overtime_night_sunday, pct_surcharge_night_sunday,
	payroll_enabled, in_production, test_set_id, periodicity,
	created_at, updated_at`

// Create persiste un nuevo empleador.
func (r *CompanyRepo) Create(company *entity.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.NIT, company.DV, company.Address,
		company.City, company.Phone, company.Email, company.Status,
		company.SMMLV, company.UVT, company.TransportAllowance,
		company.PctOvertimeDay, company.PctOvertimeNight, company.PctSurchargeNight,
		company.PctOvertimeDaySunday, company.PctSurchargeDaySunday,
		company.PctOvertimeNightSunday, company.PctSurchargeNightSunday,
		company.PayrollEnabled, company.InProduction, company.TestSetID, company.Periodicity,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: NIT ya registrado", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update actualiza los datos y parámetros fiscales del empleador.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, nit = $3, dv = $4, address = $5, city = $6, phone = $7,
		    email = $8, status = $9, smmlv = $10, uvt = $11, transport_allowance = $12,
		    pct_overtime_day = $13, pct_overtime_night = $14, pct_surcharge_night = $15,
		    pct_overtime_day_sunday = $16, pct_surcharge_day_sunday = $17,
		    pct_overtime_night_sunday = $18, pct_surcharge_night_sunday = $19,
		    payroll_enabled = $20, in_production = $21, test_set_id = $22,
		    periodicity = $23, updated_at = $24
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.NIT, company.DV, company.Address,
		company.City, company.Phone, company.Email, company.Status,
		company.SMMLV, company.UVT, company.TransportAllowance,
		company.PctOvertimeDay, company.PctOvertimeNight, company.PctSurchargeNight,
		company.PctOvertimeDaySunday, company.PctSurchargeDaySunday,
		company.PctOvertimeNightSunday, company.PctSurchargeNightSunday,
		company.PayrollEnabled, company.InProduction, company.TestSetID,
		company.Periodicity, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// GetByID obtiene un empleador por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// List devuelve todos los empleadores registrados.
func (r *CompanyRepo) List() ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCompany(row pgxScanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.NIT, &c.DV, &c.Address, &c.City, &c.Phone, &c.Email, &c.Status,
		&c.SMMLV, &c.UVT, &c.TransportAllowance,
		&c.PctOvertimeDay, &c.PctOvertimeNight, &c.PctSurchargeNight,
		&c.PctOvertimeDaySunday, &c.PctSurchargeDaySunday,
		&c.PctOvertimeNightSunday, &c.PctSurchargeNightSunday,
		&c.PayrollEnabled, &c.InProduction, &c.TestSetID, &c.Periodicity,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
