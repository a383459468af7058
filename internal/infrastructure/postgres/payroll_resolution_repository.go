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

var _ repository.PayrollResolutionRepository = (*PayrollResolutionRepo)(nil)

// PayrollResolutionRepo implementación del puerto PayrollResolutionRepository sobre PostgreSQL.
type PayrollResolutionRepo struct {
	pool *pgxpool.Pool
}

// NewPayrollResolutionRepository construye el adaptador de persistencia para resoluciones.
func NewPayrollResolutionRepository(pool *pgxpool.Pool) *PayrollResolutionRepo {
	return &PayrollResolutionRepo{pool: pool}
}

const resolutionColumns = `
	id, company_id, resolution_number, type_document_code, prefix,
	from_number, to_number, next_number, date_from, date_to, state,
	created_at, updated_at`

// Create persiste la resolución; el consecutivo arranca en from_number.
func (r *PayrollResolutionRepo) Create(res *entity.PayrollResolution) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payroll_resolutions
			(id, company_id, resolution_number, type_document_code, prefix,
			 from_number, to_number, next_number, date_from, date_to, state,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		res.ID, res.CompanyID, res.ResolutionNumber, res.TypeDocumentCode, res.Prefix,
		res.FromNumber, res.ToNumber, res.DateFrom, res.DateTo, res.State,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: resolución ya registrada", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert payroll resolution: %w", err)
	}
	return nil
}

// Update actualiza la resolución (no toca next_number; eso es de ConsumeNextNumber).
func (r *PayrollResolutionRepo) Update(res *entity.PayrollResolution) error {
	query := `
		UPDATE payroll_resolutions
		SET resolution_number = $2, type_document_code = $3, prefix = $4,
		    from_number = $5, to_number = $6, date_from = $7, date_to = $8,
		    state = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		res.ID, res.ResolutionNumber, res.TypeDocumentCode, res.Prefix,
		res.FromNumber, res.ToNumber, res.DateFrom, res.DateTo,
		res.State, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payroll resolution: %w", err)
	}
	return nil
}

// GetByID obtiene una resolución por ID.
func (r *PayrollResolutionRepo) GetByID(id string) (*entity.PayrollResolution, error) {
	query := `SELECT ` + resolutionColumns + ` FROM payroll_resolutions WHERE id = $1`
	res, err := scanResolution(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get payroll resolution: %w", err)
	}
	return res, nil
}

// GetActive devuelve la resolución activa y vigente para empresa/tipo de documento/prefijo.
func (r *PayrollResolutionRepo) GetActive(ctx context.Context, companyID, typeDocumentCode, prefix string) (*entity.PayrollResolution, error) {
	query := `
		SELECT ` + resolutionColumns + `
		FROM payroll_resolutions
		WHERE company_id = $1
		  AND type_document_code = $2
		  AND prefix = $3
		  AND state = 'active'
		  AND date_to >= CURRENT_DATE
		ORDER BY date_from DESC
		LIMIT 1`
	res, err := scanResolution(r.pool.QueryRow(ctx, query, companyID, typeDocumentCode, prefix))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get active payroll resolution: %w", err)
	}
	return res, nil
}

// ListActiveByType lista las resoluciones activas del mismo tipo/prefijo
// (validación de traslape de rangos al registrar una nueva).
func (r *PayrollResolutionRepo) ListActiveByType(companyID, typeDocumentCode, prefix string) ([]*entity.PayrollResolution, error) {
	query := `
		SELECT ` + resolutionColumns + `
		FROM payroll_resolutions
		WHERE company_id = $1 AND type_document_code = $2 AND prefix = $3 AND state = 'active'
		ORDER BY from_number`
	rows, err := r.pool.Query(context.Background(), query, companyID, typeDocumentCode, prefix)
	if err != nil {
		return nil, fmt.Errorf("list payroll resolutions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayrollResolution
	for rows.Next() {
		res, err := scanResolution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll resolution: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// ConsumeNextNumber asigna y reserva el siguiente consecutivo bajo bloqueo de
// fila. La fila de la resolución serializa la numeración: dos documentos que
// finalizan a la vez nunca reciben el mismo número.
func (r *PayrollResolutionRepo) ConsumeNextNumber(ctx context.Context, resolutionID string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var next, to int64
	err = tx.QueryRow(ctx, `
		SELECT next_number, to_number FROM payroll_resolutions
		WHERE id = $1 FOR UPDATE`, resolutionID,
	).Scan(&next, &to)
	if err != nil {
		if isNoRows(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("lock payroll resolution: %w", err)
	}
	if next > to {
		return 0, fmt.Errorf("%w: rango de numeración agotado", domain.ErrConflict)
	}

	_, err = tx.Exec(ctx, `
		UPDATE payroll_resolutions SET next_number = $2, updated_at = now()
		WHERE id = $1`, resolutionID, next+1,
	)
	if err != nil {
		return 0, fmt.Errorf("consume next number: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return next, nil
}

func scanResolution(row pgxScanner) (*entity.PayrollResolution, error) {
	var res entity.PayrollResolution
	var nextNumber int64
	err := row.Scan(
		&res.ID, &res.CompanyID, &res.ResolutionNumber, &res.TypeDocumentCode, &res.Prefix,
		&res.FromNumber, &res.ToNumber, &nextNumber, &res.DateFrom, &res.DateTo, &res.State,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
