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

var _ repository.PayslipRepository = (*PayslipRepo)(nil)

// PayslipRepo implementación del puerto PayslipRepository sobre PostgreSQL.
// La nómina es un agregado: GetByID carga líneas, detalles manuales y ausencias.
type PayslipRepo struct {
	pool *pgxpool.Pool
}

// NewPayslipRepository construye el adaptador de persistencia para nóminas individuales.
func NewPayslipRepository(pool *pgxpool.Pool) *PayslipRepo {
	return &PayslipRepo{pool: pool}
}

const payslipColumns = `
	id, company_id, employee_id, contract_id, date_from, date_to, payment_date,
	state, worked_days, is_settlement, origin_id, credit_note, created_at, updated_at`

// Create persiste la cabecera de la nómina con sus detalles y ausencias iniciales.
func (r *PayslipRepo) Create(payslip *entity.Payslip) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if payslip.ID == "" {
		payslip.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payslips (` + payslipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.Exec(ctx, query,
		payslip.ID, payslip.CompanyID, payslip.EmployeeID, payslip.ContractID,
		payslip.DateFrom, payslip.DateTo, payslip.PaymentDate,
		payslip.State, payslip.WorkedDays, payslip.IsSettlement,
		payslip.OriginID, payslip.CreditNote,
		payslip.CreatedAt, payslip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payslip: %w", err)
	}

	if err := insertDetails(ctx, tx, payslip); err != nil {
		return err
	}
	if err := insertLeaves(ctx, tx, payslip); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update actualiza la cabecera y reemplaza detalles manuales y ausencias.
// Las líneas calculadas se gestionan por separado con ReplaceLines.
func (r *PayslipRepo) Update(payslip *entity.Payslip) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE payslips
		SET date_from = $2, date_to = $3, payment_date = $4, state = $5,
		    worked_days = $6, is_settlement = $7, origin_id = $8, credit_note = $9,
		    updated_at = $10
		WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		payslip.ID, payslip.DateFrom, payslip.DateTo, payslip.PaymentDate,
		payslip.State, payslip.WorkedDays, payslip.IsSettlement,
		payslip.OriginID, payslip.CreditNote, payslip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payslip: %w", err)
	}

	for _, table := range []string{"payslip_earn_details", "payslip_deduction_details", "payslip_leaves"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE payslip_id = $1`, payslip.ID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	if err := insertDetails(ctx, tx, payslip); err != nil {
		return err
	}
	if err := insertLeaves(ctx, tx, payslip); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID carga la nómina completa (líneas, detalles manuales y ausencias).
func (r *PayslipRepo) GetByID(id string) (*entity.Payslip, error) {
	ctx := context.Background()
	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1`
	p, err := scanPayslip(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get payslip: %w", err)
	}

	if p.Lines, err = r.loadLines(ctx, id); err != nil {
		return nil, err
	}
	if p.EarnDetails, err = r.loadEarnDetails(ctx, id); err != nil {
		return nil, err
	}
	if p.DeductionDetails, err = r.loadDeductionDetails(ctx, id); err != nil {
		return nil, err
	}
	if p.Leaves, err = r.loadLeaves(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// ReplaceLines borra y reinserta las líneas calculadas en una sola transacción.
func (r *PayslipRepo) ReplaceLines(payslipID string, lines []entity.PayslipLine) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM payslip_lines WHERE payslip_id = $1`, payslipID); err != nil {
		return fmt.Errorf("delete payslip lines: %w", err)
	}
	for i := range lines {
		line := &lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.PayslipID = payslipID
		_, err := tx.Exec(ctx, `
			INSERT INTO payslip_lines (id, payslip_id, rule_code, rule_name, quantity, rate, total, sequence)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			line.ID, line.PayslipID, line.RuleCode, line.RuleName,
			line.Quantity, line.Rate, line.Total, i,
		)
		if err != nil {
			return fmt.Errorf("insert payslip line %s: %w", line.RuleCode, err)
		}
	}
	return tx.Commit(ctx)
}

// ListForPeriod devuelve las nóminas done/paid de un empleado cuyo periodo cae
// dentro del mes indicado, con líneas y ausencias cargadas.
func (r *PayslipRepo) ListForPeriod(companyID, employeeID string, year int, month time.Month) ([]*entity.Payslip, error) {
	ctx := context.Background()
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE company_id = $1 AND employee_id = $2
		  AND state IN ('done', 'paid')
		  AND date_from >= $3 AND date_to <= $4
		ORDER BY date_from`
	rows, err := r.pool.Query(ctx, query, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("list payslips for period: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payslip: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range list {
		if p.Lines, err = r.loadLines(ctx, p.ID); err != nil {
			return nil, err
		}
		if p.EarnDetails, err = r.loadEarnDetails(ctx, p.ID); err != nil {
			return nil, err
		}
		if p.DeductionDetails, err = r.loadDeductionDetails(ctx, p.ID); err != nil {
			return nil, err
		}
		if p.Leaves, err = r.loadLeaves(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// PreviousMonthIBC busca la línea IBC de la nómina done/paid más reciente del
// contrato cuyo periodo termina en el mes calendario anterior a before.
func (r *PayslipRepo) PreviousMonthIBC(contractID string, before time.Time) (decimal.Decimal, bool, error) {
	prevMonthStart := time.Date(before.Year(), before.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prevMonthEnd := prevMonthStart.AddDate(0, 1, -1)

	query := `
		SELECT l.total
		FROM payslip_lines l
		JOIN payslips p ON p.id = l.payslip_id
		WHERE p.contract_id = $1
		  AND p.state IN ('done', 'paid')
		  AND p.date_to >= $2 AND p.date_to <= $3
		  AND l.rule_code = $4
		ORDER BY p.date_to DESC
		LIMIT 1`
	var ibc decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query,
		contractID, prevMonthStart, prevMonthEnd, entity.RuleCodeIBC,
	).Scan(&ibc)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("get previous month IBC: %w", err)
	}
	return ibc, true, nil
}

// ── carga del agregado ────────────────────────────────────────────────────────

func (r *PayslipRepo) loadLines(ctx context.Context, payslipID string) ([]entity.PayslipLine, error) {
	query := `
		SELECT id, payslip_id, rule_code, rule_name, quantity, rate, total
		FROM payslip_lines WHERE payslip_id = $1 ORDER BY sequence`
	rows, err := r.pool.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("list payslip lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.PayslipLine
	for rows.Next() {
		var l entity.PayslipLine
		if err := rows.Scan(&l.ID, &l.PayslipID, &l.RuleCode, &l.RuleName, &l.Quantity, &l.Rate, &l.Total); err != nil {
			return nil, fmt.Errorf("scan payslip line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PayslipRepo) loadEarnDetails(ctx context.Context, payslipID string) ([]entity.EarnDetail, error) {
	query := `
		SELECT id, payslip_id, category, amount, quantity, date_start, time_start,
		       date_end, time_end, percentage, description
		FROM payslip_earn_details WHERE payslip_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("list earn details: %w", err)
	}
	defer rows.Close()
	var details []entity.EarnDetail
	for rows.Next() {
		var d entity.EarnDetail
		if err := rows.Scan(&d.ID, &d.PayslipID, &d.Category, &d.Amount, &d.Quantity,
			&d.DateStart, &d.TimeStart, &d.DateEnd, &d.TimeEnd, &d.Percentage, &d.Description); err != nil {
			return nil, fmt.Errorf("scan earn detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PayslipRepo) loadDeductionDetails(ctx context.Context, payslipID string) ([]entity.DeductionDetail, error) {
	query := `
		SELECT id, payslip_id, category, amount, description
		FROM payslip_deduction_details WHERE payslip_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("list deduction details: %w", err)
	}
	defer rows.Close()
	var details []entity.DeductionDetail
	for rows.Next() {
		var d entity.DeductionDetail
		if err := rows.Scan(&d.ID, &d.PayslipID, &d.Category, &d.Amount, &d.Description); err != nil {
			return nil, fmt.Errorf("scan deduction detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PayslipRepo) loadLeaves(ctx context.Context, payslipID string) ([]entity.Leave, error) {
	query := `
		SELECT id, payslip_id, type_code, date_from, date_to, days, reduces_base
		FROM payslip_leaves WHERE payslip_id = $1 ORDER BY date_from`
	rows, err := r.pool.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()
	var leaves []entity.Leave
	for rows.Next() {
		var l entity.Leave
		if err := rows.Scan(&l.ID, &l.PayslipID, &l.TypeCode, &l.DateFrom, &l.DateTo, &l.Days, &l.ReducesBase); err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func insertDetails(ctx context.Context, q Querier, payslip *entity.Payslip) error {
	for i := range payslip.EarnDetails {
		d := &payslip.EarnDetails[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.PayslipID = payslip.ID
		_, err := q.Exec(ctx, `
			INSERT INTO payslip_earn_details
				(id, payslip_id, category, amount, quantity, date_start, time_start,
				 date_end, time_end, percentage, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			d.ID, d.PayslipID, d.Category, d.Amount, d.Quantity,
			d.DateStart, d.TimeStart, d.DateEnd, d.TimeEnd, d.Percentage, d.Description,
		)
		if err != nil {
			return fmt.Errorf("insert earn detail: %w", err)
		}
	}
	for i := range payslip.DeductionDetails {
		d := &payslip.DeductionDetails[i]
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.PayslipID = payslip.ID
		_, err := q.Exec(ctx, `
			INSERT INTO payslip_deduction_details (id, payslip_id, category, amount, description)
			VALUES ($1, $2, $3, $4, $5)`,
			d.ID, d.PayslipID, d.Category, d.Amount, d.Description,
		)
		if err != nil {
			return fmt.Errorf("insert deduction detail: %w", err)
		}
	}
	return nil
}

func insertLeaves(ctx context.Context, q Querier, payslip *entity.Payslip) error {
	for i := range payslip.Leaves {
		l := &payslip.Leaves[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.PayslipID = payslip.ID
		_, err := q.Exec(ctx, `
			INSERT INTO payslip_leaves (id, payslip_id, type_code, date_from, date_to, days, reduces_base)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.PayslipID, l.TypeCode, l.DateFrom, l.DateTo, l.Days, l.ReducesBase,
		)
		if err != nil {
			return fmt.Errorf("insert leave: %w", err)
		}
	}
	return nil
}

func scanPayslip(row pgxScanner) (*entity.Payslip, error) {
	var p entity.Payslip
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.ContractID,
		&p.DateFrom, &p.DateTo, &p.PaymentDate,
		&p.State, &p.WorkedDays, &p.IsSettlement,
		&p.OriginID, &p.CreditNote,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
