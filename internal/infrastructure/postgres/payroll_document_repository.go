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

var _ repository.PayrollDocumentRepository = (*PayrollDocumentRepo)(nil)

// PayrollDocumentRepo implementación del puerto PayrollDocumentRepository sobre PostgreSQL.
type PayrollDocumentRepo struct {
	pool *pgxpool.Pool
}

// NewPayrollDocumentRepository construye el adaptador de persistencia para documentos consolidados.
func NewPayrollDocumentRepository(pool *pgxpool.Pool) *PayrollDocumentRepo {
	return &PayrollDocumentRepo{pool: pool}
}

const documentColumns = `
	id, company_id, employee_id, prefix, number, name, year, month,
	date, issue_time, payment_dates, state, edi_state, credit_note, origin_id,
	cune, zip_key, status_message, edi_errors, qr_data,
	accrued_total, deductions_total, net_total, rounding, worked_days,
	payslip_ids, created_at, updated_at`

// Create persiste el documento consolidado.
func (r *PayrollDocumentRepo) Create(doc *entity.PayrollDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payroll_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`
	_, err := r.pool.Exec(context.Background(), query,
		doc.ID, doc.CompanyID, doc.EmployeeID, doc.Prefix, doc.Number, doc.Name,
		doc.Year, doc.Month, doc.Date, doc.IssueTime, doc.PaymentDates,
		doc.State, doc.EdiState, doc.CreditNote, doc.OriginID,
		nullIfEmpty(doc.CUNE), nullIfEmpty(doc.ZipKey),
		nullIfEmpty(doc.StatusMessage), nullIfEmpty(doc.EdiErrors), nullIfEmpty(doc.QRData),
		doc.AccruedTotal, doc.DeductionsTotal, doc.NetTotal, doc.Rounding, doc.WorkedDays,
		doc.PayslipIDs, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un documento para el periodo", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert payroll document: %w", err)
	}
	return nil
}

// Update persiste todo el estado mutable del documento (consecutivo, estados EDI,
// identificadores del envío y totales).
func (r *PayrollDocumentRepo) Update(doc *entity.PayrollDocument) error {
	query := `
		UPDATE payroll_documents
		SET prefix = $2, number = $3, name = $4, date = $5, issue_time = $6,
		    payment_dates = $7, state = $8, edi_state = $9,
		    cune = COALESCE($10, cune), zip_key = COALESCE($11, zip_key),
		    status_message = $12, edi_errors = $13, qr_data = COALESCE($14, qr_data),
		    accrued_total = $15, deductions_total = $16, net_total = $17,
		    rounding = $18, worked_days = $19, updated_at = $20
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		doc.ID, doc.Prefix, doc.Number, doc.Name, doc.Date, doc.IssueTime,
		doc.PaymentDates, doc.State, doc.EdiState,
		nullIfEmpty(doc.CUNE), nullIfEmpty(doc.ZipKey),
		doc.StatusMessage, doc.EdiErrors, nullIfEmpty(doc.QRData),
		doc.AccruedTotal, doc.DeductionsTotal, doc.NetTotal,
		doc.Rounding, doc.WorkedDays, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payroll document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *PayrollDocumentRepo) GetByID(id string) (*entity.PayrollDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM payroll_documents WHERE id = $1`
	doc, err := scanDocument(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get payroll document: %w", err)
	}
	return doc, nil
}

// Delete elimina el documento; el caso de uso garantiza que solo draft/cancel llegan aquí.
func (r *PayrollDocumentRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM payroll_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payroll document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany devuelve los documentos de una empresa, más recientes primero.
func (r *PayrollDocumentRepo) ListByCompany(companyID string) ([]*entity.PayrollDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM payroll_documents
		WHERE company_id = $1
		ORDER BY year DESC, month DESC, name`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list payroll documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayrollDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

func scanDocument(row pgxScanner) (*entity.PayrollDocument, error) {
	var doc entity.PayrollDocument
	var cune, zipKey, statusMessage, ediErrors, qrData *string
	err := row.Scan(
		&doc.ID, &doc.CompanyID, &doc.EmployeeID, &doc.Prefix, &doc.Number, &doc.Name,
		&doc.Year, &doc.Month, &doc.Date, &doc.IssueTime, &doc.PaymentDates,
		&doc.State, &doc.EdiState, &doc.CreditNote, &doc.OriginID,
		&cune, &zipKey, &statusMessage, &ediErrors, &qrData,
		&doc.AccruedTotal, &doc.DeductionsTotal, &doc.NetTotal, &doc.Rounding, &doc.WorkedDays,
		&doc.PayslipIDs, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.CUNE = derefStr(cune)
	doc.ZipKey = derefStr(zipKey)
	doc.StatusMessage = derefStr(statusMessage)
	doc.EdiErrors = derefStr(ediErrors)
	doc.QRData = derefStr(qrData)
	return &doc, nil
}
