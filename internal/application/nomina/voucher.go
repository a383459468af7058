package nomina

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/internal/domain/repository"
)

// VoucherLine es una fila del desprendible: concepto con su devengo o deducción.
type VoucherLine struct {
	Concept   string
	Quantity  decimal.Decimal
	Earn      decimal.Decimal // cero si la línea es deducción
	Deduction decimal.Decimal // magnitud positiva; cero si la línea es devengo
}

// VoucherPDFGenerator es el puerto hacia la generación del desprendible de pago.
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(ctx context.Context,
		doc *entity.PayrollDocument,
		company *entity.Company,
		employee *entity.Employee,
		lines []VoucherLine) ([]byte, error)
}

// VoucherUseCase arma el desprendible de pago de un documento consolidado.
type VoucherUseCase struct {
	docs      repository.PayrollDocumentRepository
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	payslips  repository.PayslipRepository
	generator VoucherPDFGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(
	docs repository.PayrollDocumentRepository,
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	payslips repository.PayslipRepository,
	generator VoucherPDFGenerator,
) *VoucherUseCase {
	return &VoucherUseCase{
		docs:      docs,
		companies: companies,
		employees: employees,
		payslips:  payslips,
		generator: generator,
	}
}

// Generate produce el PDF del desprendible con las líneas de las nóminas
// constituyentes del documento.
func (uc *VoucherUseCase) Generate(ctx context.Context, docID string) ([]byte, error) {
	doc, err := uc.docs.GetByID(docID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(doc.CompanyID)
	if err != nil {
		return nil, err
	}
	employee, err := uc.employees.GetByID(doc.EmployeeID)
	if err != nil {
		return nil, err
	}

	var lines []VoucherLine
	for _, id := range doc.PayslipIDs {
		slip, err := uc.payslips.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("cargar nómina %s: %w", id, err)
		}
		for i := range slip.Lines {
			l := &slip.Lines[i]
			vl := VoucherLine{Concept: l.RuleName, Quantity: l.Quantity}
			if l.Total.IsNegative() {
				vl.Deduction = l.Total.Abs()
			} else {
				vl.Earn = l.Total
			}
			lines = append(lines, vl)
		}
	}

	return uc.generator.GenerateVoucherPDF(ctx, doc, company, employee, lines)
}
