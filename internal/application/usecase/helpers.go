package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/nomina-pro/internal/domain"
)

const dateLayout = "2006-01-02"

// parseMoney convierte un string numérico en decimal; vacío vale cero.
func parseMoney(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s no es un valor numérico", domain.ErrInvalidInput, field)
	}
	return d, nil
}

// parseDate convierte una fecha YYYY-MM-DD.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe ser una fecha YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

// parseDatePtr convierte una fecha opcional; nil si no viene.
func parseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func fmtDate(t time.Time) string {
	return t.Format(dateLayout)
}

func fmtDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
