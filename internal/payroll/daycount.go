// Package payroll implementa los cálculos puros de la nómina colombiana:
// convención de días 360, prestaciones sociales (prima, cesantías, intereses),
// IBC, subsidios por incapacidad y retención en la fuente (Art. 383 ET).
// Todas las funciones son deterministas y sin efectos; los montos usan decimal.
package payroll

import "time"

// Days360 cuenta los días entre dos fechas bajo la convención laboral colombiana
// de año de 360 días y mes de 30: el día 31 se trata como 30 y el conteo incluye
// ambos extremos (mismo día = 1).
//
// Devuelve 0 si alguna fecha es cero o si end precede a start. Ese 0 no es un
// error: señala "no hay periodo que liquidar" y los llamadores deben tratarlo así.
func Days360(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	d1, m1, y1 := normalize30(start, false)
	d2, m2, y2 := normalize30(end, false)
	return (y2-y1)*360 + (m2-m1)*30 + (d2 - d1) + 1
}

// TimeWorked cuenta días como Days360 pero además trata el último día de febrero
// como día 30, de modo que un mes de febrero completo liquida 30 días. Es la
// variante usada para el tiempo laborado del documento fiscal.
func TimeWorked(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	d1, m1, y1 := normalize30(start, true)
	d2, m2, y2 := normalize30(end, true)
	return (y2-y1)*360 + (m2-m1)*30 + (d2 - d1) + 1
}

// normalize30 extrae (día, mes, año) aplicando la coerción a 30.
func normalize30(t time.Time, coerceFebruary bool) (day, month, year int) {
	year = t.Year()
	month = int(t.Month())
	day = t.Day()
	if day == 31 {
		day = 30
	}
	if coerceFebruary && t.Month() == time.February && day == lastDayOfFebruary(year) {
		day = 30
	}
	return day, month, year
}

func lastDayOfFebruary(year int) int {
	// 1 de marzo menos un día
	return time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}
