package quality

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/alexanderjulianmartinez/data-quality/internal/source"
	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

// Columns the checks read by name.
const (
	ColumnPrice    = "precio"
	ColumnTotal    = "total_venta"
	ColumnQuantity = "cantidad_vendida"
	ColumnDate     = "fecha_venta"
	ColumnCategory = "categoria"
)

// Test identifiers, in execution order.
const (
	TestRequiredColumns = "CT00"
	TestNulls           = "CT01"
	TestNumericFields   = "CT02"
	TestPriceQuantity   = "CT03"
	TestValidDates      = "CT04"
	TestPositiveQty     = "CT05"
	TestCategories      = "CT06"
)

// DefaultRequiredColumns is the column set of the sales dataset.
var DefaultRequiredColumns = []string{
	"id_venta",
	ColumnDate,
	"id_producto",
	"nombre_producto",
	ColumnCategory,
	ColumnPrice,
	ColumnQuantity,
	ColumnTotal,
}

// DefaultAllowedCategories is the category catalogue for CT06.
var DefaultAllowedCategories = []string{
	"Electrónica",
	"Oficina",
	"Accesorios",
	"Fotografía",
	"Computación",
	"Audio",
}

// Check evaluates one rule over a whole table. An error means the check could
// not run (for example a column it needs is absent); data problems are reported
// through the CheckResult.
type Check func(t *source.Table) (types.CheckResult, error)

func newResult(id, description string, issues int, details string) types.CheckResult {
	r := types.CheckResult{
		TestID:      id,
		Description: description,
		Passed:      issues == 0,
		IssuesCount: issues,
	}
	if !r.Passed {
		r.Details = details
	}
	return r
}

// CheckRequiredColumns counts required names absent from the table. Extra
// columns never fail.
func CheckRequiredColumns(t *source.Table, required []string) (types.CheckResult, error) {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return newResult(
		TestRequiredColumns,
		"Validar presencia de columnas obligatorias",
		len(missing),
		"Faltan columnas obligatorias: "+strings.Join(missing, ", "),
	), nil
}

// RequiredColumns binds CheckRequiredColumns to a column list.
func RequiredColumns(required []string) Check {
	cols := append([]string(nil), required...)
	return func(t *source.Table) (types.CheckResult, error) {
		return CheckRequiredColumns(t, cols)
	}
}

// CheckNulls counts rows with at least one missing cell.
func CheckNulls(t *source.Table) (types.CheckResult, error) {
	count := 0
	for i := 0; i < t.Len(); i++ {
		for _, c := range t.Row(i) {
			if c.Missing {
				count++
				break
			}
		}
	}
	return newResult(
		TestNulls,
		"Validar ausencia de valores nulos",
		count,
		fmt.Sprintf("%d filas con valores nulos", count),
	), nil
}

func columns(t *source.Table, names ...string) ([]source.ColumnView, error) {
	views := make([]source.ColumnView, len(names))
	for i, name := range names {
		v, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}

// CheckNumericFields counts cells, not rows, of precio, total_venta and
// cantidad_vendida that do not coerce to a number. Missing cells count.
func CheckNumericFields(t *source.Table) (types.CheckResult, error) {
	views, err := columns(t, ColumnPrice, ColumnTotal, ColumnQuantity)
	if err != nil {
		return types.CheckResult{}, err
	}
	count := 0
	for _, col := range views {
		for i := 0; i < col.Len(); i++ {
			if _, ok := ParseNumeric(col.At(i)); !ok {
				count++
			}
		}
	}
	return newResult(
		TestNumericFields,
		"Validar tipos numéricos en columnas (precio, total_venta y cantidad_vendida)",
		count,
		fmt.Sprintf("%d valores no numéricos encontrados", count),
	), nil
}

// CheckPriceQuantityTotal counts rows where precio * cantidad_vendida differs
// from total_venta. A row with any non-numeric operand is a mismatch.
func CheckPriceQuantityTotal(t *source.Table) (types.CheckResult, error) {
	views, err := columns(t, ColumnPrice, ColumnQuantity, ColumnTotal)
	if err != nil {
		return types.CheckResult{}, err
	}
	price, qty, total := views[0], views[1], views[2]
	count := 0
	for i := 0; i < t.Len(); i++ {
		p, okP := ParseNumeric(price.At(i))
		q, okQ := ParseNumeric(qty.At(i))
		tv, okT := ParseNumeric(total.At(i))
		if !okP || !okQ || !okT || p*q != tv {
			count++
		}
	}
	return newResult(
		TestPriceQuantity,
		"Validar que precio * cantidad_vendida == total_venta",
		count,
		fmt.Sprintf("%d inconsistencias de cálculo en total_venta", count),
	), nil
}

// CheckValidDates counts rows whose fecha_venta does not parse as a date.
func CheckValidDates(t *source.Table) (types.CheckResult, error) {
	col, err := t.Column(ColumnDate)
	if err != nil {
		return types.CheckResult{}, err
	}
	var parser DateParser
	count := 0
	for i := 0; i < col.Len(); i++ {
		if _, ok := parser.Parse(col.At(i)); !ok {
			count++
		}
	}
	return newResult(
		TestValidDates,
		"Validar formato y validez de fechas de venta (fecha_venta)",
		count,
		fmt.Sprintf("%d fechas no válidas encontradas", count),
	), nil
}

// CheckPositiveQuantity counts rows where cantidad_vendida <= 0. Values that
// are not numbers are left to CT01 and CT02.
func CheckPositiveQuantity(t *source.Table) (types.CheckResult, error) {
	col, err := t.Column(ColumnQuantity)
	if err != nil {
		return types.CheckResult{}, err
	}
	count := 0
	for i := 0; i < col.Len(); i++ {
		if v, ok := ParseNumeric(col.At(i)); ok && v <= 0 {
			count++
		}
	}
	return newResult(
		TestPositiveQty,
		"Validar que la columna cantidad_vendida sea mayor a cero",
		count,
		fmt.Sprintf("%d registros con cantidad_vendida no positiva", count),
	), nil
}

// CheckAllowedCategories counts rows whose categoria is not in allowed,
// compared case-insensitively. A missing category is not allowed.
func CheckAllowedCategories(t *source.Table, allowed []string) (types.CheckResult, error) {
	col, err := t.Column(ColumnCategory)
	if err != nil {
		return types.CheckResult{}, err
	}
	fold := cases.Fold()
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[fold.String(a)] = struct{}{}
	}
	count := 0
	for i := 0; i < col.Len(); i++ {
		c := col.At(i)
		if c.Missing {
			count++
			continue
		}
		if _, ok := set[fold.String(c.Raw)]; !ok {
			count++
		}
	}
	return newResult(
		TestCategories,
		"Validar valores permitidos en la columna categoria",
		count,
		fmt.Sprintf("%d valores no permitidos encontrados en categoria", count),
	), nil
}

// AllowedCategories binds CheckAllowedCategories to a catalogue.
func AllowedCategories(allowed []string) Check {
	cats := append([]string(nil), allowed...)
	return func(t *source.Table) (types.CheckResult, error) {
		return CheckAllowedCategories(t, cats)
	}
}

// Suite is the fixed ordered list CT00..CT06.
func Suite(required, allowed []string) []Check {
	return []Check{
		RequiredColumns(required),
		CheckNulls,
		CheckNumericFields,
		CheckPriceQuantityTotal,
		CheckValidDates,
		CheckPositiveQuantity,
		AllowedCategories(allowed),
	}
}
