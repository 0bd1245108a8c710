// Package report assembles check rows into a Report and renders it as a
// spreadsheet or a console table.
package report

import (
	"strconv"

	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

// Column labels of the exported report, in order.
var Headers = []string{
	"ID caso de prueba",
	"Descripción del Caso",
	"Resultado",
	"Descripción del Resultado",
	"Número de Incidencias Detectadas",
	"Observaciones",
}

const (
	SheetName = "Data_Quality_Report"
	TableName = "DataQualityResults"
	// TableStyle is a medium table style with banded rows.
	TableStyle = "TableStyleMedium9"
	// WidthPadding is added to the longest rendered value of each column.
	WidthPadding = 2
)

// Assemble wraps rows into a Report, keeping their order.
func Assemble(rows []types.ReportRow) *types.Report {
	out := make([]types.ReportRow, len(rows))
	copy(out, rows)
	return &types.Report{Rows: out}
}

// Values returns a row's cells in header order.
func Values(row types.ReportRow) []any {
	return []any{
		row.TestID,
		row.Description,
		row.Result,
		row.Details,
		row.IssuesCount,
		row.Observations,
	}
}

// Strings renders a row's cells as text in header order.
func Strings(row types.ReportRow) []string {
	return []string{
		row.TestID,
		row.Description,
		row.Result,
		row.Details,
		strconv.Itoa(row.IssuesCount),
		row.Observations,
	}
}
