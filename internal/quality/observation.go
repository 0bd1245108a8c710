package quality

import (
	"fmt"

	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

// Observation messages attached to report rows.
const (
	ObservationPassed      = "Validación exitosa. No se detectaron problemas."
	ObservationFailedEmpty = "Validación fallida. Revisión de datos necesaria."
	ObservationSchemaGate  = "Pipeline detenido por error de esquema"
)

// Observation derives the human observation for a result.
// A failed result with zero issues is inconsistent; it still gets a message.
func Observation(r types.CheckResult) string {
	switch {
	case r.Passed:
		return ObservationPassed
	case r.IssuesCount > 0:
		return fmt.Sprintf("Se detectaron %d incidencias. Revisión y corrección de datos requerida antes de continuar.", r.IssuesCount)
	default:
		return ObservationFailedEmpty
	}
}

// Status maps a pass flag to its localized label.
func Status(passed bool) string {
	if passed {
		return types.StatusPassed
	}
	return types.StatusFailed
}

// NewReportRow converts a result into a report row.
func NewReportRow(r types.CheckResult) types.ReportRow {
	row := types.ReportRow{
		TestID:       r.TestID,
		Description:  r.Description,
		Result:       Status(r.Passed),
		IssuesCount:  r.IssuesCount,
		Observations: Observation(r),
	}
	if !r.Passed {
		row.Details = r.Details
	}
	return row
}
