package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

func TestObservation(t *testing.T) {
	assert.Equal(t, ObservationPassed, Observation(types.CheckResult{Passed: true}))
	assert.Equal(t,
		"Se detectaron 3 incidencias. Revisión y corrección de datos requerida antes de continuar.",
		Observation(types.CheckResult{Passed: false, IssuesCount: 3}),
	)
}

func TestObservation_FailedWithZeroIssues(t *testing.T) {
	r := types.CheckResult{TestID: "CT99", Passed: false, IssuesCount: 0}
	assert.Equal(t, ObservationFailedEmpty, Observation(r))

	row := NewReportRow(r)
	assert.Equal(t, types.StatusFailed, row.Result)
	assert.Empty(t, row.Details)
	assert.Equal(t, ObservationFailedEmpty, row.Observations)
}

func TestNewReportRow(t *testing.T) {
	failed := NewReportRow(types.CheckResult{
		TestID: "CT05", Description: "d", Passed: false, IssuesCount: 2, Details: "2 registros",
	})
	assert.Equal(t, types.ReportRow{
		TestID:       "CT05",
		Description:  "d",
		Result:       "Fallido",
		Details:      "2 registros",
		IssuesCount:  2,
		Observations: Observation(types.CheckResult{IssuesCount: 2}),
	}, failed)

	passed := NewReportRow(types.CheckResult{TestID: "CT01", Passed: true, Details: "ignored"})
	assert.Equal(t, "Aprobado", passed.Result)
	assert.Empty(t, passed.Details)
	assert.Equal(t, ObservationPassed, passed.Observations)
}
