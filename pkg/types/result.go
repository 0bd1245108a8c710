package types

// Localized status values for ReportRow.Result.
const (
	StatusPassed = "Aprobado"
	StatusFailed = "Fallido"
)

// CheckResult is the outcome of a single check over a whole table.
// Details is empty when Passed is true.
type CheckResult struct {
	TestID      string
	Description string
	Passed      bool
	IssuesCount int
	Details     string
}

// ReportRow is a CheckResult rendered for the report.
type ReportRow struct {
	TestID       string
	Description  string
	Result       string
	Details      string
	IssuesCount  int
	Observations string
}

// Report holds rows in execution order.
type Report struct {
	Rows []ReportRow
}

// Passed reports whether every row in the report passed.
func (r *Report) Passed() bool {
	for _, row := range r.Rows {
		if row.Result != StatusPassed {
			return false
		}
	}
	return true
}

// Failed returns the number of failed rows.
func (r *Report) Failed() int {
	n := 0
	for _, row := range r.Rows {
		if row.Result != StatusPassed {
			n++
		}
	}
	return n
}
