package quality

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderjulianmartinez/data-quality/internal/source"
	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

// Runner executes checks against a table and turns each result into a report
// row. It never stops early on a failed result.
type Runner struct {
	// Parallel runs checks concurrently. Rows keep the order of the check list.
	Parallel bool
	// MaxWorkers bounds concurrency when Parallel is set; 0 means one goroutine per check.
	MaxWorkers int
}

// Run returns one row per check, in check order. The error is non-nil only when
// a check could not run.
func (r Runner) Run(ctx context.Context, t *source.Table, checks []Check) ([]types.ReportRow, error) {
	results, err := r.evaluate(ctx, t, checks)
	if err != nil {
		return nil, err
	}
	rows := make([]types.ReportRow, len(results))
	for i, res := range results {
		rows[i] = NewReportRow(res)
	}
	return rows, nil
}

func (r Runner) evaluate(ctx context.Context, t *source.Table, checks []Check) ([]types.CheckResult, error) {
	results := make([]types.CheckResult, len(checks))
	if !r.Parallel {
		for i, check := range checks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := check(t)
			if err != nil {
				return nil, fmt.Errorf("check %d: %w", i, err)
			}
			results[i] = res
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if r.MaxWorkers > 0 {
		g.SetLimit(r.MaxWorkers)
	}
	for i, check := range checks {
		i, check := i, check
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := check(t)
			if err != nil {
				return fmt.Errorf("check %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
