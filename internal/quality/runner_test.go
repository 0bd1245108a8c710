package quality

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderjulianmartinez/data-quality/internal/source"
	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

func fixed(id string, issues int) Check {
	return func(*source.Table) (types.CheckResult, error) {
		return newResult(id, "fixed "+id, issues, fmt.Sprintf("%d problems", issues)), nil
	}
}

func TestRunner_DoesNotShortCircuit(t *testing.T) {
	tbl := buildTable(t, col{"a", strs("1")})
	rows, err := Runner{}.Run(context.Background(), tbl, []Check{
		fixed("CT00", 1),
		fixed("CT01", 0),
		fixed("CT02", 4),
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "CT00", rows[0].TestID)
	assert.Equal(t, types.StatusFailed, rows[0].Result)
	assert.Equal(t, "1 problems", rows[0].Details)

	assert.Equal(t, types.StatusPassed, rows[1].Result)
	assert.Empty(t, rows[1].Details)
	assert.Equal(t, ObservationPassed, rows[1].Observations)

	assert.Equal(t, 4, rows[2].IssuesCount)
}

func TestRunner_ParallelKeepsOrder(t *testing.T) {
	tbl := buildTable(t, col{"a", strs("1")})
	var checks []Check
	for i := 0; i < 7; i++ {
		i := i
		id := fmt.Sprintf("CT%02d", i)
		delay := time.Duration(7-i) * time.Millisecond
		checks = append(checks, func(tb *source.Table) (types.CheckResult, error) {
			time.Sleep(delay)
			return fixed(id, i)(tb)
		})
	}
	rows, err := Runner{Parallel: true, MaxWorkers: 3}.Run(context.Background(), tbl, checks)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	for i, row := range rows {
		assert.Equal(t, fmt.Sprintf("CT%02d", i), row.TestID)
		assert.Equal(t, i, row.IssuesCount)
	}
}

func TestRunner_ParallelMatchesSequential(t *testing.T) {
	tbl := buildTable(t,
		col{"id_venta", strs("1", "2", "3")},
		col{"fecha_venta", []any{"2024-01-01", "2024-13-01", nil}},
		col{"id_producto", strs("P1", "P2", "P3")},
		col{"nombre_producto", strs("a", "b", "c")},
		col{"categoria", strs("Audio", "Juguetes", "oficina")},
		col{"precio", strs("10", "x", "3")},
		col{"cantidad_vendida", strs("2", "0", "1")},
		col{"total_venta", strs("20", "0", "4")},
	)
	suite := Suite(DefaultRequiredColumns, DefaultAllowedCategories)
	seq, err := Runner{}.Run(context.Background(), tbl, suite)
	require.NoError(t, err)
	par, err := Runner{Parallel: true}.Run(context.Background(), tbl, suite)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestRunner_CheckError(t *testing.T) {
	tbl := buildTable(t, col{"a", strs("1")})
	for _, r := range []Runner{{}, {Parallel: true}} {
		_, err := r.Run(context.Background(), tbl, []Check{CheckNulls, CheckValidDates})
		var mce *source.MissingColumnError
		require.True(t, errors.As(err, &mce), "parallel=%v", r.Parallel)
		assert.Equal(t, ColumnDate, mce.Column)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Runner{}.Run(ctx, buildTable(t, col{"a", strs("1")}), []Check{CheckNulls})
	require.ErrorIs(t, err, context.Canceled)
}
