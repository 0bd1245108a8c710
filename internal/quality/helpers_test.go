package quality

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderjulianmartinez/data-quality/internal/source"
)

type col struct {
	name   string
	values []any // string or nil for a missing cell
}

func buildTable(t *testing.T, cols ...col) *source.Table {
	t.Helper()
	names := make([]string, len(cols))
	n := 0
	for i, c := range cols {
		names[i] = c.name
		if len(c.values) > n {
			n = len(c.values)
		}
	}
	rows := make([][]source.Cell, n)
	for r := range rows {
		rows[r] = make([]source.Cell, len(cols))
		for i, c := range cols {
			if r >= len(c.values) || c.values[r] == nil {
				rows[r][i] = source.Null()
				continue
			}
			rows[r][i] = source.Value(c.values[r].(string))
		}
	}
	tbl, err := source.NewTable(names, rows)
	require.NoError(t, err)
	return tbl
}

func strs(values ...string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// salesTable has every default required column and no data problems.
func salesTable(t *testing.T) *source.Table {
	return buildTable(t,
		col{"id_venta", strs("1", "2")},
		col{"fecha_venta", strs("2024-01-01", "2024-12-31")},
		col{"id_producto", strs("P1", "P2")},
		col{"nombre_producto", strs("Mouse", "Parlante")},
		col{"categoria", strs("Accesorios", "Audio")},
		col{"precio", strs("10.5", "20")},
		col{"cantidad_vendida", strs("2", "3")},
		col{"total_venta", strs("21", "60")},
	)
}
