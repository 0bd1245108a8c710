package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderjulianmartinez/data-quality/internal/source"
)

// TableLoader loads one MySQL table as a source.Table.
type TableLoader struct {
	inspector *Inspector
	table     string
}

func NewTableLoader(inspector *Inspector, table string) *TableLoader {
	return &TableLoader{inspector: inspector, table: table}
}

func (l *TableLoader) Name() string {
	return "mysql"
}

func (l *TableLoader) Load(ctx context.Context) (*source.Table, error) {
	schema, err := l.inspector.FetchSchema(ctx, l.table)
	if err != nil {
		return nil, fmt.Errorf("fetch schema for %s: %w", l.table, err)
	}
	if len(schema) == 0 {
		return nil, fmt.Errorf("table %s.%s not found or has no columns", l.inspector.schema, l.table)
	}

	columnNames := make([]string, len(schema))
	quoted := make([]string, len(schema))
	for i, col := range schema {
		columnNames[i] = col.Name
		quoted[i] = quoteIdent(col.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, l.inspector.timeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(l.table))
	rows, err := l.inspector.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", l.table, err)
	}
	defer rows.Close()

	var data [][]source.Cell
	values := make([]sql.NullString, len(schema))
	dest := make([]any, len(schema))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]source.Cell, len(values))
		for i, v := range values {
			if !v.Valid {
				row[i] = source.Null()
				continue
			}
			row[i] = source.Value(v.String)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return source.NewTable(columnNames, data)
}
