package source

import (
	"context"
	"fmt"
	"strings"
)

// Cell is a raw table value. Missing marks an absent value (NULL, NA, empty field).
type Cell struct {
	Raw     string
	Missing bool
}

// Value builds a present cell.
func Value(raw string) Cell {
	return Cell{Raw: raw}
}

// Null builds a missing cell.
func Null() Cell {
	return Cell{Missing: true}
}

// MissingColumnError is returned when a caller asks for a column the table does not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in table", e.Column)
}

// Table is an immutable, in-memory view of a tabular dataset.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// NewTable builds a table from a header and rows. Column names must be unique,
// and every row must have exactly one cell per column.
func NewTable(columns []string, rows [][]Cell) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(columns))
		}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, index: index, rows: rows}, nil
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether name is a column of the table.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the cells of row i.
func (t *Table) Row(i int) []Cell {
	return t.rows[i]
}

// Column returns a read-only view over one column.
func (t *Table) Column(name string) (ColumnView, error) {
	pos, ok := t.index[name]
	if !ok {
		return ColumnView{}, &MissingColumnError{Column: name}
	}
	return ColumnView{name: name, pos: pos, table: t}, nil
}

// ColumnView exposes the cells of a single column.
type ColumnView struct {
	name  string
	pos   int
	table *Table
}

func (c ColumnView) Name() string { return c.name }

func (c ColumnView) Len() int { return c.table.Len() }

func (c ColumnView) At(i int) Cell {
	return c.table.rows[i][c.pos]
}

// String renders the table header for logs.
func (t *Table) String() string {
	return fmt.Sprintf("table[%d rows; %s]", len(t.rows), strings.Join(t.columns, ","))
}

// Loader produces a Table from some backing store.
type Loader interface {
	Name() string
	Load(ctx context.Context) (*Table, error)
}
