package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	passStyle   = cellStyle.Foreground(lipgloss.Color("2"))
	failStyle   = cellStyle.Foreground(lipgloss.Color("1")).Bold(true)
)

const resultColumn = 2

// Render formats the report as a bordered console table.
func Render(rep *types.Report) string {
	rows := make([][]string, len(rep.Rows))
	for i, row := range rep.Rows {
		rows[i] = Strings(row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == resultColumn && row >= 0 && row < len(rows) {
				if rows[row][resultColumn] == types.StatusPassed {
					return passStyle
				}
				return failStyle
			}
			return cellStyle
		})
	return t.String()
}

// Print writes the rendered report followed by a one-line summary.
func Print(w io.Writer, rep *types.Report) error {
	_, err := fmt.Fprintf(w, "%s\n%d checks, %d failed\n", Render(rep), len(rep.Rows), rep.Failed())
	return err
}
