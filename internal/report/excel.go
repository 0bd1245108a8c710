package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

// Column widths ignore East Asian ambiguous widths regardless of locale.
var widthCondition = &runewidth.Condition{EastAsianWidth: false}

// ExportExcel writes the report to path as a single-sheet workbook holding a
// styled table. The workbook is written to a temporary file next to path and
// renamed into place, so a failed export never leaves a truncated file at path.
func ExportExcel(rep *types.Report, path string) (err error) {
	if rep == nil {
		return errors.New("nil report")
	}
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := buildSheet(f, rep); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Chmod(fileMode(path)); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename workbook: %w", err)
	}
	committed = true
	return nil
}

// fileMode keeps the mode of a report being replaced. New reports get 0644.
func fileMode(path string) os.FileMode {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return 0o644
}

func buildSheet(f *excelize.File, rep *types.Report) error {
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	widths := make([]int, len(Headers))
	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
		widths[i] = widthCondition.StringWidth(h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for r, row := range rep.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := Values(row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
		for i, s := range Strings(row) {
			if w := widthCondition.StringWidth(s); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(Headers), len(rep.Rows)+1)
	if err != nil {
		return err
	}
	showStripes := true
	if err := f.AddTable(SheetName, &excelize.Table{
		Range:             "A1:" + lastCell,
		Name:              TableName,
		StyleName:         TableStyle,
		ShowRowStripes:    &showStripes,
		ShowColumnStripes: false,
		ShowFirstColumn:   false,
		ShowLastColumn:    false,
	}); err != nil {
		return fmt.Errorf("add table: %w", err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(w+WidthPadding)); err != nil {
			return err
		}
	}
	return nil
}
