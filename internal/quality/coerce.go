package quality

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderjulianmartinez/data-quality/internal/source"
)

// ParseNumeric coerces a cell to a float. ok is false for missing cells,
// unparseable text and NaN.
func ParseNumeric(c source.Cell) (v float64, ok bool) {
	if c.Missing {
		return 0, false
	}
	s := strings.TrimSpace(c.Raw)
	if s == "" || strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") || strings.Contains(s, "_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Date layouts tried, in order, against the first parseable value of a column.
// Month-first precedes day-first for slash separated dates.
var dateLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05",
	time.RFC3339,
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006.1.2",
	"20060102",
	"1/2/2006",
	"2/1/2006",
	"1/2/2006 15:04:05",
	"2-1-2006",
	"1-2-2006",
	"2.1.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// InferDateLayout returns the first layout that parses value.
func InferDateLayout(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return layout, true
		}
	}
	return "", false
}

// DateParser parses a column of dates using one layout, inferred from the
// first value that parses under any known layout.
type DateParser struct {
	layout string
}

func (p *DateParser) Parse(c source.Cell) (time.Time, bool) {
	if c.Missing {
		return time.Time{}, false
	}
	value := strings.TrimSpace(c.Raw)
	if p.layout == "" {
		layout, ok := InferDateLayout(value)
		if !ok {
			return time.Time{}, false
		}
		p.layout = layout
	}
	t, err := time.Parse(p.layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Layout returns the inferred layout, or "" before any value parsed.
func (p *DateParser) Layout() string {
	return p.layout
}
