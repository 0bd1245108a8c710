package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/alexanderjulianmartinez/data-quality/internal/source"
)

const DefaultEncoding = "latin-1"

// Values read as missing, matching the NA markers of common dataframe readers.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

var aliases = map[string]encoding.Encoding{
	"latin-1":      charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
}

// LookupEncoding resolves an encoding name. Common Python-style aliases are
// accepted in addition to IANA names.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultEncoding
	}
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// IsNA reports whether a raw field is a missing marker.
func IsNA(raw string) bool {
	_, ok := naValues[raw]
	return ok
}

// Loader reads a delimited file with a header row.
type Loader struct {
	path      string
	encoding  encoding.Encoding
	delimiter rune
}

func NewLoader(path, encodingName, delimiter string) (*Loader, error) {
	if path == "" {
		return nil, errors.New("csv path is required")
	}
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	comma := ','
	if delimiter != "" {
		if utf8.RuneCountInString(delimiter) != 1 {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		comma, _ = utf8.DecodeRuneInString(delimiter)
	}
	return &Loader{path: path, encoding: enc, delimiter: comma}, nil
}

func (l *Loader) Name() string {
	return "csv"
}

func (l *Loader) Load(ctx context.Context) (*source.Table, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer f.Close()

	table, err := Read(ctx, f, l.encoding, l.delimiter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	return table, nil
}

// Read decodes r with enc and parses it as a delimited table.
func Read(ctx context.Context, r io.Reader, enc encoding.Encoding, delimiter rune) (*source.Table, error) {
	cr := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty file: header row expected")
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]source.Cell
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		row := make([]source.Cell, len(header))
		for i := range header {
			if i >= len(record) || IsNA(record[i]) {
				row[i] = source.Null()
				continue
			}
			row[i] = source.Value(record[i])
		}
		rows = append(rows, row)
	}
	return source.NewTable(header, rows)
}
