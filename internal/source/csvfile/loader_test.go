package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestRead_MissingMarkers(t *testing.T) {
	data := "a,b,c\n1,,NA\nnull,x\n"
	tbl, err := Read(context.Background(), strings.NewReader(data), unicode.UTF8, ',')
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	row := tbl.Row(0)
	assert.False(t, row[0].Missing)
	assert.True(t, row[1].Missing)
	assert.True(t, row[2].Missing)

	// short rows are padded with missing cells
	row = tbl.Row(1)
	assert.True(t, row[0].Missing)
	assert.Equal(t, "x", row[1].Raw)
	assert.True(t, row[2].Missing)
}

func TestRead_TooManyFields(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader("a,b\n1,2,3\n"), unicode.UTF8, ',')
	require.Error(t, err)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader(""), unicode.UTF8, ',')
	require.Error(t, err)
}

func TestRead_StripsBOM(t *testing.T) {
	tbl, err := Read(context.Background(), strings.NewReader("\ufeffid,x\n1,2\n"), unicode.UTF8, ',')
	require.NoError(t, err)
	assert.True(t, tbl.HasColumn("id"))
}

func TestLoader_Latin1(t *testing.T) {
	text := "categoria;precio\nElectrónica;10\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(text)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ventas.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644))

	l, err := NewLoader(path, "latin-1", ";")
	require.NoError(t, err)
	assert.Equal(t, "csv", l.Name())

	tbl, err := l.Load(context.Background())
	require.NoError(t, err)
	col, err := tbl.Column("categoria")
	require.NoError(t, err)
	assert.Equal(t, "Electrónica", col.At(0).Raw)
}

func TestLoader_FileNotFound(t *testing.T) {
	l, err := NewLoader(filepath.Join(t.TempDir(), "missing.csv"), "", "")
	require.NoError(t, err)
	_, err = l.Load(context.Background())
	require.Error(t, err)
}

func TestNewLoader_BadOptions(t *testing.T) {
	_, err := NewLoader("", "", "")
	require.Error(t, err)
	_, err = NewLoader("x.csv", "klingon", "")
	require.Error(t, err)
	_, err = NewLoader("x.csv", "", ";;")
	require.Error(t, err)
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"", "latin-1", "LATIN1", "cp1252", "utf-8", "ISO-8859-15"} {
		enc, err := LookupEncoding(name)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}
}
