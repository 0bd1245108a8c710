package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderjulianmartinez/data-quality/internal/config"
)

func TestFromConfig_CSV(t *testing.T) {
	cfg, err := config.Parse([]byte("source:\n  path: ventas.csv\nreport:\n  path: out.xlsx\npublish:\n  brokers: [localhost:9092]\n  topic: quality\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	p, closeAll, err := FromConfig(cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, "csv", p.loader.Name())
	assert.Equal(t, &buf, p.opts.Console)
	assert.NotNil(t, p.opts.Publisher)
	assert.Nil(t, p.opts.Recorder)
	require.NoError(t, closeAll())
}

func TestFromConfig_ConsoleDisabled(t *testing.T) {
	cfg, err := config.Parse([]byte("source:\n  path: ventas.csv\nreport:\n  path: out.xlsx\n  console: false\n"))
	require.NoError(t, err)

	p, closeAll, err := FromConfig(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	defer closeAll()
	assert.Nil(t, p.opts.Console)
}

func TestFromConfig_MySQLUnreachable(t *testing.T) {
	cfg, err := config.Parse([]byte("source:\n  type: mysql\n  dsn: not-a-dsn\n  schema: s\n  table: t\nreport:\n  path: out.xlsx\n"))
	require.NoError(t, err)

	_, _, err = FromConfig(cfg, nil)
	require.ErrorIs(t, err, ErrConfiguration)
}
