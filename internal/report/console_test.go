package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out := Render(sampleReport())
	for _, h := range Headers {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "CT00")
	assert.Contains(t, out, "3 filas con valores nulos")
}

func TestPrint_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, sampleReport()))
	assert.Contains(t, buf.String(), "2 checks, 1 failed")
}
