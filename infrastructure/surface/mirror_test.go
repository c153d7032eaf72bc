package surface

import (
	"bytes"
	"testing"

	"frametrim/domain/logging"
	"frametrim/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func TestConsoleMirror(t *testing.T) {
	var buf bytes.Buffer
	m := NewConsoleMirror(logger.NewWriter(logging.LevelDebug, &buf))

	m.SetRange(0, 99)
	m.SetValue(42)
	m.SetText("42")

	slider, max, text := m.Values()
	assert.Equal(t, 42, slider)
	assert.Equal(t, 99, max)
	assert.Equal(t, "42", text)
	assert.Contains(t, buf.String(), "[mirror]")
}
