package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New("typeregistry")
	l.SetOutput(&buf)
	l.SetLevel(level)
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(LevelWarn)

	l.Debugf("debug %d", 1)
	l.Warnf("warn %s", "two")
	l.Errorf("error %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.Contains(t, out, "⚠ WARN")
	assert.Contains(t, out, "warn two")
	assert.Contains(t, out, "✗ ERROR")
	assert.Contains(t, out, "error 3")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestNoColorForBuffers(t *testing.T) {
	l, buf := newBufferLogger(LevelDebug)
	l.Debugf("plain")
	assert.NotContains(t, buf.String(), "\033[")

	l.SetColor(true)
	l.Debugf("colored")
	assert.Contains(t, buf.String(), ColorBrightGray)
}

func TestWithFields(t *testing.T) {
	l, buf := newBufferLogger(LevelInfo)

	l.WithFields(map[string]string{"type_id": "100", "op": "describe"}).Warn("unknown type")
	assert.Contains(t, buf.String(), "unknown type op=describe type_id=100")

	buf.Reset()
	l.SetLevel(LevelError)
	l.WithFields(map[string]string{"type_id": "100"}).Warn("filtered")
	assert.Empty(t, buf.String())
}

func TestNilOutput(t *testing.T) {
	l := New("typeregistry")
	l.SetOutput(nil)
	assert.NotPanics(t, func() { l.Errorf("dropped") })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		level Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{" INFO ", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"verbose", LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestFormatServiceName(t *testing.T) {
	assert.Len(t, formatServiceName("short"), ServiceNameWidth)
	long := formatServiceName("a-very-long-service-name-indeed")
	assert.True(t, strings.HasSuffix(long, "…"))
}
