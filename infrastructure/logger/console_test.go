package logger

import (
	"bytes"
	"strings"
	"testing"

	"frametrim/domain/logging"
)

func TestConsole_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(logging.LevelWarn, &buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestConsole_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(logging.LevelDebug, &buf).WithComponent("clock")

	log.Info("tick %d", 7)

	if got := strings.TrimSpace(buf.String()); got != "[clock] tick 7" {
		t.Errorf("got %q, want %q", got, "[clock] tick 7")
	}
}

func TestConsole_QuietSuppressesAll(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(logging.LevelQuiet, &buf)

	log.Error("boom")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"INFO":    logging.LevelInfo,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"quiet":   logging.LevelQuiet,
		"bogus":   logging.LevelInfo,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
