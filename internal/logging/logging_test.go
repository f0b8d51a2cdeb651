// Package logging provides tests for logger construction.
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesLeveledOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("warn", "logfmt", false, false))

	logger.Info("hidden")
	logger.Warn("request failed", "status", 500)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "request failed") || !strings.Contains(out, "status=500") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "todoboard") {
		t.Errorf("output should carry the prefix: %q", out)
	}
}

func TestOpenFile(t *testing.T) {
	t.Run("creates parent directories and appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "tb.log")

		for _, line := range []string{"first\n", "second\n"} {
			f, err := OpenFile(path)
			if err != nil {
				t.Fatalf("OpenFile: %v", err)
			}
			if _, err := f.WriteString(line); err != nil {
				t.Fatalf("write: %v", err)
			}
			f.Close()
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(data) != "first\nsecond\n" {
			t.Errorf("file content = %q", data)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := OpenFile(""); err == nil {
			t.Error("expected error for empty path")
		}
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing should happen")
	if logger.GetLevel() != log.FatalLevel {
		t.Errorf("level = %v, want fatal", logger.GetLevel())
	}
}
