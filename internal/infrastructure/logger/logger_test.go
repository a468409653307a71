package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)
	log.Info().Msg("hello")

	output := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Fatalf("expected json output to start with '{', got %q", output)
	}
	if !strings.Contains(output, `"message":"hello"`) {
		t.Fatalf("expected message field, got %q", output)
	}
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(Config{Level: "debug", Format: "console"}, &buf)
	log.Debug().Msg("hello")

	output := buf.String()
	if output == "" {
		t.Fatalf("expected console output, got empty string")
	}
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Fatalf("console output should not be json, got %q", output)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(Config{Level: "error", Format: "json"}, &buf)
	log.Info().Msg("dropped")

	if buf.Len() != 0 {
		t.Fatalf("expected info message below error level to be dropped, got %q", buf.String())
	}
}
