package pkg

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogLevel(t *testing.T) {
	original := GetLogLevel()
	defer SetLogLevel(original)

	tests := []struct {
		name  string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLogLevel(tt.level)
			if got := GetLogLevel(); got != tt.level {
				t.Errorf("GetLogLevel() = %v, want %v", got, tt.level)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, nil)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("log output missing message: %s", buf.String())
	}
}

func TestComponentLogging(t *testing.T) {
	original := DefaultLogger
	originalLevel := GetLogLevel()
	defer func() {
		SetLogger(original)
		SetLogLevel(originalLevel)
	}()

	var buf bytes.Buffer
	SetLogLevel(slog.LevelDebug)
	SetLogger(NewLogger(&buf, nil))

	LogDebug(ComponentDecoder, "sampled bit", "index", 6)
	out := buf.String()
	if !strings.Contains(out, "component=decoder") {
		t.Errorf("log output missing component tag: %s", out)
	}
	if !strings.Contains(out, "sampled bit") {
		t.Errorf("log output missing message: %s", out)
	}
}
