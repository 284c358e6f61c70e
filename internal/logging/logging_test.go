package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("with default output", func(t *testing.T) {
		logger := NewLogger(Config{Level: InfoLevel})
		if logger == nil {
			t.Fatal("NewLogger returned nil")
		}
	})

	t.Run("with custom output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(Config{Level: InfoLevel, Output: buf})
		if logger.writer != buf {
			t.Error("Logger should use provided output writer")
		}
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(Config{Level: "verbose", Output: buf})

		logger.Debug("hidden", nil)
		if buf.Len() != 0 {
			t.Error("debug should be filtered when level defaults to info")
		}

		logger.Info("shown", nil)
		if buf.Len() == 0 {
			t.Error("info should pass when level defaults to info")
		}
	})
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		configLvl LogLevel
		logLvl    LogLevel
		shouldLog bool
	}{
		{"debug logs debug", DebugLevel, DebugLevel, true},
		{"info skips debug", InfoLevel, DebugLevel, false},
		{"info logs warn", InfoLevel, WarnLevel, true},
		{"warn skips info", WarnLevel, InfoLevel, false},
		{"error skips warn", ErrorLevel, WarnLevel, false},
		{"error logs error", ErrorLevel, ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLogger(Config{Level: tt.configLvl, Output: buf})

			logger.log(tt.logLvl, "test message", nil)

			hasOutput := buf.Len() > 0
			if hasOutput != tt.shouldLog {
				t.Errorf("shouldLog = %v, but hasOutput = %v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestHumanFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: buf})

	logger.Info("bundle written", map[string]interface{}{"files": 3})

	output := buf.String()
	if !strings.Contains(output, "[info]") {
		t.Errorf("human output should contain level tag, got: %s", output)
	}
	if !strings.Contains(output, "bundle written") {
		t.Errorf("human output should contain message, got: %s", output)
	}
	if !strings.Contains(output, "files=3") {
		t.Errorf("human output should contain fields, got: %s", output)
	}
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: buf})

	logger.Warn("file unreadable", map[string]interface{}{"file": "src/a.lua"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("JSON output should be valid JSON: %v", err)
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if entry["message"] != "file unreadable" {
		t.Errorf("message = %v, want 'file unreadable'", entry["message"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok || fields["file"] != "src/a.lua" {
		t.Errorf("fields not preserved: %v", entry["fields"])
	}
}
