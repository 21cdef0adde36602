package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo}, // Default for unknown
	}

	for _, test := range tests {
		result := test.level.SlogLevel()
		if result != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, result, test.expected)
		}
	}
}

func TestInitAndLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelInfo, &buf)

	Debug("Test", "this should be filtered out")
	Info("Test", "this should appear: %d", 42)

	output := buf.String()
	if strings.Contains(output, "filtered out") {
		t.Errorf("debug message leaked through info-level filter: %s", output)
	}
	if !strings.Contains(output, "this should appear: 42") {
		t.Errorf("info message missing from output: %s", output)
	}
	if !strings.Contains(output, "subsystem=Test") {
		t.Errorf("subsystem attribute missing from output: %s", output)
	}
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelInfo, &buf)

	Error("Engine", errors.New("exit status 125"), "build failed")

	output := buf.String()
	if !strings.Contains(output, "build failed") {
		t.Errorf("message missing from output: %s", output)
	}
	if !strings.Contains(output, "exit status 125") {
		t.Errorf("error cause missing from output: %s", output)
	}
}
