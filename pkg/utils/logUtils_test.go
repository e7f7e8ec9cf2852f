package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLogLevelFromString(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := logLevelFromString(input); got != want {
			t.Errorf("logLevelFromString(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, "warn", false)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("instanceID", "test"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Errorf("unexpected log lines: %s", buf.String())
		return
	}
	entry := map[string]any{}
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Errorf("log line is not json: %v", err)
		return
	}
	if entry["msg"] != "shown" || entry["instanceID"] != "test" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestLoadBuildInfoAsSlogAttrs(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "build-info.yaml")
	if err := os.WriteFile(filename, []byte("version: 1.2.0\ncommit: abc\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	attrs := loadBuildInfoAsSlogAttrs(filename, buildInfoPrefix)
	if len(attrs) != 2 {
		t.Errorf("unexpected attrs: %v", attrs)
		return
	}
	found := map[string]string{}
	for _, a := range attrs {
		found[a.Key] = a.Value.String()
	}
	if found["build.version"] != "1.2.0" || found["build.commit"] != "abc" {
		t.Errorf("unexpected attrs: %v", found)
	}
}

func TestGetBuildInfoMode(t *testing.T) {
	if getBuildInfoMode("once") != BuildInfoOnce || getBuildInfoMode("always") != BuildInfoAlways || getBuildInfoMode("") != BuildInfoNever {
		t.Error("unexpected build info mode")
	}
}
