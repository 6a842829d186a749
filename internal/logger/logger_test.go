package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", "json", &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Info().Msg("hidden")
	log.Warn().Str("event_id", "7").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["level"] != "warn" || entry["event_id"] != "7" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Errorf("entry has no timestamp: %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "plain", &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Debug().Msg("too verbose")
	log.Info().Msg("server started")

	out := buf.String()
	if strings.Contains(out, "too verbose") {
		t.Errorf("debug line written at default level: %q", out)
	}
	if !strings.Contains(out, "server started") {
		t.Errorf("console output missing message: %q", out)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New("loud", "json", &bytes.Buffer{}); err == nil {
		t.Errorf("New() with bad level error = nil")
	}
}
