package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{"", LevelInfo, false},
		{"warning", LevelWarning, false},
		{"Error", LevelError, false},
		{"FATAL", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tc := range testCases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// TestJSONOutput verifies records are JSON and respect the level
func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetLevel(GetLevel())
	SetLevel(LevelInfo)

	Debug("hidden")
	Info("compiled", "premises", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "compiled" || rec["premises"] != float64(2) {
		t.Errorf("unexpected record %v", rec)
	}
}

// TestSamplingKeepsCounting verifies counters move even when output is sampled away
func TestSamplingKeepsCounting(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetSampleRate(1_000_000_000)
	defer SetSampleRate(1)

	before := TotalErrors.Load()
	for i := 0; i < 10; i++ {
		Error("solver down")
	}
	if got := TotalErrors.Load() - before; got != 10 {
		t.Errorf("TotalErrors advanced by %d, want 10", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	before := Snapshot()
	HTTPStatus(200)
	HTTPStatus(404)
	HTTPStatus(502)
	after := Snapshot()

	if after.HTTP4xx-before.HTTP4xx != 1 {
		t.Errorf("HTTP4xx advanced by %d", after.HTTP4xx-before.HTTP4xx)
	}
	if after.HTTP5xx-before.HTTP5xx != 1 {
		t.Errorf("HTTP5xx advanced by %d", after.HTTP5xx-before.HTTP5xx)
	}
}
