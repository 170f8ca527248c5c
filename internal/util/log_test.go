package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"":        LevelInfo,
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("unknown level must be an error")
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWriter(LevelWarn, &buf)
	l.Debugf("dropped")
	l.Infof("dropped")
	l.Warnf("kept warn")
	l.Errorf("kept error")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("low-level lines leaked through: %q", out)
	}
	if !strings.Contains(out, "WARN kept warn") || !strings.Contains(out, "ERROR kept error") {
		t.Fatalf("high-level lines missing: %q", out)
	}
}

func TestSetLevelTakesEffect(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWriter(LevelError, &buf)
	l.Infof("before")
	l.SetLevel(LevelDebug)
	l.Debugf("after")
	out := buf.String()
	if strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Fatalf("level change not applied: %q", out)
	}
}
