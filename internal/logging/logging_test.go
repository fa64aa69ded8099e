package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	l := slog.New(slog.NewTextHandler(buf, nil))
	ctx := NewContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatal("expected stored logger")
	}
	if FromContext(context.Background()) != slog.Default() {
		t.Fatal("expected default logger for empty context")
	}
}

func TestNewLogsAtInfo(t *testing.T) {
	l := New()
	if l == nil {
		t.Fatal("New returned nil")
	}
	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be disabled")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWithOptionsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewWithOptions(buf, slog.LevelDebug, "json")
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	l.Debug("hello", "units", 3)
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"units":3`) {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if _, err := NewWithOptions(buf, slog.LevelInfo, "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
