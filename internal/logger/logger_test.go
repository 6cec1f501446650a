package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error = %v", mode, err)
		}
		l.Info("hello", "mode", mode)
	}
}

func TestRedaction(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}
	l.With("service", "test").Info("configured", "api_key", "sk-123", "MYSQL_DSN", "user:pw@/db", "port", 8080)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["api_key"] != "[REDACTED]" {
		t.Errorf("api_key = %v", fields["api_key"])
	}
	if fields["MYSQL_DSN"] != "[REDACTED]" {
		t.Errorf("MYSQL_DSN = %v", fields["MYSQL_DSN"])
	}
	if fields["service"] != "test" {
		t.Errorf("service = %v", fields["service"])
	}
	if fields["port"] != int64(8080) {
		t.Errorf("port = %v (%T)", fields["port"], fields["port"])
	}
}

func TestSanitizeOddKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Errorf("sanitizeKVs = %v", got)
	}
}
