package corelog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf, Prefix: "test"})

	l.Debug("should not appear")
	l.Info("also should not appear")
	l.Warn("this appears")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("debug/info leaked through warn filter: %q", out)
	}
	if !strings.Contains(out, "this appears") {
		t.Fatalf("expected warn message in output, got %q", out)
	}
}

func TestWithFieldIsImmutable(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelDebug, Output: &buf})
	derived := base.WithField("component", "history")

	derived.Info("hello")
	if !strings.Contains(buf.String(), "component=history") {
		t.Fatalf("expected field in output, got %q", buf.String())
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "component=history") {
		t.Fatalf("base logger mutated by WithField: %q", buf.String())
	}
}

func TestDisable(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})
	l.Disable()
	l.Error("should be silent")
	if buf.Len() != 0 {
		t.Fatalf("expected no output after Disable, got %q", buf.String())
	}
}
