package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	l := New()
	if l.Log == nil {
		t.Fatal("New must return a usable logger")
	}
	if err := l.Init("Info"); err != nil {
		t.Fatalf("Init(Info): %v", err)
	}
	if !l.Log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level should be enabled")
	}
	if l.Log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be disabled")
	}
}

func TestInit_BadLevel(t *testing.T) {
	if err := New().Init("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
