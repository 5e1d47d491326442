package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLevelParsing(t *testing.T) {
	Init("debug")
	if got := log.GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}

	Init("invalid")
	if got := log.GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("unknown level must fall back to info, got %v", got)
	}
}

func TestEnsureInitializesLazily(t *testing.T) {
	log = nil
	Info("first call initializes the logger")
	if log == nil {
		t.Fatal("log not initialized")
	}
	if got := log.GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("lazy init level = %v, want info", got)
	}
}

func TestLoggerFunctions(t *testing.T) {
	Init("invalid") // should default to info
	if log == nil {
		t.Fatal("log not initialized")
	}
	// Avoid os.Exit on Fatal
	log.ExitFunc = func(int) {}

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	Debugf("%s", "debugf")
	Infof("%s", "infof")
	Warnf("%s", "warnf")
	Errorf("%s", "errorf")
	Fatal("fatal")
	Fatalf("%s", "fatalf")
}
