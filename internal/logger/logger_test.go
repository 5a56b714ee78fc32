package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "habitledger.log")

	log, err := New(Options{Mode: "production", File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.With("component", "test").Info("habit_log_upserted", "habit_id", "h1")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected log file to contain output")
	}
}

func TestNopLogger(t *testing.T) {
	log := Nop()
	log.Debug("ignored", "key", "value")
	log.Warn("ignored")
}
