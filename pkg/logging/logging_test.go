package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, "info", false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("schedule generated", zap.Int("tasks", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"tasks":3`) {
		t.Errorf("expected structured field in log, got: %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("debug entry should be filtered at info level")
	}
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, "warn", true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Errorf("expected debug level when verbose")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(t.TempDir(), "loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
