package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closeFn, err := New(dir, "info")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("scoring request succeeded", zap.String("request_id", "abc"))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"message":"scoring request succeeded"`) {
		t.Fatalf("missing info line: %s", text)
	}
	if !strings.Contains(text, `"request_id":"abc"`) {
		t.Fatalf("missing field: %s", text)
	}
	if strings.Contains(text, "hidden") {
		t.Fatalf("debug line should be filtered at info level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New(t.TempDir(), "chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
