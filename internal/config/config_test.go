package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, workDir, body string) {
	t.Helper()
	dataDir := filepath.Join(workDir, Dir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(strings.TrimSpace(body)), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	workDir := t.TempDir()
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.BaseURL() != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL())
	}
	if cfg.RequestTimeout() != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.RequestTimeout())
	}
	if cfg.SubscaleMax() != 42 || cfg.TotalMax() != 126 {
		t.Fatalf("unexpected maxima %d/%d", cfg.SubscaleMax(), cfg.TotalMax())
	}
	if cfg.FeedLimit() != 5 {
		t.Fatalf("expected feed limit 5, got %d", cfg.FeedLimit())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("expected info level, got %q", cfg.LogLevel())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	workDir := t.TempDir()
	writeConfig(t, workDir, `
version: 1
scoring:
  base_url: https://scoring.example.org/api/
  timeout: 3s
  subscale_max: 21
  total_max: 63
feed:
  limit: 8
log:
  level: DEBUG
`)
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.BaseURL() != "https://scoring.example.org/api" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.BaseURL())
	}
	if cfg.RequestTimeout() != 3*time.Second {
		t.Fatalf("wrong timeout: %s", cfg.RequestTimeout())
	}
	if cfg.SubscaleMax() != 21 || cfg.TotalMax() != 63 {
		t.Fatalf("wrong maxima %d/%d", cfg.SubscaleMax(), cfg.TotalMax())
	}
	if cfg.FeedLimit() != 8 {
		t.Fatalf("wrong feed limit %d", cfg.FeedLimit())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("level should be lower-cased, got %q", cfg.LogLevel())
	}
}

func TestNewConfigEnvOverridesFile(t *testing.T) {
	workDir := t.TempDir()
	writeConfig(t, workDir, `
scoring:
  base_url: http://file.example.org
`)
	t.Setenv(BackendURLEnv, "http://env.example.org:9000/")
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.BaseURL() != "http://env.example.org:9000" {
		t.Fatalf("env override not applied, got %q", cfg.BaseURL())
	}
}

func TestNewConfigValidation(t *testing.T) {
	cases := map[string]string{
		"scheme": `
scoring:
  base_url: ftp://example.org
`,
		"host": `
scoring:
  base_url: "http://"
`,
		"level": `
log:
  level: chatty
`,
		"yaml": `
scoring: [
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(BackendURLEnv, "")
			workDir := t.TempDir()
			writeConfig(t, workDir, body)
			if _, err := NewConfig(workDir); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestInitDirWritesDefaults(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	workDir := t.TempDir()
	if err := InitDir(workDir); err != nil {
		t.Fatalf("InitDir returned error: %v", err)
	}
	if info, err := os.Stat(filepath.Join(workDir, Dir, "logs")); err != nil || !info.IsDir() {
		t.Fatalf("logs dir missing: %v", err)
	}
	cfg, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("default config should load: %v", err)
	}
	if cfg.BaseURL() != DefaultBaseURL || cfg.TotalMax() != DefaultTotalMax {
		t.Fatalf("default file disagrees with defaults: %+v", cfg.File)
	}

	custom := "version: 1\nfeed:\n  limit: 2\n"
	path := filepath.Join(workDir, Dir, "config.yaml")
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitDir(workDir); err != nil {
		t.Fatalf("second InitDir returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Fatalf("InitDir must not overwrite an existing config")
	}
}
