// internal/config/config.go
//
// This package handles configuration and the .dass directory structure.
// Running `dass` creates a .dass/ folder in the working directory holding the
// config file and the rotated logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the name of the directory we create in the working directory
	Dir = ".dass"

	// BackendURLEnv is the one environment override the app honours.
	BackendURLEnv = "DASS_BACKEND_URL"

	DefaultBaseURL     = "http://localhost:8000"
	DefaultTimeout     = 15 * time.Second
	DefaultSubscaleMax = 42
	DefaultTotalMax    = 126
	DefaultFeedLimit   = 5
	DefaultLogLevel    = "info"
)

const defaultConfigYAML = `# dass configuration
version: 1

scoring:
  # Base URL of the scoring service. DASS_BACKEND_URL overrides this value.
  base_url: http://localhost:8000
  timeout: 15s
  # Maximum score the service reports per subscale and in total. Use 21/63
  # for services that do not double the raw sums.
  subscale_max: 42
  total_max: 126

feed:
  limit: 5

log:
  level: info
`

// ScoringConfig describes how to reach and interpret the scoring service.
type ScoringConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	SubscaleMax int           `yaml:"subscale_max"`
	TotalMax    int           `yaml:"total_max"`
}

// FeedConfig bounds the recent-assessments sidebar.
type FeedConfig struct {
	Limit int `yaml:"limit"`
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// FileConfig models .dass/config.yaml.
type FileConfig struct {
	Version int           `yaml:"version"`
	Scoring ScoringConfig `yaml:"scoring"`
	Feed    FeedConfig    `yaml:"feed"`
	Log     LogConfig     `yaml:"log"`
}

// Config holds the resolved runtime configuration. It is built once at
// startup and passed to constructors; nothing reads it ad hoc afterwards.
type Config struct {
	// WorkDir is the directory where the user ran `dass` from
	WorkDir string

	// DataDir is WorkDir/.dass
	DataDir string

	File FileConfig
}

// InitDir creates the .dass directory structure in workDir.
//
// Structure created:
// .dass/
// ├── config.yaml
// └── logs/
func InitDir(workDir string) error {
	dataDir := filepath.Join(workDir, Dir)
	if err := os.MkdirAll(filepath.Join(dataDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureConfigFile(filepath.Join(dataDir, "config.yaml"))
}

// NewConfig loads .dass/config.yaml (if present), applies the base URL
// environment override and validates the result.
func NewConfig(workDir string) (*Config, error) {
	cfg := &Config{
		WorkDir: workDir,
		DataDir: filepath.Join(workDir, Dir),
		File:    defaultFileConfig(),
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if value := strings.TrimSpace(os.Getenv(BackendURLEnv)); value != "" {
		cfg.File.Scoring.BaseURL = value
	}
	cfg.File.normalize()
	if err := cfg.File.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// BaseURL returns the scoring service base URL without a trailing slash.
func (c *Config) BaseURL() string {
	return c.File.Scoring.BaseURL
}

// RequestTimeout bounds every outbound request.
func (c *Config) RequestTimeout() time.Duration {
	return c.File.Scoring.Timeout
}

// SubscaleMax is the progress-bar denominator for each subscale.
func (c *Config) SubscaleMax() int {
	return c.File.Scoring.SubscaleMax
}

// TotalMax is the denominator shown next to the total score.
func (c *Config) TotalMax() int {
	return c.File.Scoring.TotalMax
}

// FeedLimit is the number of recent assessments shown.
func (c *Config) FeedLimit() int {
	return c.File.Feed.Limit
}

// LogLevel returns the configured zap level name.
func (c *Config) LogLevel() string {
	return c.File.Log.Level
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigPath returns the on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultFileConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.File = parsed
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		Scoring: ScoringConfig{
			BaseURL:     DefaultBaseURL,
			Timeout:     DefaultTimeout,
			SubscaleMax: DefaultSubscaleMax,
			TotalMax:    DefaultTotalMax,
		},
		Feed: FeedConfig{Limit: DefaultFeedLimit},
		Log:  LogConfig{Level: DefaultLogLevel},
	}
}

func (fc *FileConfig) normalize() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	fc.Scoring.BaseURL = strings.TrimRight(strings.TrimSpace(fc.Scoring.BaseURL), "/")
	if fc.Scoring.BaseURL == "" {
		fc.Scoring.BaseURL = DefaultBaseURL
	}
	if fc.Scoring.Timeout <= 0 {
		fc.Scoring.Timeout = DefaultTimeout
	}
	if fc.Scoring.SubscaleMax <= 0 {
		fc.Scoring.SubscaleMax = DefaultSubscaleMax
	}
	if fc.Scoring.TotalMax <= 0 {
		fc.Scoring.TotalMax = DefaultTotalMax
	}
	if fc.Feed.Limit <= 0 {
		fc.Feed.Limit = DefaultFeedLimit
	}
	fc.Log.Level = strings.ToLower(strings.TrimSpace(fc.Log.Level))
	if fc.Log.Level == "" {
		fc.Log.Level = DefaultLogLevel
	}
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	parsed, err := url.Parse(fc.Scoring.BaseURL)
	if err != nil {
		return fmt.Errorf("scoring.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("scoring.base_url must use http or https, got %q", fc.Scoring.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("scoring.base_url must include a host")
	}
	switch fc.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
