package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vango-lite/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vango-lite.json"

	// DefaultPort is the default serve port.
	DefaultPort = 8080

	// DefaultHost is the default serve host.
	DefaultHost = "localhost"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "vango_lite"
)

// Config represents the complete vango-lite.json configuration.
type Config struct {
	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Render contains renderer configuration.
	Render RenderConfig `json:"render,omitempty"`

	// Serve contains demo server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// EventPrefix marks properties that bind event handlers (default: "on").
	EventPrefix string `json:"eventPrefix,omitempty"`
}

// ServeConfig contains demo server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ReadTimeout bounds reading a request (e.g. "5s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout bounds writing a response (e.g. "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes metrics and instruments the renderer.
	Enabled bool `json:"enabled,omitempty"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `json:"path,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: "text",
		},
		Render: RenderConfig{
			EventPrefix: "on",
		},
		Serve: ServeConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  "5s",
			WriteTimeout: "10s",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      DefaultMetricsPath,
			Namespace: DefaultNamespace,
		},
	}
}

// Load loads the configuration from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads the configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeInvalidConfig).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'vango-lite init' to write a default configuration")
		}
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOptional loads the configuration from dir, or returns the defaults
// when the directory has no configuration file.
func LoadOptional(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the configuration was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in fields a partial file left empty.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Render.EventPrefix == "" {
		c.Render.EventPrefix = "on"
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New(errors.CodeInvalidConfig).
			WithDetailf("Unknown log format %q", c.Log.Format).
			WithSuggestion(`Use "text" or "json"`)
	}
	if strings.TrimSpace(c.Render.EventPrefix) == "" {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("Event prefix must not be empty")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New(errors.CodeInvalidConfig).
			WithDetailf("Metrics path %q must start with /", c.Metrics.Path)
	}
	for name, v := range map[string]string{"readTimeout": c.Serve.ReadTimeout, "writeTimeout": c.Serve.WriteTimeout} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return errors.New(errors.CodeInvalidConfig).
				WithDetailf("Invalid %s %q", name, v).
				WithSuggestion(`Use a Go duration such as "5s"`)
		}
	}
	return nil
}

// SlogLevel returns the slog level for Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New(errors.CodeInvalidConfig).
			WithDetailf("Unknown log level %q", c.Log.Level).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// NewLogger builds a logger writing to w with the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Addr returns the serve listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Serve.Host, strconv.Itoa(c.Serve.Port))
}

// URL returns the serve base URL.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Addr())
}

// ReadTimeout returns Serve.ReadTimeout, or zero when unset or invalid.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Serve.ReadTimeout)
	return d
}

// WriteTimeout returns Serve.WriteTimeout, or zero when unset or invalid.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Serve.WriteTimeout)
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
