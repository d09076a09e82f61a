// Package config loads and validates the server configuration from a TOML
// file. Every field has a working default so an empty file yields a runnable
// configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root of the configuration tree.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Storage    StorageConfig    `toml:"storage"`
	Documents  DocumentsConfig  `toml:"documents"`
	Processing ProcessingConfig `toml:"processing"`
	Chat       ChatConfig       `toml:"chat"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host                   string   `toml:"host"`
	Port                   int      `toml:"port"`
	ReadTimeoutSeconds     int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int      `toml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
	StaticDir              string   `toml:"static_dir"`
	CORSAllowedOrigins     []string `toml:"cors_allowed_origins"`
}

// StorageConfig controls the SQLite database.
type StorageConfig struct {
	DatabasePath string `toml:"database_path"`
}

// DocumentsConfig controls upload handling and text extraction.
type DocumentsConfig struct {
	UploadDir         string   `toml:"upload_dir"`
	AllowedExtensions []string `toml:"allowed_extensions"`
	MaxUploadBytes    int64    `toml:"max_upload_bytes"`
	MaxTextChars      int      `toml:"max_text_chars"`
}

// ProcessingConfig controls the background extraction worker.
type ProcessingConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
	BatchSize       int  `toml:"batch_size"`
}

// ChatConfig controls the document Q&A responder.
type ChatConfig struct {
	MaxHistory int `toml:"max_history"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                   "0.0.0.0",
			Port:                   8080,
			ReadTimeoutSeconds:     30,
			WriteTimeoutSeconds:    30,
			ShutdownTimeoutSeconds: 10,
			StaticDir:              "static",
		},
		Storage: StorageConfig{
			DatabasePath: "sof.db",
		},
		Documents: DocumentsConfig{
			UploadDir:         "uploads",
			AllowedExtensions: []string{".txt", ".sof"},
			MaxUploadBytes:    10 << 20,
			MaxTextChars:      1 << 20,
		},
		Processing: ProcessingConfig{
			Enabled:         true,
			IntervalSeconds: 15,
			BatchSize:       10,
		},
		Chat: ChatConfig{
			MaxHistory: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("storage.database_path is required")
	}
	if c.Documents.UploadDir == "" {
		return fmt.Errorf("documents.upload_dir is required")
	}
	if c.Documents.MaxUploadBytes <= 0 {
		return fmt.Errorf("documents.max_upload_bytes must be positive")
	}
	if len(c.Documents.AllowedExtensions) == 0 {
		return fmt.Errorf("documents.allowed_extensions must not be empty")
	}
	if c.Processing.IntervalSeconds <= 0 {
		return fmt.Errorf("processing.interval_seconds must be positive")
	}
	if c.Processing.BatchSize <= 0 {
		return fmt.Errorf("processing.batch_size must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q not recognized", c.Logging.Level)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
