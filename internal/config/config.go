// Package config provides configuration types, defaults and validation for
// easypresenter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/easypresenter/easypresenter/internal/log"
)

// Default datastore file names. They match the legacy program so existing
// databases are picked up from the working directory.
const (
	DefaultScriptureDB = "biblias.db"
	DefaultSongsDB     = "cantos.db"
)

// Config holds all configuration options for easypresenter.
type Config struct {
	DataDir             string          `mapstructure:"data_dir"`
	ScriptureDB         string          `mapstructure:"scripture_db"`
	SongsDB             string          `mapstructure:"songs_db"`
	DefaultVersion      string          `mapstructure:"default_version"` // display name, e.g. "Reina Valera 1960"
	AutoRefresh         bool            `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration   `mapstructure:"auto_refresh_debounce"`
	Loader              LoaderConfig    `mapstructure:"loader"`
	Cache               CacheConfig     `mapstructure:"cache"`
	Projector           ProjectorConfig `mapstructure:"projector"`
	UI                  UIConfig        `mapstructure:"ui"`
	Tracing             TracingConfig   `mapstructure:"tracing"`
}

// LoaderConfig sizes the chapter fetch pool.
type LoaderConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

// CacheConfig controls the chapter cache. Capacity 0 keeps every chapter
// for the life of the process; a positive capacity evicts the least
// recently used chapter.
type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// ProjectorConfig configures projection output. An empty FilePath disables it.
type ProjectorConfig struct {
	FilePath string `mapstructure:"file_path"`
}

// UIConfig holds operator console options.
type UIConfig struct {
	WrapWidth        int  `mapstructure:"wrap_width"` // 0 wraps at the terminal width
	ShowVerseNumbers bool `mapstructure:"show_verse_numbers"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/easypresenter/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ScripturePath returns the scripture database path, resolved against
// DataDir when relative.
func (c Config) ScripturePath() string {
	return c.resolve(c.ScriptureDB, DefaultScriptureDB)
}

// SongsPath returns the song database path, resolved against DataDir when
// relative.
func (c Config) SongsPath() string {
	return c.resolve(c.SongsDB, DefaultSongsDB)
}

func (c Config) resolve(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// DefaultTracesFilePath returns ~/.config/easypresenter/traces/traces.jsonl,
// or "" when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "easypresenter", "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		ScriptureDB:         DefaultScriptureDB,
		SongsDB:             DefaultSongsDB,
		AutoRefresh:         true,
		AutoRefreshDebounce: 500 * time.Millisecond,
		Loader: LoaderConfig{
			Workers:   4,
			QueueSize: 64,
		},
		UI: UIConfig{
			ShowVerseNumbers: true,
		},
		Tracing: TracingConfig{
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateLoader(cfg.Loader); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if cfg.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative, got %s", cfg.AutoRefreshDebounce)
	}
	if cfg.DataDir != "" && strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir must not be blank")
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateLoader checks pool sizing. Zero values fall back to defaults.
func ValidateLoader(loader LoaderConfig) error {
	if loader.Workers < 0 {
		return fmt.Errorf("loader.workers must not be negative, got %d", loader.Workers)
	}
	if loader.QueueSize < 0 {
		return fmt.Errorf("loader.queue_size must not be negative, got %d", loader.QueueSize)
	}
	return nil
}

// ValidateCache checks cache sizing.
func ValidateCache(cache CacheConfig) error {
	if cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must be 0 (unbounded) or positive, got %d", cache.Capacity)
	}
	return nil
}

// ValidateUI checks console options.
func ValidateUI(ui UIConfig) error {
	if ui.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must not be negative, got %d", ui.WrapWidth)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# easypresenter configuration

# Directory holding the databases (default: current directory)
# data_dir: /path/to/data

# Database files, relative to data_dir unless absolute
scripture_db: biblias.db
songs_db: cantos.db

# Version selected at startup, by display name. Updated when you cycle
# versions with ctrl+v.
# default_version: Reina Valera 1960

# Reload the song list when another process changes the song database
auto_refresh: true
auto_refresh_debounce: 500ms

# Chapter loading
loader:
  workers: 4        # concurrent datastore fetches
  queue_size: 64    # pending fetches before requests are rejected

# Chapter cache
cache:
  capacity: 0       # 0 keeps every chapter; N keeps the N most recently used

# Projection output for an external display program
# projector:
#   file_path: /tmp/easypresenter/slide.txt

# Operator console
ui:
  # wrap_width: 72        # 0 wraps at the terminal width
  show_verse_numbers: true

# Tracing of chapter loads and imports
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/easypresenter/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
