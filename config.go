package vtui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MouseMode selects which mouse reports the terminal sends.
type MouseMode string

const (
	MouseAll  MouseMode = "all"  // clicks, drags and motion
	MouseCell MouseMode = "cell" // clicks and drags
	MouseOff  MouseMode = "off"
)

// Config controls the runtime loop and the terminal driver.
type Config struct {
	FrameBudget   time.Duration // how long one frame may spend draining events
	QueueCapacity int           // bus capacity
	Mouse         MouseMode
	AltScreen     bool
	DebugLog      string // file to send debug logging to
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		FrameBudget:   16 * time.Millisecond,
		QueueCapacity: 128,
		Mouse:         MouseAll,
		AltScreen:     true,
	}
}

// fileConfig is the on-disk form. Unset fields keep their defaults.
type fileConfig struct {
	FrameBudget   string `toml:"frame_budget" yaml:"frame_budget"`
	QueueCapacity int    `toml:"queue_capacity" yaml:"queue_capacity"`
	Mouse         string `toml:"mouse" yaml:"mouse"`
	AltScreen     *bool  `toml:"alt_screen" yaml:"alt_screen"`
	DebugLog      string `toml:"debug_log" yaml:"debug_log"`
}

// LoadConfig reads path over the defaults, applies VTUI_* environment
// overrides and validates the result. The format follows the extension:
// .toml, .yaml or .yml. An empty path loads defaults and environment only.
func LoadConfig(path string, opts ...Option) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		fc, err := loadConfigFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
		if err := fc.merge(&cfg); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&fc); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", ext)
	}
	return &fc, nil
}

func (fc *fileConfig) merge(cfg *Config) error {
	if fc.FrameBudget != "" {
		d, err := time.ParseDuration(fc.FrameBudget)
		if err != nil {
			return fmt.Errorf("frame_budget: %w", err)
		}
		cfg.FrameBudget = d
	}
	if fc.QueueCapacity != 0 {
		cfg.QueueCapacity = fc.QueueCapacity
	}
	if fc.Mouse != "" {
		cfg.Mouse = MouseMode(fc.Mouse)
	}
	if fc.AltScreen != nil {
		cfg.AltScreen = *fc.AltScreen
	}
	if fc.DebugLog != "" {
		cfg.DebugLog = fc.DebugLog
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("VTUI_FRAME_BUDGET"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VTUI_FRAME_BUDGET: %w", err)
		}
		cfg.FrameBudget = d
	}
	if v := os.Getenv("VTUI_QUEUE_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("VTUI_QUEUE_CAPACITY: %w", err)
		}
		cfg.QueueCapacity = n
	}
	if v := os.Getenv("VTUI_MOUSE"); v != "" {
		cfg.Mouse = MouseMode(v)
	}
	if v := os.Getenv("VTUI_DEBUG_LOG"); v != "" {
		cfg.DebugLog = v
	}
	return nil
}

func (c *Config) validate() error {
	var errs []error
	if c.FrameBudget <= 0 {
		errs = append(errs, fmt.Errorf("frame budget must be positive, got %v", c.FrameBudget))
	}
	if c.QueueCapacity < 1 {
		errs = append(errs, fmt.Errorf("queue capacity must be at least 1, got %d", c.QueueCapacity))
	}
	switch c.Mouse {
	case MouseAll, MouseCell, MouseOff:
	default:
		errs = append(errs, fmt.Errorf("mouse must be all, cell or off, got %q", c.Mouse))
	}
	return errors.Join(errs...)
}

// Option adjusts a Config after files and environment are applied.
type Option func(*Config)

// WithFrameBudget sets Config.FrameBudget.
func WithFrameBudget(d time.Duration) Option {
	return func(c *Config) { c.FrameBudget = d }
}

// WithQueueCapacity sets Config.QueueCapacity.
func WithQueueCapacity(n int) Option {
	return func(c *Config) { c.QueueCapacity = n }
}

// WithMouse sets Config.Mouse.
func WithMouse(m MouseMode) Option {
	return func(c *Config) { c.Mouse = m }
}

// WithAltScreen sets Config.AltScreen.
func WithAltScreen(on bool) Option {
	return func(c *Config) { c.AltScreen = on }
}

// WithDebugLog sets Config.DebugLog.
func WithDebugLog(path string) Option {
	return func(c *Config) { c.DebugLog = path }
}
