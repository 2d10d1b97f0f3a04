// Package config loads and validates beam configuration from TOML.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full beam configuration.
type Config struct {
	Log    Log    `toml:"log"`
	Search Search `toml:"search"`
	Scope  Scope  `toml:"scope"`
	Custom Custom `toml:"custom"`
}

// Log configures logging.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Search configures deferred-operation resolution behavior.
type Search struct {
	// CrossDocument enables the fallback sweep through other open
	// documents. Enabling it disables scoped selection for every kind.
	CrossDocument bool `toml:"cross_document"`

	// VisibleOnly restricts the sweep to documents shown in a window.
	VisibleOnly bool `toml:"visible_only"`

	// SmartHighlight pre-seeds the locate prompt with the kind's opening
	// delimiter and appends the closing one on confirmation.
	SmartHighlight bool `toml:"smart_highlight"`

	// ClearHighlight clears locate highlighting after an operation.
	ClearHighlight bool `toml:"clear_highlight"`

	// ClearHighlightDelayMS is the clearing delay in milliseconds.
	ClearHighlightDelayMS int `toml:"clear_highlight_delay_ms"`
}

// Scope configures scoped selection.
type Scope struct {
	// Kinds lists the kind identifiers that use scoped selection.
	Kinds []string `toml:"kinds"`

	// MinWidth, MaxWidth, and Padding control panel geometry.
	MinWidth int `toml:"min_width"`
	MaxWidth int `toml:"max_width"`
	Padding  int `toml:"padding"`
}

// Custom configures externally supplied kinds.
type Custom struct {
	// Scripts are paths to Lua files registering custom kinds.
	Scripts []string `toml:"scripts"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Search: Search{
			CrossDocument:         false,
			VisibleOnly:           false,
			SmartHighlight:        false,
			ClearHighlight:        true,
			ClearHighlightDelayMS: 500,
		},
		Scope: Scope{
			Kinds:    []string{`"`, `'`, "`", "(", "[", "{", "t"},
			MinWidth: 30,
			MaxWidth: 80,
			Padding:  2,
		},
	}
}

// Load reads the configuration at path, layered over the defaults. A
// missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads configuration from raw TOML layered over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if c.Scope.MinWidth < 1 {
		return fmt.Errorf("%w: scope.min_width must be positive", ErrInvalid)
	}
	if c.Scope.MaxWidth < c.Scope.MinWidth {
		return fmt.Errorf("%w: scope.max_width below scope.min_width", ErrInvalid)
	}
	if c.Scope.Padding < 0 {
		return fmt.Errorf("%w: scope.padding must not be negative", ErrInvalid)
	}
	if c.Search.ClearHighlightDelayMS < 0 {
		return fmt.Errorf("%w: search.clear_highlight_delay_ms must not be negative", ErrInvalid)
	}
	for _, k := range c.Scope.Kinds {
		if len([]rune(k)) != 1 {
			return fmt.Errorf("%w: scope kind %q is not a single character", ErrInvalid, k)
		}
	}
	return nil
}

// ScopedKinds returns the configured scoped kind identifiers as runes.
func (c Config) ScopedKinds() []rune {
	out := make([]rune, 0, len(c.Scope.Kinds))
	for _, k := range c.Scope.Kinds {
		rs := []rune(k)
		if len(rs) == 1 {
			out = append(out, rs[0])
		}
	}
	return out
}
