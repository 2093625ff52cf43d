// SPDX-License-Identifier: MIT

// Package config loads pathgraph settings from a YAML file and PATHGRAPH_*
// environment variables. Precedence, lowest first: defaults, file,
// environment, command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pathgraph/export"
	"github.com/katalvlaran/pathgraph/overlay"
)

// DefaultFile is read when Load is given an empty path and the file exists.
const DefaultFile = "pathgraph.yaml"

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete runtime configuration.
type Config struct {
	Store   StoreConfig      `yaml:"store"`
	Overlay overlay.Settings `yaml:"overlay"`
	Export  ExportConfig     `yaml:"export"`
	Watch   WatchConfig      `yaml:"watch"`
	// Place is the initial value of the place input.
	Place string `yaml:"place"`
}

// StoreConfig selects the label store.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// ExportConfig tunes the JSON writer.
type ExportConfig struct {
	Indent int `yaml:"indent"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce    time.Duration `yaml:"debounce"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store:   StoreConfig{Driver: DriverSQLite, Path: ".pathgraph/labels.db"},
		Overlay: overlay.DefaultSettings(),
		Export:  ExportConfig{Indent: export.DefaultIndent},
		Watch:   WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// Load reads path over the defaults, applies the environment and validates.
// An empty path reads DefaultFile if present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from PATHGRAPH_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
		}
		*dst = b
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
		}
		*dst = n
		return nil
	}

	str("PATHGRAPH_STORE_DRIVER", &c.Store.Driver)
	str("PATHGRAPH_STORE_PATH", &c.Store.Path)
	str("PATHGRAPH_METRICS_ADDR", &c.Watch.MetricsAddr)
	str("PATHGRAPH_PLACE", &c.Place)
	if err := boolean("PATHGRAPH_SHOW_LABELS", &c.Overlay.ShowLabels); err != nil {
		return err
	}
	if err := boolean("PATHGRAPH_SHOW_INDEXES", &c.Overlay.ShowIndexes); err != nil {
		return err
	}
	if err := integer("PATHGRAPH_LABELS_SIZE", &c.Overlay.LabelsSize); err != nil {
		return err
	}
	if err := integer("PATHGRAPH_EXPORT_INDENT", &c.Export.Indent); err != nil {
		return err
	}
	if v, ok := lookup("PATHGRAPH_WATCH_DEBOUNCE"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: PATHGRAPH_WATCH_DEBOUNCE: %v", ErrInvalid, err)
		}
		c.Watch.Debounce = d
	}

	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case DriverSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("%w: store.path is required for the sqlite driver", ErrInvalid)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unsupported store driver %q", ErrInvalid, c.Store.Driver)
	}
	if err := c.Overlay.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Export.Indent < 0 || c.Export.Indent > 16 {
		return fmt.Errorf("%w: export.indent %d not in [0, 16]", ErrInvalid, c.Export.Indent)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalid)
	}

	return nil
}
