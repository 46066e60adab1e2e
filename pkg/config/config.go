// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

// Config holds the settings of an import, as read from a TOML file.
type Config struct {
	// Check declarations of primitives and external cells
	Strict bool `toml:"strict"`
	// Fabricate placeholders for unknown primitive nodes
	DummyPrimitives bool `toml:"dummy_primitives"`
	// Directories or globs searched for referenced library files
	SearchPaths []string `toml:"search_paths"`
	// Technology catalogs to load, defaulting to the built-in catalog
	Technologies []string          `toml:"technologies"`
	Diagnostics  DiagnosticsConfig `toml:"diagnostics"`
	Store        StoreConfig       `toml:"store"`
	Metrics      MetricsConfig     `toml:"metrics"`
	Watch        WatchConfig       `toml:"watch"`
}

// DiagnosticsConfig controls how many diagnostics are logged before the rest
// are only counted.
type DiagnosticsConfig struct {
	Rate  float64 `toml:"rate"`
	Burst int     `toml:"burst"`
}

// StoreConfig locates the database into which designs are saved.
type StoreConfig struct {
	Path string `toml:"path"`
}

// MetricsConfig controls the metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce string   `toml:"debounce"`
	Exclude  []string `toml:"exclude"`
}

// DebounceDuration returns the debounce interval.  This assumes the
// configuration was validated.
func (p *WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(p.Debounce)
	if err != nil {
		return defaultDebounce
	}
	//
	return d
}

const (
	defaultRate     = 200.0
	defaultBurst    = 500
	defaultDebounce = 300 * time.Millisecond
	defaultAddress  = "127.0.0.1:9464"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	//
	applyDefaults(&cfg)
	//
	return &cfg
}

// Load reads a configuration file, filling in defaults for anything it omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	//
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	//
	applyDefaults(&cfg)
	//
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	//
	return &cfg, nil
}

// Validate checks a configuration for values which cannot be used.
func Validate(cfg *Config) error {
	if err := validateDiagnostics(cfg); err != nil {
		return err
	}
	if err := validateWatch(cfg); err != nil {
		return err
	}
	//
	return validateSearchPaths(cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Diagnostics.Rate == 0 {
		cfg.Diagnostics.Rate = defaultRate
	}
	if cfg.Diagnostics.Burst == 0 {
		cfg.Diagnostics.Burst = defaultBurst
	}
	if strings.TrimSpace(cfg.Watch.Debounce) == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
	if strings.TrimSpace(cfg.Metrics.Address) == "" {
		cfg.Metrics.Address = defaultAddress
	}
	//
	cfg.Store.Path = strings.TrimSpace(cfg.Store.Path)
}

func validateDiagnostics(cfg *Config) error {
	if cfg.Diagnostics.Rate < 0 {
		return fmt.Errorf("diagnostics.rate must be non-negative (was %g)", cfg.Diagnostics.Rate)
	} else if cfg.Diagnostics.Burst < 0 {
		return fmt.Errorf("diagnostics.burst must be non-negative (was %d)", cfg.Diagnostics.Burst)
	}
	//
	return nil
}

func validateWatch(cfg *Config) error {
	d, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	} else if d < 0 {
		return errors.New("watch.debounce must be non-negative")
	}
	//
	for _, pattern := range cfg.Watch.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("watch.exclude %q: %w", pattern, err)
		}
	}
	//
	return nil
}

func validateSearchPaths(cfg *Config) error {
	for _, pattern := range cfg.SearchPaths {
		if strings.TrimSpace(pattern) == "" {
			return errors.New("search_paths contains an empty entry")
		} else if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("search_paths %q: %w", pattern, err)
		}
	}
	//
	return nil
}
