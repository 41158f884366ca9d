// Package config loads the board configuration from YAML and resolves it
// into the typed knobs the scheduling, drag and reconcile layers take as
// injected parameters.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"ganttlane/internal/domain"
	"ganttlane/internal/drag"
	"ganttlane/internal/reconcile"
	"ganttlane/internal/scheduler"
)

// ToleranceSameDay configures same-calendar-day confirmation matching.
// Any other tolerance value is parsed as a duration epsilon.
const ToleranceSameDay = "same-day"

type Config struct {
	Board    BoardConfig        `yaml:"board"`
	Scales   map[string]float64 `yaml:"scales"`
	Defaults DefaultsConfig     `yaml:"defaults"`
	Log      LogConfig          `yaml:"log"`
}

type BoardConfig struct {
	// Granularity is the initial display scale: hour, day, week, month
	// or quarter.
	Granularity string `yaml:"granularity"`

	// EdgeMargin is the cell width of the resize zones at each bar edge.
	EdgeMargin int `yaml:"edge_margin"`

	// DebounceMS is the commit coalescing window in milliseconds.
	DebounceMS int `yaml:"debounce_ms"`

	// Tolerance is "same-day" or a duration epsilon such as "500ms".
	Tolerance string `yaml:"tolerance"`

	// Group is the initial grouping: none, assignee or label.
	Group string `yaml:"group"`
}

type DefaultsConfig struct {
	// NoStartDays is the synthesized bar length for items that never had
	// a start date recorded.
	NoStartDays int `yaml:"no_start_days"`

	// NoDueDays is the bar length for items with a start but no due date.
	NoDueDays int `yaml:"no_due_days"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File is the log sink path; empty disables logging (the TUI owns
	// the terminal, so there is no console sink).
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Granularity: string(drag.GranDay),
			EdgeMargin:  1,
			DebounceMS:  400,
			Tolerance:   ToleranceSameDay,
			Group:       string(domain.GroupAssignee),
		},
		Scales: map[string]float64{},
		Defaults: DefaultsConfig{
			NoStartDays: 7,
			NoDueDays:   1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Path returns the config file location: $GANTTLANE_CONFIG if set,
// otherwise ~/.ganttlane/config.yaml.
func Path() (string, error) {
	if p := os.Getenv("GANTTLANE_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".ganttlane", "config.yaml"), nil
}

// Load reads the config at path, layering it over the defaults. A missing
// file yields the defaults; unknown fields and invalid enum values are
// errors so typos do not silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !drag.ValidGranularities[c.Board.Granularity] {
		return fmt.Errorf("unknown granularity %q", c.Board.Granularity)
	}
	switch domain.GroupMode(c.Board.Group) {
	case domain.GroupNone, domain.GroupAssignee, domain.GroupLabel:
	default:
		return fmt.Errorf("unknown group mode %q", c.Board.Group)
	}
	if c.Board.Tolerance != ToleranceSameDay {
		if _, err := time.ParseDuration(c.Board.Tolerance); err != nil {
			return fmt.Errorf("invalid tolerance %q: %w", c.Board.Tolerance, err)
		}
	}
	for name := range c.Scales {
		if !drag.ValidGranularities[name] {
			return fmt.Errorf("unknown granularity %q in scales", name)
		}
	}
	return nil
}

// Granularity returns the configured initial display scale.
func (c Config) Granularity() drag.Granularity {
	return drag.Granularity(c.Board.Granularity)
}

// GroupMode returns the configured initial grouping.
func (c Config) GroupMode() domain.GroupMode {
	return domain.GroupMode(c.Board.Group)
}

// ScaleTable resolves the configured cell widths over the default table.
func (c Config) ScaleTable() drag.Table {
	table := drag.DefaultTable()
	for name, width := range c.Scales {
		if width > 0 {
			table[drag.Granularity(name)] = width
		}
	}
	return table
}

// DurationPolicy returns the configured defaulting policy for missing dates.
func (c Config) DurationPolicy() scheduler.DurationPolicy {
	p := scheduler.DefaultPolicy()
	if c.Defaults.NoStartDays > 0 {
		p.NoStartSpan = c.Defaults.NoStartDays
	}
	if c.Defaults.NoDueDays > 0 {
		p.NoDueSpan = c.Defaults.NoDueDays
	}
	return p
}

// Tolerance returns the configured confirmation tolerance.
func (c Config) Tolerance() reconcile.Tolerance {
	if c.Board.Tolerance == ToleranceSameDay {
		return reconcile.SameCalendarDay(time.Local)
	}
	eps, err := time.ParseDuration(c.Board.Tolerance)
	if err != nil {
		return reconcile.SameCalendarDay(time.Local)
	}
	return reconcile.WithinEpsilon(eps)
}

// Debounce returns the commit coalescing window.
func (c Config) Debounce() time.Duration {
	if c.Board.DebounceMS <= 0 {
		return reconcile.DefaultDebounce
	}
	return time.Duration(c.Board.DebounceMS) * time.Millisecond
}

// EdgeMargin returns the resize-zone width in cells.
func (c Config) EdgeMargin() int {
	if c.Board.EdgeMargin < 0 {
		return 0
	}
	return c.Board.EdgeMargin
}
