package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/notexe/countdown/internal/catalog"
	"github.com/notexe/countdown/internal/countdown"
)

// EnvPrefix is stripped from environment overrides. A double underscore
// separates sections: COUNTDOWN_UI__COLORED_OUTPUT sets ui.colored_output.
const EnvPrefix = "COUNTDOWN_"

// localLayout is accepted for deadlines written without a zone offset.
const localLayout = "2006-01-02 15:04"

type Config struct {
	Countdown CountdownConfig `koanf:"countdown"`
	UI        UIConfig        `koanf:"ui"`
	Catalog   CatalogConfig   `koanf:"catalog"`
}

type CountdownConfig struct {
	TickInterval int          `koanf:"tick_interval"` // milliseconds between recomputations
	ExpiredLabel string       `koanf:"expired_label"`
	Labels       LabelsConfig `koanf:"labels"`
}

type LabelsConfig struct {
	Days    string `koanf:"days"`
	Hours   string `koanf:"hours"`
	Minutes string `koanf:"minutes"`
	Seconds string `koanf:"seconds"`
}

type UIConfig struct {
	ColoredOutput  bool   `koanf:"colored_output"`
	Mode           string `koanf:"mode"`            // compact or full
	ShowTimestamps bool   `koanf:"show_timestamps"` // print the absolute due time next to countdowns
	WeekStart      string `koanf:"week_start"`      // sunday or monday
}

type CatalogConfig struct {
	Deadlines []DeadlineConfig `koanf:"deadlines"`
}

// DeadlineConfig describes one catalog entry. Either Due (RFC3339 or
// "2006-01-02 15:04" local time) or In (days from today) must be set;
// At optionally fixes the clock time for In.
type DeadlineConfig struct {
	ID       string `koanf:"id"`
	Title    string `koanf:"title"`
	Code     string `koanf:"code"`
	Kind     string `koanf:"kind"`
	Location string `koanf:"location"`
	Due      string `koanf:"due"`
	In       *int   `koanf:"in"`
	At       string `koanf:"at"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Honour the NO_COLOR convention
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		k.Set("ui.colored_output", false)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func (c *Config) Validate() error {
	if c.Countdown.TickInterval <= 0 {
		return fmt.Errorf("countdown.tick_interval must be positive, got %d", c.Countdown.TickInterval)
	}

	if _, err := countdown.ParseMode(c.UI.Mode); err != nil {
		return err
	}

	switch c.UI.WeekStart {
	case "sunday", "monday":
	default:
		return fmt.Errorf("ui.week_start must be sunday or monday, got %q", c.UI.WeekStart)
	}

	seen := make(map[string]bool, len(c.Catalog.Deadlines))
	for _, d := range c.Catalog.Deadlines {
		if seen[d.ID] {
			return fmt.Errorf("duplicate deadline id %q", d.ID)
		}
		seen[d.ID] = true

		if _, err := d.Resolve(time.Now()); err != nil {
			return err
		}
	}

	return nil
}

// Interval returns the tick period as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Countdown.TickInterval) * time.Millisecond
}

// Mode returns the configured presentation mode, defaulting to compact.
func (c *Config) Mode() countdown.Mode {
	m, err := countdown.ParseMode(c.UI.Mode)
	if err != nil {
		return countdown.ModeCompact
	}
	return m
}

// Labels returns the full-mode cell labels, falling back per field to the defaults.
func (c *Config) Labels() countdown.Labels {
	l := countdown.DefaultLabels
	if c.Countdown.Labels.Days != "" {
		l.Days = c.Countdown.Labels.Days
	}
	if c.Countdown.Labels.Hours != "" {
		l.Hours = c.Countdown.Labels.Hours
	}
	if c.Countdown.Labels.Minutes != "" {
		l.Minutes = c.Countdown.Labels.Minutes
	}
	if c.Countdown.Labels.Seconds != "" {
		l.Seconds = c.Countdown.Labels.Seconds
	}
	return l
}

// Entries resolves every configured deadline against now.
func (c *Config) Entries(now time.Time) ([]catalog.Entry, error) {
	entries := make([]catalog.Entry, 0, len(c.Catalog.Deadlines))
	for _, d := range c.Catalog.Deadlines {
		e, err := d.Resolve(now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Resolve turns the configured deadline into a catalog entry. Relative
// deadlines are anchored to midnight of now's day, in now's location.
func (d DeadlineConfig) Resolve(now time.Time) (catalog.Entry, error) {
	e := catalog.Entry{
		ID:       d.ID,
		Title:    d.Title,
		Code:     d.Code,
		Kind:     d.Kind,
		Location: d.Location,
	}

	switch {
	case d.Due != "" && d.In != nil:
		return e, fmt.Errorf("deadline %s: set either due or in, not both", d.ID)

	case d.Due != "":
		due, err := parseDue(d.Due, now.Location())
		if err != nil {
			return e, fmt.Errorf("deadline %s: %w", d.ID, err)
		}
		e.Due = due

	case d.In != nil:
		hour, minute := 0, 0
		if d.At != "" {
			at, err := time.Parse("15:04", d.At)
			if err != nil {
				return e, fmt.Errorf("deadline %s: invalid at %q (use HH:MM)", d.ID, d.At)
			}
			hour, minute = at.Hour(), at.Minute()
		}
		y, m, day := now.Date()
		e.Due = time.Date(y, m, day+*d.In, hour, minute, 0, 0, now.Location())

	default:
		return e, fmt.Errorf("deadline %s: due or in is required", d.ID)
	}

	if err := e.Validate(); err != nil {
		return e, err
	}
	return e, nil
}

func parseDue(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due %q (use RFC3339 or %q)", s, localLayout)
	}
	return t, nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
