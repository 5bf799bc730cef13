package display

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIURL         string
	UpdateInterval time.Duration
	MaxNotes       int
	ShowTitle      bool
	Timeout        time.Duration
}

// Duration accepts either a Go duration string ("60s") or an integer
// number of milliseconds (60000).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	if ms, err := strconv.ParseInt(value.Value, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, value.Value)
	}
	*d = Duration(parsed)
	return nil
}

type fileConfig struct {
	APIURL         *string   `yaml:"apiUrl"`
	UpdateInterval *Duration `yaml:"updateInterval"`
	MaxNotes       *int      `yaml:"maxNotes"`
	ShowTitle      *bool     `yaml:"showTitle"`
}

// LoadFile overlays the keys present in a YAML file onto base.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read display config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return base, fmt.Errorf("parse display config: %w", err)
	}

	cfg := base
	if fc.APIURL != nil {
		cfg.APIURL = *fc.APIURL
	}
	if fc.UpdateInterval != nil {
		cfg.UpdateInterval = time.Duration(*fc.UpdateInterval)
	}
	if fc.MaxNotes != nil {
		cfg.MaxNotes = *fc.MaxNotes
	}
	if fc.ShowTitle != nil {
		cfg.ShowTitle = *fc.ShowTitle
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("apiUrl is required")
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("updateInterval must be positive, got %s", c.UpdateInterval)
	}
	if c.MaxNotes < 1 {
		return fmt.Errorf("maxNotes must be at least 1, got %d", c.MaxNotes)
	}
	return nil
}
