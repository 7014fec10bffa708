package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrUnknownPreset = errors.New("unknown preset")

type Preset struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

func (p Preset) Validate() error {
	_, err := mines.New(p.Rows, p.Cols, p.Mines)
	return err
}

func (p Preset) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.Mines)
}

// Log configures logging. A zero MaxBackups or MaxAgeDays keeps every
// rotated file; leaving them out picks the defaults.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups *int   `yaml:"max_backups"`
	MaxAgeDays *int   `yaml:"max_age_days"`
}

func (l Log) Backups() int {
	if l.MaxBackups == nil {
		return 0
	}
	return *l.MaxBackups
}

func (l Log) AgeDays() int {
	if l.MaxAgeDays == nil {
		return 0
	}
	return *l.MaxAgeDays
}

type Config struct {
	DefaultPreset string            `yaml:"default_preset"`
	Presets       map[string]Preset `yaml:"presets"`
	Log           Log               `yaml:"log"`
}

func defaultPresets() map[string]Preset {
	return map[string]Preset{
		"beginner":     {Rows: 9, Cols: 9, Mines: 10},
		"intermediate": {Rows: 16, Cols: 16, Mines: 40},
		"expert":       {Rows: 16, Cols: 30, Mines: 99},
	}
}

func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if len(c.Presets) == 0 {
		c.Presets = defaultPresets()
	}
	if c.DefaultPreset == "" {
		c.DefaultPreset = "beginner"
	}
	c.DefaultPreset = strings.ToLower(c.DefaultPreset)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == nil {
		backups := 3
		c.Log.MaxBackups = &backups
	}
	if c.Log.MaxAgeDays == nil {
		days := 28
		c.Log.MaxAgeDays = &days
	}
}

// lowerPresets makes preset names case-insensitive.
func (c *Config) lowerPresets() error {
	presets := make(map[string]Preset, len(c.Presets))
	for name, p := range c.Presets {
		key := strings.ToLower(name)
		if _, ok := presets[key]; ok {
			return fmt.Errorf("preset %q: duplicate name", name)
		}
		presets[key] = p
	}
	c.Presets = presets
	return nil
}

// Load reads a YAML config file and fills in defaults for missing keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.lowerPresets(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	for name, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	if _, err := c.Preset(c.DefaultPreset); err != nil {
		return fmt.Errorf("default preset: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

func (c *Config) Preset(name string) (Preset, error) {
	p, ok := c.Presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, fmt.Errorf(
			"%w %q (known: %s)", ErrUnknownPreset, name,
			strings.Join(c.PresetNames(), ", "),
		)
	}
	return p, nil
}

func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LogLevel is the configured level, lowered to debug in development.
func (c *Config) LogLevel() logrus.Level {
	if Development() {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c *Config) Fields() logrus.Fields {
	return logrus.Fields{
		"default_preset":   c.DefaultPreset,
		"presets":          c.PresetNames(),
		"log_level":        c.Log.Level,
		"log_file":         c.Log.File,
		"log_max_size_mb":  c.Log.MaxSizeMB,
		"log_max_backups":  c.Log.Backups(),
		"log_max_age_days": c.Log.AgeDays(),
	}
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// Path picks the config file: the flag value if given, else MINES_CONFIG.
// An empty result means built-in defaults.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("MINES_CONFIG")
}
