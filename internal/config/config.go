// Package config loads the yaml configuration file and supplies the
// built-in defaults used when no file exists. Validation is a separate
// step from decoding so a reload can reject a bad file without touching
// the running state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Tags        []string `yaml:"tags"`
	BorderPx    int      `yaml:"borderPx"`
	SnapPx      int      `yaml:"snapPx"`
	BarHeight   int      `yaml:"barHeight"`
	ShowBar     bool     `yaml:"showBar"`
	TopBar      bool     `yaml:"topBar"`
	ResizeHints bool     `yaml:"resizeHints"`
	MFact       float64  `yaml:"mfact"`
	NMaster     int      `yaml:"nmaster"`
	Layout      string   `yaml:"layout"`
	ModKey      string   `yaml:"modKey"`
	LogLevel    string   `yaml:"logLevel"`

	Keys    []KeyConfig    `yaml:"keys"`
	Buttons []ButtonConfig `yaml:"buttons"`
	Rules   []RuleConfig   `yaml:"rules"`

	Autostart AutostartConfig `yaml:"autostart"`
}

// KeyConfig binds one key chord to a command. Tag, when set, resolves
// to Arg.Mask during validation.
type KeyConfig struct {
	Chord   string `yaml:"chord"`
	Command string `yaml:"command"`
	Arg     Arg    `yaml:"arg"`
	Tag     string `yaml:"tag"`
}

// ButtonConfig binds a modkey-chorded pointer button on a client window
// to a command.
type ButtonConfig struct {
	Button  int    `yaml:"button"`
	Command string `yaml:"command"`
	Arg     Arg    `yaml:"arg"`
}

// RuleConfig matches new clients by class/instance/title substrings and
// assigns tags, the floating flag, and a preferred monitor.
type RuleConfig struct {
	Class    string   `yaml:"class"`
	Instance string   `yaml:"instance"`
	Title    string   `yaml:"title"`
	Tags     []string `yaml:"tags"`
	Floating bool     `yaml:"floating"`
	// Monitor is a preferred monitor index; nil means the monitor that
	// is selected when the client appears.
	Monitor *int `yaml:"monitor"`
}

// AutostartConfig names the script run once after the initial window
// scan. Wait selects the blocking variant.
type AutostartConfig struct {
	Path string `yaml:"path"`
	Wait bool   `yaml:"wait"`
}

// Arg is the single tagged-union argument a bound command receives:
// an integer, a float, a tag mask, a string, or an argument vector.
type Arg struct {
	Int   int
	Float float64
	Mask  uint32
	Str   string
	Cmd   []string
}

// UnmarshalYAML accepts a scalar (int, float, or string) or a sequence
// of strings.
func (a *Arg) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		return value.Decode(&a.Cmd)
	case yaml.ScalarNode:
		// Dispatch on the resolved tag: yaml happily decodes a float
		// scalar into an int (truncating), so try-decode ordering
		// would lose fractional arguments.
		switch value.Tag {
		case "!!int":
			if err := value.Decode(&a.Int); err != nil {
				return err
			}
			a.Float = float64(a.Int)
			return nil
		case "!!float":
			return value.Decode(&a.Float)
		}
		return value.Decode(&a.Str)
	}
	return fmt.Errorf("config: unsupported arg node at line %d", value.Line)
}

// DefaultPath is where the config file lives when --config is not given.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dtwm", "config.yaml")
}

// Load reads and parses path. A missing file yields the defaults; a
// present but broken file is an error.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes raw yaml over the defaults and validates the result.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TagMask is the mask restricting tag bits to the configured tag count.
func (c *Config) TagMask() uint32 {
	return 1<<uint(len(c.Tags)) - 1
}

// ResolveTag maps a tag name, a 1-based tag number, or "all" to a mask.
func (c *Config) ResolveTag(s string) (uint32, error) {
	if s == "all" {
		return c.TagMask(), nil
	}
	for i, name := range c.Tags {
		if name == s {
			return 1 << uint(i), nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && n >= 1 && n <= len(c.Tags) {
		return 1 << uint(n-1), nil
	}
	return 0, fmt.Errorf("unknown tag %q", s)
}

// Validate checks structural constraints and resolves tag references in
// key bindings and rules are resolvable.
func (c *Config) Validate() error {
	if len(c.Tags) == 0 || len(c.Tags) > 31 {
		return fmt.Errorf("config: need between 1 and 31 tags, have %d", len(c.Tags))
	}
	for i, t := range c.Tags {
		if t == "" {
			return fmt.Errorf("config: tag %d has an empty name", i+1)
		}
	}
	if c.MFact <= 0.1 || c.MFact >= 0.9 {
		return fmt.Errorf("config: mfact %.2f outside (0.1, 0.9)", c.MFact)
	}
	if c.NMaster < 0 {
		return fmt.Errorf("config: nmaster must not be negative")
	}
	if c.BorderPx < 0 || c.SnapPx < 0 || c.BarHeight <= 0 {
		return fmt.Errorf("config: borderPx, snapPx and barHeight must be sane")
	}
	switch c.Layout {
	case "tile", "float", "monocle":
	default:
		return fmt.Errorf("config: unknown layout %q", c.Layout)
	}
	for i := range c.Keys {
		k := &c.Keys[i]
		if k.Chord == "" || k.Command == "" {
			return fmt.Errorf("config: key binding %d needs chord and command", i)
		}
		if k.Tag != "" {
			mask, err := c.ResolveTag(k.Tag)
			if err != nil {
				return fmt.Errorf("config: key %q: %w", k.Chord, err)
			}
			k.Arg.Mask = mask
		}
	}
	for i, b := range c.Buttons {
		if b.Button < 1 || b.Button > 5 {
			return fmt.Errorf("config: button binding %d: button %d out of range", i, b.Button)
		}
		if b.Command == "" {
			return fmt.Errorf("config: button binding %d needs a command", i)
		}
	}
	for i, r := range c.Rules {
		if r.Class == "" && r.Instance == "" && r.Title == "" {
			return fmt.Errorf("config: rule %d matches nothing", i)
		}
		for _, t := range r.Tags {
			if _, err := c.ResolveTag(t); err != nil {
				return fmt.Errorf("config: rule %d: %w", i, err)
			}
		}
	}
	return nil
}
