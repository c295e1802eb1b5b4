package ulog

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config is the TOML-file representation of logger configuration:
//
//	default_level = "info"
//	maximum_level = "verbose"
//	colors = true
//	timestamp_source = "monotonic"   # or "wallclock"
//	registry_capacity = 64
//
//	[levels]
//	wifi = "debug"
//	heap = "none"
//
// default_level, maximum_level, colors, timestamp_source and
// registry_capacity mirror the compile-time options of the embedded
// builds and only take effect through Options at construction. The
// [levels] table (plus default_level as the wildcard) is the runtime
// surface and is what Apply and the config watcher act on.
type Config struct {
	DefaultLevel     string            `toml:"default_level"`
	MaximumLevel     string            `toml:"maximum_level"`
	Colors           bool              `toml:"colors"`
	TimestampSource  string            `toml:"timestamp_source"`
	RegistryCapacity int               `toml:"registry_capacity"`
	Levels           map[string]string `toml:"levels"`
}

// DefaultConfig mirrors the compile-time defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultLevel:     DefaultLevel.String(),
		MaximumLevel:     DefaultCeiling.String(),
		TimestampSource:  "monotonic",
		RegistryCapacity: DefaultRegistryCapacity,
		Levels:           make(map[string]string),
	}
}

// LoadConfig reads and decodes a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Options converts the construction-time part of the config into New
// options. Level-name parse errors are returned rather than ignored so a
// typo in a config file does not silently change verbosity.
func (c *Config) Options() ([]Option, error) {
	var opts []Option
	if c.DefaultLevel != "" {
		lv, err := ParseLevel(c.DefaultLevel)
		if err != nil {
			return nil, errors.Wrap(err, "default_level")
		}
		opts = append(opts, WithDefaultLevel(lv))
	}
	if c.MaximumLevel != "" {
		lv, err := ParseLevel(c.MaximumLevel)
		if err != nil {
			return nil, errors.Wrap(err, "maximum_level")
		}
		opts = append(opts, WithCeiling(lv))
	}
	switch c.TimestampSource {
	case "", "monotonic":
		opts = append(opts, WithTimestampSource(TimestampMonotonic))
	case "wallclock", "system":
		opts = append(opts, WithTimestampSource(TimestampWallClock))
	default:
		return nil, errors.Errorf("unknown timestamp_source %q", c.TimestampSource)
	}
	opts = append(opts, WithColors(c.Colors))
	if c.RegistryCapacity > 0 {
		opts = append(opts, WithRegistryCapacity(c.RegistryCapacity))
	}
	return opts, nil
}

// Apply pushes the runtime-settable part of the config into a live
// Logger: the wildcard default and the per-tag level table. Unknown level
// names abort before any change is made.
func (c *Config) Apply(l *Logger) error {
	type pending struct {
		tag   string
		level Level
	}
	var updates []pending
	if c.DefaultLevel != "" {
		lv, err := ParseLevel(c.DefaultLevel)
		if err != nil {
			return errors.Wrap(err, "default_level")
		}
		updates = append(updates, pending{WildcardTag, lv})
	}
	for tag, name := range c.Levels {
		lv, err := ParseLevel(name)
		if err != nil {
			return errors.Wrapf(err, "levels.%s", tag)
		}
		updates = append(updates, pending{tag, lv})
	}
	for _, u := range updates {
		l.SetLevel(u.tag, u.level)
	}
	return nil
}
