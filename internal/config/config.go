// Package config handles classkit.toml watcher configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/classkit/pkg/types"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "classkit.toml"

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Config represents a classkit.toml file.
type Config struct {
	Watch  Watch  `toml:"watch"`
	Log    Log    `toml:"log"`
	Decode Decode `toml:"decode"`

	// Dir is the directory containing the config file (set at load time).
	Dir string `toml:"-"`
}

// Watch configures which class files are polled for changes.
type Watch struct {
	// Paths are class files or directories searched recursively for
	// *.class files. Relative paths resolve against Config.Dir.
	Paths    []string `toml:"paths"`
	Interval Duration `toml:"interval"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
	File   string `toml:"file"`   // empty means stderr
}

// Decode mirrors types.Options.
type Decode struct {
	StrictMagic          bool `toml:"strict-magic"`
	MaxConstantPoolCount int  `toml:"max-constant-pool-count"`
	MaxPayloadBytes      int  `toml:"max-payload-bytes"`
}

// Duration decodes TOML strings such as "250ms" or "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Watch: Watch{Interval: Duration{DefaultInterval}},
		Log:   Log{Level: "info", Format: "text"},
		Decode: Decode{
			MaxConstantPoolCount: types.MaxConstantPoolCount,
			MaxPayloadBytes:      types.DefaultMaxPayloadBytes,
		},
	}
}

// LoadFile parses the config file at path. Fields left unset keep their
// Default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load parses classkit.toml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// FindAndLoad walks up from startDir to find a classkit.toml file, then
// loads and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Watch.Interval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Decode.MaxConstantPoolCount < 0 || c.Decode.MaxConstantPoolCount > types.MaxConstantPoolCount {
		errs = append(errs, fmt.Errorf("decode.max-constant-pool-count out of range: %d", c.Decode.MaxConstantPoolCount))
	}
	if c.Decode.MaxPayloadBytes < 0 {
		errs = append(errs, fmt.Errorf("decode.max-payload-bytes must not be negative: %d", c.Decode.MaxPayloadBytes))
	}
	return errors.Join(errs...)
}

// WatchPaths returns the watched paths resolved against Dir.
func (c *Config) WatchPaths() []string {
	paths := make([]string, 0, len(c.Watch.Paths))
	for _, p := range c.Watch.Paths {
		if !filepath.IsAbs(p) && c.Dir != "" {
			p = filepath.Join(c.Dir, p)
		}
		paths = append(paths, p)
	}
	return paths
}

// Options converts the decode section into decoder options.
func (c *Config) Options() types.Options {
	return types.Options{
		StrictMagic: c.Decode.StrictMagic,
		Limits: &types.Limits{
			MaxConstantPoolCount: c.Decode.MaxConstantPoolCount,
			MaxPayloadBytes:      c.Decode.MaxPayloadBytes,
		},
	}
}
