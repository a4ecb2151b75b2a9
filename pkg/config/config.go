// Package config loads the settings of the segcount command from a TOML or
// YAML file and the environment.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	cerrors "github.com/ib-77/segcount/pkg/errors"
	"github.com/ib-77/segcount/pkg/segment"
	"github.com/pingcap/errors"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLimit is the upper bound counted when none is configured.
	DefaultLimit uint64 = 1_000_000_000

	envPrefix = "SEGCOUNT_"
)

type Config struct {
	// Limit is the exclusive upper bound of the counted range [0, Limit).
	Limit uint64 `toml:"limit" yaml:"limit"`
	// Workers is the number of segments; 0 selects hardware parallelism.
	Workers int       `toml:"workers" yaml:"workers"`
	Tail    string    `toml:"tail" yaml:"tail"`
	Verify  bool      `toml:"verify" yaml:"verify"`
	Log     LogConfig `toml:"log" yaml:"log"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	File   string `toml:"file" yaml:"file"`
}

func Default() *Config {
	return &Config{
		Limit: DefaultLimit,
		Tail:  segment.TailTruncate.String(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over Default. The format follows the extension: .toml,
// .yaml or .yml. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, cerrors.ErrConfigInvalid.GenWithStackByArgs("config path is empty")
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, cerrors.WrapError(cerrors.ErrConfigDecode, err, path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, cerrors.ErrConfigInvalid.GenWithStackByArgs(
				"unknown keys in " + path + ": " + joinKeys(undecoded))
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, cerrors.WrapError(cerrors.ErrConfigDecode, err, path)
		}
	default:
		return nil, cerrors.ErrConfigInvalid.GenWithStackByArgs(
			"config must be a .toml or .yaml file: " + path)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SEGCOUNT_LIMIT, SEGCOUNT_WORKERS,
// SEGCOUNT_TAIL, SEGCOUNT_VERIFY and SEGCOUNT_LOG_LEVEL when they are set.
func (c *Config) ApplyEnv() error {
	if env.Has(envPrefix + "LIMIT") {
		raw := env.Str(envPrefix + "LIMIT")
		limit, err := strconv.ParseUint(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""), 10, 64)
		if err != nil {
			return cerrors.ErrConfigInvalid.GenWithStackByArgs(envPrefix + "LIMIT=" + raw)
		}
		c.Limit = limit
	}
	if env.Has(envPrefix + "WORKERS") {
		raw := env.Str(envPrefix + "WORKERS")
		workers, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return cerrors.ErrConfigInvalid.GenWithStackByArgs(envPrefix + "WORKERS=" + raw)
		}
		c.Workers = workers
	}
	if env.Has(envPrefix + "TAIL") {
		c.Tail = env.Str(envPrefix + "TAIL")
	}
	if env.Has(envPrefix + "VERIFY") {
		c.Verify = env.Bool(envPrefix + "VERIFY")
	}
	if env.Has(envPrefix + "LOG_LEVEL") {
		c.Log.Level = env.Str(envPrefix + "LOG_LEVEL")
	}

	c.normalize()
	return c.Validate()
}

func (c *Config) normalize() {
	c.Tail = strings.ToLower(strings.TrimSpace(c.Tail))
	if c.Tail == "" {
		c.Tail = segment.TailTruncate.String()
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	c.Log.File = strings.TrimSpace(c.Log.File)
}

func (c *Config) Validate() error {
	if c.Limit == 0 {
		return cerrors.ErrConfigInvalid.GenWithStackByArgs("limit must be greater than 0")
	}
	if c.Workers < 0 {
		return cerrors.ErrConfigInvalid.GenWithStackByArgs(
			"workers must be >= 0 (0 selects hardware parallelism), got " + strconv.Itoa(c.Workers))
	}
	if _, err := c.TailPolicy(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return cerrors.ErrConfigInvalid.GenWithStackByArgs("unsupported log format: " + c.Log.Format)
	}
	return nil
}

func (c *Config) TailPolicy() (segment.TailPolicy, error) {
	return segment.ParseTailPolicy(c.Tail)
}

// Range is the counted range [0, Limit).
func (c *Config) Range() segment.Range {
	return segment.UpTo(c.Limit)
}

func joinKeys(keys []toml.Key) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, ", ")
}
