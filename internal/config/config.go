// Package config handles intcode.toml runner configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents an intcode.toml file.
type Config struct {
	VM     VM     `toml:"vm"`
	Search Search `toml:"search"`

	// Path is the file the config was loaded from, if any.
	Path string `toml:"-"`
}

// VM configures machine construction and runs.
type VM struct {
	Verbose  int      `toml:"verbose"`
	MemLimit uint     `toml:"mem-limit"`
	Timeout  Duration `toml:"timeout"`
}

// Search configures brute-force parameter search.
type Search struct {
	Target   int64 `toml:"target"`
	Max      int64 `toml:"max"`
	NounAddr uint  `toml:"noun-addr"`
	VerbAddr uint  `toml:"verb-addr"`
	Workers  int   `toml:"workers"`
}

// Duration is a time.Duration decoded from strings like "10s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Search: Search{
			Max:      99,
			NounAddr: 1,
			VerbAddr: 2,
		},
	}
}

// Load parses the named TOML file over Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("unknown key %q in %s", undec[0].String(), path)
	}
	cfg.Path = path
	if cfg.Search.Max < 0 {
		return cfg, fmt.Errorf("invalid search.max %v in %s", cfg.Search.Max, path)
	}
	return cfg, nil
}
