package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jcorbin/intcode/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "intcode.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[vm]
verbose = 2
mem-limit = 4096
timeout = "1m30s"

[search]
target = 19690720
workers = 4
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.VM.Verbose)
	assert.Equal(t, uint(4096), cfg.VM.MemLimit)
	assert.Equal(t, 90*time.Second, cfg.VM.Timeout.Duration)
	assert.Equal(t, config.Search{
		Target:   19690720,
		Max:      99,
		NounAddr: 1,
		VerbAddr: 2,
		Workers:  4,
	}, cfg.Search, "expected defaults to fill missing keys")
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeConfig(t, "[vm]\nverbose = \"loud\"\n"))
	assert.Error(t, err, "expected type error")

	_, err = config.Load(writeConfig(t, "[vm]\ntimeout = \"soon\"\n"))
	assert.Error(t, err, "expected duration error")

	path := writeConfig(t, "[vm]\nspeed = 11\n")
	_, err = config.Load(path)
	assert.EqualError(t, err, `unknown key "vm.speed" in `+path)

	_, err = config.Load(writeConfig(t, "[search]\nmax = -1\n"))
	assert.Error(t, err, "expected negative max error")
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, int64(99), cfg.Search.Max)
	assert.Equal(t, uint(1), cfg.Search.NounAddr)
	assert.Equal(t, uint(2), cfg.Search.VerbAddr)
	assert.Zero(t, cfg.VM.Timeout.Duration)
	assert.Equal(t, "", cfg.Path)
}
