package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/engineerr"
)

func resetViper(t *testing.T) {
	t.Cleanup(func() { viper.Reset() })
	viper.Reset()
	SetDefaults()
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	resetViper(t)
	viper.Set("mode", ModeSieve)
	viper.Set("limit", 1000)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ModeSieve, cfg.Mode)
	assert.EqualValues(t, 1000, cfg.Limit)
	assert.EqualValues(t, DefaultGear, cfg.Gear)
	assert.Equal(t, "", cfg.LoadedFrom())
}

func TestLoadMissingConfigFileIsNotAnError(t *testing.T) {
	resetViper(t)
	viper.Set("mode", ModeSieve)
	viper.Set("limit", 1000)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ModeSieve, cfg.Mode)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: sieve\nlimit: 5000\ngear: 50\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, cfg.Limit)
	assert.Equal(t, 50, cfg.Gear)
	assert.Equal(t, path, cfg.LoadedFrom())
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	err := Validate(&Config{Mode: "bogus"})
	require.Error(t, err)
	var ce *engineerr.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestValidateSieveRequiresPositiveLimit(t *testing.T) {
	err := Validate(&Config{Mode: ModeSieve, Gear: 1, SegmentEvens: 1, Limit: 0})
	assert.Error(t, err)
}

func TestValidateMRRequiresEvenStartN(t *testing.T) {
	err := Validate(&Config{Mode: ModeMR, Gear: 1, SegmentEvens: 1, StartN: 7, WindowEvens: 10})
	assert.Error(t, err)
}

func TestValidateMRAcceptsWellFormedConfig(t *testing.T) {
	err := Validate(&Config{Mode: ModeMR, Gear: 1, SegmentEvens: 1, StartN: 1_000_000_000_000, WindowEvens: 10})
	assert.NoError(t, err)
}
