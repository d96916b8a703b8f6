// Package config loads the engine's configuration from an optional YAML
// file plus CLI flag overrides, both bound through viper the way
// Ribengame-hunter's loadConfigFromFile/setDefaults/
// applyCommandLineOverrides trio does, then validates the result into
// engineerr.ConfigError on failure.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/engineerr"
)

// Mode names accepted by --mode (spec.md §6).
const (
	ModeSieve = "sieve"
	ModeMR    = "mr"
)

// Config mirrors the CLI surface of spec.md §6, plus the ambient
// output/logging fields the teacher's OutputConfig carried.
type Config struct {
	Mode string `mapstructure:"mode" yaml:"mode"`

	Limit       int64 `mapstructure:"limit" yaml:"limit"`
	StartN      int64 `mapstructure:"startN" yaml:"startN"`
	WindowEvens int64 `mapstructure:"windowEvens" yaml:"windowEvens"`

	Gear                   int   `mapstructure:"gear" yaml:"gear"`
	Threads                int   `mapstructure:"threads" yaml:"threads"`
	SegmentEvens           int64 `mapstructure:"segmentEvens" yaml:"segmentEvens"`
	MaxConcurrentSegments  int   `mapstructure:"maxConcurrentSegments" yaml:"maxConcurrentSegments"`
	ThreadsInside          int   `mapstructure:"threadsInside" yaml:"threadsInside"`
	Misses                 int   `mapstructure:"misses" yaml:"misses"`
	Resume                 bool  `mapstructure:"resume" yaml:"resume"`
	VerifySeams            bool  `mapstructure:"verifySeams" yaml:"verifySeams"`
	AffinityMask           string `mapstructure:"affinityMask" yaml:"affinityMask"`

	OutputDirectory string `mapstructure:"outputDirectory" yaml:"outputDirectory"`
	LogLevel        string `mapstructure:"logLevel" yaml:"logLevel"`
	Verbose         bool   `mapstructure:"verbose" yaml:"verbose"`

	// loadedFrom records the config file actually used, for the
	// startup banner (mirrors the teacher's Config.loadedFrom).
	loadedFrom string
}

// DefaultSeamBand and SeamOverlapFloor are the conservative defaults from
// spec.md §4.6/§9, kept parameterizable per §9's Open Question but
// defaulted to the stated values.
const (
	DefaultSeamBand    = 200
	SeamOverlapFloor   = 1024
	DefaultBlock       = 32_000_000
	DefaultGear        = 310
	DefaultSegmentEvens = 10_000_000
)

// SetDefaults registers viper defaults for every field, mirroring the
// teacher's setDefaults().
func SetDefaults() {
	viper.SetDefault("mode", ModeSieve)
	viper.SetDefault("limit", 0)
	viper.SetDefault("startN", 0)
	viper.SetDefault("windowEvens", 0)
	viper.SetDefault("gear", DefaultGear)
	viper.SetDefault("threads", 0)
	viper.SetDefault("segmentEvens", DefaultSegmentEvens)
	viper.SetDefault("maxConcurrentSegments", 0)
	viper.SetDefault("threadsInside", 0)
	viper.SetDefault("misses", 0)
	viper.SetDefault("resume", false)
	viper.SetDefault("verifySeams", true)
	viper.SetDefault("affinityMask", "")
	viper.SetDefault("outputDirectory", ".")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("verbose", false)
}

// Load reads configPath (if present — a missing file is not an error,
// mirroring loadConfigFromFile's os.IsNotExist handling), unmarshals
// into a Config, and validates it.
func Load(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			viper.SetConfigFile(configPath)
			viper.SetConfigType("yaml")
			if err := viper.ReadInConfig(); err != nil {
				return nil, engineerr.NewConfigError("config", fmt.Sprintf("failed to read %s: %v", configPath, err))
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, engineerr.NewConfigError("config", fmt.Sprintf("failed to unmarshal: %v", err))
	}
	cfg.loadedFrom = viper.ConfigFileUsed()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadedFrom returns the config file path actually consulted, or "" if
// the run used defaults/flags alone.
func (c *Config) LoadedFrom() string { return c.loadedFrom }

// Validate enforces spec.md §6/§7's ConfigError preconditions: fail
// fast before any work starts.
func Validate(c *Config) error {
	switch c.Mode {
	case ModeSieve, ModeMR:
	default:
		return engineerr.NewConfigError("mode", fmt.Sprintf("must be %q or %q, got %q", ModeSieve, ModeMR, c.Mode))
	}

	if c.Gear < 1 {
		return engineerr.NewConfigError("gear", "must be >= 1")
	}
	if c.SegmentEvens < 1 {
		return engineerr.NewConfigError("segmentEvens", "must be >= 1")
	}
	if c.Misses < 0 {
		return engineerr.NewConfigError("misses", "must be >= 0")
	}
	if c.Threads < 0 {
		return engineerr.NewConfigError("threads", "must be >= 0")
	}
	if c.ThreadsInside < 0 {
		return engineerr.NewConfigError("threadsInside", "must be >= 0")
	}
	if c.MaxConcurrentSegments < 0 {
		return engineerr.NewConfigError("maxConcurrentSegments", "must be >= 0")
	}

	switch c.Mode {
	case ModeSieve:
		if c.Limit <= 0 {
			return engineerr.NewConfigError("limit", "must be > 0 for --mode sieve")
		}
	case ModeMR:
		if c.StartN <= 0 {
			return engineerr.NewConfigError("startN", "must be > 0 for --mode mr")
		}
		if c.StartN%2 != 0 {
			return engineerr.NewConfigError("startN", "must be even for --mode mr")
		}
		if c.WindowEvens <= 0 {
			return engineerr.NewConfigError("windowEvens", "must be > 0 for --mode mr")
		}
	}
	return nil
}
