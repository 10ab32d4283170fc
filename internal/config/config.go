// Package config loads the simulator configuration from defaults, an optional YAML file and FACESIM_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ajanata/movement"
)

// Config is the simulator configuration.
type Config struct {
	// Faces lists the faces in host order by name: "tally" or "databank".
	Faces       []string      `mapstructure:"faces"`
	Presets     []int         `mapstructure:"presets"`
	Sound       bool          `mapstructure:"sound"`
	Timeout     time.Duration `mapstructure:"timeout"`
	LongPress   time.Duration `mapstructure:"long-press"`
	LEDDuration time.Duration `mapstructure:"led-duration"`
	Screenshot  string        `mapstructure:"screenshot"`
	Log         LogConfig     `mapstructure:"log"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format"`
	// File, when set, sends logs to a rotated file instead of stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size-mb"`
	MaxBackups int    `mapstructure:"max-backups"`
}

// Load reads the configuration. With an empty path, ~/.config/facesim/config.yml is used if it exists.
func Load(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix("FACESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	defaults := movement.DefaultSettings()
	v.SetDefault("faces", []string{"tally", "databank"})
	v.SetDefault("presets", []int{0})
	v.SetDefault("sound", defaults.ButtonSound)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("long-press", defaults.LongPress)
	v.SetDefault("led-duration", defaults.LEDDuration)
	v.SetDefault("screenshot", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max-size-mb", 10)
	v.SetDefault("log.max-backups", 3)

	if path != "" {
		v.SetConfigFile(path)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "facesim", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		// an explicitly named file must exist
		if path != "" || (!errors.As(err, &configFileNotFound) && !os.IsNotExist(err)) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Faces) == 0 {
		return errors.New("config: no faces")
	}
	for _, f := range c.Faces {
		if f != "tally" && f != "databank" {
			return fmt.Errorf("config: unknown face %q", f)
		}
	}
	if c.LongPress <= 0 {
		return errors.New("config: long-press must be positive")
	}
	if _, err := c.TallyPresets(); err != nil {
		return err
	}
	return nil
}

// TallyPresets converts the presets for the tally face. Values outside int16 are rejected; the face itself clamps
// the rest to its counting range.
func (c Config) TallyPresets() ([]int16, error) {
	p := make([]int16, len(c.Presets))
	for i, v := range c.Presets {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, fmt.Errorf("config: preset %d out of range", v)
		}
		p[i] = int16(v)
	}
	return p, nil
}

func (c Config) Settings() movement.Settings {
	return movement.Settings{
		ButtonSound: c.Sound,
		LEDDuration: c.LEDDuration,
		Timeout:     c.Timeout,
		LongPress:   c.LongPress,
	}
}
