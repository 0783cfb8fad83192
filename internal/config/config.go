// Package config loads the encoder and CLI settings from a YAML file,
// APPLEDOUBLE_* environment variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-appledouble/internal/logger"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// APPLEDOUBLE_LOGGING_LEVEL=DEBUG.
const EnvPrefix = "APPLEDOUBLE"

// Choice is a setting that takes one of a fixed set of lower case words.
// Values are trimmed and lower cased when loaded, so REPLACE and replace
// are the same setting.
type Choice string

// Config is the full configuration.
type Config struct {
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`

	AppleDouble AppleDoubleConfig `mapstructure:"appledouble" yaml:"appledouble"`

	ResourceFork ResourceForkConfig `mapstructure:"resource_fork" yaml:"resource_fork"`

	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// AppleDoubleConfig controls the AppleDouble encoder.
type AppleDoubleConfig struct {
	// Filler is written into the 16-byte filler field, zero padded.
	Filler string `mapstructure:"filler" validate:"max=16" yaml:"filler"`

	// DuplicateEntries is "reject" or "replace".
	DuplicateEntries Choice `mapstructure:"duplicate_entries" validate:"required,oneof=reject replace" yaml:"duplicate_entries"`
}

// ResourceForkConfig controls the resource fork encoder.
type ResourceForkConfig struct {
	// LongNames is "reject" or "truncate" for names over 255 bytes.
	LongNames Choice `mapstructure:"long_names" validate:"required,oneof=reject truncate" yaml:"long_names"`
}

// OutputConfig holds CLI output preferences.
type OutputConfig struct {
	Format Choice `mapstructure:"format" validate:"required,oneof=table json yaml" yaml:"format"`
}

// GetDefaultConfig returns the configuration used when nothing is set.
func GetDefaultConfig() *Config {
	return &Config{
		Logging: logger.Config{
			Level:  "INFO",
			Format: "text",
			Output: "stderr",
		},
		AppleDouble: AppleDoubleConfig{
			Filler:           types.DefaultAppleDoubleFiller,
			DuplicateEntries: "reject",
		},
		ResourceFork: ResourceForkConfig{
			LongNames: "reject",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Load reads the configuration. An empty configPath searches the working
// directory and $HOME/.appledouble for appledouble.yaml, and finding none is
// not an error. A configPath that does not exist is.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if _, err := readConfigFile(v, configPath != ""); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks struct tag constraints.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	return nil
}

// SaveConfig writes cfg to path as YAML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// configDecodeHooks returns the decode hooks used in place of viper's
// defaults. The configuration has no durations or lists to convert.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		choiceDecodeHook(),
	)
}

// choiceDecodeHook normalizes strings decoded into a Choice.
func choiceDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(Choice("")) || from.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		return Choice(strings.ToLower(strings.TrimSpace(s))), nil
	}
}

// setupViper registers defaults, environment overrides and the file search.
func setupViper(v *viper.Viper, configPath string) {
	def := GetDefaultConfig()
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output", def.Logging.Output)
	v.SetDefault("appledouble.filler", def.AppleDouble.Filler)
	v.SetDefault("appledouble.duplicate_entries", def.AppleDouble.DuplicateEntries)
	v.SetDefault("resource_fork.long_names", def.ResourceFork.LongNames)
	v.SetDefault("output.format", def.Output.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("appledouble")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.appledouble")
}

// readConfigFile reports whether a config file was found and read. Only the
// search of the default locations may come up empty; a file named
// explicitly must exist.
func readConfigFile(v *viper.Viper, explicit bool) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && !explicit {
			return false, nil
		}
		if os.IsNotExist(err) && !explicit {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}
