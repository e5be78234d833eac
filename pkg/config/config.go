// Package config provides configuration management for fsops.
// Settings are read from a YAML file and then overridden by FSOPS_* environment
// variables, so the shared library can be configured without a file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/cperrin88/fsops/pkg/errors"
	"github.com/cperrin88/fsops/pkg/fsutil"
	"github.com/cperrin88/fsops/pkg/permissions"
)

// EnvPrefix prefixes every environment override, e.g. FSOPS_LOG_LEVEL.
const EnvPrefix = "FSOPS"

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = EnvPrefix + "_CONFIG"

// Config represents the application configuration.
type Config struct {
	// General settings
	Settings Settings `yaml:"settings"`

	// Batch runner defaults
	Batch BatchConfig `yaml:"batch"`
}

// Settings represents general application settings.
type Settings struct {
	// Output settings
	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`   // trace, debug, info, warn, error, disabled
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"` // text, json

	// CrossVolumeFallback lets move fall back to copy and delete when source
	// and destination live on different volumes. Rename never falls back.
	CrossVolumeFallback bool `yaml:"cross_volume_fallback" envconfig:"CROSS_VOLUME_FALLBACK"`
}

// BatchConfig holds defaults for batch manifests.
type BatchConfig struct {
	// ContinueOnError keeps running the remaining steps after a failure. A
	// manifest may override it.
	ContinueOnError bool `yaml:"continue_on_error" envconfig:"CONTINUE_ON_ERROR"`
}

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

var (
	validLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	validFormats = map[string]bool{"text": true, "json": true}
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			LogLevel:  DefaultLogLevel,
			LogFormat: DefaultLogFormat,
		},
	}
}

// Load resolves the config file (path, then $FSOPS_CONFIG, then the default
// location), loads it and applies environment overrides. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		var err error
		if path, err = GetDefaultConfigPath(); err != nil {
			// No home directory: run on defaults and environment only.
			return FromEnv(DefaultConfig())
		}
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return FromEnv(cfg)
}

// FromEnv applies FSOPS_* overrides to cfg and validates the result.
func FromEnv(cfg *Config) (*Config, error) {
	if err := envconfig.Process(EnvPrefix, &cfg.Settings); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	if err := envconfig.Process(EnvPrefix+"_BATCH", &cfg.Batch); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves configuration to a file. The file is written next to its
// final location and renamed into place.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "invalid config path %s", path)
	}

	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	tempPath := absPath + ".tmp"
	file, err := fsutil.CreateFilePerm(tempPath, permissions.FileModeDefault.FileMode())
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if !validLevels[strings.ToLower(c.Settings.LogLevel)] {
		return fmt.Errorf("%w: %w: %q", errors.ErrConfigValidation, errors.ErrInvalidLogLevel, c.Settings.LogLevel)
	}
	if !validFormats[strings.ToLower(c.Settings.LogFormat)] {
		return fmt.Errorf("%w: invalid log format %q (valid: text, json)", errors.ErrConfigValidation, c.Settings.LogFormat)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "fsops", "config.yaml"), nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = DefaultLogLevel
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = DefaultLogFormat
	}
	c.Settings.LogLevel = strings.ToLower(c.Settings.LogLevel)
	c.Settings.LogFormat = strings.ToLower(c.Settings.LogFormat)
}
