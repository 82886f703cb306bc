// Package config provides storage paths and YAML-based settings loading for
// beaverbuild.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/caresoft-ricent/beaverbuild/internal/descriptor"
)

// Config is the root tool configuration.
type Config struct {
	// Project overrides the Android settings baked into the app
	Project descriptor.Project `mapstructure:"project"`

	// Flutter locates the Flutter project whose version is used
	Flutter FlutterConfig `mapstructure:"flutter"`

	// Log holds logging configuration
	Log LogConfig `mapstructure:"log"`

	// History controls evaluation recording
	History HistoryConfig `mapstructure:"history"`
}

// FlutterConfig locates the Flutter project.
type FlutterConfig struct {
	ProjectDir string `mapstructure:"project_dir"`
}

// HistoryConfig controls the SQLite evaluation log.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: stdout, stderr, or file paths
	Outputs []string `mapstructure:"outputs"`

	Rotation RotationConfig `mapstructure:"rotation"`
	// Development toggles development-friendly logging options
	Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns a Config populated with the shipped defaults.
func Default() *Config {
	return &Config{
		Project: descriptor.Defaults(),
		Flutter: FlutterConfig{ProjectDir: "."},
		Log: LogConfig{
			Level:   "warn",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				Filename:   "logs/beaverbuild.log",
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
		History: HistoryConfig{Enabled: true},
	}
}

// Load reads configuration from path when non-empty, otherwise from
// BEAVERBUILD_CONFIG or a beaverbuild.yaml found in the usual locations.
// Environment variables use the prefix BEAVERBUILD with `.` replaced by `_`,
// e.g. BEAVERBUILD_PROJECT_MIN_SDK=24.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BEAVERBUILD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	p := cfg.Project
	v.SetDefault("project.namespace", p.Namespace)
	v.SetDefault("project.application_id", p.ApplicationID)
	v.SetDefault("project.compile_sdk", p.CompileSdk)
	v.SetDefault("project.min_sdk", p.MinSdk)
	v.SetDefault("project.target_sdk", p.TargetSdk)
	v.SetDefault("project.ndk_version", p.NdkVersion)
	v.SetDefault("project.java_version", p.JavaVersion)
	v.SetDefault("project.kotlin_jvm_target", p.KotlinJvmTarget)
	v.SetDefault("project.flutter_source", p.FlutterSource)
	v.SetDefault("flutter.project_dir", cfg.Flutter.ProjectDir)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)
	v.SetDefault("history.enabled", cfg.History.Enabled)

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("beaverbuild")
		v.AddConfigPath(".")
		v.AddConfigPath("./android")
		if d, err := DataDir(); err == nil {
			v.AddConfigPath(d)
		}
	}

	// a missing config file is fine; defaults and env still apply
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the log settings and fills in empty defaults. It is run by
// Load and again by callers that override fields afterwards.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log.format: %q", c.Log.Format)
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	if strings.TrimSpace(c.Flutter.ProjectDir) == "" {
		c.Flutter.ProjectDir = "."
	}
	return nil
}
