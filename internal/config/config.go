// Package config loads the server configuration from YAML, applying
// struct-tag defaults and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

const SupportedVersion = "1"

// Navigation modes.
const (
	ModeHash    = "hash"
	ModeHistory = "history"
)

// Asset sources.
const (
	AssetsEmbed = "embed"
	AssetsS3    = "s3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete configuration structure
type Config struct {
	Version string        `yaml:"version" default:"1"`
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Router  RouterConfig  `yaml:"router"`
	Theme   ThemeConfig   `yaml:"theme"`
	Assets  AssetsConfig  `yaml:"assets"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Brandi"`
	Description string `yaml:"description" default:"Brandi storefront and back-office"`
}

type ServerConfig struct {
	Host            string `yaml:"host" default:"0.0.0.0"`
	Port            string `yaml:"port" default:"8080"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_seconds" default:"10"`
	Compression     bool   `yaml:"compression" default:"true"`
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type RouterConfig struct {
	// Mode is either "hash" (fragment navigation over a single shell page)
	// or "history" (every route is a real URL).
	Mode string `yaml:"mode" default:"hash"`
}

type ThemeConfig struct {
	Default        string `yaml:"default" default:"light"`
	AllowSwitching bool   `yaml:"allow_switching" default:"true"`
}

type AssetsConfig struct {
	Source    string `yaml:"source" default:"embed"`
	Bucket    string `yaml:"bucket" default:""`
	Prefix    string `yaml:"prefix" default:"static/"`
	Endpoint  string `yaml:"endpoint" default:""`
	Region    string `yaml:"region" default:"auto"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" default:"true"`
	Path      string `yaml:"path" default:"/metrics"`
	Namespace string `yaml:"namespace" default:"brandi"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

// LoadConfig reads the YAML file at path on top of the defaults. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if err != nil {
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		return config, nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that the server cannot start with.
func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("%w: unsupported configuration version %q", ErrInvalidConfig, c.Version)
	}
	switch c.Router.Mode {
	case ModeHash, ModeHistory:
	default:
		return fmt.Errorf("%w: unknown router mode %q", ErrInvalidConfig, c.Router.Mode)
	}
	switch c.Assets.Source {
	case AssetsEmbed:
	case AssetsS3:
		if c.Assets.Bucket == "" {
			return fmt.Errorf("%w: s3 assets require a bucket", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown assets source %q", ErrInvalidConfig, c.Assets.Source)
	}
	if c.Theme.Default != LightTheme && c.Theme.Default != DarkTheme {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme.Default)
	}
	return nil
}

// Environment variables that override the file configuration.
const (
	EnvHost           = "BRANDI_HOST"
	EnvPort           = "BRANDI_PORT"
	EnvLogLevel       = "BRANDI_LOG_LEVEL"
	EnvRouterMode     = "BRANDI_ROUTER_MODE"
	EnvAssetsBucket   = "BRANDI_ASSETS_BUCKET"
	EnvAssetsEndpoint = "BRANDI_ASSETS_ENDPOINT"
	EnvAssetsKey      = "BRANDI_ASSETS_ACCESS_KEY"
	EnvAssetsSecret   = "BRANDI_ASSETS_SECRET_KEY"
)

// ApplyEnv overrides fields from the environment. Setting a bucket switches
// the asset source to S3.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Server.Host, EnvHost)
	set(&c.Server.Port, EnvPort)
	set(&c.Logging.Level, EnvLogLevel)
	set(&c.Router.Mode, EnvRouterMode)
	set(&c.Assets.Endpoint, EnvAssetsEndpoint)
	set(&c.Assets.AccessKey, EnvAssetsKey)
	set(&c.Assets.SecretKey, EnvAssetsSecret)
	if bucket := getenv(EnvAssetsBucket); bucket != "" {
		c.Assets.Bucket = bucket
		c.Assets.Source = AssetsS3
	}

	return c.Validate()
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
