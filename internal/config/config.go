package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL is the public data portal special-day endpoint.
const DefaultAPIURL = "http://apis.data.go.kr/B090041/openapi/service/SpcdeInfoService/getRestDeInfo"

// Config represents application configuration
type Config struct {
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// DatasetConfig points at an optional directory of year files that
// overrides the embedded dataset.
type DatasetConfig struct {
	Dir string `mapstructure:"dir"`
}

// GeneratorConfig represents the dataset generator configuration
type GeneratorConfig struct {
	APIURL     string `mapstructure:"api_url"`
	ServiceKey string `mapstructure:"service_key"`
	Rows       int    `mapstructure:"rows"`
	Timeout    string `mapstructure:"timeout"`
	Retries    int    `mapstructure:"retries"`
	OutputDir  string `mapstructure:"output_dir"`
	Gzip       bool   `mapstructure:"gzip"`
	Years      []int  `mapstructure:"years"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	ReadTimeout string `mapstructure:"read_timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load loads configuration from file. A missing config file is only an
// error when configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.kr-holidays")
		v.AddConfigPath("/etc/kr-holidays")
	}

	// KR_HOLIDAYS_GENERATOR_SERVICE_KEY overrides generator.service_key.
	v.SetEnvPrefix("KR_HOLIDAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range []string{"generator.service_key", "dataset.dir"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.api_url", DefaultAPIURL)
	v.SetDefault("generator.rows", 100)
	v.SetDefault("generator.timeout", "30s")
	v.SetDefault("generator.retries", 3)
	v.SetDefault("generator.output_dir", "data")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Generator.Rows <= 0 {
		return fmt.Errorf("generator.rows must be positive")
	}
	if c.Generator.Retries < 1 {
		return fmt.Errorf("generator.retries must be at least 1")
	}
	if c.Generator.Timeout != "" {
		if _, err := time.ParseDuration(c.Generator.Timeout); err != nil {
			return fmt.Errorf("generator.timeout: %w", err)
		}
	}
	for _, year := range c.Generator.Years {
		if year < 1 || year > 9999 {
			return fmt.Errorf("generator.years contains invalid year %d", year)
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}

	return nil
}

// GetTimeout returns the generator HTTP timeout
func (c *GeneratorConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// GetYears returns the configured years, defaulting to 2010 through 2040.
func (c *GeneratorConfig) GetYears() []int {
	if len(c.Years) > 0 {
		return c.Years
	}
	years := make([]int, 0, 31)
	for y := 2010; y <= 2040; y++ {
		years = append(years, y)
	}
	return years
}

// GetReadTimeout returns the HTTP server read timeout
func (c *ServerConfig) GetReadTimeout() time.Duration {
	if c.ReadTimeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Generator.ServiceKey = os.ExpandEnv(c.Generator.ServiceKey)
	c.Dataset.Dir = os.ExpandEnv(c.Dataset.Dir)
	c.Generator.OutputDir = os.ExpandEnv(c.Generator.OutputDir)
}
