package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Store struct {
		// Backend selects the key-value store implementation: memory or redis.
		Backend   string `yaml:"backend" env:"STORE_BACKEND"`
		RedisAddr string `yaml:"redis_addr" env:"STORE_REDIS_ADDR"`
		RedisPass string `yaml:"redis_password" env:"STORE_REDIS_PASSWORD"`
		RedisDB   int    `yaml:"redis_db" env:"STORE_REDIS_DB"`
		KeyPrefix string `yaml:"key_prefix" env:"STORE_KEY_PREFIX"`
	} `yaml:"store"`

	Provider struct {
		// BaseURL of the remote session provider. Empty disables the remote
		// path entirely and every auth operation uses the local fallback.
		BaseURL string `yaml:"base_url" env:"PROVIDER_BASE_URL"`
		APIKey  string `yaml:"api_key" env:"PROVIDER_API_KEY"`
		Timeout string `yaml:"timeout" env:"PROVIDER_TIMEOUT"`
	} `yaml:"provider"`

	Auth struct {
		// StudentEmailDomain is the required email suffix for student
		// registrations (deployments differ on the canonical domain).
		StudentEmailDomain string `yaml:"student_email_domain" env:"AUTH_STUDENT_EMAIL_DOMAIN"`
	} `yaml:"auth"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Mock struct {
		// Delay is the simulated latency of the mock services.
		Delay string `yaml:"delay" env:"MOCK_DELAY"`
		// Seed enables demo data seeding on startup.
		Seed bool `yaml:"seed" env:"MOCK_SEED"`
	} `yaml:"mock"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A .env file is optional; ignore its absence
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Store.Backend = "memory"
	config.Store.RedisAddr = "localhost:6379"
	config.Store.KeyPrefix = "unihire"

	config.Provider.Timeout = "10s"

	config.Auth.StudentEmailDomain = "@college.edu"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "unihire.app"

	config.Mock.Delay = "800ms"
	config.Mock.Seed = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Store.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}

	if config.Store.Backend == "redis" && config.Store.RedisAddr == "" {
		return fmt.Errorf("redis address is required for the redis store backend")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Provider.Timeout != "" {
		if _, err := time.ParseDuration(config.Provider.Timeout); err != nil {
			return fmt.Errorf("invalid provider timeout format: %w", err)
		}
	}

	if config.Mock.Delay != "" {
		if _, err := time.ParseDuration(config.Mock.Delay); err != nil {
			return fmt.Errorf("invalid mock delay format: %w", err)
		}
	}

	return nil
}

// AccessTokenExp returns the parsed access token lifetime.
func (c *Config) AccessTokenExp() time.Duration {
	return parseDurationOr(c.JWT.AccessTokenExpiration, time.Hour)
}

// ProviderTimeout returns the parsed remote provider request timeout.
func (c *Config) ProviderTimeout() time.Duration {
	return parseDurationOr(c.Provider.Timeout, 10*time.Second)
}

// MockDelay returns the parsed simulated latency of the mock services.
func (c *Config) MockDelay() time.Duration {
	return parseDurationOr(c.Mock.Delay, 0)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
