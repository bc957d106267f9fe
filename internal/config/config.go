package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Report   ReportConfig   `yaml:"report"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	SeedDemo bool           `yaml:"seed_demo_data"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig contains document database settings
type DatabaseConfig struct {
	Mongo MongoConfig `yaml:"mongo"`
}

// MongoConfig contains MongoDB connection settings
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	APIKey  string `yaml:"api_key"`
}

// ReportConfig contains the scheduled report pipeline settings
type ReportConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalMinutes int  `yaml:"interval_minutes"`
}

// AuthConfig contains authentication settings. AdminEmails is the full
// allowlist; admin status is decided here and nowhere else.
type AuthConfig struct {
	JWTSecret     string   `yaml:"jwt_secret"`
	TokenTTLHours int      `yaml:"token_ttl_hours"`
	AdminEmails   []string `yaml:"admin_emails"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8084",
			CORSOrigins: []string{"http://localhost:5176"},
		},
		Database: DatabaseConfig{
			Mongo: MongoConfig{
				URI:      "mongodb://localhost:27017",
				Database: "property_expert",
			},
		},
		Search: SearchConfig{
			Meilisearch: MeilisearchConfig{
				Enabled: false,
				Host:    "http://meilisearch:7700",
				APIKey:  "masterKey123",
			},
		},
		Report: ReportConfig{
			Enabled:         true,
			IntervalMinutes: 30,
		},
		Auth: AuthConfig{
			TokenTTLHours: 24,
			AdminEmails:   []string{"admin@gmail.com"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		SeedDemo: true,
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// TokenTTL returns the JWT lifetime as a duration
func (c *AuthConfig) TokenTTL() time.Duration {
	hours := c.TokenTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// IsAdminEmail checks the email against the configured allowlist
func (c *AuthConfig) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}
