package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Sentry    SentryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Storage drivers usable outside the TEST stage
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// StorageConfig holds the SQL storage connection settings.
// Username, Password and Database are empty when unset.
type StorageConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	Driver   string `mapstructure:"driver"`
}

// Addr returns host:port of the storage server
func (c StorageConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// String never includes the password
func (c StorageConfig) String() string {
	return fmt.Sprintf("%s://%s@%s/%s", c.Driver, c.Username, c.Addr(), c.Database)
}

// CacheConfig holds Redis connection settings
type CacheConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	DB   int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c CacheConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogConfig holds logging configuration
type LogConfig struct {
	Format string `mapstructure:"format"`
}

// RateLimitConfig holds rate limiting configuration.
// A Max of zero disables the limiter.
type RateLimitConfig struct {
	Max int `mapstructure:"max"`
}

// AuthConfig holds access token settings.
// An empty Secret makes the server sign with a per-process random key.
type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// SentryConfig holds error reporting settings. Reporting is off without a DSN.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}
