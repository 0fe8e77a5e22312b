package config

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

// Keys are lower-cased environment variable names
const (
	stageKey = "stage"

	dbHostKey     = "db_host"
	dbPortKey     = "db_port"
	dbUsernameKey = "db_username"
	dbPasswdKey   = "db_passwd"
	dbNameKey     = "db_name"
	dbDriverKey   = "db_driver"

	redisHostKey = "redis_host"
	redisPortKey = "redis_port"
	redisDBKey   = "redis_db"

	serverHostKey   = "server_host"
	serverPortKey   = "server_port"
	logFormatKey    = "log_format"
	rateLimitMaxKey = "rate_limit_max"

	authTokenSecretKey = "auth_token_secret"
	authTokenTTLKey    = "auth_token_ttl_minutes"

	sentryDSNKey         = "sentry_dsn"
	sentryEnvironmentKey = "sentry_environment"
)

// Defaults applied when a variable is absent
const (
	DefaultStorageHost = "localhost"
	DefaultStoragePort = 3306
	DefaultCacheHost   = "localhost"
	DefaultCachePort   = 6627
	DefaultCacheDB     = 0

	DefaultTokenTTLMinutes = 60
)

// Load reads configuration from environment variables and an optional config file.
// Values are read once; the returned Config is not refreshed.
func Load() (*Config, error) {
	v := newViper()

	var cfg Config
	var err error

	// Storage
	cfg.Storage.Host = v.GetString(dbHostKey)
	if cfg.Storage.Port, err = getInt(v, dbPortKey, DefaultStoragePort); err != nil {
		return nil, err
	}
	cfg.Storage.Username = v.GetString(dbUsernameKey)
	cfg.Storage.Password = v.GetString(dbPasswdKey)
	cfg.Storage.Database = v.GetString(dbNameKey)
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(v.GetString(dbDriverKey)))
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverMySQL
	}

	// Cache
	cfg.Cache.Host = v.GetString(redisHostKey)
	if cfg.Cache.Port, err = getInt(v, redisPortKey, DefaultCachePort); err != nil {
		return nil, err
	}
	if cfg.Cache.DB, err = getInt(v, redisDBKey, DefaultCacheDB); err != nil {
		return nil, err
	}

	// Server
	cfg.Server.Host = v.GetString(serverHostKey)
	if cfg.Server.Port, err = getInt(v, serverPortKey, 8080); err != nil {
		return nil, err
	}

	// Logging
	cfg.Log.Format = v.GetString(logFormatKey)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	// Rate limiting
	if cfg.RateLimit.Max, err = getInt(v, rateLimitMaxKey, 100); err != nil {
		return nil, err
	}

	// Auth
	cfg.Auth.Secret = v.GetString(authTokenSecretKey)
	ttl, err := getInt(v, authTokenTTLKey, DefaultTokenTTLMinutes)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, apperrors.InvalidEnvironmentValue(strings.ToUpper(authTokenTTLKey), strconv.Itoa(ttl))
	}
	cfg.Auth.TokenTTL = time.Duration(ttl) * time.Minute

	// Error reporting
	cfg.Sentry.DSN = strings.TrimSpace(v.GetString(sentryDSNKey))
	cfg.Sentry.Environment = v.GetString(sentryEnvironmentKey)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mayday")

	// Ignore error if config file not found
	_ = v.ReadInConfig()

	return v
}

func setDefaults(v *viper.Viper) {
	// Storage defaults
	v.SetDefault(dbHostKey, DefaultStorageHost)
	v.SetDefault(dbPortKey, DefaultStoragePort)
	v.SetDefault(dbDriverKey, DriverMySQL)

	// Cache defaults
	v.SetDefault(redisHostKey, DefaultCacheHost)
	v.SetDefault(redisPortKey, DefaultCachePort)
	v.SetDefault(redisDBKey, DefaultCacheDB)

	// Server defaults
	v.SetDefault(serverHostKey, "0.0.0.0")
	v.SetDefault(serverPortKey, 8080)

	// Logging defaults
	v.SetDefault(logFormatKey, "json")

	v.SetDefault(rateLimitMaxKey, 100)

	v.SetDefault(authTokenTTLKey, DefaultTokenTTLMinutes)
}

// decimalPattern matches base-10 integers only. Leading zeros stay decimal.
var decimalPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// getInt returns def for an empty value and fails on anything that is not a decimal integer
func getInt(v *viper.Viper, key string, def int) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def, nil
	}
	if !decimalPattern.MatchString(raw) {
		return 0, apperrors.InvalidEnvironmentValue(strings.ToUpper(key), raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidEnvironmentValue(strings.ToUpper(key), raw)
	}
	return n, nil
}

func validate(cfg *Config) error {
	switch cfg.Storage.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		return apperrors.InvalidEnvironmentValue(strings.ToUpper(dbDriverKey), cfg.Storage.Driver)
	}
	switch cfg.Log.Format {
	case "json", "console":
	default:
		return apperrors.InvalidEnvironmentValue(strings.ToUpper(logFormatKey), cfg.Log.Format)
	}
	return nil
}
