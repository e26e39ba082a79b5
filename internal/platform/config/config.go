// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultTransportIdleConnTimeout is the default idle connection timeout.
	DefaultTransportIdleConnTimeout = 90 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	S4HANA    S4HANAConfig    `koanf:"s4hana"    validate:"required"`
	Database  DatabaseConfig  `koanf:"database"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for downstream services.
type ClientConfig struct {
	Timeout   time.Duration   `koanf:"timeout"   validate:"required,min=100ms"`
	Transport TransportConfig `koanf:"transport" validate:"required"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"         validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"      validate:"required,min=1s"`
}

// S4HANAConfig contains everything needed to reach and fill the ERP:
// the OData destination, the organizational defaults applied to built
// payloads, and the identifier translation tables.
type S4HANAConfig struct {
	Destination DestinationConfig   `koanf:"destination" validate:"required"`
	Defaults    SalesDefaultsConfig `koanf:"defaults"`

	// CustomerMap translates extraction receiver IDs to ERP customer
	// numbers. Unmapped IDs pass through unchanged.
	CustomerMap map[string]string `koanf:"customer_map"`

	// MaterialMap translates extraction material numbers to ERP
	// material numbers. Unmapped IDs pass through unchanged.
	MaterialMap map[string]string `koanf:"material_map"`
}

// DestinationConfig identifies the ERP OData endpoint and its
// basic-auth credentials.
type DestinationConfig struct {
	BaseURL  string `koanf:"base_url" validate:"required,url"`
	Name     string `koanf:"name"     validate:"required"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// SalesDefaultsConfig contains organizational defaults applied when
// the extraction carries no value. Empty fields fall back to the
// built-in defaults.
type SalesDefaultsConfig struct {
	OrderType    string `koanf:"order_type"`
	SalesOrg     string `koanf:"sales_org"`
	DistChannel  string `koanf:"dist_channel"`
	Division     string `koanf:"division"`
	PaymentTerms string `koanf:"payment_terms"`
	Plant        string `koanf:"plant"`
	Currency     string `koanf:"currency"`
	City         string `koanf:"city"`
	QuantityUnit string `koanf:"quantity_unit"`
}

// DatabaseConfig contains purchase order persistence settings. When
// disabled the purchase order endpoint reports unavailable.
type DatabaseConfig struct {
	Enabled bool   `koanf:"enabled"`
	DSN     string `koanf:"dsn" validate:"required_if=Enabled true"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "jumbo-ocr-adapter",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "120s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "jumbo-ocr-adapter",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "60s",
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"s4hana.destination.base_url": "http://localhost:4004",
		"s4hana.destination.name":     "S4HANA",
		"s4hana.destination.username": "",
		"s4hana.destination.password": "",

		"database.enabled": false,
		"database.dsn":     "",
	}
}

// envOverrides maps flat deployment environment variables onto config
// keys. These are the names the surrounding platform already sets, so
// they take precedence over the generic APP_ mapping.
var envOverrides = map[string]string{
	"PORT":            "server.port",
	"S4HANA_URL":      "s4hana.destination.base_url",
	"S4HANA_USERNAME": "s4hana.destination.username",
	"S4HANA_PASSWORD": "s4hana.destination.password",
	"DATABASE_URL":    "database.dsn",

	"S4HANA_SO_TYPE":       "s4hana.defaults.order_type",
	"S4HANA_SALES_ORG":     "s4hana.defaults.sales_org",
	"S4HANA_DIST_CHANNEL":  "s4hana.defaults.dist_channel",
	"S4HANA_DIVISION":      "s4hana.defaults.division",
	"S4HANA_PAYMENT_TERMS": "s4hana.defaults.payment_terms",
	"S4HANA_PLANT":         "s4hana.defaults.plant",
	"S4HANA_CURRENCY":      "s4hana.defaults.currency",
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Well-known deployment environment variables (PORT, S4HANA_*, DATABASE_URL)
//  2. Environment variables (APP_ prefix)
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "APP_")),
			"_",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// 5. Load well-known deployment variables
	err = k.Load(confmap.Provider(deploymentEnv(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading deployment env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// deploymentEnv collects the set deployment variables as config keys.
// PORT is coerced to an integer; a non-numeric value is ignored.
func deploymentEnv() map[string]any {
	overrides := make(map[string]any)

	for name, key := range envOverrides {
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			continue
		}

		if key == "server.port" {
			port, err := strconv.Atoi(value)
			if err != nil {
				continue
			}

			overrides[key] = port

			continue
		}

		overrides[key] = value
	}

	if _, ok := os.LookupEnv("DATABASE_URL"); ok {
		overrides["database.enabled"] = true
	}

	return overrides
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
