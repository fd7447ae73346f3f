package config

import (
	"fmt"
	"time"

	"github.com/utafrali/addressbook/pkg/config"
	"github.com/utafrali/addressbook/pkg/database"
	"github.com/utafrali/addressbook/pkg/tracing"
)

// Config holds all configuration for the address service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"ADDRESS_HTTP_PORT" envDefault:"8007"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"addressbook"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"addressbook_secret"`
	PostgresDB   string `env:"ADDRESS_DB_NAME" envDefault:"address_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Connection pool
	DBMaxConns           int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns           int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMin int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleMin     int   `env:"DB_MAX_CONN_IDLE_MINUTES" envDefault:"30"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("load address config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1 {
		return nil, fmt.Errorf("invalid OTEL sample rate: %g", cfg.OTELSampleRate)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must not be empty")
	}

	return cfg, nil
}

// PostgresConfig builds the connection pool configuration.
func (c *Config) PostgresConfig() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMin) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleMin) * time.Minute,
	}
}

// TracingConfig builds the OpenTelemetry configuration.
func (c *Config) TracingConfig() tracing.Config {
	return tracing.Config{
		ServiceName:    "address-service",
		ServiceVersion: "0.1.0",
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		SampleRate:     c.OTELSampleRate,
		Enabled:        c.OTELEnabled,
	}
}
