package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnvs is a helper that sets multiple env vars for the duration of the test.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8007, cfg.HTTPPort)
	assert.Equal(t, "address_db", cfg.PostgresDB)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.OTELEnabled)
	assert.Equal(t, 1.0, cfg.OTELSampleRate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":       "production",
		"LOG_LEVEL":         "warn",
		"ADDRESS_HTTP_PORT": "9100",
		"POSTGRES_HOST":     "db.internal",
		"ADDRESS_DB_NAME":   "addresses",
		"KAFKA_BROKERS":     "kafka-1:9092,kafka-2:9092",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.PostgresHost)
	assert.Equal(t, "addresses", cfg.PostgresDB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidPort(t *testing.T) {
	setEnvs(t, map[string]string{
		"ADDRESS_HTTP_PORT": "70000",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSampleRate(t *testing.T) {
	setEnvs(t, map[string]string{
		"OTEL_SAMPLE_RATE": "1.5",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid OTEL sample rate")
}

func TestPostgresConfig_MapsFields(t *testing.T) {
	setEnvs(t, map[string]string{
		"POSTGRES_HOST":                "db.internal",
		"POSTGRES_PORT":                "5433",
		"DB_MAX_CONNS":                 "50",
		"DB_MAX_CONN_LIFETIME_MINUTES": "90",
	})

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.PostgresConfig()
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, 5433, pg.Port)
	assert.Equal(t, int32(50), pg.MaxConns)
	assert.Equal(t, 90*time.Minute, pg.MaxConnLifetime)
}

func TestTracingConfig_MapsFields(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":                 "staging",
		"OTEL_ENABLED":                "true",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "collector:4318",
		"OTEL_SAMPLE_RATE":            "0.25",
	})

	cfg, err := Load()
	require.NoError(t, err)

	tc := cfg.TracingConfig()
	assert.Equal(t, "address-service", tc.ServiceName)
	assert.Equal(t, "staging", tc.Environment)
	assert.Equal(t, "collector:4318", tc.OTLPEndpoint)
	assert.Equal(t, 0.25, tc.SampleRate)
	assert.True(t, tc.Enabled)
}
