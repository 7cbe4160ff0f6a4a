package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvConfig_Defaults(t *testing.T) {
	t.Setenv("TEST_TRANSITS_EPHEMERIS_BASE_URL", "http://ephemeris:8000")

	cfg, err := NewEnvConfig("TEST_TRANSITS")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Ephemeris.IsEnabled())
	assert.Equal(t, 168*time.Hour, cfg.Ephemeris.CacheTTL)
	assert.Equal(t, 3660, cfg.Scan.MaxDays)
	assert.Equal(t, 30, cfg.Scan.WarmDays)

	assert.False(t, cfg.Postgres.IsEnabled())
	assert.False(t, cfg.Redis.IsEnabled())
	assert.False(t, cfg.S3.IsEnabled())
	assert.False(t, cfg.Alerter.IsEnabled())
	assert.Empty(t, cfg.Kafka.List)
}

func TestNewEnvConfig_Kafka(t *testing.T) {
	t.Setenv("TEST_TRANSITS_KAFKA_COUNT", "2")
	t.Setenv("TEST_TRANSITS_KAFKA_0_NAME", "scan_requests")
	t.Setenv("TEST_TRANSITS_KAFKA_0_CONFIG_BROKERS", "kafka:9092")
	t.Setenv("TEST_TRANSITS_KAFKA_0_CONFIG_TOPIC", "transit-scan-requests")
	t.Setenv("TEST_TRANSITS_KAFKA_0_CONFIG_CONSUMER_GROUP", "astro-transits")
	t.Setenv("TEST_TRANSITS_KAFKA_1_NAME", "scan_results")
	t.Setenv("TEST_TRANSITS_KAFKA_1_CONFIG_BROKERS", "kafka:9092")
	t.Setenv("TEST_TRANSITS_KAFKA_1_CONFIG_TOPIC", "transit-scan-results")

	cfg, err := NewEnvConfig("TEST_TRANSITS")
	require.NoError(t, err)
	require.Len(t, cfg.Kafka.List, 2)

	requests, ok := cfg.Kafka.Get("scan_requests")
	require.True(t, ok)
	assert.Equal(t, "astro-transits", requests.ConsumerGroup)

	results, ok := cfg.Kafka.Get("scan_results")
	require.True(t, ok)
	assert.Equal(t, "transit-scan-results", results.Topic)
	assert.Empty(t, results.ConsumerGroup)
}
