package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "CATALOG_DRIVER", "CATALOG_FILE", "CSRF_ENABLED", "STRICT_CHECKOUT", "KAFKA_BROKERS", "ES_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, 3000, cfg.ServerPort)
	require.Equal(t, "json", cfg.CatalogDriver)
	require.Equal(t, "products.json", cfg.CatalogFile)
	require.True(t, cfg.CSRFEnabled)
	require.True(t, cfg.StrictCheckout)
	require.Nil(t, cfg.KafkaBrokers)
	require.Empty(t, cfg.ES_URL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("CATALOG_DRIVER", "SQLite")
	t.Setenv("CSRF_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, kafka2:9092 ,")

	cfg := Load()
	require.Equal(t, 8081, cfg.ServerPort)
	require.Equal(t, "sqlite", cfg.CatalogDriver)
	require.False(t, cfg.CSRFEnabled)
	require.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.KafkaBrokers)
}

func TestEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("POS_TEST_INT", "abc")
	t.Setenv("POS_TEST_BOOL", "maybe")

	require.Equal(t, 7, EnvIntDefault("POS_TEST_INT", 7))
	require.True(t, EnvBoolDefault("POS_TEST_BOOL", true))
}
