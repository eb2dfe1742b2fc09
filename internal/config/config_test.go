package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.AppHost)
	assert.Equal(t, "8097", cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.Elasticsearch.Host)
	assert.Equal(t, "9200", cfg.Elasticsearch.Port)
	assert.Equal(t, "docstore-service", cfg.KafkaGroupID)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ELASTICSEARCH_HOST", "es.internal")
	t.Setenv("ELASTICSEARCH_PORT", "9201")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_TOPICS", "docstore.document.events")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "es.internal", cfg.Elasticsearch.Host)
	assert.Equal(t, "9201", cfg.Elasticsearch.Port)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"docstore.document.events"}, cfg.KafkaTopics)
}

func TestHTTPPortFallback(t *testing.T) {
	t.Setenv("HTTP_PORT", "8123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8123", cfg.HTTPPort)
}
