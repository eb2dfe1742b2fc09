package config

import (
	"errors"
	"os"
	"strings"
)

type Config struct {
	AppHost  string
	HTTPPort string
	LogLevel string

	Elasticsearch struct {
		Host string
		Port string
	}

	KafkaBrokers []string
	KafkaTopics  []string
	KafkaGroupID string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppHost:  getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort: firstEnv("APP_PORT", "HTTP_PORT", "8097"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	cfg.Elasticsearch.Host = getEnv("ELASTICSEARCH_HOST", "localhost")
	cfg.Elasticsearch.Port = getEnv("ELASTICSEARCH_PORT", "9200")
	cfg.KafkaBrokers = splitEnv("KAFKA_BROKERS")
	cfg.KafkaTopics = splitEnv("KAFKA_TOPICS")
	cfg.KafkaGroupID = getEnv("KAFKA_GROUP_ID", "docstore-service")
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Elasticsearch.Host == "" {
		return errors.New("config: ELASTICSEARCH_HOST is required")
	}
	if c.Elasticsearch.Port == "" {
		return errors.New("config: ELASTICSEARCH_PORT is required")
	}
	return nil
}

func (c *Config) AppEnv() string {
	return getEnv("APP_ENV", "development")
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	keys := keysAndDef[:len(keysAndDef)-1]
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitEnv reads a comma-separated list, dropping empty items.
func splitEnv(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
