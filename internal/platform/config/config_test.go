package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("missing signing key fails at startup", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "")
		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SIGNING_KEY")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "key")
		t.Setenv("COURSEHUB_ADDR", "")
		t.Setenv("KAFKA_AUDIT_TOPIC", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "coursehub.audit", cfg.Kafka.AuditTopic)
		assert.Empty(t, cfg.DatabaseURL)
		assert.Empty(t, cfg.Redis.URL)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		t.Setenv("JWT_SIGNING_KEY", "key")
		t.Setenv("COURSEHUB_ADDR", ":9090")
		t.Setenv("DATABASE_URL", "postgres://localhost/coursehub")
		t.Setenv("REDIS_URL", "redis://localhost:6379")
		t.Setenv("KAFKA_BROKERS", "localhost:9092")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "postgres://localhost/coursehub", cfg.DatabaseURL)
		assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
		assert.Equal(t, "localhost:9092", cfg.Kafka.Brokers)
	})
}
