package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LISTEN_PORT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()

	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, "static/data", cfg.DataDir)
	assert.Equal(t, "file", cfg.Lock.Backend)
	assert.Equal(t, 10*time.Second, cfg.Lock.Timeout)
	assert.Equal(t, "http://127.0.0.1:80", cfg.InternalAPIBaseURL)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 1000, cfg.HistoryMaxLogs)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_PORT", "8081")
	t.Setenv("BASE_CONTEXT", "/std")
	t.Setenv("LOCK_BACKEND", "REDIS")
	t.Setenv("LOCK_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("ALIGNMENT_CRON_APPLY", "true")
	t.Setenv("HISTORY_MAX_LOGS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "http://127.0.0.1:8081/std", cfg.InternalAPIBaseURL)
	assert.Equal(t, "redis", cfg.Lock.Backend)
	assert.Equal(t, 2*time.Second, cfg.Lock.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.AlignmentCronApply)
	assert.Equal(t, 1000, cfg.HistoryMaxLogs)
}
