/*
 * @module service/config/app_config
 * @description 应用配置，统一从环境变量加载并提供默认值
 * @architecture 分层架构 - 配置层
 * @documentReference ai_docs/backend_requirements.md
 * @stateFlow 进程启动 -> 读取环境变量 -> 类型转换 -> 配置对象
 * @rules 所有配置都有默认值；非法值回退到默认值并记录警告
 * @dependencies github.com/spf13/cast
 * @refs main.go
 */

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// AppConfig 应用配置
type AppConfig struct {
	Port        int
	BaseContext string
	DataDir     string
	LogLevel    string

	InternalAPIBaseURL string
	InternalAPITimeout time.Duration

	Lock  LockConfig
	Redis RedisConfig
	Kafka KafkaConfig

	AlignmentCron      string
	AlignmentCronApply bool

	HistoryMaxLogs int
}

// LockConfig 文件锁配置
type LockConfig struct {
	Backend       string // file | redis
	Timeout       time.Duration
	StaleAfter    time.Duration
	RetryInterval time.Duration
}

// RedisConfig Redis连接配置（分布式锁）
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr Redis地址
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// KafkaConfig 审计事件发布配置
type KafkaConfig struct {
	Brokers      []string
	HistoryTopic string
}

// Enabled 是否配置了Kafka
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// Load 从环境变量加载配置
func Load() *AppConfig {
	cfg := &AppConfig{
		Port:        getInt("LISTEN_PORT", 80),
		BaseContext: os.Getenv("BASE_CONTEXT"),
		DataDir:     getEnvWithDefault("DATA_DIR", "static/data"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		InternalAPITimeout: getDuration("INTERNAL_API_TIMEOUT", 30*time.Second),

		Lock: LockConfig{
			Backend:       strings.ToLower(getEnvWithDefault("LOCK_BACKEND", "file")),
			Timeout:       getDuration("LOCK_TIMEOUT", 10*time.Second),
			StaleAfter:    getDuration("LOCK_STALE_AFTER", 30*time.Second),
			RetryInterval: getDuration("LOCK_RETRY_INTERVAL", 50*time.Millisecond),
		},
		Redis: RedisConfig{
			Host:     getEnvWithDefault("REDIS_HOST", "localhost"),
			Port:     getEnvWithDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(os.Getenv("KAFKA_BROKERS")),
			HistoryTopic: getEnvWithDefault("KAFKA_HISTORY_TOPIC", "catalog-history"),
		},

		AlignmentCron:      os.Getenv("ALIGNMENT_CRON"),
		AlignmentCronApply: cast.ToBool(os.Getenv("ALIGNMENT_CRON_APPLY")),

		HistoryMaxLogs: getInt("HISTORY_MAX_LOGS", 1000),
	}

	cfg.InternalAPIBaseURL = getEnvWithDefault("INTERNAL_API_BASE_URL",
		fmt.Sprintf("http://127.0.0.1:%d%s", cfg.Port, cfg.BaseContext))

	return cfg
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := cast.ToIntE(raw)
	if err != nil {
		slog.Warn("配置值无效，使用默认值", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := cast.ToDurationE(raw)
	if err != nil || value <= 0 {
		slog.Warn("配置值无效，使用默认值", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
