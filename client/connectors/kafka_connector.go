/*
 * @module client/connectors/kafka_connector
 * @description Kafka连接器，把目录审计日志作为变更事件发布到 Kafka
 * @architecture 适配器模式 - 封装第三方Kafka客户端
 * @documentReference ai_docs/history_events.md
 * @stateFlow 创建生产者 -> 发布事件 -> 关闭
 * @rules 事件键为目录类型/文件名，值为审计日志 JSON
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/history/service.go
 */
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"datastandard-service/service/config"
	"datastandard-service/service/models"

	"github.com/segmentio/kafka-go"
)

// MessageWriter kafka.Writer 的最小接口，便于测试替换
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConnector 审计事件生产者
type KafkaConnector struct {
	writer  MessageWriter
	topic   string
	timeout time.Duration
}

// NewKafkaConnector 根据配置创建生产者
func NewKafkaConnector(cfg config.KafkaConfig) *KafkaConnector {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.HistoryTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	slog.Info("Kafka审计事件生产者已创建", "brokers", cfg.Brokers, "topic", cfg.HistoryTopic)
	return NewKafkaConnectorWithWriter(writer, cfg.HistoryTopic)
}

// NewKafkaConnectorWithWriter 使用指定 writer 创建生产者
func NewKafkaConnectorWithWriter(writer MessageWriter, topic string) *KafkaConnector {
	return &KafkaConnector{writer: writer, topic: topic, timeout: 5 * time.Second}
}

// Publish 发布一条审计日志
func (kc *KafkaConnector) Publish(ctx context.Context, log models.HistoryLog) error {
	value, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("序列化审计事件失败: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(log.CatalogType + "/" + log.Filename),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(log.Action)},
			{Key: "catalogType", Value: []byte(log.CatalogType)},
		},
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), kc.timeout)
	defer cancel()
	if err := kc.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("发送审计事件失败: %w", err)
	}
	return nil
}

// Close 关闭生产者
func (kc *KafkaConnector) Close() error {
	return kc.writer.Close()
}
