/*
 * @module service/history/service
 * @description 目录审计日志服务：每次变更写入 <type>/history.json（最新在前），并可选发布到 Kafka
 * @architecture 分层架构 - 领域服务层
 * @documentReference ai_docs/history_events.md
 * @stateFlow 变更完成 -> 追加日志(加锁) -> 截断到上限 -> 发布事件
 * @rules 审计日志写入或发布失败只记录日志，不影响业务操作结果
 * @dependencies datastandard-service/service/catalog_store
 * @refs client/connectors/kafka_connector.go
 */

package history

import (
	"context"
	"log/slog"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"

	"github.com/google/uuid"
)

// Publisher 审计事件发布者
type Publisher interface {
	Publish(ctx context.Context, log models.HistoryLog) error
}

// Service 审计日志服务
type Service struct {
	store     *catalog_store.Store
	maxLogs   int
	publisher Publisher
}

// NewService 创建审计日志服务，publisher 可为 nil
func NewService(store *catalog_store.Store, maxLogs int, publisher Publisher) *Service {
	if maxLogs <= 0 {
		maxLogs = 1000
	}
	return &Service{store: store, maxLogs: maxLogs, publisher: publisher}
}

// Record 追加一条审计日志
func (s *Service) Record(ctx context.Context, log models.HistoryLog) {
	if s == nil {
		return
	}
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp == "" {
		log.Timestamp = models.Now()
	}

	err := catalog_store.UpdateDocument(ctx, s.store, log.CatalogType, models.HistoryFilename, func(file *models.HistoryFile) (bool, error) {
		logs := make([]models.HistoryLog, 0, len(file.Logs)+1)
		logs = append(logs, log)
		logs = append(logs, file.Logs...)
		if len(logs) > s.maxLogs {
			logs = logs[:s.maxLogs]
		}
		file.Logs = logs
		file.TotalCount = len(logs)
		file.LastUpdated = log.Timestamp
		return true, nil
	})
	if err != nil {
		slog.Error("审计日志写入失败", "catalog", log.CatalogType, "action", log.Action, "error", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, log); err != nil {
			slog.Warn("审计事件发布失败", "catalog", log.CatalogType, "action", log.Action, "error", err)
		}
	}
}

// List 读取最新的审计日志
func (s *Service) List(ctx context.Context, catalogType string, limit int) (*models.HistoryFile, error) {
	file, err := catalog_store.LoadDocument[models.HistoryFile](ctx, s.store, catalogType, models.HistoryFilename)
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = &models.HistoryFile{}
	}
	if file.Logs == nil {
		file.Logs = []models.HistoryLog{}
	}
	if limit > 0 && len(file.Logs) > limit {
		file.Logs = file.Logs[:limit]
	}
	return file, nil
}
