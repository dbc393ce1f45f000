/*
 * @module service/init
 * @description 服务初始化模块，负责锁后端、目录存储、审计发布与各领域服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/backend_requirements.md
 * @stateFlow 应用启动 -> 创建数据目录 -> 锁后端 -> 目录存储 -> 审计 -> 领域服务 -> 调度器
 * @rules 确保所有依赖服务正常创建后才提供API服务；可选组件(Kafka、调度)未配置时跳过
 * @dependencies datastandard-service/service/config
 * @refs main.go, api/routes.go
 */

package service

import (
	"fmt"
	"log/slog"
	"os"

	"datastandard-service/client"
	"datastandard-service/client/connectors"
	"datastandard-service/service/alignment"
	"datastandard-service/service/catalog"
	"datastandard-service/service/catalog_store"
	"datastandard-service/service/catalog_sync"
	"datastandard-service/service/config"
	"datastandard-service/service/distributed_lock"
	"datastandard-service/service/history"
	"datastandard-service/service/relation"
	"datastandard-service/service/scheduler"
	"datastandard-service/service/term_validation"
	"datastandard-service/service/validation_report"
)

// Services 已装配的服务集合
type Services struct {
	Config         *config.AppConfig
	Store          *catalog_store.Store
	History        *history.Service
	Catalogs       *catalog.Catalogs
	TermValidation *term_validation.Service
	CatalogSync    *catalog_sync.Service
	Relation       *relation.Service
	Orchestrator   *alignment.Orchestrator
	ReportBuilder  *validation_report.Builder
	Scheduler      *scheduler.SchedulerService

	kafka     *connectors.KafkaConnector
	redisLock *distributed_lock.RedisLock
}

// InitServices 按配置装配全部服务
func InitServices(cfg *config.AppConfig) (*Services, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	s := &Services{Config: cfg}

	lock, err := s.initLock(cfg)
	if err != nil {
		return nil, err
	}
	locker := distributed_lock.NewLockExecutor(lock, distributed_lock.LockOptions{
		TTL:           cfg.Lock.StaleAfter,
		Timeout:       cfg.Lock.Timeout,
		RetryInterval: cfg.Lock.RetryInterval,
	})
	s.Store = catalog_store.NewStore(cfg.DataDir, catalog_store.NewCatalogCache(), locker)

	var publisher history.Publisher
	if cfg.Kafka.Enabled() {
		s.kafka = connectors.NewKafkaConnector(cfg.Kafka)
		publisher = s.kafka
		slog.Info("审计事件发布已启用", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.HistoryTopic)
	}
	s.History = history.NewService(s.Store, cfg.HistoryMaxLogs, publisher)

	s.Catalogs = catalog.NewCatalogs(s.Store, s.History)
	s.TermValidation = term_validation.NewService(s.Store)
	s.CatalogSync = catalog_sync.NewService(s.Store, s.History)
	s.Relation = relation.NewService(s.Store, s.History)

	apiClient := client.NewCatalogAPIClient(cfg.InternalAPIBaseURL, cfg.InternalAPITimeout)
	s.Orchestrator = alignment.NewOrchestrator(apiClient)
	s.ReportBuilder = validation_report.NewBuilder(apiClient)
	s.Scheduler = scheduler.NewSchedulerService(s.Orchestrator, cfg.AlignmentCron, cfg.AlignmentCronApply, cfg.InternalAPITimeout*5)

	slog.Info("服务初始化完成",
		"data_dir", cfg.DataDir,
		"lock_backend", cfg.Lock.Backend,
		"internal_api", cfg.InternalAPIBaseURL)
	return s, nil
}

func (s *Services) initLock(cfg *config.AppConfig) (distributed_lock.DistributedLock, error) {
	switch cfg.Lock.Backend {
	case "redis":
		lock, err := distributed_lock.NewRedisLock(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("初始化Redis锁失败: %w", err)
		}
		s.redisLock = lock
		return lock, nil
	case "", "file":
		return distributed_lock.NewFileLock(cfg.Lock.StaleAfter), nil
	}
	return nil, fmt.Errorf("不支持的锁后端: %s", cfg.Lock.Backend)
}

// Close 释放外部连接并停止调度器
func (s *Services) Close() {
	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}
	if s.kafka != nil {
		if err := s.kafka.Close(); err != nil {
			slog.Warn("关闭Kafka连接失败", "error", err)
		}
	}
	if s.redisLock != nil {
		if err := s.redisLock.Close(); err != nil {
			slog.Warn("关闭Redis连接失败", "error", err)
		}
	}
}
