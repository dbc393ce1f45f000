/*
 * @module service/metrics/metrics
 * @description Prometheus 指标定义：目录写入、同步更新、对齐运行、校验问题、锁等待
 * @architecture 工具层 - 可观测性
 * @documentReference ai_docs/monitoring_req.md
 * @stateFlow 业务操作 -> 指标累加 -> /metrics 暴露
 * @rules 指标在包初始化时注册到默认注册表
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogWrites 目录文件写入次数
	CatalogWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_store_writes_total",
		Help: "Catalog file writes by catalog type and result.",
	}, []string{"catalog", "result"})

	// SyncUpdates 同步步骤产生的条目更新数
	SyncUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_sync_updates_total",
		Help: "Entries updated by synchronization steps.",
	}, []string{"step"})

	// AlignmentRuns 对齐流程运行次数
	AlignmentRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alignment_runs_total",
		Help: "Alignment pipeline runs by mode and result.",
	}, []string{"mode", "result"})

	// ValidationIssues 最近一次统一校验报告中各级别问题数
	ValidationIssues = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "validation_issues",
		Help: "Issues in the latest unified validation report by level.",
	}, []string{"level"})

	// LockWaitSeconds 获取目录文件锁的等待时间
	LockWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_lock_wait_seconds",
		Help:    "Time spent acquiring catalog file locks.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

// ResultLabel 将错误转换为结果标签
func ResultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
