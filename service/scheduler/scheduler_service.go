/**
 * @module SchedulerService
 * @description 对齐任务调度器，按 Cron 表达式定时执行对齐流程（默认预览模式）
 * @architecture 基于 robfig/cron 的调度器模式
 * @documentReference ../ai_docs/alignment.md
 * @stateFlow Start -> 注册 Cron 任务 -> 定时执行对齐 -> 记录汇总或失败步骤 -> Stop
 * @rules 表达式为空时不启动；上一次运行未结束时跳过本次触发
 * @dependencies github.com/robfig/cron/v3
 * @refs ../alignment/orchestrator.go
 */

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"datastandard-service/service/alignment"
)

// AlignmentRunner 对齐流程执行能力
type AlignmentRunner interface {
	Run(ctx context.Context, files alignment.Files, apply bool) (*alignment.Result, error)
}

// SchedulerService 调度器服务
type SchedulerService struct {
	runner     AlignmentRunner
	expression string
	apply      bool
	timeout    time.Duration
	parser     cron.Parser
	schedule   cron.Schedule
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc

	mu      sync.Mutex
	lastRun *RunRecord
}

// RunRecord 最近一次调度运行
type RunRecord struct {
	StartedAt  time.Time              `json:"startedAt"`
	FinishedAt time.Time              `json:"finishedAt"`
	Mode       string                 `json:"mode"`
	Success    bool                   `json:"success"`
	FailedStep string                 `json:"failedStep,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Summary    map[string]interface{} `json:"summary,omitempty"`
}

// NewSchedulerService 创建调度器服务
func NewSchedulerService(runner AlignmentRunner, expression string, apply bool, timeout time.Duration) *SchedulerService {
	ctx, cancel := context.WithCancel(context.Background())

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &SchedulerService{
		runner:     runner,
		expression: expression,
		apply:      apply,
		timeout:    timeout,
		parser:     parser,
		cron:       c,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Enabled 是否配置了调度表达式
func (s *SchedulerService) Enabled() bool {
	return s.expression != ""
}

// Start 启动调度器
func (s *SchedulerService) Start() error {
	if !s.Enabled() {
		slog.Info("未配置对齐调度表达式，跳过调度器启动")
		return nil
	}

	schedule, err := s.parser.Parse(s.expression)
	if err != nil {
		return fmt.Errorf("解析对齐Cron表达式失败: %w", err)
	}
	s.schedule = schedule
	s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.RunOnce()
	}))
	s.cron.Start()

	slog.Info("对齐调度器启动完成", "expression", s.expression, "apply", s.apply)
	return nil
}

// Stop 停止调度器，等待正在执行的任务结束
func (s *SchedulerService) Stop() {
	s.cancel()
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	slog.Info("对齐调度器已停止")
}

// NextRun 下一次触发时间
func (s *SchedulerService) NextRun() time.Time {
	if s.schedule == nil {
		return time.Time{}
	}
	return s.schedule.Next(time.Now())
}

// LastRun 最近一次运行记录
func (s *SchedulerService) LastRun() *RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// RunOnce 执行一次对齐流程
func (s *SchedulerService) RunOnce() *RunRecord {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	record := &RunRecord{StartedAt: time.Now(), Mode: alignment.ModePreview}
	if s.apply {
		record.Mode = alignment.ModeApply
	}

	result, err := s.runner.Run(ctx, alignment.Files{}, s.apply)
	record.FinishedAt = time.Now()
	if err != nil {
		record.Error = err.Error()
		var failure *alignment.StepFailure
		if errors.As(err, &failure) {
			record.FailedStep = failure.FailedStep
		}
		slog.Error("定时对齐失败",
			"mode", record.Mode,
			"failed_step", record.FailedStep,
			"error", err)
	} else {
		record.Success = true
		record.Summary = result.Summary
		slog.Info("定时对齐完成",
			"mode", record.Mode,
			"duration", record.FinishedAt.Sub(record.StartedAt).String(),
			"summary", result.Summary)
	}

	s.mu.Lock()
	s.lastRun = record
	s.mu.Unlock()
	return record
}

// ScheduleStatus 调度器状态
type ScheduleStatus struct {
	Enabled    bool       `json:"enabled"`
	Expression string     `json:"expression,omitempty"`
	Apply      bool       `json:"apply"`
	NextRun    *time.Time `json:"nextRun,omitempty"`
	LastRun    *RunRecord `json:"lastRun,omitempty"`
}

// Status 当前调度状态
func (s *SchedulerService) Status() ScheduleStatus {
	status := ScheduleStatus{
		Enabled:    s.Enabled(),
		Expression: s.expression,
		Apply:      s.apply,
		LastRun:    s.LastRun(),
	}
	if next := s.NextRun(); !next.IsZero() {
		status.NextRun = &next
	}
	return status
}
