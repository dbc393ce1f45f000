/*
 * @module service/distributed_lock/lock
 * @description 锁管理器接口与带锁执行器，目录文件写入通过它获得按路径的互斥
 * @architecture 工具层 - 提供可替换的锁能力（文件哨兵锁 / Redis 锁）
 * @documentReference ai_docs/distributed_lock_design.md
 * @stateFlow 获取锁(有界重试+退避) -> 执行写入 -> 释放锁
 * @rules 超过硬超时返回 ErrLockTimeout；请求取消不会中断已开始的写入
 * @dependencies github.com/cenkalti/backoff/v4
 * @refs service/catalog_store/store.go
 */

package distributed_lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"datastandard-service/service/metrics"
)

// ErrLockTimeout 在硬超时内未能获得锁
var ErrLockTimeout = errors.New("lock acquisition timed out")

var errLockBusy = errors.New("lock busy")

// DistributedLock 分布式锁接口
type DistributedLock interface {
	// TryLock 尝试获取锁，ttl 为锁的有效期（文件锁中作为过期回收阈值）
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Unlock 释放锁，只有持有者可以释放
	Unlock(ctx context.Context, key string) error
	// Refresh 刷新锁的过期时间
	Refresh(ctx context.Context, key string, ttl time.Duration) error
	// IsLocked 检查锁是否存在
	IsLocked(ctx context.Context, key string) (bool, error)
}

// LockOptions 获取锁的重试参数
type LockOptions struct {
	TTL           time.Duration
	Timeout       time.Duration
	RetryInterval time.Duration
	MaxRetries    uint64
}

// DefaultLockOptions 默认锁参数
func DefaultLockOptions() LockOptions {
	return LockOptions{
		TTL:           30 * time.Second,
		Timeout:       10 * time.Second,
		RetryInterval: 50 * time.Millisecond,
		MaxRetries:    200,
	}
}

// LockExecutor 带锁执行器，用于简化锁的使用
type LockExecutor struct {
	lock    DistributedLock
	options LockOptions
}

// NewLockExecutor 创建带锁执行器
func NewLockExecutor(lock DistributedLock, options LockOptions) *LockExecutor {
	defaults := DefaultLockOptions()
	if options.TTL <= 0 {
		options.TTL = defaults.TTL
	}
	if options.Timeout <= 0 {
		options.Timeout = defaults.Timeout
	}
	if options.RetryInterval <= 0 {
		options.RetryInterval = defaults.RetryInterval
	}
	if options.MaxRetries == 0 {
		options.MaxRetries = defaults.MaxRetries
	}
	return &LockExecutor{lock: lock, options: options}
}

// ExecuteWithLock 在锁保护下执行函数
// 获取锁失败会按指数退避重试，直到超时；超时视为致命错误
func (e *LockExecutor) ExecuteWithLock(ctx context.Context, key string, fn func() error) error {
	// 写入一旦开始不随请求取消而中断
	lockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.options.Timeout)
	defer cancel()

	start := time.Now()
	if err := e.acquire(lockCtx, key); err != nil {
		return err
	}
	metrics.LockWaitSeconds.Observe(time.Since(start).Seconds())

	defer func() {
		if unlockErr := e.lock.Unlock(context.WithoutCancel(ctx), key); unlockErr != nil {
			slog.Error("分布式锁: 释放锁失败", "key", key, "error", unlockErr)
		}
	}()

	return fn()
}

func (e *LockExecutor) acquire(ctx context.Context, key string) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = e.options.RetryInterval
	policy.MaxInterval = e.options.RetryInterval * 10
	policy.MaxElapsedTime = 0

	operation := func() error {
		locked, err := e.lock.TryLock(ctx, key, e.options.TTL)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !locked {
			return errLockBusy
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, e.options.MaxRetries), ctx))
	if err == nil {
		return nil
	}
	if errors.Is(err, errLockBusy) || errors.Is(err, context.DeadlineExceeded) {
		slog.Error("分布式锁: 获取锁超时", "key", key, "timeout", e.options.Timeout)
		return fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}
	return fmt.Errorf("获取锁失败: %w", err)
}
