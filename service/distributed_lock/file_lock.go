package distributed_lock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// FileLock 基于哨兵文件的咨询锁：<key>.lock 中记录持有者和获取时间
type FileLock struct {
	ownerID    string
	staleAfter time.Duration
}

type fileLockRecord struct {
	OwnerID    string    `json:"ownerId"`
	AcquiredAt time.Time `json:"acquiredAt"`
}

// NewFileLock 创建文件锁，staleAfter 为过期锁回收阈值
func NewFileLock(staleAfter time.Duration) *FileLock {
	hostname, _ := os.Hostname()
	return &FileLock{
		ownerID:    fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), uuid.New().String()),
		staleAfter: staleAfter,
	}
}

// OwnerID 当前进程的锁持有者标识
func (l *FileLock) OwnerID() string {
	return l.ownerID
}

func lockPath(key string) string {
	return key + ".lock"
}

// TryLock 尝试创建哨兵文件；过期的锁会被回收后重试一次
func (l *FileLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	locked, err := l.create(key)
	if err != nil || locked {
		return locked, err
	}

	if !l.isStale(key, ttl) {
		return false, nil
	}
	return l.reclaim(key, ttl)
}

func reclaimPath(key string) string {
	return lockPath(key) + ".reclaim"
}

// reclaim 回收过期锁，同一时间只有持有回收标记的竞争者可以删除锁文件
func (l *FileLock) reclaim(key string, ttl time.Duration) (bool, error) {
	guard, err := os.OpenFile(reclaimPath(key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			l.clearStaleGuard(key, ttl)
			return false, nil
		}
		return false, fmt.Errorf("创建回收标记失败: %w", err)
	}
	guard.Close()
	defer os.Remove(reclaimPath(key))

	// 持有回收标记后重新确认，锁可能已被其他竞争者回收并重新获取
	if !l.isStale(key, ttl) {
		return false, nil
	}

	slog.Warn("文件锁: 回收过期锁", "key", key, "owner", l.ownerID)
	if err := os.Remove(lockPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("回收过期锁失败: %w", err)
	}
	return l.create(key)
}

// clearStaleGuard 回收者崩溃后遗留的标记超过阈值时删除
func (l *FileLock) clearStaleGuard(key string, ttl time.Duration) {
	info, err := os.Stat(reclaimPath(key))
	if err != nil || time.Since(info.ModTime()) <= l.threshold(ttl) {
		return
	}
	if err := os.Remove(reclaimPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("文件锁: 删除过期回收标记失败", "key", key, "error", err)
	}
}

func (l *FileLock) create(key string) (bool, error) {
	f, err := os.OpenFile(lockPath(key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("创建锁文件失败: %w", err)
	}
	defer f.Close()

	record := fileLockRecord{OwnerID: l.ownerID, AcquiredAt: time.Now()}
	if err := json.NewEncoder(f).Encode(record); err != nil {
		return false, fmt.Errorf("写入锁文件失败: %w", err)
	}
	return true, nil
}

func (l *FileLock) threshold(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return l.staleAfter
}

// isStale 锁记录超过阈值或无法解析（且文件本身已超过阈值）视为过期
func (l *FileLock) isStale(key string, ttl time.Duration) bool {
	limit := l.threshold(ttl)
	record, err := readLockRecord(key)
	if err != nil {
		info, statErr := os.Stat(lockPath(key))
		if statErr != nil {
			return errors.Is(statErr, os.ErrNotExist)
		}
		return time.Since(info.ModTime()) > limit
	}
	return time.Since(record.AcquiredAt) > limit
}

func readLockRecord(key string) (*fileLockRecord, error) {
	data, err := os.ReadFile(lockPath(key))
	if err != nil {
		return nil, err
	}
	var record fileLockRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Unlock 只删除自己持有的锁
func (l *FileLock) Unlock(ctx context.Context, key string) error {
	record, err := readLockRecord(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("读取锁文件失败: %w", err)
	}
	if record.OwnerID != l.ownerID {
		slog.Warn("文件锁: 锁已被其他持有者接管", "key", key, "owner", record.OwnerID)
		return nil
	}
	if err := os.Remove(lockPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("释放锁失败: %w", err)
	}
	return nil
}

// Refresh 刷新自己持有的锁的时间戳
func (l *FileLock) Refresh(ctx context.Context, key string, ttl time.Duration) error {
	record, err := readLockRecord(key)
	if err != nil {
		return fmt.Errorf("读取锁文件失败: %w", err)
	}
	if record.OwnerID != l.ownerID {
		return fmt.Errorf("锁不存在或已被其他持有者持有")
	}
	record.AcquiredAt = time.Now()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(lockPath(key), data, 0o644)
}

// IsLocked 锁文件存在且未过期
func (l *FileLock) IsLocked(ctx context.Context, key string) (bool, error) {
	if _, err := os.Stat(lockPath(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !l.isStale(key, 0), nil
}
