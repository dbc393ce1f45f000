/*
 * @module service/catalog_store/store
 * @description 目录存储：按目录类型和文件名加载、保存、合并 JSON 目录文件
 * @architecture 分层架构 - 数据访问层
 * @documentReference ai_docs/model.md
 * @stateFlow 读取(缓存 -> 主文件 -> 备份恢复) / 写入(加锁 -> 备份 -> 临时文件 -> 原子重命名 -> 缓存失效)
 * @rules 每个文件的保存是单独的加锁临界区；跨文件一致性是最终一致而非事务性的
 * @dependencies datastandard-service/service/distributed_lock
 * @refs service/catalog/service.go, service/catalog_sync
 */

package catalog_store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"datastandard-service/service/distributed_lock"
	"datastandard-service/service/metrics"
	"datastandard-service/service/models"
)

// Store 目录存储，唯一有状态的组件
type Store struct {
	root   string
	cache  *CatalogCache
	locker *distributed_lock.LockExecutor
}

// NewStore 创建目录存储
func NewStore(root string, cache *CatalogCache, locker *distributed_lock.LockExecutor) *Store {
	if cache == nil {
		cache = NewCatalogCache()
	}
	return &Store{root: root, cache: cache, locker: locker}
}

// Root 数据根目录
func (s *Store) Root() string {
	return s.root
}

// Cache 缓存服务
func (s *Store) Cache() *CatalogCache {
	return s.cache
}

// ValidateFilename 校验目录文件名：*.json，不含路径分隔符
func ValidateFilename(filename string) error {
	name := strings.TrimSpace(filename)
	if name == "" || name != filename ||
		!strings.HasSuffix(strings.ToLower(name), ".json") ||
		strings.ContainsAny(name, `/\`) ||
		strings.HasPrefix(name, ".") ||
		len(name) <= len(".json") {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return nil
}

// Path 解析目录文件路径
func (s *Store) Path(catalogType, filename string) (string, error) {
	if !models.IsCatalogType(catalogType) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCatalog, catalogType)
	}
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	return filepath.Join(s.root, catalogType, filename), nil
}

// Exists 判断目录文件是否存在
func (s *Store) Exists(catalogType, filename string) (bool, error) {
	path, err := s.Path(catalogType, filename)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// readRaw 读取原始字节：缓存优先，主文件损坏时尝试备份
// 文件不存在返回 (nil, false, nil)；recovered 表示内容来自备份
func (s *Store) readRaw(catalogType, filename string) (data []byte, recovered bool, err error) {
	if data, ok := s.cache.Get(catalogType, filename); ok {
		return data, false, nil
	}

	path, err := s.Path(catalogType, filename)
	if err != nil {
		return nil, false, err
	}

	data, err = os.ReadFile(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err == nil && json.Valid(data) {
		s.cache.Put(catalogType, filename, data)
		return data, false, nil
	}
	if err == nil {
		err = errors.New("invalid JSON content")
	}

	backup, backupErr := os.ReadFile(path + ".bak")
	if backupErr != nil || !json.Valid(backup) {
		slog.Error("目录文件读取失败且备份不可用",
			"catalog", catalogType,
			"filename", filename,
			"error", err)
		return nil, false, &FileReadError{Path: path, Err: err}
	}

	slog.Warn("目录文件损坏，已从备份恢复读取",
		"catalog", catalogType,
		"filename", filename,
		"error", err)
	s.cache.Put(catalogType, filename, backup)
	return backup, true, nil
}

// LoadDocument 加载任意结构的 JSON 文档；文件不存在时返回 (nil, nil)
func LoadDocument[D any](ctx context.Context, s *Store, catalogType, filename string) (*D, error) {
	data, recovered, err := s.readRaw(catalogType, filename)
	if err != nil || data == nil {
		return nil, err
	}
	doc := new(D)
	if err := json.Unmarshal(data, doc); err != nil {
		path, _ := s.Path(catalogType, filename)
		s.cache.Invalidate(catalogType, filename)
		return nil, &FileReadError{Path: path, RecoveredFromBackup: recovered, Err: fmt.Errorf("目录结构不匹配: %w", err)}
	}
	return doc, nil
}

// Load 加载目录文件；文件不存在时返回空目录
func Load[T any](ctx context.Context, s *Store, catalogType, filename string) (*models.CatalogFile[T], error) {
	file, err := LoadDocument[models.CatalogFile[T]](ctx, s, catalogType, filename)
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = &models.CatalogFile[T]{}
	}
	if file.Entries == nil {
		file.Entries = []T{}
	}
	migrateMapping(catalogType, file)
	return file, nil
}

// migrateMapping 术语文件：旧版 mappedDomainFile 迁移到 mapping.domain，并补全默认映射
func migrateMapping[T any](catalogType string, file *models.CatalogFile[T]) {
	if catalogType != models.CatalogTerm {
		return
	}
	mapping := file.EnsureMapping()
	if file.MappedDomainFile != "" {
		if mapping.Domain == "" {
			mapping.Domain = file.MappedDomainFile
		}
		file.MappedDomainFile = ""
	}
	if mapping.Vocabulary == "" {
		mapping.Vocabulary = models.DefaultFilename(models.CatalogVocabulary)
	}
	if mapping.Domain == "" {
		mapping.Domain = models.DefaultFilename(models.CatalogDomain)
	}
}

// Save 在文件锁保护下保存目录文件
func Save[T any](ctx context.Context, s *Store, catalogType, filename string, file *models.CatalogFile[T]) error {
	path, err := s.Path(catalogType, filename)
	if err != nil {
		return err
	}
	err = s.withLock(ctx, path, func() error {
		return writeCatalog(s, catalogType, filename, path, file)
	})
	metrics.CatalogWrites.WithLabelValues(catalogType, metrics.ResultLabel(err)).Inc()
	return err
}

// Update 在同一个加锁临界区内完成 读取 -> 修改 -> 保存
// fn 返回 (false, nil) 表示无需保存
func Update[T any](ctx context.Context, s *Store, catalogType, filename string, fn func(file *models.CatalogFile[T]) (bool, error)) error {
	path, err := s.Path(catalogType, filename)
	if err != nil {
		return err
	}
	err = s.withLock(ctx, path, func() error {
		// 读取最新内容，不依赖锁外的缓存
		s.cache.Invalidate(catalogType, filename)
		file, err := Load[T](ctx, s, catalogType, filename)
		if err != nil {
			return err
		}
		changed, err := fn(file)
		if err != nil || !changed {
			return err
		}
		return writeCatalog(s, catalogType, filename, path, file)
	})
	metrics.CatalogWrites.WithLabelValues(catalogType, metrics.ResultLabel(err)).Inc()
	return err
}

// UpdateDocument 任意结构文档的加锁 读取 -> 修改 -> 保存；文件不存在时 fn 收到零值
func UpdateDocument[D any](ctx context.Context, s *Store, catalogType, filename string, fn func(doc *D) (bool, error)) error {
	path, err := s.Path(catalogType, filename)
	if err != nil {
		return err
	}
	return s.withLock(ctx, path, func() error {
		s.cache.Invalidate(catalogType, filename)
		doc, err := LoadDocument[D](ctx, s, catalogType, filename)
		if err != nil {
			return err
		}
		if doc == nil {
			doc = new(D)
		}
		changed, err := fn(doc)
		if err != nil || !changed {
			return err
		}
		return writeDocument(s, catalogType, filename, path, doc)
	})
}

func (s *Store) withLock(ctx context.Context, path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	if s.locker == nil {
		return fn()
	}
	return s.locker.ExecuteWithLock(ctx, path, fn)
}

func writeCatalog[T any](s *Store, catalogType, filename, path string, file *models.CatalogFile[T]) error {
	if file.Entries == nil {
		file.Entries = []T{}
	}
	file.LastUpdated = models.Now()
	file.TotalCount = len(file.Entries)
	return writeDocument(s, catalogType, filename, path, file)
}

func writeDocument(s *Store, catalogType, filename, path string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化目录文件失败: %w", err)
	}
	if err := atomicWrite(path, data); err != nil {
		slog.Error("目录文件写入失败", "catalog", catalogType, "filename", filename, "error", err)
		return err
	}
	s.cache.Invalidate(catalogType, filename)
	return nil
}

// atomicWrite 先备份当前文件，再写临时文件并重命名覆盖
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	if current, err := os.ReadFile(path); err == nil && json.Valid(current) {
		if err := os.WriteFile(path+".bak", current, 0o644); err != nil {
			slog.Warn("目录文件备份失败", "path", path, "error", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("同步临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("替换目录文件失败: %w", err)
	}
	return nil
}

// LoadMerged 合并多个目录文件的条目
func LoadMerged[T any](ctx context.Context, s *Store, catalogType string, filenames []string) ([]T, error) {
	merged := make([]T, 0)
	for _, filename := range filenames {
		file, err := Load[T](ctx, s, catalogType, filename)
		if err != nil {
			return nil, err
		}
		merged = append(merged, file.Entries...)
	}
	return merged, nil
}

// LoadAll 合并某目录类型下所有文件的条目
func LoadAll[T any](ctx context.Context, s *Store, catalogType string) ([]T, error) {
	files, err := s.ListFiles(catalogType)
	if err != nil {
		return nil, err
	}
	return LoadMerged[T](ctx, s, catalogType, files)
}
