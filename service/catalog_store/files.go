package catalog_store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"datastandard-service/service/models"
)

// ListFiles 列出目录类型下的目录文件（默认文件始终包含在内，history.json 除外）
func (s *Store) ListFiles(catalogType string) ([]string, error) {
	if !models.IsCatalogType(catalogType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, catalogType)
	}

	seen := map[string]bool{models.DefaultFilename(catalogType): true}
	entries, err := os.ReadDir(filepath.Join(s.root, catalogType))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == models.HistoryFilename || ValidateFilename(name) != nil {
			continue
		}
		seen[name] = true
	}

	files := make([]string, 0, len(seen))
	for name := range seen {
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// CreateFile 创建空目录文件
func (s *Store) CreateFile(ctx context.Context, catalogType, filename string) error {
	if filename == models.HistoryFilename {
		return fmt.Errorf("%w: %q", ErrProtectedFile, filename)
	}
	exists, err := s.Exists(catalogType, filename)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrFileExists, filename)
	}
	return Save(ctx, s, catalogType, filename, &models.CatalogFile[json.RawMessage]{Entries: []json.RawMessage{}})
}

// RenameFile 重命名目录文件，并更新其他目录文件中指向旧文件名的映射
func (s *Store) RenameFile(ctx context.Context, catalogType, oldName, newName string) error {
	if models.IsProtectedFile(oldName) || newName == models.HistoryFilename {
		return fmt.Errorf("%w: %s", ErrProtectedFile, oldName)
	}
	oldPath, err := s.Path(catalogType, oldName)
	if err != nil {
		return err
	}
	newPath, err := s.Path(catalogType, newName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(oldPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, oldName)
		}
		return err
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("%w: %s", ErrFileExists, newName)
	}

	err = s.withLock(ctx, oldPath, func() error {
		if err := os.Rename(oldPath, newPath); err != nil {
			return fmt.Errorf("重命名目录文件失败: %w", err)
		}
		_ = os.Remove(oldPath + ".bak")
		return nil
	})
	s.cache.Invalidate(catalogType, oldName)
	s.cache.Invalidate(catalogType, newName)
	if err != nil {
		return err
	}

	return s.rewriteMappings(ctx, catalogType, oldName, newName)
}

// rewriteMappings 把所有目录文件中 mapping[catalogType]==oldName 的引用改为 newName
func (s *Store) rewriteMappings(ctx context.Context, catalogType, oldName, newName string) error {
	for _, ownerType := range models.CatalogTypes {
		files, err := s.ListFiles(ownerType)
		if err != nil {
			return err
		}
		for _, filename := range files {
			exists, err := s.Exists(ownerType, filename)
			if err != nil || !exists {
				continue
			}
			err = Update(ctx, s, ownerType, filename, func(file *models.CatalogFile[json.RawMessage]) (bool, error) {
				if file.Mapping == nil || file.Mapping.Get(catalogType) != oldName {
					return false, nil
				}
				file.Mapping.Set(catalogType, newName)
				return true, nil
			})
			if err != nil {
				slog.Warn("更新目录映射失败", "catalog", ownerType, "filename", filename, "error", err)
			}
		}
	}
	return nil
}

// DeleteFile 删除目录文件及其备份
func (s *Store) DeleteFile(ctx context.Context, catalogType, filename string) error {
	if models.IsProtectedFile(filename) {
		return fmt.Errorf("%w: %s", ErrProtectedFile, filename)
	}
	path, err := s.Path(catalogType, filename)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return err
	}

	err = s.withLock(ctx, path, func() error {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("删除目录文件失败: %w", err)
		}
		_ = os.Remove(path + ".bak")
		return nil
	})
	s.cache.Invalidate(catalogType, filename)
	return err
}

// IsStoreError 判断是否为存储层的业务类错误（非基础设施错误）
func IsStoreError(err error) bool {
	return errors.Is(err, ErrUnknownCatalog) ||
		errors.Is(err, ErrInvalidFilename) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrFileExists) ||
		errors.Is(err, ErrProtectedFile)
}
