package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"
)

// GetMapping 读取目录文件的映射关系
func (s *Service[T, P]) GetMapping(ctx context.Context, filename string) (*models.CatalogMapping, error) {
	filename = s.resolveFile(filename)
	if err := s.ensureFile(filename); err != nil {
		return nil, err
	}
	file, err := catalog_store.Load[T](ctx, s.store, s.def.CatalogType, filename)
	if err != nil {
		return nil, err
	}
	return file.EnsureMapping(), nil
}

// UpdateMapping 按目录类型覆盖映射中的非空项，被引用的文件必须存在
func (s *Service[T, P]) UpdateMapping(ctx context.Context, filename string, patch models.CatalogMapping) (*models.CatalogMapping, error) {
	filename = s.resolveFile(filename)
	if err := s.ensureFile(filename); err != nil {
		return nil, err
	}

	changes := make(map[string]string)
	for _, catalogType := range models.CatalogTypes {
		target := patch.Get(catalogType)
		if target == "" {
			continue
		}
		if err := s.requireReferenced(catalogType, target); err != nil {
			return nil, err
		}
		changes[catalogType] = target
	}

	var mapping models.CatalogMapping
	err := catalog_store.Update[T](ctx, s.store, s.def.CatalogType, filename, func(file *models.CatalogFile[T]) (bool, error) {
		current := file.EnsureMapping()
		changed := false
		for catalogType, target := range changes {
			if current.Get(catalogType) != target {
				current.Set(catalogType, target)
				changed = true
			}
		}
		mapping = *current
		return changed, nil
	})
	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		s.history.Record(ctx, models.HistoryLog{
			Action:      models.HistoryActionUpdate,
			CatalogType: s.def.CatalogType,
			Filename:    filename,
			Details:     map[string]interface{}{"mapping": changes},
		})
		slog.Info("目录文件映射已更新", "catalog", s.def.CatalogType, "filename", filename, "mapping", changes)
	}
	return &mapping, nil
}

func (s *Service[T, P]) requireReferenced(catalogType, filename string) error {
	if filename == models.DefaultFilename(catalogType) {
		return nil
	}
	exists, err := s.store.Exists(catalogType, filename)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError(fmt.Sprintf("매핑 대상 파일을 찾을 수 없습니다: %s/%s", catalogType, filename))
	}
	return nil
}
