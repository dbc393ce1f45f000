/*
 * @module service/catalog/service
 * @description 目录条目通用CRUD服务，按条目类型参数化，各目录通过定义中的钩子提供规范化、冲突检查和引用检查
 * @architecture 分层架构 - 领域服务层
 * @documentReference ai_docs/api_conventions.md
 * @stateFlow 请求 -> 加锁读取目录文件 -> 钩子(规范化/派生/冲突) -> 保存 -> 审计日志
 * @rules 更新为合并补丁语义，补丁中未出现的字段保持不变；id 与 createdAt 不可修改
 * @dependencies datastandard-service/service/catalog_store, datastandard-service/service/listing
 * @refs api/controllers/catalog_controller.go
 */

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/history"
	"datastandard-service/service/listing"
	"datastandard-service/service/models"
)

// Definition 目录类型定义与钩子
type Definition[T models.Fielder] struct {
	CatalogType  string
	LabelField   string
	SearchFields []string
	// Normalize 保存前规范化
	Normalize func(entry *T)
	// Derive 读取和保存时计算派生字段
	Derive func(ctx context.Context, file *models.CatalogFile[T], entries []*T) error
	// CheckConflict existing 为目标文件当前的条目
	CheckConflict func(ctx context.Context, filename string, existing []T, entry *T) error
	// References 删除前收集引用警告
	References func(ctx context.Context, entry T) ([]string, error)
}

// Service 目录通用服务
type Service[T models.Fielder, P models.Record[T]] struct {
	store   *catalog_store.Store
	history *history.Service
	def     Definition[T]
}

// NewService 创建目录服务
func NewService[T models.Fielder, P models.Record[T]](store *catalog_store.Store, history *history.Service, def Definition[T]) *Service[T, P] {
	return &Service[T, P]{store: store, history: history, def: def}
}

// CatalogType 目录类型
func (s *Service[T, P]) CatalogType() string {
	return s.def.CatalogType
}

// Store 目录存储
func (s *Service[T, P]) Store() *catalog_store.Store {
	return s.store
}

// DeleteResult 删除结果
type DeleteResult[T any] struct {
	Deleted  T        `json:"deleted"`
	Warnings []string `json:"warnings"`
}

func (s *Service[T, P]) resolveFile(filename string) string {
	if strings.TrimSpace(filename) == "" {
		return models.DefaultFilename(s.def.CatalogType)
	}
	return filename
}

// ensureFile 非默认文件必须已存在
func (s *Service[T, P]) ensureFile(filename string) error {
	exists, err := s.store.Exists(s.def.CatalogType, filename)
	if err != nil {
		return err
	}
	if !exists && filename != models.DefaultFilename(s.def.CatalogType) {
		return fmt.Errorf("%w: %s", catalog_store.ErrFileNotFound, filename)
	}
	return nil
}

func (s *Service[T, P]) label(entry T) string {
	if s.def.LabelField == "" {
		return ""
	}
	value, _ := entry.FieldValue(s.def.LabelField)
	return value
}

func (s *Service[T, P]) load(ctx context.Context, filename string) (*models.CatalogFile[T], error) {
	file, err := catalog_store.Load[T](ctx, s.store, s.def.CatalogType, filename)
	if err != nil {
		return nil, err
	}
	if s.def.Derive != nil {
		if err := s.def.Derive(ctx, file, pointers(file.Entries)); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func pointers[T any](entries []T) []*T {
	ptrs := make([]*T, len(entries))
	for i := range entries {
		ptrs[i] = &entries[i]
	}
	return ptrs
}

func indexOf[T any, P models.Record[T]](entries []T, id string) int {
	for i := range entries {
		if P(&entries[i]).Meta().ID == id {
			return i
		}
	}
	return -1
}

func missingFieldsError(missing []string) error {
	return models.NewValidationError("필수 필드가 누락되었습니다: " + strings.Join(missing, ", ")).
		WithData(map[string]interface{}{"missingFields": missing})
}

// List 列表查询
func (s *Service[T, P]) List(ctx context.Context, filename string, q listing.Query) (*listing.Page[T], error) {
	filename = s.resolveFile(filename)
	file, err := s.load(ctx, filename)
	if err != nil {
		return nil, err
	}
	page := listing.Apply(file.Entries, q, s.def.SearchFields)
	page.LastUpdated = file.LastUpdated
	return &page, nil
}

// Get 按ID读取条目
func (s *Service[T, P]) Get(ctx context.Context, filename, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.NewValidationError("id가 필요합니다")
	}
	file, err := s.load(ctx, s.resolveFile(filename))
	if err != nil {
		return nil, err
	}
	idx := indexOf[T, P](file.Entries, id)
	if idx < 0 {
		return nil, models.NewNotFoundError("항목을 찾을 수 없습니다")
	}
	return &file.Entries[idx], nil
}

// Create 新建条目，服务端分配ID和时间戳
func (s *Service[T, P]) Create(ctx context.Context, filename string, entry T) (*T, error) {
	filename = s.resolveFile(filename)
	if err := s.ensureFile(filename); err != nil {
		return nil, err
	}
	p := P(&entry)
	if missing := p.MissingFields(); len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}
	meta := p.Meta()
	meta.ID = ""
	meta.Stamp()

	err := catalog_store.Update(ctx, s.store, s.def.CatalogType, filename, func(file *models.CatalogFile[T]) (bool, error) {
		if err := s.prepare(ctx, filename, file, &entry); err != nil {
			return false, err
		}
		file.Entries = append(file.Entries, entry)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(ctx, models.HistoryLog{
		Action:      models.HistoryActionCreate,
		CatalogType: s.def.CatalogType,
		Filename:    filename,
		TargetID:    meta.ID,
		TargetName:  s.label(entry),
	})
	slog.Info("目录条目已创建", "catalog", s.def.CatalogType, "filename", filename, "id", meta.ID)
	return &entry, nil
}

// prepare 规范化、派生字段与冲突检查
func (s *Service[T, P]) prepare(ctx context.Context, filename string, file *models.CatalogFile[T], entry *T) error {
	if s.def.Normalize != nil {
		s.def.Normalize(entry)
	}
	if s.def.CheckConflict != nil {
		if err := s.def.CheckConflict(ctx, filename, file.Entries, entry); err != nil {
			return err
		}
	}
	if s.def.Derive != nil {
		return s.def.Derive(ctx, file, []*T{entry})
	}
	return nil
}

// Update 合并补丁更新：patch 中出现的JSON字段覆盖原值，其余保持不变
func (s *Service[T, P]) Update(ctx context.Context, filename, id string, patch json.RawMessage) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.NewValidationError("id가 필요합니다")
	}
	filename = s.resolveFile(filename)

	var updated T
	err := catalog_store.Update(ctx, s.store, s.def.CatalogType, filename, func(file *models.CatalogFile[T]) (bool, error) {
		idx := indexOf[T, P](file.Entries, id)
		if idx < 0 {
			return false, models.NewNotFoundError("항목을 찾을 수 없습니다")
		}
		current := file.Entries[idx]
		// 重新解码一份副本，避免补丁通过指针字段改写原条目
		raw, err := json.Marshal(current)
		if err != nil {
			return false, err
		}
		var next T
		if err := json.Unmarshal(raw, &next); err != nil {
			return false, err
		}
		if len(patch) > 0 {
			if err := json.Unmarshal(patch, &next); err != nil {
				return false, models.NewValidationError("요청 본문이 올바르지 않습니다")
			}
		}

		p, before := P(&next), P(&current).Meta()
		p.Meta().ID = before.ID
		p.Meta().CreatedAt = before.CreatedAt
		p.Meta().Touch()
		if missing := p.MissingFields(); len(missing) > 0 {
			return false, missingFieldsError(missing)
		}
		if err := s.prepare(ctx, filename, file, &next); err != nil {
			return false, err
		}
		file.Entries[idx] = next
		updated = next
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(ctx, models.HistoryLog{
		Action:      models.HistoryActionUpdate,
		CatalogType: s.def.CatalogType,
		Filename:    filename,
		TargetID:    id,
		TargetName:  s.label(updated),
	})
	return &updated, nil
}

// Delete 删除条目；force 为 false 时收集引用警告但不阻止删除
func (s *Service[T, P]) Delete(ctx context.Context, filename, id string, force bool) (*DeleteResult[T], error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.NewValidationError("id가 필요합니다")
	}
	filename = s.resolveFile(filename)

	result := &DeleteResult[T]{Warnings: []string{}}
	err := catalog_store.Update(ctx, s.store, s.def.CatalogType, filename, func(file *models.CatalogFile[T]) (bool, error) {
		idx := indexOf[T, P](file.Entries, id)
		if idx < 0 {
			return false, models.NewNotFoundError("항목을 찾을 수 없습니다")
		}
		result.Deleted = file.Entries[idx]
		file.Entries = append(file.Entries[:idx], file.Entries[idx+1:]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if !force && s.def.References != nil {
		warnings, err := s.def.References(ctx, result.Deleted)
		if err != nil {
			slog.Warn("引用检查失败", "catalog", s.def.CatalogType, "id", id, "error", err)
		} else if len(warnings) > 0 {
			result.Warnings = warnings
		}
	}

	s.history.Record(ctx, models.HistoryLog{
		Action:      models.HistoryActionDelete,
		CatalogType: s.def.CatalogType,
		Filename:    filename,
		TargetID:    id,
		TargetName:  s.label(result.Deleted),
		Details:     map[string]interface{}{"force": force, "warnings": len(result.Warnings)},
	})
	return result, nil
}
