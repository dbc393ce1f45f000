package relation

import (
	"context"
	"log/slog"
	"strings"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/history"
	"datastandard-service/service/metrics"
	"datastandard-service/service/models"
)

// Files 设计套件各目录使用的文件名，空值使用默认文件
type Files struct {
	Database  string
	Entity    string
	Attribute string
	Table     string
	Column    string
}

func (f Files) resolved() Files {
	return Files{
		Database:  models.ResolveFilename(f.Database, "", models.DefaultFilename(models.CatalogDatabase)),
		Entity:    models.ResolveFilename(f.Entity, "", models.DefaultFilename(models.CatalogEntity)),
		Attribute: models.ResolveFilename(f.Attribute, "", models.DefaultFilename(models.CatalogAttribute)),
		Table:     models.ResolveFilename(f.Table, "", models.DefaultFilename(models.CatalogTable)),
		Column:    models.ResolveFilename(f.Column, "", models.DefaultFilename(models.CatalogColumn)),
	}
}

func (f Files) asMap() map[string]string {
	return map[string]string{
		models.CatalogDatabase:  f.Database,
		models.CatalogEntity:    f.Entity,
		models.CatalogAttribute: f.Attribute,
		models.CatalogTable:     f.Table,
		models.CatalogColumn:    f.Column,
	}
}

// SyncResult 关系同步结果
type SyncResult struct {
	Files                  map[string]string `json:"files"`
	Applied                bool              `json:"applied"`
	TableUpdated           int               `json:"tableUpdated"`
	ColumnUpdated          int               `json:"columnUpdated"`
	Updated                int               `json:"updated"`
	AppliedTotalUpdates    int               `json:"appliedTotalUpdates"`
	RelationUnmatchedCount int               `json:"relationUnmatchedCount"`
}

// Service 关系校验/同步服务
type Service struct {
	store   *catalog_store.Store
	history *history.Service
}

// NewService 创建关系服务
func NewService(store *catalog_store.Store, history *history.Service) *Service {
	return &Service{store: store, history: history}
}

// LoadSuite 加载设计套件
func (s *Service) LoadSuite(ctx context.Context, files Files) (*DesignSuite, error) {
	files = files.resolved()
	databases, err := catalog_store.Load[models.DatabaseEntry](ctx, s.store, models.CatalogDatabase, files.Database)
	if err != nil {
		return nil, err
	}
	entities, err := catalog_store.Load[models.EntityEntry](ctx, s.store, models.CatalogEntity, files.Entity)
	if err != nil {
		return nil, err
	}
	attributes, err := catalog_store.Load[models.AttributeEntry](ctx, s.store, models.CatalogAttribute, files.Attribute)
	if err != nil {
		return nil, err
	}
	tables, err := catalog_store.Load[models.TableEntry](ctx, s.store, models.CatalogTable, files.Table)
	if err != nil {
		return nil, err
	}
	columns, err := catalog_store.Load[models.ColumnEntry](ctx, s.store, models.CatalogColumn, files.Column)
	if err != nil {
		return nil, err
	}
	return &DesignSuite{
		Databases:  databases.Entries,
		Entities:   entities.Entries,
		Attributes: attributes.Entries,
		Tables:     tables.Entries,
		Columns:    columns.Entries,
	}, nil
}

// Validate 校验设计套件的引用关系
func (s *Service) Validate(ctx context.Context, files Files) (*models.RelationValidationResult, error) {
	suite, err := s.LoadSuite(ctx, files)
	if err != nil {
		return nil, err
	}
	result := Validate(*suite)
	result.Files = files.resolved().asMap()
	return result, nil
}

// FillTableEntities 为缺少关联实体的表按表中文名匹配实体
func FillTableEntities(tables []models.TableEntry, entities []models.EntityEntry) int {
	byKoreanName := make(map[string]string, len(entities))
	for _, entity := range entities {
		k := key(entity.TableKoreanName)
		if k == "" || strings.TrimSpace(entity.EntityName) == "" {
			continue
		}
		if _, exists := byKoreanName[k]; !exists {
			byKoreanName[k] = entity.EntityName
		}
	}

	updated := 0
	for i := range tables {
		table := &tables[i]
		if strings.TrimSpace(table.RelatedEntityName) != "" {
			continue
		}
		if name, ok := byKoreanName[key(table.TableKoreanName)]; ok {
			table.RelatedEntityName = name
			table.Touch()
			updated++
		}
	}
	return updated
}

// FillColumnEntities 为缺少关联实体的列继承所属表的关联实体
func FillColumnEntities(columns []models.ColumnEntry, tables []models.TableEntry) int {
	byTable := make(map[string]string, len(tables))
	for _, table := range tables {
		k := key(table.TableEnglishName)
		if k == "" || strings.TrimSpace(table.RelatedEntityName) == "" {
			continue
		}
		if _, exists := byTable[k]; !exists {
			byTable[k] = table.RelatedEntityName
		}
	}

	updated := 0
	for i := range columns {
		column := &columns[i]
		if strings.TrimSpace(column.RelatedEntityName) != "" {
			continue
		}
		if name, ok := byTable[key(column.TableEnglishName)]; ok {
			column.RelatedEntityName = name
			column.Touch()
			updated++
		}
	}
	return updated
}

// Sync 补全表/列的关联实体；表与列分别在各自的加锁区内保存
func (s *Service) Sync(ctx context.Context, files Files, apply bool) (*SyncResult, error) {
	files = files.resolved()
	suite, err := s.LoadSuite(ctx, files)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Files: files.asMap()}
	if !apply {
		result.TableUpdated = FillTableEntities(suite.Tables, suite.Entities)
		result.ColumnUpdated = FillColumnEntities(suite.Columns, suite.Tables)
		result.Updated = result.TableUpdated + result.ColumnUpdated
		result.RelationUnmatchedCount = Validate(*suite).RelationUnmatchedCount
		return result, nil
	}

	err = catalog_store.Update(ctx, s.store, models.CatalogTable, files.Table, func(file *models.CatalogFile[models.TableEntry]) (bool, error) {
		result.TableUpdated = FillTableEntities(file.Entries, suite.Entities)
		suite.Tables = file.Entries
		return result.TableUpdated > 0, nil
	})
	if err != nil {
		return nil, err
	}
	err = catalog_store.Update(ctx, s.store, models.CatalogColumn, files.Column, func(file *models.CatalogFile[models.ColumnEntry]) (bool, error) {
		result.ColumnUpdated = FillColumnEntities(file.Entries, suite.Tables)
		suite.Columns = file.Entries
		return result.ColumnUpdated > 0, nil
	})
	if err != nil {
		return nil, err
	}

	result.Updated = result.TableUpdated + result.ColumnUpdated
	result.AppliedTotalUpdates = result.Updated
	result.Applied = result.Updated > 0
	result.RelationUnmatchedCount = Validate(*suite).RelationUnmatchedCount

	if result.TableUpdated > 0 {
		s.recordSync(ctx, models.CatalogTable, files.Table, result.TableUpdated)
	}
	if result.ColumnUpdated > 0 {
		s.recordSync(ctx, models.CatalogColumn, files.Column, result.ColumnUpdated)
	}
	metrics.SyncUpdates.WithLabelValues("relation").Add(float64(result.AppliedTotalUpdates))

	slog.Info("关系同步完成",
		"tableFile", files.Table,
		"columnFile", files.Column,
		"tableUpdated", result.TableUpdated,
		"columnUpdated", result.ColumnUpdated,
		"relationUnmatched", result.RelationUnmatchedCount)
	return result, nil
}

func (s *Service) recordSync(ctx context.Context, catalogType, filename string, updated int) {
	s.history.Record(ctx, models.HistoryLog{
		Action:      models.HistoryActionSync,
		CatalogType: catalogType,
		Filename:    filename,
		Details:     map[string]interface{}{"updated": updated},
	})
}
