package catalog

import (
	"context"
	"fmt"
	"strings"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/history"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"
)

// Catalogs 全部目录服务
type Catalogs struct {
	Vocabulary *Service[models.VocabularyEntry, *models.VocabularyEntry]
	Domain     *Service[models.DomainEntry, *models.DomainEntry]
	Term       *Service[models.TermEntry, *models.TermEntry]
	Database   *Service[models.DatabaseEntry, *models.DatabaseEntry]
	Entity     *Service[models.EntityEntry, *models.EntityEntry]
	Attribute  *Service[models.AttributeEntry, *models.AttributeEntry]
	Table      *Service[models.TableEntry, *models.TableEntry]
	Column     *Service[models.ColumnEntry, *models.ColumnEntry]
}

// NewCatalogs 创建全部目录服务
func NewCatalogs(store *catalog_store.Store, history *history.Service) *Catalogs {
	return &Catalogs{
		Vocabulary: NewService[models.VocabularyEntry, *models.VocabularyEntry](store, history, Definition[models.VocabularyEntry]{
			CatalogType:   models.CatalogVocabulary,
			LabelField:    "standardName",
			SearchFields:  []string{"standardName", "abbreviation", "englishName", "description"},
			CheckConflict: vocabularyConflict,
			References:    vocabularyReferences(store),
		}),
		Domain: NewService[models.DomainEntry, *models.DomainEntry](store, history, Definition[models.DomainEntry]{
			CatalogType:   models.CatalogDomain,
			LabelField:    "standardDomainName",
			SearchFields:  []string{"domainGroup", "domainCategory", "standardDomainName", "physicalDataType", "description"},
			Normalize:     func(entry *models.DomainEntry) { entry.Normalize() },
			CheckConflict: domainConflict(store),
			References:    domainReferences(store),
		}),
		Term: NewService[models.TermEntry, *models.TermEntry](store, history, Definition[models.TermEntry]{
			CatalogType:   models.CatalogTerm,
			LabelField:    "termName",
			SearchFields:  []string{"termName", "columnName", "domainName", "description"},
			Derive:        deriveTermFlags(store),
			CheckConflict: termConflict(store),
			References:    termReferences(store),
		}),
		Database: NewService[models.DatabaseEntry, *models.DatabaseEntry](store, history, Definition[models.DatabaseEntry]{
			CatalogType:  models.CatalogDatabase,
			LabelField:   "logicalDbName",
			SearchFields: []string{"organizationName", "departmentName", "logicalDbName", "physicalDbName", "description"},
			References:   databaseReferences(store),
		}),
		Entity: NewService[models.EntityEntry, *models.EntityEntry](store, history, Definition[models.EntityEntry]{
			CatalogType:  models.CatalogEntity,
			LabelField:   "entityName",
			SearchFields: []string{"logicalDbName", "schemaName", "entityName", "tableKoreanName", "entityDescription"},
			References:   entityReferences(store),
		}),
		Attribute: NewService[models.AttributeEntry, *models.AttributeEntry](store, history, Definition[models.AttributeEntry]{
			CatalogType:  models.CatalogAttribute,
			LabelField:   "attributeName",
			SearchFields: []string{"schemaName", "entityName", "attributeName", "attributeDescription"},
		}),
		Table: NewService[models.TableEntry, *models.TableEntry](store, history, Definition[models.TableEntry]{
			CatalogType:  models.CatalogTable,
			LabelField:   "tableEnglishName",
			SearchFields: []string{"physicalDbName", "schemaName", "tableEnglishName", "tableKoreanName", "tableDescription"},
			References:   tableReferences(store),
		}),
		Column: NewService[models.ColumnEntry, *models.ColumnEntry](store, history, Definition[models.ColumnEntry]{
			CatalogType:   models.CatalogColumn,
			LabelField:    "columnEnglishName",
			SearchFields:  []string{"tableEnglishName", "columnEnglishName", "columnKoreanName", "domainName", "columnDescription"},
			CheckConflict: columnConflict,
		}),
	}
}

func sameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// otherFiles 加载除 filename 外该类型全部文件的条目
func otherFiles[T any](ctx context.Context, store *catalog_store.Store, catalogType, filename string) ([]T, error) {
	files, err := store.ListFiles(catalogType)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, name := range files {
		if name != filename {
			names = append(names, name)
		}
	}
	return catalog_store.LoadMerged[T](ctx, store, catalogType, names)
}

// 标准单词：同一文件内英文缩写唯一
func vocabularyConflict(_ context.Context, _ string, existing []models.VocabularyEntry, entry *models.VocabularyEntry) error {
	for _, other := range existing {
		if other.ID != entry.ID && sameKey(other.Abbreviation, entry.Abbreviation) {
			return models.NewConflictError(fmt.Sprintf("이미 존재하는 영문약어입니다: %s", entry.Abbreviation))
		}
	}
	return nil
}

// 域：标准域名在所有域文件中唯一
func domainConflict(store *catalog_store.Store) func(context.Context, string, []models.DomainEntry, *models.DomainEntry) error {
	return func(ctx context.Context, filename string, existing []models.DomainEntry, entry *models.DomainEntry) error {
		others, err := otherFiles[models.DomainEntry](ctx, store, models.CatalogDomain, filename)
		if err != nil {
			return err
		}
		for _, other := range append(others, existing...) {
			if other.ID != entry.ID && sameKey(other.StandardDomainName, entry.StandardDomainName) {
				return models.NewConflictError(fmt.Sprintf("이미 존재하는 표준도메인명입니다: %s", entry.StandardDomainName))
			}
		}
		return nil
	}
}

// 术语：术语名/列名/域名组合在所有术语文件中唯一
func termConflict(store *catalog_store.Store) func(context.Context, string, []models.TermEntry, *models.TermEntry) error {
	return func(ctx context.Context, filename string, existing []models.TermEntry, entry *models.TermEntry) error {
		others, err := otherFiles[models.TermEntry](ctx, store, models.CatalogTerm, filename)
		if err != nil {
			return err
		}
		for _, other := range append(others, existing...) {
			if other.ID != entry.ID && other.SameTriple(*entry) {
				return models.NewConflictError("동일한 용어명/칼럼명/도메인명 조합이 이미 존재합니다")
			}
		}
		return nil
	}
}

// 列：同一文件内 (表英文名, 列英文名) 唯一
func columnConflict(_ context.Context, _ string, existing []models.ColumnEntry, entry *models.ColumnEntry) error {
	for _, other := range existing {
		if other.ID != entry.ID &&
			sameKey(other.TableEnglishName, entry.TableEnglishName) &&
			sameKey(other.ColumnEnglishName, entry.ColumnEnglishName) {
			return models.NewConflictError(fmt.Sprintf("이미 존재하는 컬럼입니다: %s.%s", entry.TableEnglishName, entry.ColumnEnglishName))
		}
	}
	return nil
}

// deriveTermFlags 按术语文件映射的标准单词/域文件计算映射标记
func deriveTermFlags(store *catalog_store.Store) func(context.Context, *models.CatalogFile[models.TermEntry], []*models.TermEntry) error {
	return func(ctx context.Context, file *models.CatalogFile[models.TermEntry], entries []*models.TermEntry) error {
		if len(entries) == 0 {
			return nil
		}
		snapshot, err := word_mapping.LoadSnapshot(ctx, store,
			models.ResolveFilename("", file.Mapping.Get(models.CatalogVocabulary), models.DefaultFilename(models.CatalogVocabulary)),
			models.ResolveFilename("", file.Mapping.Get(models.CatalogDomain), models.DefaultFilename(models.CatalogDomain)))
		if err != nil {
			return err
		}
		for _, entry := range entries {
			snapshot.Check(*entry).ApplyTo(entry)
		}
		return nil
	}
}
