package catalog

import (
	"context"
	"fmt"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"
)

// maxWarnings 删除警告最多列出的条数
const maxWarnings = 50

type warnings []string

func (w *warnings) add(format string, args ...interface{}) {
	if len(*w) < maxWarnings {
		*w = append(*w, fmt.Sprintf(format, args...))
	}
}

func vocabularyReferences(store *catalog_store.Store) func(context.Context, models.VocabularyEntry) ([]string, error) {
	return func(ctx context.Context, word models.VocabularyEntry) ([]string, error) {
		terms, err := catalog_store.LoadAll[models.TermEntry](ctx, store, models.CatalogTerm)
		if err != nil {
			return nil, err
		}
		var w warnings
		for _, term := range terms {
			for _, part := range word_mapping.SplitParts(term.TermName) {
				if sameKey(part, word.StandardName) {
					w.add("용어 '%s'에서 사용 중인 표준단어입니다", term.TermName)
					break
				}
			}
		}
		return w, nil
	}
}

func domainReferences(store *catalog_store.Store) func(context.Context, models.DomainEntry) ([]string, error) {
	return func(ctx context.Context, domain models.DomainEntry) ([]string, error) {
		terms, err := catalog_store.LoadAll[models.TermEntry](ctx, store, models.CatalogTerm)
		if err != nil {
			return nil, err
		}
		columns, err := catalog_store.LoadAll[models.ColumnEntry](ctx, store, models.CatalogColumn)
		if err != nil {
			return nil, err
		}
		var w warnings
		for _, term := range terms {
			if sameKey(term.DomainName, domain.StandardDomainName) {
				w.add("용어 '%s'에서 사용 중인 도메인입니다", term.TermName)
			}
		}
		for _, column := range columns {
			if sameKey(column.DomainName, domain.StandardDomainName) {
				w.add("컬럼 '%s.%s'에서 사용 중인 도메인입니다", column.TableEnglishName, column.ColumnEnglishName)
			}
		}
		return w, nil
	}
}

func termReferences(store *catalog_store.Store) func(context.Context, models.TermEntry) ([]string, error) {
	return func(ctx context.Context, term models.TermEntry) ([]string, error) {
		columns, err := catalog_store.LoadAll[models.ColumnEntry](ctx, store, models.CatalogColumn)
		if err != nil {
			return nil, err
		}
		var w warnings
		for _, column := range columns {
			if sameKey(column.ColumnEnglishName, term.ColumnName) {
				w.add("컬럼 '%s.%s'에서 사용 중인 용어입니다", column.TableEnglishName, column.ColumnEnglishName)
			}
		}
		return w, nil
	}
}

func databaseReferences(store *catalog_store.Store) func(context.Context, models.DatabaseEntry) ([]string, error) {
	return func(ctx context.Context, db models.DatabaseEntry) ([]string, error) {
		entities, err := catalog_store.LoadAll[models.EntityEntry](ctx, store, models.CatalogEntity)
		if err != nil {
			return nil, err
		}
		tables, err := catalog_store.LoadAll[models.TableEntry](ctx, store, models.CatalogTable)
		if err != nil {
			return nil, err
		}
		var w warnings
		for _, entity := range entities {
			if sameKey(entity.LogicalDbName, db.LogicalDbName) {
				w.add("엔터티 '%s'가 참조하는 데이터베이스입니다", entity.EntityName)
			}
		}
		for _, table := range tables {
			if sameKey(table.PhysicalDbName, db.PhysicalDbName) {
				w.add("테이블 '%s'가 참조하는 데이터베이스입니다", table.TableEnglishName)
			}
		}
		return w, nil
	}
}

func entityReferences(store *catalog_store.Store) func(context.Context, models.EntityEntry) ([]string, error) {
	return func(ctx context.Context, entity models.EntityEntry) ([]string, error) {
		attributes, err := catalog_store.LoadAll[models.AttributeEntry](ctx, store, models.CatalogAttribute)
		if err != nil {
			return nil, err
		}
		tables, err := catalog_store.LoadAll[models.TableEntry](ctx, store, models.CatalogTable)
		if err != nil {
			return nil, err
		}
		var w warnings
		for _, attr := range attributes {
			if sameKey(attr.EntityName, entity.EntityName) {
				w.add("속성 '%s'가 참조하는 엔터티입니다", attr.AttributeName)
			}
		}
		for _, table := range tables {
			if sameKey(table.RelatedEntityName, entity.EntityName) {
				w.add("테이블 '%s'가 참조하는 엔터티입니다", table.TableEnglishName)
			}
		}
		return w, nil
	}
}

func tableReferences(store *catalog_store.Store) func(context.Context, models.TableEntry) ([]string, error) {
	return func(ctx context.Context, table models.TableEntry) ([]string, error) {
		columns, err := catalog_store.LoadAll[models.ColumnEntry](ctx, store, models.CatalogColumn)
		if err != nil {
			return nil, err
		}
		var w warnings
		for _, column := range columns {
			if sameKey(column.TableEnglishName, table.TableEnglishName) {
				w.add("컬럼 '%s'가 참조하는 테이블입니다", column.ColumnEnglishName)
			}
		}
		return w, nil
	}
}
