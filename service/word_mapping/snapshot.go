package word_mapping

import (
	"context"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"
)

// Snapshot 一次校验/同步所使用的标准单词与域目录快照
type Snapshot struct {
	VocabularyFile    string
	DomainFile        string
	VocabularyEntries []models.VocabularyEntry
	DomainEntries     []models.DomainEntry
	Vocabulary        VocabularyMap
	Domains           DomainMap
}

// ResolveTermMapping 解析术语文件引用的标准单词/域文件：显式参数 -> 术语文件映射 -> 默认文件
func ResolveTermMapping(ctx context.Context, store *catalog_store.Store, termFile, vocabularyFile, domainFile string) (string, string, error) {
	var mapping *models.CatalogMapping
	if termFile != "" {
		file, err := catalog_store.Load[models.TermEntry](ctx, store, models.CatalogTerm, termFile)
		if err != nil {
			return "", "", err
		}
		mapping = file.Mapping
	}
	return models.ResolveFilename(vocabularyFile, mapping.Get(models.CatalogVocabulary), models.DefaultFilename(models.CatalogVocabulary)),
		models.ResolveFilename(domainFile, mapping.Get(models.CatalogDomain), models.DefaultFilename(models.CatalogDomain)),
		nil
}

// LoadSnapshot 加载标准单词与域目录并构建查找表
func LoadSnapshot(ctx context.Context, store *catalog_store.Store, vocabularyFile, domainFile string) (*Snapshot, error) {
	vocabulary, err := catalog_store.Load[models.VocabularyEntry](ctx, store, models.CatalogVocabulary, vocabularyFile)
	if err != nil {
		return nil, err
	}
	domains, err := catalog_store.Load[models.DomainEntry](ctx, store, models.CatalogDomain, domainFile)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(vocabulary.Entries, domains.Entries), nil
}

// NewSnapshot 由条目直接构建快照
func NewSnapshot(vocabulary []models.VocabularyEntry, domains []models.DomainEntry) *Snapshot {
	return &Snapshot{
		VocabularyEntries: vocabulary,
		DomainEntries:     domains,
		Vocabulary:        BuildVocabularyMap(vocabulary),
		Domains:           BuildDomainMap(domains),
	}
}

// LoadTermSnapshot 按术语文件映射加载快照
func LoadTermSnapshot(ctx context.Context, store *catalog_store.Store, termFile, vocabularyFile, domainFile string) (*Snapshot, error) {
	vocabularyFile, domainFile, err := ResolveTermMapping(ctx, store, termFile, vocabularyFile, domainFile)
	if err != nil {
		return nil, err
	}
	snapshot, err := LoadSnapshot(ctx, store, vocabularyFile, domainFile)
	if err != nil {
		return nil, err
	}
	snapshot.VocabularyFile = vocabularyFile
	snapshot.DomainFile = domainFile
	return snapshot, nil
}

// Check 对术语执行映射检查
func (s *Snapshot) Check(entry models.TermEntry) MappingResult {
	return CheckTermMapping(entry.TermName, entry.ColumnName, entry.DomainName, s.Vocabulary, s.Domains)
}
