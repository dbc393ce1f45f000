package catalog_sync

import (
	"context"
	"log/slog"
	"strings"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/metrics"
	"datastandard-service/service/models"
)

// VocabularyDomainOptions 标准单词-域同步参数
type VocabularyDomainOptions struct {
	VocabularyFile string
	DomainFile     string
	Apply          bool
}

// VocabularyDomainResult 标准单词-域同步结果
type VocabularyDomainResult struct {
	Files     map[string]string `json:"files"`
	Applied   bool              `json:"applied"`
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
	Unmatched int               `json:"unmatched"`
	Updated   int               `json:"updated"`
	Changes   []EntryChange     `json:"changes"`
}

// BuildCategoryIndex 按小写域分类索引域组，重复时保留第一个
func BuildCategoryIndex(domains []models.DomainEntry) map[string]string {
	index := make(map[string]string, len(domains))
	for _, domain := range domains {
		key := lowerKey(domain.DomainCategory)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = domain.DomainGroup
		}
	}
	return index
}

// ReconcileVocabulary 根据域分类更新标准单词的域组与映射标记
func ReconcileVocabulary(words []models.VocabularyEntry, categories map[string]string) *VocabularyDomainResult {
	result := &VocabularyDomainResult{Total: len(words), Changes: make([]EntryChange, 0)}
	for i := range words {
		word := &words[i]
		p := &patcher{}
		found := false
		// 分类被清空的条目只重置映射标记
		if strings.TrimSpace(word.DomainCategory) != "" {
			var group string
			group, found = categories[lowerKey(word.DomainCategory)]
			if found {
				result.Matched++
				p.set("domainGroup", &word.DomainGroup, group)
			} else {
				result.Unmatched++
			}
		}
		if word.IsDomainCategoryMapped != found {
			p.changes = append(p.changes, FieldChange{
				Field:  "isDomainCategoryMapped",
				Before: boolString(word.IsDomainCategoryMapped),
				After:  boolString(found),
			})
			word.IsDomainCategoryMapped = found
		}

		if len(p.changes) == 0 {
			continue
		}
		word.Touch()
		result.Updated++
		if len(result.Changes) < maxListedItems {
			result.Changes = append(result.Changes, EntryChange{EntryID: word.ID, Label: word.StandardName, Fields: p.changes})
		}
	}
	return result
}

// SyncVocabularyDomains 标准单词-域同步
func (s *Service) SyncVocabularyDomains(ctx context.Context, opts VocabularyDomainOptions) (*VocabularyDomainResult, error) {
	vocabularyFile := models.ResolveFilename(opts.VocabularyFile, "", models.DefaultFilename(models.CatalogVocabulary))
	vocabulary, err := catalog_store.Load[models.VocabularyEntry](ctx, s.store, models.CatalogVocabulary, vocabularyFile)
	if err != nil {
		return nil, err
	}
	domainFile := models.ResolveFilename(opts.DomainFile, vocabulary.Mapping.Get(models.CatalogDomain), models.DefaultFilename(models.CatalogDomain))
	domains, err := catalog_store.Load[models.DomainEntry](ctx, s.store, models.CatalogDomain, domainFile)
	if err != nil {
		return nil, err
	}
	categories := BuildCategoryIndex(domains.Entries)

	var result *VocabularyDomainResult
	if opts.Apply {
		err = catalog_store.Update(ctx, s.store, models.CatalogVocabulary, vocabularyFile, func(file *models.CatalogFile[models.VocabularyEntry]) (bool, error) {
			result = ReconcileVocabulary(file.Entries, categories)
			return result.Updated > 0, nil
		})
		if err != nil {
			return nil, err
		}
		result.Applied = result.Updated > 0
	} else {
		result = ReconcileVocabulary(vocabulary.Entries, categories)
	}

	result.Files = map[string]string{
		models.CatalogVocabulary: vocabularyFile,
		models.CatalogDomain:     domainFile,
	}
	if result.Applied {
		metrics.SyncUpdates.WithLabelValues("vocabulary").Add(float64(result.Updated))
		s.recordSync(ctx, models.CatalogVocabulary, vocabularyFile, result.Updated)
	}

	slog.Info("标准单词-域同步完成", "vocabularyFile", vocabularyFile, "domainFile", domainFile, "apply", opts.Apply, "updated", result.Updated)
	return result, nil
}
