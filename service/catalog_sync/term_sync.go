package catalog_sync

import (
	"context"
	"log/slog"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/metrics"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"
)

// TermSyncOptions 术语映射同步参数
type TermSyncOptions struct {
	TermFile       string
	VocabularyFile string
	DomainFile     string
	Apply          bool
}

// TermSyncResult 术语映射同步结果
type TermSyncResult struct {
	Files             map[string]string `json:"files"`
	Applied           bool              `json:"applied"`
	Total             int               `json:"total"`
	Updated           int               `json:"updated"`
	MappedTermCount   int               `json:"mappedTermCount"`
	MappedColumnCount int               `json:"mappedColumnCount"`
	MappedDomainCount int               `json:"mappedDomainCount"`
	Changes           []EntryChange     `json:"changes"`
}

// ReconcileTerms 重新计算术语的映射标记和未映射部分，直接修改传入的条目
func ReconcileTerms(terms []models.TermEntry, snapshot *word_mapping.Snapshot) *TermSyncResult {
	result := &TermSyncResult{Total: len(terms), Changes: make([]EntryChange, 0)}
	for i := range terms {
		term := &terms[i]
		before := *term
		mapping := snapshot.Check(*term)
		if mapping.IsMappedTerm {
			result.MappedTermCount++
		}
		if mapping.IsMappedColumn {
			result.MappedColumnCount++
		}
		if mapping.IsMappedDomain {
			result.MappedDomainCount++
		}
		if !mapping.ApplyTo(term) {
			continue
		}
		term.Touch()
		result.Updated++
		if len(result.Changes) < maxListedItems {
			result.Changes = append(result.Changes, EntryChange{
				EntryID: term.ID,
				Label:   term.TermName,
				Fields:  flagChanges(before, *term),
			})
		}
	}
	return result
}

func flagChanges(before, after models.TermEntry) []FieldChange {
	var changes []FieldChange
	add := func(field string, a, b bool) {
		if a != b {
			changes = append(changes, FieldChange{Field: field, Before: boolString(a), After: boolString(b)})
		}
	}
	add("isMappedTerm", before.IsMappedTerm, after.IsMappedTerm)
	add("isMappedColumn", before.IsMappedColumn, after.IsMappedColumn)
	add("isMappedDomain", before.IsMappedDomain, after.IsMappedDomain)
	return changes
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// SyncTerms 按标准单词/域目录修正术语文件中存储的映射标记
func (s *Service) SyncTerms(ctx context.Context, opts TermSyncOptions) (*TermSyncResult, error) {
	termFile := models.ResolveFilename(opts.TermFile, "", models.DefaultFilename(models.CatalogTerm))
	snapshot, err := word_mapping.LoadTermSnapshot(ctx, s.store, termFile, opts.VocabularyFile, opts.DomainFile)
	if err != nil {
		return nil, err
	}

	var result *TermSyncResult
	if opts.Apply {
		err = catalog_store.Update(ctx, s.store, models.CatalogTerm, termFile, func(file *models.CatalogFile[models.TermEntry]) (bool, error) {
			result = ReconcileTerms(file.Entries, snapshot)
			return result.Updated > 0, nil
		})
		if err != nil {
			return nil, err
		}
		result.Applied = result.Updated > 0
	} else {
		file, err := catalog_store.Load[models.TermEntry](ctx, s.store, models.CatalogTerm, termFile)
		if err != nil {
			return nil, err
		}
		result = ReconcileTerms(file.Entries, snapshot)
	}

	result.Files = map[string]string{
		models.CatalogTerm:       termFile,
		models.CatalogVocabulary: snapshot.VocabularyFile,
		models.CatalogDomain:     snapshot.DomainFile,
	}
	if result.Applied {
		metrics.SyncUpdates.WithLabelValues("term").Add(float64(result.Updated))
		s.recordSync(ctx, models.CatalogTerm, termFile, result.Updated)
	}

	slog.Info("术语映射同步完成", "termFile", termFile, "apply", opts.Apply, "total", result.Total, "updated", result.Updated)
	return result, nil
}
