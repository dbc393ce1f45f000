package term_validation

import (
	"context"
	"log/slog"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"
)

// Service 基于目录存储的术语校验服务
type Service struct {
	store *catalog_store.Store
}

// NewService 创建术语校验服务
func NewService(store *catalog_store.Store) *Service {
	return &Service{store: store}
}

// EntryResult 单个术语的校验结果
type EntryResult struct {
	Valid       bool                      `json:"valid"`
	Errors      []models.ValidationError  `json:"errors"`
	ErrorCount  int                       `json:"errorCount"`
	Suggestions *models.AutoFixSuggestion `json:"suggestions,omitempty"`
	Status      int                       `json:"-"`
}

// ValidateEntry 校验单个术语但不保存
// entryID 非空为编辑模式，跳过重复检查；否则在该类型的全部术语文件中检查重复
func (s *Service) ValidateEntry(ctx context.Context, filename string, entry models.TermEntry, entryID string) (*EntryResult, error) {
	snapshot, err := word_mapping.LoadTermSnapshot(ctx, s.store, filename, "", "")
	if err != nil {
		return nil, err
	}

	vctx := Context{Snapshot: snapshot}
	if entryID != "" {
		entry.ID = entryID
	} else {
		existing, err := catalog_store.LoadAll[models.TermEntry](ctx, s.store, models.CatalogTerm)
		if err != nil {
			return nil, err
		}
		vctx.ExistingTerms = existing
	}

	errs := Validate(entry, vctx)
	result := &EntryResult{
		Valid:      len(errs) == 0,
		Errors:     errs,
		ErrorCount: len(errs),
		Status:     PrimaryStatus(errs),
	}
	if len(errs) > 0 {
		result.Suggestions = Suggest(entry, errs, snapshot)
	}
	return result, nil
}

// ValidateAll 校验一个术语文件中的全部术语，重复检查限定在同一文件内
func (s *Service) ValidateAll(ctx context.Context, filename string) (*models.TermValidationSummary, error) {
	file, err := catalog_store.Load[models.TermEntry](ctx, s.store, models.CatalogTerm, filename)
	if err != nil {
		return nil, err
	}
	snapshot, err := word_mapping.LoadTermSnapshot(ctx, s.store, filename, "", "")
	if err != nil {
		return nil, err
	}

	summary := ValidateEntries(file.Entries, snapshot)
	summary.Filename = filename

	slog.Info("术语全量校验完成",
		"filename", filename,
		"total", summary.TotalCount,
		"failed", summary.FailedCount)
	return summary, nil
}

// ValidateEntries 对一组术语执行校验
func ValidateEntries(entries []models.TermEntry, snapshot *word_mapping.Snapshot) *models.TermValidationSummary {
	summary := &models.TermValidationSummary{
		TotalCount:    len(entries),
		FailedEntries: make([]models.FailedTermEntry, 0),
	}
	for i, entry := range entries {
		errs := Validate(entry, Context{Snapshot: snapshot, ExistingTerms: othersExcept(entries, i)})
		if len(errs) == 0 {
			summary.PassedCount++
			continue
		}
		summary.FailedEntries = append(summary.FailedEntries, models.FailedTermEntry{
			Entry:       entry,
			Errors:      errs,
			Suggestions: Suggest(entry, errs, snapshot),
		})
	}
	summary.FailedCount = len(summary.FailedEntries)
	return summary
}

// othersExcept 返回去掉第 i 个元素后的副本，按位置排除自身
func othersExcept(entries []models.TermEntry, i int) []models.TermEntry {
	others := make([]models.TermEntry, 0, len(entries)-1)
	others = append(others, entries[:i]...)
	return append(others, entries[i+1:]...)
}
