/*
 * @module service/catalog_sync/column_sync
 * @description 列-术语同步：按列英文名匹配术语，再经术语的域名匹配域，检测并修正派生字段的漂移
 * @architecture 分层架构 - 领域服务层
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow 解析文件 -> 构建查找表(每次运行一次) -> 逐列计算补丁 -> 预览/应用(单次保存)
 * @rules 只在派生值与存储值不同时更新字段；列表结果最多返回100条
 * @dependencies datastandard-service/service/catalog_store, datastandard-service/service/word_mapping
 * @refs service/alignment/orchestrator.go
 */

package catalog_sync

import (
	"context"
	"log/slog"
	"strings"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/metrics"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"
)

// 列表结果上限
const maxListedItems = 100

// 列同步问题代码
const (
	IssueColumnNameEmpty = "COLUMN_NAME_EMPTY"
	IssueTermNotFound    = "TERM_NOT_FOUND"
	IssueDomainNotFound  = "DOMAIN_NOT_FOUND"
)

// 问题严重级别
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// SyncIssue 同步过程中发现的问题
type SyncIssue struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	EntryID  string `json:"entryId"`
	Label    string `json:"label"`
	Message  string `json:"message"`
}

// FieldChange 单个字段的变更
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// EntryChange 单个条目的变更集合
type EntryChange struct {
	EntryID string        `json:"entryId"`
	Label   string        `json:"label"`
	Fields  []FieldChange `json:"fields"`
}

// UnmatchedColumn 未匹配到术语的列
type UnmatchedColumn struct {
	ID                string `json:"id"`
	TableEnglishName  string `json:"tableEnglishName"`
	ColumnEnglishName string `json:"columnEnglishName"`
	ColumnKoreanName  string `json:"columnKoreanName"`
}

// ColumnSyncOptions 列同步参数
type ColumnSyncOptions struct {
	ColumnFile string
	TermFile   string
	DomainFile string
	Apply      bool
}

// ColumnSyncResult 列同步结果，预览与应用返回相同结构
type ColumnSyncResult struct {
	Files            map[string]string `json:"files"`
	Applied          bool              `json:"applied"`
	Matched          int               `json:"matched"`
	Unmatched        int               `json:"unmatched"`
	MatchedDomain    int               `json:"matchedDomain"`
	UnmatchedDomain  int               `json:"unmatchedDomain"`
	Updated          int               `json:"updated"`
	Total            int               `json:"total"`
	UnmatchedColumns []UnmatchedColumn `json:"unmatchedColumns"`
	Issues           []SyncIssue       `json:"issues"`
	Changes          []EntryChange     `json:"changes"`
}

func newColumnSyncResult() *ColumnSyncResult {
	return &ColumnSyncResult{
		Files:            map[string]string{},
		UnmatchedColumns: make([]UnmatchedColumn, 0),
		Issues:           make([]SyncIssue, 0),
		Changes:          make([]EntryChange, 0),
	}
}

func (r *ColumnSyncResult) addIssue(issue SyncIssue) {
	if len(r.Issues) < maxListedItems {
		r.Issues = append(r.Issues, issue)
	}
}

// patcher 只在值不同时写入，并记录变更
type patcher struct {
	changes []FieldChange
}

func (p *patcher) set(field string, target *string, value string) {
	if *target == value {
		return
	}
	p.changes = append(p.changes, FieldChange{Field: field, Before: *target, After: value})
	*target = value
}

func lowerKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// BuildTermIndex 按小写列名索引术语，重复时保留第一个
func BuildTermIndex(terms []models.TermEntry) map[string]models.TermEntry {
	index := make(map[string]models.TermEntry, len(terms))
	for _, term := range terms {
		key := lowerKey(term.ColumnName)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = term
		}
	}
	return index
}

// ReconcileColumns 对列条目执行漂移检测，直接修改传入的条目
func ReconcileColumns(columns []models.ColumnEntry, termIndex map[string]models.TermEntry, domains word_mapping.DomainMap) *ColumnSyncResult {
	result := newColumnSyncResult()
	result.Total = len(columns)

	for i := range columns {
		column := &columns[i]
		label := column.TableEnglishName + "." + column.ColumnEnglishName

		if strings.TrimSpace(column.ColumnEnglishName) == "" {
			result.Unmatched++
			result.addIssue(SyncIssue{
				Code:     IssueColumnNameEmpty,
				Severity: SeverityError,
				EntryID:  column.ID,
				Label:    label,
				Message:  "칼럼영문명이 비어 있습니다",
			})
			continue
		}

		term, ok := termIndex[lowerKey(column.ColumnEnglishName)]
		if !ok {
			result.Unmatched++
			if len(result.UnmatchedColumns) < maxListedItems {
				result.UnmatchedColumns = append(result.UnmatchedColumns, UnmatchedColumn{
					ID:                column.ID,
					TableEnglishName:  column.TableEnglishName,
					ColumnEnglishName: column.ColumnEnglishName,
					ColumnKoreanName:  column.ColumnKoreanName,
				})
			}
			result.addIssue(SyncIssue{
				Code:     IssueTermNotFound,
				Severity: SeverityError,
				EntryID:  column.ID,
				Label:    label,
				Message:  "칼럼영문명과 일치하는 용어가 없습니다: " + column.ColumnEnglishName,
			})
			continue
		}
		result.Matched++

		p := &patcher{}
		p.set("columnKoreanName", &column.ColumnKoreanName, term.TermName)
		p.set("domainName", &column.DomainName, term.DomainName)

		if domain, found := domains.Lookup(term.DomainName); found {
			result.MatchedDomain++
			p.set("dataType", &column.DataType, domain.PhysicalDataType)
			p.set("dataLength", (*string)(&column.DataLength), domain.DataLength.String())
			p.set("dataDecimalLength", (*string)(&column.DataDecimalLength), domain.DecimalPlaces.String())
		} else {
			result.UnmatchedDomain++
			result.addIssue(SyncIssue{
				Code:     IssueDomainNotFound,
				Severity: SeverityWarning,
				EntryID:  column.ID,
				Label:    label,
				Message:  "용어의 도메인을 찾을 수 없습니다: " + term.DomainName,
			})
		}

		if len(p.changes) == 0 {
			continue
		}
		column.Touch()
		result.Updated++
		if len(result.Changes) < maxListedItems {
			result.Changes = append(result.Changes, EntryChange{EntryID: column.ID, Label: label, Fields: p.changes})
		}
	}
	return result
}

// SyncColumns 列-术语同步；Apply 为 false 时只预览
func (s *Service) SyncColumns(ctx context.Context, opts ColumnSyncOptions) (*ColumnSyncResult, error) {
	columnFile := models.ResolveFilename(opts.ColumnFile, "", models.DefaultFilename(models.CatalogColumn))

	columns, err := catalog_store.Load[models.ColumnEntry](ctx, s.store, models.CatalogColumn, columnFile)
	if err != nil {
		return nil, err
	}
	termFile := models.ResolveFilename(opts.TermFile, columns.Mapping.Get(models.CatalogTerm), models.DefaultFilename(models.CatalogTerm))
	terms, err := catalog_store.Load[models.TermEntry](ctx, s.store, models.CatalogTerm, termFile)
	if err != nil {
		return nil, err
	}
	domainFile := models.ResolveFilename(opts.DomainFile, terms.Mapping.Get(models.CatalogDomain), models.DefaultFilename(models.CatalogDomain))
	domains, err := catalog_store.Load[models.DomainEntry](ctx, s.store, models.CatalogDomain, domainFile)
	if err != nil {
		return nil, err
	}

	termIndex := BuildTermIndex(terms.Entries)
	domainMap := word_mapping.BuildDomainMap(domains.Entries)

	var result *ColumnSyncResult
	if opts.Apply {
		err = catalog_store.Update(ctx, s.store, models.CatalogColumn, columnFile, func(file *models.CatalogFile[models.ColumnEntry]) (bool, error) {
			result = ReconcileColumns(file.Entries, termIndex, domainMap)
			return result.Updated > 0, nil
		})
		if err != nil {
			return nil, err
		}
		result.Applied = result.Updated > 0
	} else {
		result = ReconcileColumns(columns.Entries, termIndex, domainMap)
	}

	result.Files = map[string]string{
		models.CatalogColumn: columnFile,
		models.CatalogTerm:   termFile,
		models.CatalogDomain: domainFile,
	}
	if result.Applied {
		metrics.SyncUpdates.WithLabelValues("column").Add(float64(result.Updated))
		s.recordSync(ctx, models.CatalogColumn, columnFile, result.Updated)
	}

	slog.Info("列-术语同步完成",
		"columnFile", columnFile,
		"termFile", termFile,
		"apply", opts.Apply,
		"matched", result.Matched,
		"unmatched", result.Unmatched,
		"updated", result.Updated)
	return result, nil
}
