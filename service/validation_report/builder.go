/*
 * @module service/validation_report/builder
 * @description 统一校验报告：并发获取术语全量校验与实体关系校验结果，归一化为统一问题列表
 * @architecture 扇出/扇入 - errgroup 并发两个内部接口调用
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow 并发调用 -> 任一失败即返回 -> 归一化 -> 按 级别/优先级/代码 排序 -> 汇总
 * @rules 级别顺序 error > auto-fixable > warning > info；关系问题优先级 error=100, warning=200
 * @dependencies golang.org/x/sync/errgroup, datastandard-service/client
 * @refs api/controllers/alignment_controller.go, service/alignment/orchestrator.go
 */

package validation_report

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"datastandard-service/client"
	"datastandard-service/service/meta"
	"datastandard-service/service/metrics"
	"datastandard-service/service/models"

	"golang.org/x/sync/errgroup"
)

// 问题来源
const (
	SourceTerm     = "term"
	SourceRelation = "relation"
)

// Summary 报告汇总
type Summary struct {
	TotalIssues            int `json:"totalIssues"`
	ErrorCount             int `json:"errorCount"`
	AutoFixableCount       int `json:"autoFixableCount"`
	WarningCount           int `json:"warningCount"`
	InfoCount              int `json:"infoCount"`
	TermFailedCount        int `json:"termFailedCount"`
	RelationUnmatchedCount int `json:"relationUnmatchedCount"`
}

// TermSection 术语校验分区
type TermSection struct {
	TotalCount  int `json:"totalCount"`
	PassedCount int `json:"passedCount"`
	FailedCount int `json:"failedCount"`
}

// RelationSection 关系校验分区
type RelationSection struct {
	ErrorCount             int `json:"errorCount"`
	WarningCount           int `json:"warningCount"`
	RelationUnmatchedCount int `json:"relationUnmatchedCount"`
}

// Sections 报告分区
type Sections struct {
	Term     TermSection     `json:"term"`
	Relation RelationSection `json:"relation"`
}

// Report 统一校验报告
type Report struct {
	Files       map[string]string               `json:"files"`
	Summary     Summary                         `json:"summary"`
	Sections    Sections                        `json:"sections"`
	Issues      []models.UnifiedValidationIssue `json:"issues"`
	GeneratedAt string                          `json:"generatedAt"`
}

// BranchError 某一数据来源获取失败
type BranchError struct {
	Source     string
	StatusCode int
	Message    string
	Err        error
}

func (e *BranchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s validation fetch failed: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s validation fetch failed: %s", e.Source, e.Message)
}

func (e *BranchError) Unwrap() error {
	return e.Err
}

// Builder 统一校验报告生成器
type Builder struct {
	caller client.StepCaller
}

// NewBuilder 创建报告生成器
func NewBuilder(caller client.StepCaller) *Builder {
	return &Builder{caller: caller}
}

// Generate 生成报告；query 中的 termFile 用于术语校验，其余设计文件参数透传给关系校验
func (b *Builder) Generate(ctx context.Context, query url.Values) (*Report, error) {
	termQuery := url.Values{}
	if termFile := query.Get("termFile"); termFile != "" {
		termQuery.Set("filename", termFile)
	}
	relationQuery := url.Values{}
	for _, key := range []string{"databaseFile", "entityFile", "attributeFile", "tableFile", "columnFile"} {
		if v := query.Get(key); v != "" {
			relationQuery.Set(key, v)
		}
	}

	var (
		termSummary    models.TermValidationSummary
		relationResult models.RelationValidationResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.fetch(gctx, SourceTerm, "/api/term/validate-all", termQuery, "용어 검증 결과를 가져오지 못했습니다", &termSummary)
	})
	g.Go(func() error {
		return b.fetch(gctx, SourceRelation, "/api/erd/relations/validate", relationQuery, "관계 검증 결과를 가져오지 못했습니다", &relationResult)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := Build(&termSummary, &relationResult)
	recordIssueMetrics(report.Summary)
	slog.Info("统一校验报告生成完成",
		"total_issues", report.Summary.TotalIssues,
		"term_failed", report.Summary.TermFailedCount,
		"relation_unmatched", report.Summary.RelationUnmatchedCount)
	return report, nil
}

func (b *Builder) fetch(ctx context.Context, source, path string, query url.Values, message string, target interface{}) error {
	result, err := b.caller.Call(ctx, http.MethodGet, path, query)
	if err != nil {
		return &BranchError{Source: source, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
	}
	if !result.Success {
		status := result.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		detail := message
		if result.Error != "" {
			detail = fmt.Sprintf("%s: %s", message, result.Error)
		}
		return &BranchError{Source: source, StatusCode: status, Message: detail}
	}
	if err := result.DecodeData(target); err != nil {
		return &BranchError{Source: source, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
	}
	return nil
}

// Build 由两类校验结果构建统一报告
func Build(term *models.TermValidationSummary, relation *models.RelationValidationResult) *Report {
	report := &Report{
		Files:  map[string]string{},
		Issues: make([]models.UnifiedValidationIssue, 0),
		Sections: Sections{
			Term: TermSection{
				TotalCount:  term.TotalCount,
				PassedCount: term.PassedCount,
				FailedCount: term.FailedCount,
			},
			Relation: RelationSection{
				ErrorCount:             relation.ErrorCount,
				WarningCount:           relation.WarningCount,
				RelationUnmatchedCount: relation.RelationUnmatchedCount,
			},
		},
		GeneratedAt: models.Now(),
	}

	termFile := term.Filename
	if termFile == "" {
		termFile = models.DefaultFilename(models.CatalogTerm)
	}
	report.Files[models.CatalogTerm] = termFile
	for k, v := range relation.Files {
		report.Files[k] = v
	}

	for _, failed := range term.FailedEntries {
		report.Issues = append(report.Issues, termIssues(failed)...)
	}
	for _, issue := range relation.Issues {
		report.Issues = append(report.Issues, relationIssue(issue))
	}
	SortIssues(report.Issues)

	report.Summary = summarize(report.Issues)
	report.Summary.TermFailedCount = term.FailedCount
	report.Summary.RelationUnmatchedCount = relation.RelationUnmatchedCount
	return report
}

func termIssues(failed models.FailedTermEntry) []models.UnifiedValidationIssue {
	issues := make([]models.UnifiedValidationIssue, 0, len(failed.Errors))
	suggestion := failed.Suggestions
	for _, ve := range failed.Errors {
		issue := models.UnifiedValidationIssue{
			Source:   SourceTerm,
			Level:    ve.Level,
			Code:     ve.Code,
			Message:  ve.Message,
			EntryID:  failed.Entry.ID,
			Label:    failed.Entry.TermName,
			Field:    ve.Field,
			Priority: ve.Priority,
		}
		if issue.Level == "" {
			issue.Level = meta.LevelError
		}
		if suggestion != nil && suggestion.ActionType != "" {
			issue.Level = meta.LevelAutoFixable
			issue.Metadata = map[string]interface{}{
				"actionType": suggestion.ActionType,
				"suggestion": suggestion,
			}
		}
		issues = append(issues, issue)
	}
	return issues
}

func relationIssue(issue models.RelationIssue) models.UnifiedValidationIssue {
	level, priority := meta.LevelWarning, meta.RelationWarningPriority
	if issue.Severity == meta.LevelError {
		level, priority = meta.LevelError, meta.RelationErrorPriority
	}
	return models.UnifiedValidationIssue{
		Source:   SourceRelation,
		Level:    level,
		Code:     issue.Code,
		Message:  issue.Message,
		EntryID:  issue.EntryID,
		Label:    issue.Label,
		Field:    issue.Field,
		Priority: priority,
		Metadata: map[string]interface{}{"catalog": issue.Catalog},
	}
}

func levelRank(level string) int {
	if rank, ok := meta.LevelOrder[level]; ok {
		return rank
	}
	return len(meta.LevelOrder)
}

// SortIssues 按 级别序号 -> 优先级 -> 代码 排序
func SortIssues(issues []models.UnifiedValidationIssue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if ra, rb := levelRank(a.Level), levelRank(b.Level); ra != rb {
			return ra < rb
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Code < b.Code
	})
}

func summarize(issues []models.UnifiedValidationIssue) Summary {
	s := Summary{TotalIssues: len(issues)}
	for _, issue := range issues {
		switch issue.Level {
		case meta.LevelError:
			s.ErrorCount++
		case meta.LevelAutoFixable:
			s.AutoFixableCount++
		case meta.LevelWarning:
			s.WarningCount++
		default:
			s.InfoCount++
		}
	}
	return s
}

func recordIssueMetrics(s Summary) {
	metrics.ValidationIssues.WithLabelValues(meta.LevelError).Set(float64(s.ErrorCount))
	metrics.ValidationIssues.WithLabelValues(meta.LevelAutoFixable).Set(float64(s.AutoFixableCount))
	metrics.ValidationIssues.WithLabelValues(meta.LevelWarning).Set(float64(s.WarningCount))
	metrics.ValidationIssues.WithLabelValues(meta.LevelInfo).Set(float64(s.InfoCount))
}
