/*
 * @module service/models/validation
 * @description 术语校验、关系校验与统一校验报告的结果模型
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow 规则执行 -> 错误排序 -> 自动修复建议 -> 统一报告
 * @rules 校验器以结构化值返回规则违例，不抛出错误
 * @dependencies 无
 * @refs service/term_validation/validator.go, service/validation_report/builder.go
 */

package models

// ValidationError 单条规则违例
type ValidationError struct {
	Type     string                 `json:"type"`
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	Field    string                 `json:"field,omitempty"`
	Priority int                    `json:"priority"`
	Level    string                 `json:"level,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// OrderMismatch 列名缩写与术语顺序不一致的位置
type OrderMismatch struct {
	Position int    `json:"position"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// AutoFixSuggestion 自动修复建议
type AutoFixSuggestion struct {
	ActionType string                 `json:"actionType"`
	ErrorType  string                 `json:"errorType"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// FailedTermEntry 校验失败的术语
type FailedTermEntry struct {
	Entry       TermEntry          `json:"entry"`
	Errors      []ValidationError  `json:"errors"`
	Suggestions *AutoFixSuggestion `json:"suggestions,omitempty"`
}

// TermValidationSummary 全量术语校验结果
type TermValidationSummary struct {
	Filename      string            `json:"filename"`
	TotalCount    int               `json:"totalCount"`
	PassedCount   int               `json:"passedCount"`
	FailedCount   int               `json:"failedCount"`
	FailedEntries []FailedTermEntry `json:"failedEntries"`
}

// RelationIssue 设计套件关系校验问题
type RelationIssue struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Catalog  string `json:"catalog"`
	EntryID  string `json:"entryId"`
	Label    string `json:"label"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// RelationValidationResult 关系校验结果
type RelationValidationResult struct {
	Files                  map[string]string `json:"files"`
	RelationUnmatchedCount int               `json:"relationUnmatchedCount"`
	ErrorCount             int               `json:"errorCount"`
	WarningCount           int               `json:"warningCount"`
	Issues                 []RelationIssue   `json:"issues"`
}

// UnifiedValidationIssue 统一校验报告中的问题
type UnifiedValidationIssue struct {
	Source   string                 `json:"source"`
	Level    string                 `json:"level"`
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	EntryID  string                 `json:"entryId"`
	Label    string                 `json:"label"`
	Field    string                 `json:"field,omitempty"`
	Priority int                    `json:"priority"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
