/*
 * @module service/term_validation/validator
 * @description 术语校验器：对单个术语执行完整规则集，返回按优先级排序的错误列表
 * @architecture 分层架构 - 领域服务层（无状态）
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow 名称拆分 -> 长度检查 -> 重复/唯一性 -> 单词映射 -> 顺序 -> 后缀 -> 域映射 -> 排序
 * @rules 规则违例以结构化值返回；TERM_NAME_LENGTH 失败时跳过依赖名称拆分的规则
 * @dependencies datastandard-service/service/word_mapping, datastandard-service/service/meta
 * @refs service/term_validation/suggestion.go
 */

package term_validation

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"datastandard-service/service/meta"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"
)

// Context 校验所需的目录快照
type Context struct {
	Snapshot *word_mapping.Snapshot
	// ExistingTerms 为 nil 时跳过重复与唯一性检查（编辑模式）
	ExistingTerms []models.TermEntry
}

type nameAnalysis struct {
	termParts   []string
	columnParts []string
	mapping     word_mapping.MappingResult
}

func analyze(entry models.TermEntry, snapshot *word_mapping.Snapshot) nameAnalysis {
	return nameAnalysis{
		termParts:   word_mapping.SplitParts(entry.TermName),
		columnParts: word_mapping.SplitParts(entry.ColumnName),
		mapping:     snapshot.Check(entry),
	}
}

func newError(code, message, field string, details map[string]interface{}) models.ValidationError {
	level := meta.LevelError
	if rule, ok := meta.TermRule(code); ok {
		level = rule.Level
	}
	return models.ValidationError{
		Type:     code,
		Code:     code,
		Message:  message,
		Field:    field,
		Priority: meta.TermRulePriority(code),
		Level:    level,
		Details:  details,
	}
}

// Validate 校验单个术语，返回按优先级排序的错误
func Validate(entry models.TermEntry, vctx Context) []models.ValidationError {
	a := analyze(entry, vctx.Snapshot)
	var errs []models.ValidationError

	lengthOK := len(a.termParts) >= 2
	if !lengthOK {
		errs = append(errs, newError(meta.TermNameLength,
			"용어명은 '_'로 구분된 2개 이상의 단어로 구성되어야 합니다",
			"termName",
			map[string]interface{}{"partCount": len(a.termParts)}))
	}

	if vctx.ExistingTerms != nil {
		errs = append(errs, checkDuplicates(entry, vctx.ExistingTerms)...)
	}

	if lengthOK {
		if !a.mapping.IsMappedTerm {
			errs = append(errs, newError(meta.TermNameMapping,
				fmt.Sprintf("표준단어에 등록되지 않은 용어 단어가 있습니다: %s", strings.Join(a.mapping.UnmappedTermParts, ", ")),
				"termName",
				map[string]interface{}{"unmappedParts": a.mapping.UnmappedTermParts}))
		}
		if !a.mapping.IsMappedColumn {
			errs = append(errs, newError(meta.ColumnNameMapping,
				fmt.Sprintf("표준단어 영문약어에 등록되지 않은 칼럼 단어가 있습니다: %s", strings.Join(a.mapping.UnmappedColumnParts, ", ")),
				"columnName",
				map[string]interface{}{"unmappedParts": a.mapping.UnmappedColumnParts}))
		}
		if a.mapping.IsMappedTerm && a.mapping.IsMappedColumn {
			if e, ok := checkOrder(a, vctx.Snapshot.Vocabulary); ok {
				errs = append(errs, e)
			}
		}
		if e, ok := checkSuffix(a, vctx.Snapshot.Vocabulary); ok {
			errs = append(errs, e)
		}
	}

	if !a.mapping.IsMappedDomain {
		errs = append(errs, newError(meta.DomainNameMapping,
			fmt.Sprintf("도메인 목록에 존재하지 않는 도메인명입니다: %s", entry.DomainName),
			"domainName",
			map[string]interface{}{"domainName": entry.DomainName}))
	}

	SortErrors(errs)
	return errs
}

// SortErrors 按规则优先级排序，优先级相同保持原顺序
func SortErrors(errs []models.ValidationError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Priority < errs[j].Priority
	})
}

// PrimaryStatus 首个错误决定HTTP状态：重复/唯一性为409，其余为400
func PrimaryStatus(errs []models.ValidationError) int {
	if len(errs) == 0 {
		return http.StatusOK
	}
	if meta.IsConflictRule(errs[0].Code) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func checkDuplicates(entry models.TermEntry, existing []models.TermEntry) []models.ValidationError {
	var duplicateIDs, tripleIDs []string
	for _, other := range existing {
		if entry.ID != "" && other.ID == entry.ID {
			continue
		}
		if sameText(other.TermName, entry.TermName) {
			duplicateIDs = append(duplicateIDs, other.ID)
		}
		if entry.SameTriple(other) {
			tripleIDs = append(tripleIDs, other.ID)
		}
	}

	var errs []models.ValidationError
	if len(duplicateIDs) > 0 {
		errs = append(errs, newError(meta.TermNameDuplicate,
			fmt.Sprintf("이미 존재하는 용어명입니다: %s", entry.TermName),
			"termName",
			map[string]interface{}{"duplicateIds": duplicateIDs}))
	}
	if len(tripleIDs) > 0 {
		errs = append(errs, newError(meta.TermUniqueness,
			"동일한 용어명, 칼럼명, 도메인명 조합이 이미 존재합니다",
			"termName",
			map[string]interface{}{"duplicateIds": tripleIDs}))
	}
	return errs
}

// checkOrder 逐位置比较列名缩写是否属于对应术语单词的可接受缩写
func checkOrder(a nameAnalysis, vocabulary word_mapping.VocabularyMap) (models.ValidationError, bool) {
	size := len(a.termParts)
	if len(a.columnParts) > size {
		size = len(a.columnParts)
	}

	var mismatches []models.OrderMismatch
	for i := 0; i < size; i++ {
		var acceptable []string
		if i < len(a.termParts) {
			acceptable = vocabulary.Abbreviations(a.termParts[i])
		}
		actual := ""
		if i < len(a.columnParts) {
			actual = a.columnParts[i]
		}
		if contains(acceptable, strings.ToLower(actual)) {
			continue
		}
		expected := ""
		if len(acceptable) > 0 {
			expected = strings.ToUpper(acceptable[0])
		}
		mismatches = append(mismatches, models.OrderMismatch{Position: i + 1, Expected: expected, Actual: actual})
	}
	if len(mismatches) == 0 {
		return models.ValidationError{}, false
	}

	corrected := CorrectedColumnName(a.termParts, a.columnParts, vocabulary)
	return newError(meta.TermColumnOrderMismatch,
		fmt.Sprintf("칼럼명의 단어 순서가 용어명과 일치하지 않습니다. 올바른 칼럼명: %s", corrected),
		"columnName",
		map[string]interface{}{
			"mismatches":          mismatches,
			"correctedColumnName": corrected,
		}), true
}

// CorrectedColumnName 按术语单词顺序重建列名：优先使用列名中已出现的可接受缩写
func CorrectedColumnName(termParts, columnParts []string, vocabulary word_mapping.VocabularyMap) string {
	used := make([]bool, len(columnParts))
	out := make([]string, 0, len(termParts))
	for _, part := range termParts {
		acceptable := vocabulary.Abbreviations(part)
		if len(acceptable) == 0 {
			out = append(out, strings.ToUpper(part))
			continue
		}
		chosen := strings.ToUpper(acceptable[0])
		for j, col := range columnParts {
			if !used[j] && contains(acceptable, strings.ToLower(col)) {
				used[j] = true
				chosen = strings.ToUpper(col)
				break
			}
		}
		out = append(out, chosen)
	}
	return strings.Join(out, "_")
}

func checkSuffix(a nameAnalysis, vocabulary word_mapping.VocabularyMap) (models.ValidationError, bool) {
	last := a.termParts[len(a.termParts)-1]
	for _, entry := range vocabulary.Lookup(last) {
		if entry.FormalWord() {
			return models.ValidationError{}, false
		}
	}
	return newError(meta.TermNameSuffix,
		fmt.Sprintf("용어명의 마지막 단어(%s)는 형식단어여야 합니다", last),
		"termName",
		map[string]interface{}{"suffix": last}), true
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
