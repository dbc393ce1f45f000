package term_validation

import (
	"fmt"
	"strings"

	"datastandard-service/service/meta"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"
)

// suggestionRule 针对某个错误类型生成修复建议，返回 nil 表示该错误没有可用动作
type suggestionRule struct {
	codes   []string
	suggest func(entry models.TermEntry, err models.ValidationError, a nameAnalysis, snapshot *word_mapping.Snapshot) *models.AutoFixSuggestion
}

// suggestionRules 按顺序匹配，只产生一个建议
var suggestionRules = []suggestionRule{
	{codes: []string{meta.TermNameLength}, suggest: suggestDeleteTerm},
	{codes: []string{meta.TermNameDuplicate, meta.TermUniqueness}, suggest: suggestDeleteDuplicate},
	{codes: []string{meta.TermNameMapping}, suggest: suggestVocabulary},
	{codes: []string{meta.ColumnNameMapping}, suggest: suggestColumnFromTerm},
	{codes: []string{meta.TermColumnOrderMismatch}, suggest: suggestColumnOrder},
	{codes: []string{meta.TermNameSuffix}, suggest: suggestSuffix},
	{codes: []string{meta.DomainNameMapping}, suggest: suggestDomain},
}

// Suggest 遍历已排序的错误，返回第一个能生成动作的建议
func Suggest(entry models.TermEntry, errs []models.ValidationError, snapshot *word_mapping.Snapshot) *models.AutoFixSuggestion {
	if len(errs) == 0 {
		return nil
	}
	a := analyze(entry, snapshot)
	for _, e := range errs {
		for _, rule := range suggestionRules {
			if !contains(rule.codes, e.Code) {
				continue
			}
			if s := rule.suggest(entry, e, a, snapshot); s != nil {
				s.ErrorType = e.Code
				return s
			}
		}
	}
	return nil
}

func suggestDeleteTerm(entry models.TermEntry, _ models.ValidationError, _ nameAnalysis, _ *word_mapping.Snapshot) *models.AutoFixSuggestion {
	return &models.AutoFixSuggestion{
		ActionType: meta.ActionDeleteTerm,
		Message:    fmt.Sprintf("용어명 '%s'은(는) 단어 구성이 올바르지 않아 삭제를 권장합니다", entry.TermName),
		Metadata:   map[string]interface{}{"entryId": entry.ID},
	}
}

func suggestDeleteDuplicate(entry models.TermEntry, err models.ValidationError, _ nameAnalysis, _ *word_mapping.Snapshot) *models.AutoFixSuggestion {
	return &models.AutoFixSuggestion{
		ActionType: meta.ActionDeleteDuplicate,
		Message:    "중복된 용어를 삭제하세요",
		Metadata: map[string]interface{}{
			"entryId":      entry.ID,
			"duplicateIds": err.Details["duplicateIds"],
		},
	}
}

// suggestVocabulary 未映射单词：命中其他单词的同义词/禁用词时建议选择标准单词，否则建议新增
func suggestVocabulary(_ models.TermEntry, _ models.ValidationError, a nameAnalysis, snapshot *word_mapping.Snapshot) *models.AutoFixSuggestion {
	unmapped := a.mapping.UnmappedTermParts

	var candidates []map[string]interface{}
	for _, part := range unmapped {
		for _, word := range snapshot.VocabularyEntries {
			if containsFold(word.Synonyms, part) || containsFold(word.ForbiddenWords, part) {
				candidates = append(candidates, map[string]interface{}{
					"part":         part,
					"vocabularyId": word.ID,
					"standardName": word.StandardName,
					"abbreviation": word.Abbreviation,
				})
			}
		}
	}
	if len(candidates) > 0 {
		return &models.AutoFixSuggestion{
			ActionType: meta.ActionSelectSynonym,
			Message:    "동의어 또는 금칙어로 등록된 단어가 있습니다. 표준단어를 선택하세요",
			Metadata:   map[string]interface{}{"candidates": candidates},
		}
	}

	proposals := make([]map[string]interface{}, 0, len(unmapped))
	for _, part := range unmapped {
		abbreviation := ""
		for i, termPart := range a.termParts {
			if termPart == part && len(a.termParts) == len(a.columnParts) {
				abbreviation = strings.ToUpper(a.columnParts[i])
				break
			}
		}
		proposals = append(proposals, map[string]interface{}{
			"standardName": part,
			"abbreviation": abbreviation,
		})
	}
	return &models.AutoFixSuggestion{
		ActionType: meta.ActionAddVocabulary,
		Message:    fmt.Sprintf("표준단어에 등록되지 않은 단어를 추가하세요: %s", strings.Join(unmapped, ", ")),
		Metadata:   map[string]interface{}{"proposals": proposals},
	}
}

// suggestColumnFromTerm 术语映射成功且部分数一致时，按位置改用标准缩写
func suggestColumnFromTerm(_ models.TermEntry, _ models.ValidationError, a nameAnalysis, snapshot *word_mapping.Snapshot) *models.AutoFixSuggestion {
	if !a.mapping.IsMappedTerm || len(a.termParts) != len(a.columnParts) {
		return nil
	}
	parts := make([]string, len(a.termParts))
	for i, termPart := range a.termParts {
		abbreviations := snapshot.Vocabulary.Abbreviations(termPart)
		if len(abbreviations) == 0 {
			return nil
		}
		if contains(abbreviations, strings.ToLower(a.columnParts[i])) {
			parts[i] = strings.ToUpper(a.columnParts[i])
		} else {
			parts[i] = strings.ToUpper(abbreviations[0])
		}
	}
	corrected := strings.Join(parts, "_")
	return &models.AutoFixSuggestion{
		ActionType: meta.ActionFixColumnName,
		Message:    fmt.Sprintf("칼럼명을 '%s'(으)로 수정하세요", corrected),
		Metadata:   map[string]interface{}{"correctedColumnName": corrected},
	}
}

func suggestColumnOrder(_ models.TermEntry, err models.ValidationError, _ nameAnalysis, _ *word_mapping.Snapshot) *models.AutoFixSuggestion {
	corrected, _ := err.Details["correctedColumnName"].(string)
	if corrected == "" {
		return nil
	}
	return &models.AutoFixSuggestion{
		ActionType: meta.ActionFixColumnName,
		Message:    fmt.Sprintf("칼럼명 단어 순서를 '%s'(으)로 수정하세요", corrected),
		Metadata: map[string]interface{}{
			"correctedColumnName": corrected,
			"mismatches":          err.Details["mismatches"],
		},
	}
}

func suggestSuffix(_ models.TermEntry, _ models.ValidationError, a nameAnalysis, snapshot *word_mapping.Snapshot) *models.AutoFixSuggestion {
	last := a.termParts[len(a.termParts)-1]
	words := snapshot.Vocabulary.Lookup(last)
	if len(words) == 0 {
		return nil
	}
	return &models.AutoFixSuggestion{
		ActionType: meta.ActionFixVocabularySuffix,
		Message:    fmt.Sprintf("표준단어 '%s'을(를) 형식단어로 지정하세요", words[0].StandardName),
		Metadata: map[string]interface{}{
			"vocabularyId": words[0].ID,
			"standardName": words[0].StandardName,
		},
	}
}

// suggestDomain 根据后缀单词的域分类推荐域名
func suggestDomain(_ models.TermEntry, _ models.ValidationError, a nameAnalysis, snapshot *word_mapping.Snapshot) *models.AutoFixSuggestion {
	if len(a.termParts) == 0 {
		return nil
	}
	category := ""
	for _, word := range snapshot.Vocabulary.Lookup(a.termParts[len(a.termParts)-1]) {
		if strings.TrimSpace(word.DomainCategory) != "" {
			category = word.DomainCategory
			break
		}
	}
	if category == "" {
		return nil
	}

	var candidates []string
	for _, domain := range snapshot.DomainEntries {
		if sameText(domain.DomainCategory, category) && domain.StandardDomainName != "" {
			candidates = append(candidates, domain.StandardDomainName)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return &models.AutoFixSuggestion{
		ActionType: meta.ActionAutoFixTermEditor,
		Message:    fmt.Sprintf("도메인 분류 '%s'에 해당하는 도메인을 선택하세요", category),
		Metadata: map[string]interface{}{
			"domainCategory":      category,
			"suggestedDomainName": candidates[0],
			"candidates":          candidates,
		},
	}
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if sameText(v, target) {
			return true
		}
	}
	return false
}
