/*
 * @module service/models/vocabulary
 * @description 标准单词（词汇表）模型
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 创建(POST) -> 合并更新(PUT) -> 删除(DELETE)
 * @rules 标准单词名/缩写/英文名必填，缩写在同一文件内唯一
 * @dependencies strings
 * @refs service/word_mapping/engine.go
 */

package models

import (
	"strings"
)

// VocabularyEntry 标准单词条目
type VocabularyEntry struct {
	EntryMeta
	StandardName           string   `json:"standardName"`
	Abbreviation           string   `json:"abbreviation"`
	EnglishName            string   `json:"englishName"`
	Description            string   `json:"description"`
	DomainCategory         string   `json:"domainCategory,omitempty"`
	DomainGroup            string   `json:"domainGroup,omitempty"`
	IsDomainCategoryMapped bool     `json:"isDomainCategoryMapped"`
	IsFormalWord           *bool    `json:"isFormalWord,omitempty"`
	Synonyms               []string `json:"synonyms,omitempty"`
	ForbiddenWords         []string `json:"forbiddenWords,omitempty"`
}

// FormalWord 是否可作为术语后缀（形式词）
func (v VocabularyEntry) FormalWord() bool {
	return v.IsFormalWord != nil && *v.IsFormalWord
}

// FieldValue 按字段名读取值
func (v VocabularyEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return v.ID, true
	case "standardName":
		return v.StandardName, true
	case "abbreviation":
		return v.Abbreviation, true
	case "englishName":
		return v.EnglishName, true
	case "description":
		return v.Description, true
	case "domainCategory":
		return v.DomainCategory, true
	case "domainGroup":
		return v.DomainGroup, true
	case "isDomainCategoryMapped":
		return boolText(v.IsDomainCategoryMapped), true
	case "isFormalWord":
		return optionalBoolText(v.IsFormalWord), true
	case "synonyms":
		return strings.Join(v.Synonyms, ", "), true
	case "forbiddenWords":
		return strings.Join(v.ForbiddenWords, ", "), true
	case "createdAt":
		return v.CreatedAt, true
	case "updatedAt":
		return v.UpdatedAt, true
	}
	return "", false
}

// SetField 按字段名写入值（表格导入使用）
func (v *VocabularyEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "standardName":
		v.StandardName = value
	case "abbreviation":
		v.Abbreviation = value
	case "englishName":
		v.EnglishName = value
	case "description":
		v.Description = value
	case "domainCategory":
		v.DomainCategory = value
	case "domainGroup":
		v.DomainGroup = value
	case "isFormalWord":
		if b, ok := ParseFlag(value); ok {
			v.IsFormalWord = &b
		}
	case "synonyms":
		v.Synonyms = SplitList(value)
	case "forbiddenWords":
		v.ForbiddenWords = SplitList(value)
	default:
		return false
	}
	return true
}

// MissingFields 返回缺失的必填字段
func (v *VocabularyEntry) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(v.StandardName) == "" {
		missing = append(missing, "standardName")
	}
	if strings.TrimSpace(v.Abbreviation) == "" {
		missing = append(missing, "abbreviation")
	}
	if strings.TrimSpace(v.EnglishName) == "" {
		missing = append(missing, "englishName")
	}
	return missing
}
