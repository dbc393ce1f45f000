/*
 * @module service/models/term
 * @description 业务术语模型，术语由标准单词组成并绑定列名与域
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 创建 -> 读取时重新计算映射标记 -> 更新/删除
 * @rules 术语名至少由两个下划线分隔的部分组成；映射标记是派生值，不作为存储真值
 * @dependencies strings
 * @refs service/word_mapping/engine.go, service/term_validation/validator.go
 */

package models

import (
	"strings"
)

// TermEntry 术语条目
type TermEntry struct {
	EntryMeta
	TermName            string   `json:"termName"`
	ColumnName          string   `json:"columnName"`
	DomainName          string   `json:"domainName"`
	Description         string   `json:"description,omitempty"`
	IsMappedTerm        bool     `json:"isMappedTerm"`
	IsMappedColumn      bool     `json:"isMappedColumn"`
	IsMappedDomain      bool     `json:"isMappedDomain"`
	UnmappedTermParts   []string `json:"unmappedTermParts,omitempty"`
	UnmappedColumnParts []string `json:"unmappedColumnParts,omitempty"`
}

// FieldValue 按字段名读取值
func (t TermEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return t.ID, true
	case "termName":
		return t.TermName, true
	case "columnName":
		return t.ColumnName, true
	case "domainName":
		return t.DomainName, true
	case "description":
		return t.Description, true
	case "isMappedTerm":
		return boolText(t.IsMappedTerm), true
	case "isMappedColumn":
		return boolText(t.IsMappedColumn), true
	case "isMappedDomain":
		return boolText(t.IsMappedDomain), true
	case "unmappedTermParts":
		return strings.Join(t.UnmappedTermParts, ", "), true
	case "unmappedColumnParts":
		return strings.Join(t.UnmappedColumnParts, ", "), true
	case "createdAt":
		return t.CreatedAt, true
	case "updatedAt":
		return t.UpdatedAt, true
	}
	return "", false
}

// SetField 按字段名写入值
func (t *TermEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "termName":
		t.TermName = value
	case "columnName":
		t.ColumnName = value
	case "domainName":
		t.DomainName = value
	case "description":
		t.Description = value
	default:
		return false
	}
	return true
}

// MissingFields 返回缺失的必填字段
func (t *TermEntry) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(t.TermName) == "" {
		missing = append(missing, "termName")
	}
	if strings.TrimSpace(t.ColumnName) == "" {
		missing = append(missing, "columnName")
	}
	if strings.TrimSpace(t.DomainName) == "" {
		missing = append(missing, "domainName")
	}
	return missing
}

// SameTriple 判断术语名/列名/域名三元组是否一致（忽略大小写）
func (t TermEntry) SameTriple(other TermEntry) bool {
	return strings.EqualFold(strings.TrimSpace(t.TermName), strings.TrimSpace(other.TermName)) &&
		strings.EqualFold(strings.TrimSpace(t.ColumnName), strings.TrimSpace(other.ColumnName)) &&
		strings.EqualFold(strings.TrimSpace(t.DomainName), strings.TrimSpace(other.DomainName))
}
