/*
 * @module service/models/domain
 * @description 域（物理/逻辑类型规格）模型
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 创建 -> 生成标准域名 -> 更新/删除
 * @rules 标准域名在所有域文件中唯一
 * @dependencies strings
 * @refs service/word_mapping/engine.go
 */

package models

import (
	"strings"
)

// DomainEntry 域条目
type DomainEntry struct {
	EntryMeta
	DomainGroup        string      `json:"domainGroup"`
	DomainCategory     string      `json:"domainCategory"`
	StandardDomainName string      `json:"standardDomainName"`
	PhysicalDataType   string      `json:"physicalDataType"`
	DataLength         LooseString `json:"dataLength,omitempty"`
	DecimalPlaces      LooseString `json:"decimalPlaces,omitempty"`
	Description        string      `json:"description,omitempty"`
}

// BuildStandardDomainName 生成标准域名：分类_物理类型(长度).小数位
func BuildStandardDomainName(category, physicalType, length, decimal string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(category))
	b.WriteString("_")
	b.WriteString(strings.TrimSpace(physicalType))
	if l := strings.TrimSpace(length); l != "" {
		b.WriteString("(")
		b.WriteString(l)
		b.WriteString(")")
	}
	if d := strings.TrimSpace(decimal); d != "" {
		b.WriteString(".")
		b.WriteString(d)
	}
	return b.String()
}

// Normalize 重新生成派生的标准域名
func (d *DomainEntry) Normalize() {
	if strings.TrimSpace(d.DomainCategory) != "" && strings.TrimSpace(d.PhysicalDataType) != "" {
		d.StandardDomainName = BuildStandardDomainName(d.DomainCategory, d.PhysicalDataType, d.DataLength.String(), d.DecimalPlaces.String())
	}
}

// FieldValue 按字段名读取值
func (d DomainEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return d.ID, true
	case "domainGroup":
		return d.DomainGroup, true
	case "domainCategory":
		return d.DomainCategory, true
	case "standardDomainName":
		return d.StandardDomainName, true
	case "physicalDataType":
		return d.PhysicalDataType, true
	case "dataLength":
		return d.DataLength.String(), true
	case "decimalPlaces":
		return d.DecimalPlaces.String(), true
	case "description":
		return d.Description, true
	case "createdAt":
		return d.CreatedAt, true
	case "updatedAt":
		return d.UpdatedAt, true
	}
	return "", false
}

// SetField 按字段名写入值
func (d *DomainEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "domainGroup":
		d.DomainGroup = value
	case "domainCategory":
		d.DomainCategory = value
	case "standardDomainName":
		d.StandardDomainName = value
	case "physicalDataType":
		d.PhysicalDataType = value
	case "dataLength":
		d.DataLength = LooseString(value)
	case "decimalPlaces":
		d.DecimalPlaces = LooseString(value)
	case "description":
		d.Description = value
	default:
		return false
	}
	return true
}

// MissingFields 返回缺失的必填字段
func (d *DomainEntry) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.DomainGroup) == "" {
		missing = append(missing, "domainGroup")
	}
	if strings.TrimSpace(d.DomainCategory) == "" {
		missing = append(missing, "domainCategory")
	}
	if strings.TrimSpace(d.PhysicalDataType) == "" {
		missing = append(missing, "physicalDataType")
	}
	return missing
}
