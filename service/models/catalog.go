package models

import (
	"strings"
)

// 目录类型常量
const (
	CatalogVocabulary = "vocabulary"
	CatalogDomain     = "domain"
	CatalogTerm       = "term"
	CatalogDatabase   = "database"
	CatalogEntity     = "entity"
	CatalogAttribute  = "attribute"
	CatalogTable      = "table"
	CatalogColumn     = "column"
)

// HistoryFilename 每个目录类型的审计日志文件
const HistoryFilename = "history.json"

// CatalogTypes 全部目录类型
var CatalogTypes = []string{
	CatalogVocabulary,
	CatalogDomain,
	CatalogTerm,
	CatalogDatabase,
	CatalogEntity,
	CatalogAttribute,
	CatalogTable,
	CatalogColumn,
}

// IsCatalogType 判断是否为已知目录类型
func IsCatalogType(catalogType string) bool {
	for _, t := range CatalogTypes {
		if t == catalogType {
			return true
		}
	}
	return false
}

// DefaultFilename 目录类型的默认文件名
func DefaultFilename(catalogType string) string {
	return catalogType + ".json"
}

// IsProtectedFile 系统文件不可重命名或删除
func IsProtectedFile(filename string) bool {
	switch filename {
	case "vocabulary.json", "domain.json", "term.json", HistoryFilename:
		return true
	}
	return false
}

// ResolveFilename 三级回退：显式参数 -> 已存映射 -> 默认文件名
func ResolveFilename(explicit, mapped, fallback string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if v := strings.TrimSpace(mapped); v != "" {
		return v
	}
	return fallback
}

func boolText(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func optionalBoolText(b *bool) string {
	if b == nil {
		return ""
	}
	return boolText(*b)
}

// ParseFlag 解析表格中的是/否标记
func ParseFlag(value string) (bool, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "Y", "YES", "TRUE", "1", "O", "예":
		return true, true
	case "N", "NO", "FALSE", "0", "X", "아니오":
		return false, true
	}
	return false, false
}

// SplitList 拆分逗号分隔的列表值
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
