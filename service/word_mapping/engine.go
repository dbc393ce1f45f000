/*
 * @module service/word_mapping/engine
 * @description 单词映射引擎：把复合名称拆分为下划线分隔的部分，并与标准单词、域目录进行匹配
 * @architecture 分层架构 - 领域服务层（纯函数）
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow 目录快照 -> 构建查找表 -> 名称拆分 -> 逐部分匹配
 * @rules 只做 trim + 小写 规范化，不做模糊匹配；标准单词名与缩写共用一个查找表
 * @dependencies datastandard-service/service/models
 * @refs service/term_validation/validator.go, service/catalog_sync/term_sync.go
 */

package word_mapping

import (
	"strings"

	"datastandard-service/service/models"
)

// VocabularyMap 小写键（标准单词名或缩写）到标准单词条目的查找表
type VocabularyMap map[string][]models.VocabularyEntry

// DomainMap 小写标准域名到域条目的查找表
type DomainMap map[string]models.DomainEntry

// MappingResult 术语映射检查结果
type MappingResult struct {
	IsMappedTerm        bool     `json:"isMappedTerm"`
	IsMappedColumn      bool     `json:"isMappedColumn"`
	IsMappedDomain      bool     `json:"isMappedDomain"`
	UnmappedTermParts   []string `json:"unmappedTermParts"`
	UnmappedColumnParts []string `json:"unmappedColumnParts"`
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// SplitParts 按下划线拆分名称，去除空白部分
func SplitParts(name string) []string {
	raw := strings.Split(name, "_")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// BuildVocabularyMap 把标准单词名和缩写都索引进同一个查找表
func BuildVocabularyMap(entries []models.VocabularyEntry) VocabularyMap {
	m := make(VocabularyMap, len(entries)*2)
	for _, entry := range entries {
		keys := []string{normalizeKey(entry.StandardName)}
		if abbr := normalizeKey(entry.Abbreviation); abbr != keys[0] {
			keys = append(keys, abbr)
		}
		for _, key := range keys {
			if key == "" {
				continue
			}
			m[key] = append(m[key], entry)
		}
	}
	return m
}

// Has 判断某个部分是否为已知单词
func (m VocabularyMap) Has(part string) bool {
	return len(m[normalizeKey(part)]) > 0
}

// Lookup 返回与该部分匹配的全部标准单词
func (m VocabularyMap) Lookup(part string) []models.VocabularyEntry {
	return m[normalizeKey(part)]
}

// Abbreviations 该部分可接受的全部缩写（小写，保持首次出现顺序）
func (m VocabularyMap) Abbreviations(part string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, entry := range m.Lookup(part) {
		abbr := normalizeKey(entry.Abbreviation)
		if abbr == "" || seen[abbr] {
			continue
		}
		seen[abbr] = true
		out = append(out, abbr)
	}
	return out
}

// BuildDomainMap 按小写标准域名索引域目录，重复时保留第一个
func BuildDomainMap(entries []models.DomainEntry) DomainMap {
	m := make(DomainMap, len(entries))
	for _, entry := range entries {
		key := normalizeKey(entry.StandardDomainName)
		if key == "" {
			continue
		}
		if _, exists := m[key]; !exists {
			m[key] = entry
		}
	}
	return m
}

// Lookup 按标准域名精确查找（忽略大小写和首尾空白）
func (m DomainMap) Lookup(domainName string) (models.DomainEntry, bool) {
	entry, ok := m[normalizeKey(domainName)]
	return entry, ok
}

// UnmappedParts 返回名称中所有未知部分；名称没有任何部分时也视为未映射
func UnmappedParts(name string, vocabulary VocabularyMap) (parts []string, unmapped []string) {
	parts = SplitParts(name)
	unmapped = make([]string, 0)
	for _, part := range parts {
		if !vocabulary.Has(part) {
			unmapped = append(unmapped, part)
		}
	}
	return parts, unmapped
}

// CheckTermMapping 检查术语名、列名、域名的映射情况
func CheckTermMapping(termName, columnName, domainName string, vocabulary VocabularyMap, domains DomainMap) MappingResult {
	termParts, unmappedTerm := UnmappedParts(termName, vocabulary)
	columnParts, unmappedColumn := UnmappedParts(columnName, vocabulary)
	_, domainFound := domains.Lookup(domainName)

	return MappingResult{
		IsMappedTerm:        len(termParts) > 0 && len(unmappedTerm) == 0,
		IsMappedColumn:      len(columnParts) > 0 && len(unmappedColumn) == 0,
		IsMappedDomain:      strings.TrimSpace(domainName) != "" && domainFound,
		UnmappedTermParts:   unmappedTerm,
		UnmappedColumnParts: unmappedColumn,
	}
}

// ApplyTo 把映射结果写回术语条目，返回是否有变化
func (r MappingResult) ApplyTo(entry *models.TermEntry) bool {
	changed := entry.IsMappedTerm != r.IsMappedTerm ||
		entry.IsMappedColumn != r.IsMappedColumn ||
		entry.IsMappedDomain != r.IsMappedDomain ||
		!sameParts(entry.UnmappedTermParts, r.UnmappedTermParts) ||
		!sameParts(entry.UnmappedColumnParts, r.UnmappedColumnParts)

	entry.IsMappedTerm = r.IsMappedTerm
	entry.IsMappedColumn = r.IsMappedColumn
	entry.IsMappedDomain = r.IsMappedDomain
	entry.UnmappedTermParts = nilIfEmpty(r.UnmappedTermParts)
	entry.UnmappedColumnParts = nilIfEmpty(r.UnmappedColumnParts)
	return changed
}

func sameParts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func nilIfEmpty(parts []string) []string {
	if len(parts) == 0 {
		return nil
	}
	return append([]string(nil), parts...)
}
