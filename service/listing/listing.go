/*
 * @module service/listing/listing
 * @description 目录条目通用列表：搜索、精确过滤、排序、分页，适用于任意实现字段读取能力的条目类型
 * @architecture 分层架构 - 通用服务层
 * @documentReference ai_docs/api_conventions.md
 * @stateFlow 查询参数解析 -> 搜索 -> 过滤 -> 排序 -> 分页
 * @rules page>=1；1<=limit<=上限（默认100，标准单词1000）；数值优先按数字比较，其余按韩文排序规则
 * @dependencies github.com/spf13/cast, golang.org/x/text/collate
 * @refs api/controllers/catalog_controller.go
 */

package listing

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"datastandard-service/service/models"

	"github.com/spf13/cast"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// 分页上限
const (
	DefaultLimit       = 20
	MaxLimit           = 100
	MaxVocabularyLimit = 1000
)

// Query 列表查询参数
type Query struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
	Field     string
	Filters   map[string]string
}

// Pagination 分页信息
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Page 一页结果
type Page[T any] struct {
	Entries     []T        `json:"entries"`
	Pagination  Pagination `json:"pagination"`
	LastUpdated string     `json:"lastUpdated,omitempty"`
}

// MaxLimitFor 目录类型的 limit 上限
func MaxLimitFor(catalogType string) int {
	if catalogType == models.CatalogVocabulary {
		return MaxVocabularyLimit
	}
	return MaxLimit
}

// ParseQuery 解析并校验查询参数，filters[col]=val 形式的参数进入 Filters
func ParseQuery(values url.Values, maxLimit int) (Query, error) {
	q := Query{
		Page:      1,
		Limit:     DefaultLimit,
		SortBy:    strings.TrimSpace(values.Get("sortBy")),
		SortOrder: strings.ToLower(strings.TrimSpace(values.Get("sortOrder"))),
		Search:    strings.TrimSpace(values.Get("query")),
		Field:     strings.TrimSpace(values.Get("field")),
		Filters:   map[string]string{},
	}

	if raw := values.Get("page"); raw != "" {
		page, err := cast.ToIntE(raw)
		if err != nil || page < 1 {
			return q, models.NewValidationError("page는 1 이상의 정수여야 합니다")
		}
		q.Page = page
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := cast.ToIntE(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return q, models.NewValidationError(fmt.Sprintf("limit는 1에서 %d 사이여야 합니다", maxLimit))
		}
		q.Limit = limit
	}
	if q.SortOrder != "" && q.SortOrder != "asc" && q.SortOrder != "desc" {
		return q, models.NewValidationError("sortOrder는 asc 또는 desc여야 합니다")
	}

	for k, v := range values {
		if strings.HasPrefix(k, "filters[") && strings.HasSuffix(k, "]") && len(v) > 0 {
			col := strings.TrimSuffix(strings.TrimPrefix(k, "filters["), "]")
			if col != "" && strings.TrimSpace(v[0]) != "" {
				q.Filters[col] = strings.TrimSpace(v[0])
			}
		}
	}
	return q, nil
}

// Apply 对条目执行搜索、过滤、排序、分页；searchFields 为未指定 field 时的搜索字段
func Apply[T models.Fielder](entries []T, q Query, searchFields []string) Page[T] {
	filtered := make([]T, 0, len(entries))
	for _, entry := range entries {
		if matchesSearch(entry, q, searchFields) && matchesFilters(entry, q.Filters) {
			filtered = append(filtered, entry)
		}
	}

	if q.SortBy != "" {
		sortEntries(filtered, q.SortBy, q.SortOrder == "desc")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page[T]{
		Entries: filtered[start:end],
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			Limit:       limit,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
}

func matchesSearch(entry models.Fielder, q Query, searchFields []string) bool {
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	fields := searchFields
	if q.Field != "" && q.Field != "all" {
		fields = []string{q.Field}
	}
	for _, field := range fields {
		if value, ok := entry.FieldValue(field); ok && strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

func matchesFilters(entry models.Fielder, filters map[string]string) bool {
	for field, want := range filters {
		value, ok := entry.FieldValue(field)
		if !ok || !strings.EqualFold(strings.TrimSpace(value), want) {
			return false
		}
	}
	return true
}

func sortEntries[T models.Fielder](entries []T, field string, desc bool) {
	collator := collate.New(language.Korean, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		a, _ := entries[i].FieldValue(field)
		b, _ := entries[j].FieldValue(field)
		c := compareValues(collator, a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareValues(collator *collate.Collator, a, b string) int {
	if a != "" && b != "" {
		fa, errA := cast.ToFloat64E(a)
		fb, errB := cast.ToFloat64E(b)
		if errA == nil && errB == nil {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return collator.CompareString(a, b)
}
