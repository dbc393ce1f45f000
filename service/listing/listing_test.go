package listing

import (
	"net/url"
	"testing"

	"datastandard-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words() []models.VocabularyEntry {
	return []models.VocabularyEntry{
		{StandardName: "사용자", Abbreviation: "USER", EnglishName: "User", DomainCategory: "명"},
		{StandardName: "가격", Abbreviation: "PRC", EnglishName: "Price", DomainCategory: "금액"},
		{StandardName: "나이", Abbreviation: "AGE", EnglishName: "Age", DomainCategory: "수량"},
		{StandardName: "번호", Abbreviation: "NO", EnglishName: "Number", DomainCategory: "번호"},
	}
}

func TestParseQuery(t *testing.T) {
	values := url.Values{
		"page":                    {"2"},
		"limit":                   {"10"},
		"sortBy":                  {"standardName"},
		"sortOrder":               {"DESC"},
		"filters[domainCategory]": {"명"},
	}
	q, err := ParseQuery(values, MaxLimit)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "desc", q.SortOrder)
	assert.Equal(t, map[string]string{"domainCategory": "명"}, q.Filters)
}

func TestParseQuery_Limits(t *testing.T) {
	_, err := ParseQuery(url.Values{"limit": {"101"}}, MaxLimit)
	assert.True(t, models.IsKind(err, models.ErrorKindValidation))

	_, err = ParseQuery(url.Values{"limit": {"1000"}}, MaxLimitFor(models.CatalogVocabulary))
	assert.NoError(t, err)

	_, err = ParseQuery(url.Values{"page": {"0"}}, MaxLimit)
	assert.Error(t, err)

	_, err = ParseQuery(url.Values{"limit": {"abc"}}, MaxLimit)
	assert.Error(t, err)
}

func TestApply_SortsKorean(t *testing.T) {
	page := Apply(words(), Query{Page: 1, Limit: 10, SortBy: "standardName"}, nil)
	names := make([]string, 0, len(page.Entries))
	for _, e := range page.Entries {
		names = append(names, e.StandardName)
	}
	assert.Equal(t, []string{"가격", "나이", "번호", "사용자"}, names)
}

func TestApply_SearchFilterAndPaginate(t *testing.T) {
	page := Apply(words(), Query{Page: 1, Limit: 1, Search: "er"}, []string{"abbreviation", "englishName"})
	assert.Equal(t, 2, page.Pagination.TotalCount)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)
	assert.False(t, page.Pagination.HasPrevPage)
	require.Len(t, page.Entries, 1)

	filtered := Apply(words(), Query{Page: 1, Limit: 10, Filters: map[string]string{"domainCategory": "수량"}}, nil)
	require.Len(t, filtered.Entries, 1)
	assert.Equal(t, "AGE", filtered.Entries[0].Abbreviation)

	beyond := Apply(words(), Query{Page: 5, Limit: 10}, nil)
	assert.Empty(t, beyond.Entries)
	assert.True(t, beyond.Pagination.HasPrevPage)
}

func TestApply_NumericSort(t *testing.T) {
	domains := []models.DomainEntry{{DataLength: "100"}, {DataLength: "9"}, {DataLength: "20"}}
	page := Apply(domains, Query{Page: 1, Limit: 10, SortBy: "dataLength", SortOrder: "desc"}, nil)
	assert.Equal(t, "100", page.Entries[0].DataLength.String())
	assert.Equal(t, "20", page.Entries[1].DataLength.String())
	assert.Equal(t, "9", page.Entries[2].DataLength.String())
}
