package term_validation

import (
	"net/http"
	"testing"

	"datastandard-service/service/meta"
	"datastandard-service/service/models"
	"datastandard-service/service/word_mapping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formal() *bool {
	b := true
	return &b
}

func testSnapshot() *word_mapping.Snapshot {
	vocabulary := []models.VocabularyEntry{
		{EntryMeta: models.EntryMeta{ID: "v1"}, StandardName: "방문자", Abbreviation: "VSTR", EnglishName: "Visitor"},
		{EntryMeta: models.EntryMeta{ID: "v2"}, StandardName: "로그아웃", Abbreviation: "LGOT", EnglishName: "Logout"},
		{EntryMeta: models.EntryMeta{ID: "v3"}, StandardName: "수", Abbreviation: "CNT", EnglishName: "Count", IsFormalWord: formal(), DomainCategory: "수량"},
		{EntryMeta: models.EntryMeta{ID: "v4"}, StandardName: "사용자", Abbreviation: "USER", EnglishName: "User", Synonyms: []string{"유저"}},
		{EntryMeta: models.EntryMeta{ID: "v5"}, StandardName: "명", Abbreviation: "NM", EnglishName: "Name", DomainCategory: "명"},
	}
	domains := []models.DomainEntry{
		{DomainCategory: "수량", StandardDomainName: "수량_NUMERIC(10)"},
		{DomainCategory: "명", StandardDomainName: "명_VARCHAR(100)"},
	}
	return word_mapping.NewSnapshot(vocabulary, domains)
}

func codes(errs []models.ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestValidate_Passes(t *testing.T) {
	entry := models.TermEntry{TermName: "방문자_로그아웃_수", ColumnName: "VSTR_LGOT_CNT", DomainName: "수량_NUMERIC(10)"}
	errs := Validate(entry, Context{Snapshot: testSnapshot(), ExistingTerms: []models.TermEntry{}})
	assert.Empty(t, errs)
	assert.Equal(t, http.StatusOK, PrimaryStatus(errs))
}

func TestValidate_OrderMismatch(t *testing.T) {
	entry := models.TermEntry{TermName: "방문자_로그아웃_수", ColumnName: "LGOT_VSTR_CNT", DomainName: "수량_NUMERIC(10)"}
	errs := Validate(entry, Context{Snapshot: testSnapshot()})

	require.Len(t, errs, 1)
	assert.Equal(t, meta.TermColumnOrderMismatch, errs[0].Code)
	mismatches, ok := errs[0].Details["mismatches"].([]models.OrderMismatch)
	require.True(t, ok)
	assert.Len(t, mismatches, 2)
	assert.Equal(t, models.OrderMismatch{Position: 1, Expected: "VSTR", Actual: "LGOT"}, mismatches[0])
	assert.Equal(t, models.OrderMismatch{Position: 2, Expected: "LGOT", Actual: "VSTR"}, mismatches[1])
	assert.Equal(t, "VSTR_LGOT_CNT", errs[0].Details["correctedColumnName"])

	suggestion := Suggest(entry, errs, testSnapshot())
	require.NotNil(t, suggestion)
	assert.Equal(t, meta.ActionFixColumnName, suggestion.ActionType)
	assert.Equal(t, "VSTR_LGOT_CNT", suggestion.Metadata["correctedColumnName"])
}

func TestValidate_LengthSuppressesNameRules(t *testing.T) {
	entry := models.TermEntry{TermName: "미등록", ColumnName: "UNKNOWN", DomainName: "없음"}
	errs := Validate(entry, Context{Snapshot: testSnapshot()})

	assert.Equal(t, []string{meta.TermNameLength, meta.DomainNameMapping}, codes(errs))
	assert.Equal(t, http.StatusBadRequest, PrimaryStatus(errs))

	suggestion := Suggest(entry, errs, testSnapshot())
	require.NotNil(t, suggestion)
	assert.Equal(t, meta.ActionDeleteTerm, suggestion.ActionType)
	assert.Equal(t, meta.TermNameLength, suggestion.ErrorType)
}

func TestValidate_DuplicateIsConflict(t *testing.T) {
	existing := []models.TermEntry{
		{EntryMeta: models.EntryMeta{ID: "t1"}, TermName: "방문자_수", ColumnName: "VSTR_CNT", DomainName: "수량_NUMERIC(10)"},
	}
	entry := models.TermEntry{TermName: "방문자_수", ColumnName: "VSTR_CNT", DomainName: "수량_numeric(10)"}

	errs := Validate(entry, Context{Snapshot: testSnapshot(), ExistingTerms: existing})
	assert.Equal(t, []string{meta.TermNameDuplicate, meta.TermUniqueness}, codes(errs))
	assert.Equal(t, http.StatusConflict, PrimaryStatus(errs))

	// 编辑模式不检查重复
	entry.ID = "t1"
	assert.Empty(t, Validate(entry, Context{Snapshot: testSnapshot()}))
	// 同一条目不与自身冲突
	assert.Empty(t, Validate(entry, Context{Snapshot: testSnapshot(), ExistingTerms: existing}))
}

func TestValidate_SortedByPriority(t *testing.T) {
	entry := models.TermEntry{TermName: "방문자_미등록", ColumnName: "VSTR_XX", DomainName: "없음"}
	errs := Validate(entry, Context{Snapshot: testSnapshot()})

	assert.Equal(t, []string{meta.TermNameMapping, meta.ColumnNameMapping, meta.TermNameSuffix, meta.DomainNameMapping}, codes(errs))
	for i := 1; i < len(errs); i++ {
		assert.LessOrEqual(t, errs[i-1].Priority, errs[i].Priority)
	}
}

func TestSuggest_SelectSynonym(t *testing.T) {
	entry := models.TermEntry{TermName: "유저_수", ColumnName: "USER_CNT", DomainName: "수량_NUMERIC(10)"}
	errs := Validate(entry, Context{Snapshot: testSnapshot()})
	require.Equal(t, meta.TermNameMapping, errs[0].Code)

	suggestion := Suggest(entry, errs, testSnapshot())
	require.NotNil(t, suggestion)
	assert.Equal(t, meta.ActionSelectSynonym, suggestion.ActionType)
}

func TestSuggest_AddVocabularyInfersAbbreviation(t *testing.T) {
	entry := models.TermEntry{TermName: "주문_수", ColumnName: "ORD_CNT", DomainName: "수량_NUMERIC(10)"}
	errs := Validate(entry, Context{Snapshot: testSnapshot()})

	suggestion := Suggest(entry, errs, testSnapshot())
	require.NotNil(t, suggestion)
	assert.Equal(t, meta.ActionAddVocabulary, suggestion.ActionType)
	proposals := suggestion.Metadata["proposals"].([]map[string]interface{})
	require.Len(t, proposals, 1)
	assert.Equal(t, "주문", proposals[0]["standardName"])
	assert.Equal(t, "ORD", proposals[0]["abbreviation"])
}

func TestSuggest_FixColumnName(t *testing.T) {
	entry := models.TermEntry{TermName: "방문자_수", ColumnName: "VISITOR_CNT", DomainName: "수량_NUMERIC(10)"}
	errs := Validate(entry, Context{Snapshot: testSnapshot()})
	require.Equal(t, []string{meta.ColumnNameMapping}, codes(errs))

	suggestion := Suggest(entry, errs, testSnapshot())
	require.NotNil(t, suggestion)
	assert.Equal(t, meta.ActionFixColumnName, suggestion.ActionType)
	assert.Equal(t, "VSTR_CNT", suggestion.Metadata["correctedColumnName"])
}

func TestSuggest_SuffixAndDomain(t *testing.T) {
	snapshot := testSnapshot()

	suffix := models.TermEntry{TermName: "사용자_명", ColumnName: "USER_NM", DomainName: "명_VARCHAR(100)"}
	errs := Validate(suffix, Context{Snapshot: snapshot})
	require.Equal(t, []string{meta.TermNameSuffix}, codes(errs))
	suggestion := Suggest(suffix, errs, snapshot)
	require.NotNil(t, suggestion)
	assert.Equal(t, meta.ActionFixVocabularySuffix, suggestion.ActionType)
	assert.Equal(t, "v5", suggestion.Metadata["vocabularyId"])

	domain := models.TermEntry{TermName: "방문자_수", ColumnName: "VSTR_CNT", DomainName: "없는도메인"}
	errs = Validate(domain, Context{Snapshot: snapshot})
	require.Equal(t, []string{meta.DomainNameMapping}, codes(errs))
	suggestion = Suggest(domain, errs, snapshot)
	require.NotNil(t, suggestion)
	assert.Equal(t, meta.ActionAutoFixTermEditor, suggestion.ActionType)
	assert.Equal(t, "수량_NUMERIC(10)", suggestion.Metadata["suggestedDomainName"])
}

func TestValidateEntries_Summary(t *testing.T) {
	entries := []models.TermEntry{
		{EntryMeta: models.EntryMeta{ID: "a"}, TermName: "방문자_수", ColumnName: "VSTR_CNT", DomainName: "수량_NUMERIC(10)"},
		{EntryMeta: models.EntryMeta{ID: "b"}, TermName: "방문자_수", ColumnName: "VSTR_CNT", DomainName: "수량_NUMERIC(10)"},
		{EntryMeta: models.EntryMeta{ID: "c"}, TermName: "방문자_로그아웃_수", ColumnName: "VSTR_LGOT_CNT", DomainName: "수량_NUMERIC(10)"},
	}

	summary := ValidateEntries(entries, testSnapshot())
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 1, summary.PassedCount)
	assert.Equal(t, 2, summary.FailedCount)
	assert.Equal(t, meta.ActionDeleteDuplicate, summary.FailedEntries[0].Suggestions.ActionType)
}

func TestValidateEntries_EntryWithoutIDIsNotItsOwnDuplicate(t *testing.T) {
	entries := []models.TermEntry{
		{TermName: "방문자_로그아웃_수", ColumnName: "VSTR_LGOT_CNT", DomainName: "수량_NUMERIC(10)"},
	}

	summary := ValidateEntries(entries, testSnapshot())
	assert.Equal(t, 1, summary.PassedCount)
	assert.Equal(t, 0, summary.FailedCount)
	assert.Empty(t, summary.FailedEntries)
	assert.Len(t, entries, 1)
}
