package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/history"
	"datastandard-service/service/listing"
	"datastandard-service/service/models"
	"datastandard-service/service/spreadsheet"
	"datastandard-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogs(t *testing.T) (*Catalogs, *testutil.TestDataFactory, *history.Service) {
	t.Helper()
	store := testutil.NewTestStore(t)
	factory := testutil.NewTestDataFactory(t, store)
	factory.StandardCatalogs()
	hist := history.NewService(store, 100, nil)
	return NewCatalogs(store, hist), factory, hist
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	catalogs, _, hist := newCatalogs(t)
	ctx := context.Background()

	created, err := catalogs.Term.Create(ctx, "", models.TermEntry{
		EntryMeta:   models.EntryMeta{ID: "client-id"},
		TermName:    "사용자_이름_수",
		ColumnName:  "USER_NAME_CNT",
		DomainName:  "수량_NUMERIC(10)",
		Description: "사용자 이름 수",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "client-id", created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.True(t, created.IsMappedTerm)
	assert.True(t, created.IsMappedColumn)
	assert.True(t, created.IsMappedDomain)

	got, err := catalogs.Term.Get(ctx, "term.json", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TermName, got.TermName)
	assert.Equal(t, created.ColumnName, got.ColumnName)
	assert.Equal(t, created.DomainName, got.DomainName)
	assert.Equal(t, created.Description, got.Description)

	logs, err := hist.List(ctx, models.CatalogTerm, 10)
	require.NoError(t, err)
	require.NotEmpty(t, logs.Logs)
	assert.Equal(t, models.HistoryActionCreate, logs.Logs[0].Action)
	assert.Equal(t, "사용자_이름_수", logs.Logs[0].TargetName)
}

func TestCreate_MissingFields(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)

	_, err := catalogs.Vocabulary.Create(context.Background(), "", models.VocabularyEntry{StandardName: "주소"})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrorKindValidation))
	assert.Contains(t, err.Error(), "abbreviation")
	assert.Contains(t, err.Error(), "englishName")
}

func TestCreate_VocabularyAbbreviationConflict(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)

	_, err := catalogs.Vocabulary.Create(context.Background(), "", models.VocabularyEntry{
		StandardName: "유저", Abbreviation: "user", EnglishName: "User",
	})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrorKindConflict))
}

func TestCreate_DomainConflictAcrossFiles(t *testing.T) {
	catalogs, factory, _ := newCatalogs(t)
	ctx := context.Background()
	require.NoError(t, factory.Store().CreateFile(ctx, models.CatalogDomain, "extra.json"))

	_, err := catalogs.Domain.Create(ctx, "extra.json", models.DomainEntry{
		DomainGroup: "문자", DomainCategory: "명", PhysicalDataType: "VARCHAR", DataLength: "100",
	})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrorKindConflict))

	created, err := catalogs.Domain.Create(ctx, "extra.json", models.DomainEntry{
		DomainGroup: "문자", DomainCategory: "명", PhysicalDataType: "VARCHAR", DataLength: "200",
	})
	require.NoError(t, err)
	assert.Equal(t, "명_VARCHAR(200)", created.StandardDomainName)
}

func TestCreate_UnknownFile(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)

	_, err := catalogs.Database.Create(context.Background(), "missing.json", models.DatabaseEntry{
		LogicalDbName: "고객DB", PhysicalDbName: "CUST_DB",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog_store.ErrFileNotFound))
}

func TestUpdate_MergePatchPreservesFields(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)
	ctx := context.Background()

	before, err := catalogs.Vocabulary.Get(ctx, "", "v-name")
	require.NoError(t, err)

	updated, err := catalogs.Vocabulary.Update(ctx, "", "v-name", json.RawMessage(`{"id":"v-name","description":"x","createdAt":"changed"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", updated.Description)
	assert.Equal(t, "이름", updated.StandardName)
	assert.Equal(t, "NAME", updated.Abbreviation)
	assert.Equal(t, "Name", updated.EnglishName)
	assert.True(t, updated.FormalWord())
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)

	got, err := catalogs.Vocabulary.Get(ctx, "", "v-name")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Description)
	assert.Equal(t, "명", got.DomainCategory)
}

func TestUpdate_DomainRenormalized(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)

	updated, err := catalogs.Domain.Update(context.Background(), "", "d-name", json.RawMessage(`{"dataLength":"50"}`))
	require.NoError(t, err)
	assert.Equal(t, "명_VARCHAR(50)", updated.StandardDomainName)
}

func TestUpdate_Errors(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)
	ctx := context.Background()

	_, err := catalogs.Term.Update(ctx, "", "", json.RawMessage(`{}`))
	assert.True(t, models.IsKind(err, models.ErrorKindValidation))

	_, err = catalogs.Term.Update(ctx, "", "nope", json.RawMessage(`{}`))
	assert.True(t, models.IsKind(err, models.ErrorKindNotFound))

	_, err = catalogs.Term.Update(ctx, "", "t-user-name", json.RawMessage(`{"termName":""}`))
	assert.True(t, models.IsKind(err, models.ErrorKindValidation))
}

func TestDelete_CollectsReferenceWarnings(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)
	ctx := context.Background()

	result, err := catalogs.Domain.Delete(ctx, "", "d-name", false)
	require.NoError(t, err)
	assert.Equal(t, "명_VARCHAR(100)", result.Deleted.StandardDomainName)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "사용자_이름")

	_, err = catalogs.Domain.Get(ctx, "", "d-name")
	assert.True(t, models.IsKind(err, models.ErrorKindNotFound))

	forced, err := catalogs.Domain.Delete(ctx, "", "d-cnt", true)
	require.NoError(t, err)
	assert.Empty(t, forced.Warnings)

	_, err = catalogs.Domain.Delete(ctx, "", "d-cnt", true)
	assert.True(t, models.IsKind(err, models.ErrorKindNotFound))
}

func TestList_AppliesQuery(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)

	page, err := catalogs.Vocabulary.List(context.Background(), "", listing.Query{
		Page: 1, Limit: 2, SortBy: "abbreviation",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.TotalCount)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "CNT", page.Entries[0].Abbreviation)
	assert.NotEmpty(t, page.LastUpdated)
}

func TestImportExport(t *testing.T) {
	catalogs, _, _ := newCatalogs(t)
	ctx := context.Background()

	spec, ok := spreadsheet.SpecFor(models.CatalogVocabulary)
	require.True(t, ok)
	data, err := spreadsheet.BuildWorkbook(spec, [][]string{
		{"주소", "ADDR", "Address", "", "", "N", "", ""},
		{"유저", "USER", "User", "", "", "", "", ""},
		{"번호", "", "", "", "", "", "", ""},
		{"코드", "CD", "Code", "", "", "Y", "부호", ""},
	})
	require.NoError(t, err)

	result, err := catalogs.Vocabulary.Import(ctx, "", bytes.NewReader(data), false)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)

	page, err := catalogs.Vocabulary.List(ctx, "", listing.Query{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Pagination.TotalCount)

	exported, err := catalogs.Vocabulary.Export(ctx, "")
	require.NoError(t, err)
	sheet, err := spreadsheet.ParseWorkbook(bytes.NewReader(exported), spec.Required)
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 5)

	replaced, err := catalogs.Vocabulary.Import(ctx, "", bytes.NewReader(data), true)
	require.NoError(t, err)
	assert.Equal(t, 3, replaced.Imported)
	page, err = catalogs.Vocabulary.List(ctx, "", listing.Query{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.TotalCount)
}

func TestMapping_UpdateRequiresExistingFiles(t *testing.T) {
	catalogs, factory, _ := newCatalogs(t)
	ctx := context.Background()

	mapping, err := catalogs.Term.GetMapping(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "vocabulary.json", mapping.Vocabulary)
	assert.Equal(t, "domain.json", mapping.Domain)

	_, err = catalogs.Term.UpdateMapping(ctx, "", models.CatalogMapping{Domain: "missing.json"})
	assert.True(t, models.IsKind(err, models.ErrorKindNotFound))

	factory.Domains("domain-2024.json")
	mapping, err = catalogs.Term.UpdateMapping(ctx, "term.json", models.CatalogMapping{Domain: "domain-2024.json"})
	require.NoError(t, err)
	assert.Equal(t, "domain-2024.json", mapping.Domain)
	assert.Equal(t, "vocabulary.json", mapping.Vocabulary)

	_, err = catalogs.Term.GetMapping(ctx, "other.json")
	assert.True(t, errors.Is(err, catalog_store.ErrFileNotFound))
}
