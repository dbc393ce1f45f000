package catalog_sync

import (
	"context"
	"testing"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"
	"datastandard-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededService(t *testing.T) (*Service, *testutil.TestDataFactory) {
	store := testutil.NewTestStore(t)
	factory := testutil.NewTestDataFactory(t, store)
	factory.StandardCatalogs()
	factory.Columns("column.json", nil,
		models.ColumnEntry{EntryMeta: models.EntryMeta{ID: "c1"}, TableEnglishName: "TB_USER", ColumnEnglishName: "user_name"},
		models.ColumnEntry{EntryMeta: models.EntryMeta{ID: "c2"}, TableEnglishName: "TB_USER", ColumnEnglishName: "USER_CNT", ColumnKoreanName: "사용자_수", DomainName: "수량_NUMERIC(10)", DataType: "NUMERIC", DataLength: "10"},
		models.ColumnEntry{EntryMeta: models.EntryMeta{ID: "c3"}, TableEnglishName: "TB_USER", ColumnEnglishName: "UNKNOWN_COL"},
		models.ColumnEntry{EntryMeta: models.EntryMeta{ID: "c4"}, TableEnglishName: "TB_USER"},
	)
	return NewService(store, nil), factory
}

func TestSyncColumns_PreviewDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	svc, factory := seededService(t)

	result, err := svc.SyncColumns(ctx, ColumnSyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 2, result.Unmatched)
	assert.Equal(t, 2, result.MatchedDomain)
	assert.Equal(t, 0, result.UnmatchedDomain)
	assert.Equal(t, 1, result.Updated)
	assert.False(t, result.Applied)
	require.Len(t, result.UnmatchedColumns, 1)
	assert.Equal(t, "c3", result.UnmatchedColumns[0].ID)
	assert.Equal(t, []string{IssueTermNotFound, IssueColumnNameEmpty}, []string{result.Issues[0].Code, result.Issues[1].Code})
	assert.Equal(t, "term.json", result.Files[models.CatalogTerm])
	assert.Equal(t, "domain.json", result.Files[models.CatalogDomain])

	stored, err := catalog_store.Load[models.ColumnEntry](ctx, factory.Store(), models.CatalogColumn, "column.json")
	require.NoError(t, err)
	assert.Empty(t, stored.Entries[0].ColumnKoreanName)
}

func TestSyncColumns_ApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, factory := seededService(t)

	first, err := svc.SyncColumns(ctx, ColumnSyncOptions{Apply: true})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Updated)
	assert.True(t, first.Applied)
	require.Len(t, first.Changes, 1)
	assert.Equal(t, "c1", first.Changes[0].EntryID)

	stored, err := catalog_store.Load[models.ColumnEntry](ctx, factory.Store(), models.CatalogColumn, "column.json")
	require.NoError(t, err)
	column := stored.Entries[0]
	assert.Equal(t, "사용자_이름", column.ColumnKoreanName)
	assert.Equal(t, "명_VARCHAR(100)", column.DomainName)
	assert.Equal(t, "VARCHAR", column.DataType)
	assert.Equal(t, "100", column.DataLength.String())
	assert.Equal(t, "", column.DataDecimalLength.String())

	second, err := svc.SyncColumns(ctx, ColumnSyncOptions{Apply: true})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Updated)
	assert.False(t, second.Applied)
}

func TestSyncColumns_MissingDomainIsWarning(t *testing.T) {
	terms := BuildTermIndex([]models.TermEntry{{TermName: "사용자_이름", ColumnName: "USER_NAME", DomainName: "없음"}})
	columns := []models.ColumnEntry{{ColumnEnglishName: "USER_NAME"}}

	result := ReconcileColumns(columns, terms, nil)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.UnmatchedDomain)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, IssueDomainNotFound, result.Issues[0].Code)
	assert.Equal(t, SeverityWarning, result.Issues[0].Severity)
	assert.Equal(t, 1, result.Updated)
}

func TestSyncColumns_UsesColumnFileMapping(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	factory := testutil.NewTestDataFactory(t, store)
	factory.StandardCatalogs()
	factory.Terms("other_term.json", &models.CatalogMapping{Domain: "domain.json"},
		models.TermEntry{TermName: "사용자_수", ColumnName: "USER_CNT", DomainName: "수량_NUMERIC(10)"})
	factory.Columns("erd_column.json", &models.CatalogMapping{Term: "other_term.json"},
		models.ColumnEntry{ColumnEnglishName: "USER_CNT"})

	result, err := NewService(store, nil).SyncColumns(ctx, ColumnSyncOptions{ColumnFile: "erd_column.json"})
	require.NoError(t, err)
	assert.Equal(t, "other_term.json", result.Files[models.CatalogTerm])
	assert.Equal(t, 1, result.Matched)
}
