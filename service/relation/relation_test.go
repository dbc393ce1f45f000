package relation

import (
	"context"
	"testing"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"
	"datastandard-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCodes(result *models.RelationValidationResult) []string {
	var out []string
	for _, issue := range result.Issues {
		out = append(out, issue.Code)
	}
	return out
}

func TestValidate_ReportsUnmatchedReferences(t *testing.T) {
	suite := DesignSuite{
		Databases:  []models.DatabaseEntry{{LogicalDbName: "고객DB", PhysicalDbName: "CUSTDB"}},
		Entities:   []models.EntityEntry{{EntityName: "고객", LogicalDbName: "없는DB"}},
		Attributes: []models.AttributeEntry{{EntityName: "주문", AttributeName: "주문번호"}},
		Tables: []models.TableEntry{
			{TableEnglishName: "TB_CUST", PhysicalDbName: "custdb", RelatedEntityName: "고객"},
			{TableEnglishName: "TB_ORDER", PhysicalDbName: "ORDERDB", RelatedEntityName: "주문"},
		},
		Columns: []models.ColumnEntry{
			{TableEnglishName: "TB_CUST", ColumnEnglishName: "CUST_NO"},
			{TableEnglishName: "TB_NONE", ColumnEnglishName: "X", RelatedEntityName: "없음"},
		},
	}

	result := Validate(suite)
	assert.Equal(t, []string{
		EntityDatabaseUnmatched,
		AttributeEntityUnmatched,
		TableDatabaseUnmatched,
		TableEntityUnmatched,
		ColumnTableUnmatched,
		ColumnEntityUnmatched,
	}, issueCodes(result))
	assert.Equal(t, 3, result.ErrorCount)
	assert.Equal(t, 3, result.WarningCount)
	assert.Equal(t, 6, result.RelationUnmatchedCount)
}

func TestValidate_CleanSuite(t *testing.T) {
	result := Validate(DesignSuite{})
	assert.Empty(t, result.Issues)
	assert.NotNil(t, result.Issues)
}

func TestSync_FillsRelatedEntities(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	factory := testutil.NewTestDataFactory(t, store)
	factory.Databases("database.json", models.DatabaseEntry{LogicalDbName: "고객DB", PhysicalDbName: "CUSTDB"})
	factory.Entities("entity.json", models.EntityEntry{LogicalDbName: "고객DB", EntityName: "고객", TableKoreanName: "고객정보"})
	factory.Tables("table.json", models.TableEntry{PhysicalDbName: "CUSTDB", TableEnglishName: "TB_CUST", TableKoreanName: "고객정보"})
	factory.Columns("column.json", nil, models.ColumnEntry{TableEnglishName: "TB_CUST", ColumnEnglishName: "CUST_NO"})
	svc := NewService(store, nil)

	preview, err := svc.Sync(ctx, Files{}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, preview.Updated)
	assert.Equal(t, 0, preview.AppliedTotalUpdates)
	assert.Equal(t, 0, preview.RelationUnmatchedCount)

	applied, err := svc.Sync(ctx, Files{}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, applied.TableUpdated)
	assert.Equal(t, 1, applied.ColumnUpdated)
	assert.Equal(t, 2, applied.AppliedTotalUpdates)

	columns, err := catalog_store.Load[models.ColumnEntry](ctx, store, models.CatalogColumn, "column.json")
	require.NoError(t, err)
	assert.Equal(t, "고객", columns.Entries[0].RelatedEntityName)

	again, err := svc.Sync(ctx, Files{}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, again.AppliedTotalUpdates)
}
