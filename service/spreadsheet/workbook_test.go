package spreadsheet

import (
	"bytes"
	"testing"

	"datastandard-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildTestWorkbook(t *testing.T, sheets map[string][][]string, order []string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellStr(name, cell, value))
			}
		}
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseWorkbook_FindsSheetWithRequiredHeaders(t *testing.T) {
	spec, ok := SpecFor(models.CatalogColumn)
	require.True(t, ok)

	data := buildTestWorkbook(t, map[string][][]string{
		"표지": {
			{"컬럼정의서"},
			{"작성일", "2024-01-01"},
		},
		"컬럼목록": {
			{},
			{"테이블영문명", "컬럼영문명", "자료길이", "PK정보"},
			{"TB_USER", "USER_NAME", "100", "N"},
			{"", "", "", ""},
			{"TB_USER", "USER_CNT", "10", "Y"},
		},
	}, []string{"표지", "컬럼목록"})

	sheet, err := ParseWorkbook(bytes.NewReader(data), spec.Required)
	require.NoError(t, err)

	assert.Equal(t, "컬럼목록", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "USER_NAME", sheet.Rows[0]["컬럼영문명"])
	assert.Equal(t, "100", sheet.Rows[0]["자료길이"])
	assert.Equal(t, "Y", sheet.Rows[1]["PK정보"])
}

func TestParseWorkbook_MissingHeaders(t *testing.T) {
	data := buildTestWorkbook(t, map[string][][]string{
		"Sheet": {
			{"컬럼영문명", "자료길이"},
			{"USER_NAME", "100"},
		},
	}, []string{"Sheet"})

	_, err := ParseWorkbook(bytes.NewReader(data), []string{"컬럼영문명", "자료길이", "PK정보"})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrorKindValidation))
	assert.Equal(t, "필수 헤더(컬럼영문명, 자료길이, PK정보)를 포함한 시트를 찾을 수 없습니다", err.Error())
}

func TestParseWorkbook_InvalidContent(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("not a workbook")), []string{"용어명"})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrorKindValidation))
}

func TestBuildWorkbook_RoundTrip(t *testing.T) {
	spec, ok := SpecFor(models.CatalogTerm)
	require.True(t, ok)

	entries := []models.TermEntry{
		{TermName: "사용자_이름", ColumnName: "USER_NAME", DomainName: "명_VARCHAR(100)", Description: "이름"},
		{TermName: "사용자_수", ColumnName: "USER_CNT", DomainName: "수량_NUMERIC(10)"},
	}
	data, err := BuildWorkbook(spec, EntryRows(spec, entries))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"용어"}, f.GetSheetList())

	sheet, err := ParseWorkbook(bytes.NewReader(data), spec.Required)
	require.NoError(t, err)
	assert.Equal(t, spec.Headers(), sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "USER_CNT", sheet.Rows[1]["칼럼명"])
	assert.Equal(t, "", sheet.Rows[1]["설명"])
}

func TestSpecFor_AllCatalogTypes(t *testing.T) {
	for _, catalogType := range models.CatalogTypes {
		spec, ok := SpecFor(catalogType)
		require.True(t, ok, catalogType)
		for _, header := range spec.Required {
			_, found := spec.FieldFor(header)
			assert.True(t, found, "%s: %s", catalogType, header)
		}
	}
}
