package spreadsheet

import (
	"datastandard-service/service/models"
)

// Column 表格列与条目字段的对应关系
type Column struct {
	Header string  `json:"header"`
	Field  string  `json:"field"`
	Width  float64 `json:"width"`
}

// SheetSpec 目录类型的表格定义
type SheetSpec struct {
	SheetName string   `json:"sheetName"`
	Columns   []Column `json:"columns"`
	Required  []string `json:"required"`
}

// Headers 全部表头
func (s SheetSpec) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = col.Header
	}
	return headers
}

// FieldFor 表头对应的字段名
func (s SheetSpec) FieldFor(header string) (string, bool) {
	for _, col := range s.Columns {
		if col.Header == header {
			return col.Field, true
		}
	}
	return "", false
}

var sheetSpecs = map[string]SheetSpec{
	models.CatalogVocabulary: {
		SheetName: "표준단어",
		Columns: []Column{
			{"표준단어명", "standardName", 20},
			{"영문약어", "abbreviation", 15},
			{"영문명", "englishName", 25},
			{"설명", "description", 40},
			{"도메인분류명", "domainCategory", 15},
			{"형식단어여부", "isFormalWord", 12},
			{"이음동의어", "synonyms", 25},
			{"금칙어", "forbiddenWords", 25},
		},
		Required: []string{"표준단어명", "영문약어", "영문명"},
	},
	models.CatalogDomain: {
		SheetName: "도메인",
		Columns: []Column{
			{"도메인그룹", "domainGroup", 15},
			{"도메인분류명", "domainCategory", 15},
			{"표준도메인명", "standardDomainName", 25},
			{"물리데이터타입", "physicalDataType", 15},
			{"데이터길이", "dataLength", 10},
			{"소수점길이", "decimalPlaces", 10},
			{"설명", "description", 40},
		},
		Required: []string{"도메인그룹", "도메인분류명", "물리데이터타입"},
	},
	models.CatalogTerm: {
		SheetName: "용어",
		Columns: []Column{
			{"용어명", "termName", 25},
			{"칼럼명", "columnName", 25},
			{"도메인명", "domainName", 25},
			{"설명", "description", 40},
		},
		Required: []string{"용어명", "칼럼명", "도메인명"},
	},
	models.CatalogDatabase: {
		SheetName: "데이터베이스",
		Columns: []Column{
			{"기관명", "organizationName", 20},
			{"부서명", "departmentName", 20},
			{"적용업무", "appliedTask", 20},
			{"관련법령", "relatedLaw", 20},
			{"논리DB명", "logicalDbName", 20},
			{"물리DB명", "physicalDbName", 20},
			{"구축일자", "buildDate", 12},
			{"DBMS정보", "dbmsInfo", 15},
			{"설명", "description", 40},
		},
		Required: []string{"논리DB명", "물리DB명"},
	},
	models.CatalogEntity: {
		SheetName: "엔터티",
		Columns: []Column{
			{"논리DB명", "logicalDbName", 20},
			{"스키마명", "schemaName", 15},
			{"엔터티명", "entityName", 20},
			{"주식별자", "primaryIdentifier", 20},
			{"수퍼타입엔터티명", "superTypeEntityName", 20},
			{"테이블한글명", "tableKoreanName", 20},
			{"엔터티설명", "entityDescription", 40},
		},
		Required: []string{"엔터티명"},
	},
	models.CatalogAttribute: {
		SheetName: "속성",
		Columns: []Column{
			{"스키마명", "schemaName", 15},
			{"엔터티명", "entityName", 20},
			{"속성명", "attributeName", 20},
			{"속성유형", "attributeType", 12},
			{"필수입력여부", "requiredInput", 12},
			{"식별자여부", "identifierFlag", 12},
			{"참조엔터티명", "refEntityName", 20},
			{"참조속성명", "refAttributeName", 20},
			{"속성설명", "attributeDescription", 40},
		},
		Required: []string{"엔터티명", "속성명"},
	},
	models.CatalogTable: {
		SheetName: "테이블",
		Columns: []Column{
			{"물리DB명", "physicalDbName", 20},
			{"테이블소유자", "tableOwner", 15},
			{"주제영역", "subjectArea", 15},
			{"스키마명", "schemaName", 15},
			{"테이블영문명", "tableEnglishName", 25},
			{"테이블한글명", "tableKoreanName", 25},
			{"테이블유형", "tableType", 12},
			{"관련엔터티명", "relatedEntityName", 20},
			{"공개여부", "publicFlag", 10},
			{"테이블설명", "tableDescription", 40},
		},
		Required: []string{"테이블영문명"},
	},
	models.CatalogColumn: {
		SheetName: "컬럼",
		Columns: []Column{
			{"사업범위여부", "scopeFlag", 12},
			{"주제영역", "subjectArea", 15},
			{"스키마명", "schemaName", 15},
			{"테이블영문명", "tableEnglishName", 25},
			{"컬럼영문명", "columnEnglishName", 25},
			{"컬럼한글명", "columnKoreanName", 25},
			{"컬럼설명", "columnDescription", 40},
			{"연관엔터티명", "relatedEntityName", 20},
			{"도메인명", "domainName", 25},
			{"자료타입", "dataType", 12},
			{"자료길이", "dataLength", 10},
			{"자료소수점길이", "dataDecimalLength", 12},
			{"자료형식", "dataFormat", 12},
			{"NOTNULL여부", "notNullFlag", 12},
			{"PK정보", "pkInfo", 10},
			{"FK정보", "fkInfo", 10},
			{"인덱스명", "indexName", 20},
			{"인덱스순번", "indexOrder", 10},
			{"AK정보", "akInfo", 10},
			{"제약조건", "constraint", 20},
			{"개인정보여부", "personalInfoFlag", 12},
			{"암호화여부", "encryptionFlag", 12},
			{"공개여부", "publicFlag", 10},
		},
		Required: []string{"컬럼영문명", "자료길이", "PK정보"},
	},
}

// SpecFor 返回目录类型的表格定义
func SpecFor(catalogType string) (SheetSpec, bool) {
	spec, ok := sheetSpecs[catalogType]
	return spec, ok
}
