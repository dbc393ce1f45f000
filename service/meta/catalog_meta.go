/*
 * @module service/meta/catalog_meta
 * @description 目录类型元数据，供前端渲染目录选择与文件管理
 * @architecture 元数据层
 * @documentReference ai_docs/model.md
 * @stateFlow 静态元数据定义
 * @rules 目录类型与 service/models 中的常量保持一致
 * @dependencies 无
 * @refs service/models/catalog.go
 */

package meta

type MetaField struct {
	Name         string      `json:"name"`
	DisplayName  string      `json:"display_name"`
	Type         string      `json:"type"`
	Required     bool        `json:"required"`
	DefaultValue interface{} `json:"default_value"`
	Description  string      `json:"description"`
}

// CatalogTypeFields 目录类型列表，DefaultValue 为默认文件名
var CatalogTypeFields = []MetaField{
	{Name: "vocabulary", DisplayName: "표준단어", Type: "catalog", Required: true, DefaultValue: "vocabulary.json"},
	{Name: "domain", DisplayName: "도메인", Type: "catalog", Required: true, DefaultValue: "domain.json"},
	{Name: "term", DisplayName: "용어", Type: "catalog", Required: true, DefaultValue: "term.json"},
	{Name: "database", DisplayName: "데이터베이스 정의서", Type: "design", DefaultValue: "database.json"},
	{Name: "entity", DisplayName: "엔터티 정의서", Type: "design", DefaultValue: "entity.json"},
	{Name: "attribute", DisplayName: "속성 정의서", Type: "design", DefaultValue: "attribute.json"},
	{Name: "table", DisplayName: "테이블 정의서", Type: "design", DefaultValue: "table.json"},
	{Name: "column", DisplayName: "컬럼 정의서", Type: "design", DefaultValue: "column.json"},
}
