/*
 * @module service/relation/validator
 * @description 数据库设计套件（数据库/实体/属性/表/列）之间的引用关系校验
 * @architecture 分层架构 - 领域服务层（无状态）
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow 加载五类设计文件 -> 构建名称集合 -> 逐条检查引用 -> 汇总计数
 * @rules 必填引用缺失或不存在为 error；可选引用（关联实体）不存在为 warning
 * @dependencies datastandard-service/service/models
 * @refs service/relation/service.go, service/validation_report/builder.go
 */

package relation

import (
	"fmt"
	"strings"

	"datastandard-service/service/models"
)

// 关系问题代码
const (
	TableDatabaseUnmatched   = "TABLE_DATABASE_UNMATCHED"
	ColumnTableUnmatched     = "COLUMN_TABLE_UNMATCHED"
	AttributeEntityUnmatched = "ATTRIBUTE_ENTITY_UNMATCHED"
	EntityDatabaseUnmatched  = "ENTITY_DATABASE_UNMATCHED"
	TableEntityUnmatched     = "TABLE_ENTITY_UNMATCHED"
	ColumnEntityUnmatched    = "COLUMN_ENTITY_UNMATCHED"
)

// 问题严重级别
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// DesignSuite 一组数据库设计目录
type DesignSuite struct {
	Databases  []models.DatabaseEntry
	Entities   []models.EntityEntry
	Attributes []models.AttributeEntry
	Tables     []models.TableEntry
	Columns    []models.ColumnEntry
}

type nameSet map[string]bool

func key(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (s nameSet) has(value string) bool {
	return s[key(value)]
}

type checker struct {
	issues []models.RelationIssue
}

// require 必填引用：为空或不存在都报告
func (c *checker) require(code, severity, catalog, entryID, label, field, value string, targets nameSet, targetName string) {
	if strings.TrimSpace(value) == "" {
		c.add(code, severity, catalog, entryID, label, field, fmt.Sprintf("%s 값이 비어 있습니다", field))
		return
	}
	if !targets.has(value) {
		c.add(code, severity, catalog, entryID, label, field, fmt.Sprintf("%s '%s'이(가) %s 목록에 없습니다", field, value, targetName))
	}
}

// optional 可选引用：为空时跳过
func (c *checker) optional(code, severity, catalog, entryID, label, field, value string, targets nameSet, targetName string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	c.require(code, severity, catalog, entryID, label, field, value, targets, targetName)
}

func (c *checker) add(code, severity, catalog, entryID, label, field, message string) {
	c.issues = append(c.issues, models.RelationIssue{
		Code:     code,
		Severity: severity,
		Catalog:  catalog,
		EntryID:  entryID,
		Label:    label,
		Field:    field,
		Message:  message,
	})
}

// Validate 校验设计套件中的引用关系
func Validate(suite DesignSuite) *models.RelationValidationResult {
	physicalDbs := make(nameSet)
	logicalDbs := make(nameSet)
	for _, db := range suite.Databases {
		if k := key(db.PhysicalDbName); k != "" {
			physicalDbs[k] = true
		}
		if k := key(db.LogicalDbName); k != "" {
			logicalDbs[k] = true
		}
	}
	entities := make(nameSet)
	for _, entity := range suite.Entities {
		if k := key(entity.EntityName); k != "" {
			entities[k] = true
		}
	}
	tables := make(nameSet)
	for _, table := range suite.Tables {
		if k := key(table.TableEnglishName); k != "" {
			tables[k] = true
		}
	}

	c := &checker{}
	for _, entity := range suite.Entities {
		c.require(EntityDatabaseUnmatched, SeverityWarning, models.CatalogEntity, entity.ID, entity.EntityName,
			"logicalDbName", entity.LogicalDbName, logicalDbs, "데이터베이스")
	}
	for _, attribute := range suite.Attributes {
		c.require(AttributeEntityUnmatched, SeverityError, models.CatalogAttribute, attribute.ID, attribute.EntityName+"."+attribute.AttributeName,
			"entityName", attribute.EntityName, entities, "엔터티")
	}
	for _, table := range suite.Tables {
		c.require(TableDatabaseUnmatched, SeverityError, models.CatalogTable, table.ID, table.TableEnglishName,
			"physicalDbName", table.PhysicalDbName, physicalDbs, "데이터베이스")
		c.optional(TableEntityUnmatched, SeverityWarning, models.CatalogTable, table.ID, table.TableEnglishName,
			"relatedEntityName", table.RelatedEntityName, entities, "엔터티")
	}
	for _, column := range suite.Columns {
		label := column.TableEnglishName + "." + column.ColumnEnglishName
		c.require(ColumnTableUnmatched, SeverityError, models.CatalogColumn, column.ID, label,
			"tableEnglishName", column.TableEnglishName, tables, "테이블")
		c.optional(ColumnEntityUnmatched, SeverityWarning, models.CatalogColumn, column.ID, label,
			"relatedEntityName", column.RelatedEntityName, entities, "엔터티")
	}

	result := &models.RelationValidationResult{
		Files:  map[string]string{},
		Issues: c.issues,
	}
	if result.Issues == nil {
		result.Issues = make([]models.RelationIssue, 0)
	}
	for _, issue := range result.Issues {
		if issue.Severity == SeverityError {
			result.ErrorCount++
		} else {
			result.WarningCount++
		}
	}
	result.RelationUnmatchedCount = len(result.Issues)
	return result
}
