/*
 * @module service/models/design
 * @description 数据库设计套件模型：数据库、实体、属性、表、列定义
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 表格导入/接口维护 -> 关系校验 -> 术语同步
 * @rules 列英文名与术语列名匹配，经术语->域链路派生列韩文名、域名、数据类型/长度/小数位
 * @dependencies strings
 * @refs service/catalog_sync/column_sync.go, service/relation/validator.go
 */

package models

import (
	"strings"
)

// DatabaseEntry 数据库定义
type DatabaseEntry struct {
	EntryMeta
	OrganizationName string `json:"organizationName"`
	DepartmentName   string `json:"departmentName"`
	AppliedTask      string `json:"appliedTask"`
	RelatedLaw       string `json:"relatedLaw,omitempty"`
	LogicalDbName    string `json:"logicalDbName"`
	PhysicalDbName   string `json:"physicalDbName"`
	BuildDate        string `json:"buildDate,omitempty"`
	DbmsInfo         string `json:"dbmsInfo,omitempty"`
	Description      string `json:"description,omitempty"`
}

func (d DatabaseEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return d.ID, true
	case "organizationName":
		return d.OrganizationName, true
	case "departmentName":
		return d.DepartmentName, true
	case "appliedTask":
		return d.AppliedTask, true
	case "relatedLaw":
		return d.RelatedLaw, true
	case "logicalDbName":
		return d.LogicalDbName, true
	case "physicalDbName":
		return d.PhysicalDbName, true
	case "buildDate":
		return d.BuildDate, true
	case "dbmsInfo":
		return d.DbmsInfo, true
	case "description":
		return d.Description, true
	case "createdAt":
		return d.CreatedAt, true
	case "updatedAt":
		return d.UpdatedAt, true
	}
	return "", false
}

func (d *DatabaseEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "organizationName":
		d.OrganizationName = value
	case "departmentName":
		d.DepartmentName = value
	case "appliedTask":
		d.AppliedTask = value
	case "relatedLaw":
		d.RelatedLaw = value
	case "logicalDbName":
		d.LogicalDbName = value
	case "physicalDbName":
		d.PhysicalDbName = value
	case "buildDate":
		d.BuildDate = value
	case "dbmsInfo":
		d.DbmsInfo = value
	case "description":
		d.Description = value
	default:
		return false
	}
	return true
}

func (d *DatabaseEntry) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.LogicalDbName) == "" {
		missing = append(missing, "logicalDbName")
	}
	if strings.TrimSpace(d.PhysicalDbName) == "" {
		missing = append(missing, "physicalDbName")
	}
	return missing
}

// EntityEntry 实体定义
type EntityEntry struct {
	EntryMeta
	LogicalDbName       string `json:"logicalDbName"`
	SchemaName          string `json:"schemaName"`
	EntityName          string `json:"entityName"`
	PrimaryIdentifier   string `json:"primaryIdentifier,omitempty"`
	SuperTypeEntityName string `json:"superTypeEntityName,omitempty"`
	TableKoreanName     string `json:"tableKoreanName,omitempty"`
	EntityDescription   string `json:"entityDescription,omitempty"`
}

func (e EntityEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return e.ID, true
	case "logicalDbName":
		return e.LogicalDbName, true
	case "schemaName":
		return e.SchemaName, true
	case "entityName":
		return e.EntityName, true
	case "primaryIdentifier":
		return e.PrimaryIdentifier, true
	case "superTypeEntityName":
		return e.SuperTypeEntityName, true
	case "tableKoreanName":
		return e.TableKoreanName, true
	case "entityDescription":
		return e.EntityDescription, true
	case "createdAt":
		return e.CreatedAt, true
	case "updatedAt":
		return e.UpdatedAt, true
	}
	return "", false
}

func (e *EntityEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "logicalDbName":
		e.LogicalDbName = value
	case "schemaName":
		e.SchemaName = value
	case "entityName":
		e.EntityName = value
	case "primaryIdentifier":
		e.PrimaryIdentifier = value
	case "superTypeEntityName":
		e.SuperTypeEntityName = value
	case "tableKoreanName":
		e.TableKoreanName = value
	case "entityDescription":
		e.EntityDescription = value
	default:
		return false
	}
	return true
}

func (e *EntityEntry) MissingFields() []string {
	if strings.TrimSpace(e.EntityName) == "" {
		return []string{"entityName"}
	}
	return nil
}

// AttributeEntry 属性定义
type AttributeEntry struct {
	EntryMeta
	SchemaName           string `json:"schemaName"`
	EntityName           string `json:"entityName"`
	AttributeName        string `json:"attributeName"`
	AttributeType        string `json:"attributeType,omitempty"`
	RequiredInput        string `json:"requiredInput,omitempty"`
	IdentifierFlag       string `json:"identifierFlag,omitempty"`
	RefEntityName        string `json:"refEntityName,omitempty"`
	RefAttributeName     string `json:"refAttributeName,omitempty"`
	AttributeDescription string `json:"attributeDescription,omitempty"`
}

func (a AttributeEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return a.ID, true
	case "schemaName":
		return a.SchemaName, true
	case "entityName":
		return a.EntityName, true
	case "attributeName":
		return a.AttributeName, true
	case "attributeType":
		return a.AttributeType, true
	case "requiredInput":
		return a.RequiredInput, true
	case "identifierFlag":
		return a.IdentifierFlag, true
	case "refEntityName":
		return a.RefEntityName, true
	case "refAttributeName":
		return a.RefAttributeName, true
	case "attributeDescription":
		return a.AttributeDescription, true
	case "createdAt":
		return a.CreatedAt, true
	case "updatedAt":
		return a.UpdatedAt, true
	}
	return "", false
}

func (a *AttributeEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "schemaName":
		a.SchemaName = value
	case "entityName":
		a.EntityName = value
	case "attributeName":
		a.AttributeName = value
	case "attributeType":
		a.AttributeType = value
	case "requiredInput":
		a.RequiredInput = value
	case "identifierFlag":
		a.IdentifierFlag = value
	case "refEntityName":
		a.RefEntityName = value
	case "refAttributeName":
		a.RefAttributeName = value
	case "attributeDescription":
		a.AttributeDescription = value
	default:
		return false
	}
	return true
}

func (a *AttributeEntry) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(a.EntityName) == "" {
		missing = append(missing, "entityName")
	}
	if strings.TrimSpace(a.AttributeName) == "" {
		missing = append(missing, "attributeName")
	}
	return missing
}

// TableEntry 表定义
type TableEntry struct {
	EntryMeta
	PhysicalDbName    string `json:"physicalDbName"`
	TableOwner        string `json:"tableOwner,omitempty"`
	SubjectArea       string `json:"subjectArea,omitempty"`
	SchemaName        string `json:"schemaName"`
	TableEnglishName  string `json:"tableEnglishName"`
	TableKoreanName   string `json:"tableKoreanName"`
	TableType         string `json:"tableType,omitempty"`
	RelatedEntityName string `json:"relatedEntityName,omitempty"`
	PublicFlag        string `json:"publicFlag,omitempty"`
	TableDescription  string `json:"tableDescription,omitempty"`
}

func (t TableEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return t.ID, true
	case "physicalDbName":
		return t.PhysicalDbName, true
	case "tableOwner":
		return t.TableOwner, true
	case "subjectArea":
		return t.SubjectArea, true
	case "schemaName":
		return t.SchemaName, true
	case "tableEnglishName":
		return t.TableEnglishName, true
	case "tableKoreanName":
		return t.TableKoreanName, true
	case "tableType":
		return t.TableType, true
	case "relatedEntityName":
		return t.RelatedEntityName, true
	case "publicFlag":
		return t.PublicFlag, true
	case "tableDescription":
		return t.TableDescription, true
	case "createdAt":
		return t.CreatedAt, true
	case "updatedAt":
		return t.UpdatedAt, true
	}
	return "", false
}

func (t *TableEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "physicalDbName":
		t.PhysicalDbName = value
	case "tableOwner":
		t.TableOwner = value
	case "subjectArea":
		t.SubjectArea = value
	case "schemaName":
		t.SchemaName = value
	case "tableEnglishName":
		t.TableEnglishName = value
	case "tableKoreanName":
		t.TableKoreanName = value
	case "tableType":
		t.TableType = value
	case "relatedEntityName":
		t.RelatedEntityName = value
	case "publicFlag":
		t.PublicFlag = value
	case "tableDescription":
		t.TableDescription = value
	default:
		return false
	}
	return true
}

func (t *TableEntry) MissingFields() []string {
	if strings.TrimSpace(t.TableEnglishName) == "" {
		return []string{"tableEnglishName"}
	}
	return nil
}

// ColumnEntry 列定义
type ColumnEntry struct {
	EntryMeta
	ScopeFlag         string      `json:"scopeFlag,omitempty"`
	SubjectArea       string      `json:"subjectArea,omitempty"`
	SchemaName        string      `json:"schemaName,omitempty"`
	TableEnglishName  string      `json:"tableEnglishName"`
	ColumnEnglishName string      `json:"columnEnglishName"`
	ColumnKoreanName  string      `json:"columnKoreanName"`
	ColumnDescription string      `json:"columnDescription,omitempty"`
	RelatedEntityName string      `json:"relatedEntityName,omitempty"`
	DomainName        string      `json:"domainName,omitempty"`
	DataType          string      `json:"dataType"`
	DataLength        LooseString `json:"dataLength"`
	DataDecimalLength LooseString `json:"dataDecimalLength"`
	DataFormat        string      `json:"dataFormat,omitempty"`
	NotNullFlag       string      `json:"notNullFlag,omitempty"`
	PkInfo            string      `json:"pkInfo,omitempty"`
	FkInfo            string      `json:"fkInfo,omitempty"`
	IndexName         string      `json:"indexName,omitempty"`
	IndexOrder        string      `json:"indexOrder,omitempty"`
	AkInfo            string      `json:"akInfo,omitempty"`
	Constraint        string      `json:"constraint,omitempty"`
	PersonalInfoFlag  string      `json:"personalInfoFlag,omitempty"`
	EncryptionFlag    string      `json:"encryptionFlag,omitempty"`
	PublicFlag        string      `json:"publicFlag,omitempty"`
}

func (c ColumnEntry) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return c.ID, true
	case "scopeFlag":
		return c.ScopeFlag, true
	case "subjectArea":
		return c.SubjectArea, true
	case "schemaName":
		return c.SchemaName, true
	case "tableEnglishName":
		return c.TableEnglishName, true
	case "columnEnglishName":
		return c.ColumnEnglishName, true
	case "columnKoreanName":
		return c.ColumnKoreanName, true
	case "columnDescription":
		return c.ColumnDescription, true
	case "relatedEntityName":
		return c.RelatedEntityName, true
	case "domainName":
		return c.DomainName, true
	case "dataType":
		return c.DataType, true
	case "dataLength":
		return c.DataLength.String(), true
	case "dataDecimalLength":
		return c.DataDecimalLength.String(), true
	case "dataFormat":
		return c.DataFormat, true
	case "notNullFlag":
		return c.NotNullFlag, true
	case "pkInfo":
		return c.PkInfo, true
	case "fkInfo":
		return c.FkInfo, true
	case "indexName":
		return c.IndexName, true
	case "indexOrder":
		return c.IndexOrder, true
	case "akInfo":
		return c.AkInfo, true
	case "constraint":
		return c.Constraint, true
	case "personalInfoFlag":
		return c.PersonalInfoFlag, true
	case "encryptionFlag":
		return c.EncryptionFlag, true
	case "publicFlag":
		return c.PublicFlag, true
	case "createdAt":
		return c.CreatedAt, true
	case "updatedAt":
		return c.UpdatedAt, true
	}
	return "", false
}

func (c *ColumnEntry) SetField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case "scopeFlag":
		c.ScopeFlag = value
	case "subjectArea":
		c.SubjectArea = value
	case "schemaName":
		c.SchemaName = value
	case "tableEnglishName":
		c.TableEnglishName = value
	case "columnEnglishName":
		c.ColumnEnglishName = value
	case "columnKoreanName":
		c.ColumnKoreanName = value
	case "columnDescription":
		c.ColumnDescription = value
	case "relatedEntityName":
		c.RelatedEntityName = value
	case "domainName":
		c.DomainName = value
	case "dataType":
		c.DataType = value
	case "dataLength":
		c.DataLength = LooseString(value)
	case "dataDecimalLength":
		c.DataDecimalLength = LooseString(value)
	case "dataFormat":
		c.DataFormat = value
	case "notNullFlag":
		c.NotNullFlag = value
	case "pkInfo":
		c.PkInfo = value
	case "fkInfo":
		c.FkInfo = value
	case "indexName":
		c.IndexName = value
	case "indexOrder":
		c.IndexOrder = value
	case "akInfo":
		c.AkInfo = value
	case "constraint":
		c.Constraint = value
	case "personalInfoFlag":
		c.PersonalInfoFlag = value
	case "encryptionFlag":
		c.EncryptionFlag = value
	case "publicFlag":
		c.PublicFlag = value
	default:
		return false
	}
	return true
}

func (c *ColumnEntry) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(c.TableEnglishName) == "" {
		missing = append(missing, "tableEnglishName")
	}
	if strings.TrimSpace(c.ColumnEnglishName) == "" {
		missing = append(missing, "columnEnglishName")
	}
	return missing
}
