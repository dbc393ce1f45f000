/*
 * @module service/models/entry
 * @description 目录条目公共模型，定义条目元信息、目录文件结构和跨文件映射
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 目录文件加载 -> 条目操作 -> 目录文件保存
 * @rules 每个条目只属于一个目录文件，跨文件引用通过文件名解析
 * @dependencies github.com/google/uuid, github.com/spf13/cast
 * @refs service/catalog_store/store.go
 */

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// TimestampLayout 条目时间戳格式（ISO-8601）
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Now 返回当前UTC时间戳字符串
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// EntryMeta 条目公共元信息
type EntryMeta struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Meta 返回元信息指针，供泛型服务读写ID和时间戳
func (m *EntryMeta) Meta() *EntryMeta {
	return m
}

// Stamp 为新建条目分配ID和时间戳
func (m *EntryMeta) Stamp() {
	now := Now()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Touch 刷新更新时间
func (m *EntryMeta) Touch() {
	m.UpdatedAt = Now()
}

// LooseString 长度类字段，序列化为字符串，读取时同时接受JSON数字和字符串
type LooseString string

// String 返回字符串值
func (s LooseString) String() string {
	return string(s)
}

// UnmarshalJSON 数字按原样转为字符串，null 视为空
func (s *LooseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = ""
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch raw.(type) {
	case string, json.Number, bool:
	default:
		return fmt.Errorf("长度字段必须是数字或字符串: %s", data)
	}
	value, err := cast.ToStringE(raw)
	if err != nil {
		return err
	}
	*s = LooseString(value)
	return nil
}

// Fielder 按字段名读取条目值的能力，通用列表、过滤、导出均依赖它
type Fielder interface {
	FieldValue(field string) (string, bool)
}

// Record 目录条目约束：T 的指针类型需要提供元信息、字段读写能力
type Record[T any] interface {
	*T
	Fielder
	Meta() *EntryMeta
	SetField(field, value string) bool
	MissingFields() []string
}

// CatalogMapping 目录文件之间的映射关系（按文件名引用）
type CatalogMapping struct {
	Vocabulary string `json:"vocabulary,omitempty"`
	Domain     string `json:"domain,omitempty"`
	Term       string `json:"term,omitempty"`
	Database   string `json:"database,omitempty"`
	Entity     string `json:"entity,omitempty"`
	Attribute  string `json:"attribute,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
}

// Get 按目录类型读取映射文件名
func (m *CatalogMapping) Get(catalogType string) string {
	if m == nil {
		return ""
	}
	switch catalogType {
	case CatalogVocabulary:
		return m.Vocabulary
	case CatalogDomain:
		return m.Domain
	case CatalogTerm:
		return m.Term
	case CatalogDatabase:
		return m.Database
	case CatalogEntity:
		return m.Entity
	case CatalogAttribute:
		return m.Attribute
	case CatalogTable:
		return m.Table
	case CatalogColumn:
		return m.Column
	}
	return ""
}

// Set 按目录类型设置映射文件名
func (m *CatalogMapping) Set(catalogType, filename string) {
	switch catalogType {
	case CatalogVocabulary:
		m.Vocabulary = filename
	case CatalogDomain:
		m.Domain = filename
	case CatalogTerm:
		m.Term = filename
	case CatalogDatabase:
		m.Database = filename
	case CatalogEntity:
		m.Entity = filename
	case CatalogAttribute:
		m.Attribute = filename
	case CatalogTable:
		m.Table = filename
	case CatalogColumn:
		m.Column = filename
	}
}

// CatalogFile 目录文件持久化结构
type CatalogFile[T any] struct {
	Entries     []T             `json:"entries"`
	LastUpdated string          `json:"lastUpdated"`
	TotalCount  int             `json:"totalCount"`
	Mapping     *CatalogMapping `json:"mapping,omitempty"`
	// MappedDomainFile 旧版术语文件字段，加载时迁移到 Mapping.Domain
	MappedDomainFile string `json:"mappedDomainFile,omitempty"`
}

// EnsureMapping 返回非空映射
func (f *CatalogFile[T]) EnsureMapping() *CatalogMapping {
	if f.Mapping == nil {
		f.Mapping = &CatalogMapping{}
	}
	return f.Mapping
}
