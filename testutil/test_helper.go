/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 测试环境初始化(临时数据目录) -> 测试数据创建 -> 测试执行 -> 自动清理
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies testify, datastandard-service/service/catalog_store
 * @refs service/models
 */

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/distributed_lock"
	"datastandard-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestStore 在临时目录创建带文件锁的目录存储
func NewTestStore(t *testing.T) *catalog_store.Store {
	t.Helper()
	options := distributed_lock.DefaultLockOptions()
	options.Timeout = 2 * time.Second
	locker := distributed_lock.NewLockExecutor(distributed_lock.NewFileLock(time.Minute), options)
	return catalog_store.NewStore(t.TempDir(), catalog_store.NewCatalogCache(), locker)
}

// TestDataFactory 测试数据工厂，直接写入目录文件
type TestDataFactory struct {
	t     *testing.T
	store *catalog_store.Store
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(t *testing.T, store *catalog_store.Store) *TestDataFactory {
	return &TestDataFactory{t: t, store: store}
}

// Store 返回目录存储
func (f *TestDataFactory) Store() *catalog_store.Store {
	return f.store
}

func seed[T any, P models.Record[T]](f *TestDataFactory, catalogType, filename string, mapping *models.CatalogMapping, entries []T) []T {
	f.t.Helper()
	for i := range entries {
		meta := P(&entries[i]).Meta()
		id := meta.ID
		meta.Stamp()
		if id != "" {
			meta.ID = id
		}
	}
	file := &models.CatalogFile[T]{Entries: entries, Mapping: mapping}
	require.NoError(f.t, catalog_store.Save(context.Background(), f.store, catalogType, filename, file))
	return entries
}

// Vocabulary 写入标准单词文件
func (f *TestDataFactory) Vocabulary(filename string, entries ...models.VocabularyEntry) []models.VocabularyEntry {
	return seed[models.VocabularyEntry](f, models.CatalogVocabulary, filename, nil, entries)
}

// Domains 写入域文件
func (f *TestDataFactory) Domains(filename string, entries ...models.DomainEntry) []models.DomainEntry {
	for i := range entries {
		entries[i].Normalize()
	}
	return seed[models.DomainEntry](f, models.CatalogDomain, filename, nil, entries)
}

// Terms 写入术语文件
func (f *TestDataFactory) Terms(filename string, mapping *models.CatalogMapping, entries ...models.TermEntry) []models.TermEntry {
	return seed[models.TermEntry](f, models.CatalogTerm, filename, mapping, entries)
}

// Databases 写入数据库定义文件
func (f *TestDataFactory) Databases(filename string, entries ...models.DatabaseEntry) []models.DatabaseEntry {
	return seed[models.DatabaseEntry](f, models.CatalogDatabase, filename, nil, entries)
}

// Entities 写入实体定义文件
func (f *TestDataFactory) Entities(filename string, entries ...models.EntityEntry) []models.EntityEntry {
	return seed[models.EntityEntry](f, models.CatalogEntity, filename, nil, entries)
}

// Attributes 写入属性定义文件
func (f *TestDataFactory) Attributes(filename string, entries ...models.AttributeEntry) []models.AttributeEntry {
	return seed[models.AttributeEntry](f, models.CatalogAttribute, filename, nil, entries)
}

// Tables 写入表定义文件
func (f *TestDataFactory) Tables(filename string, entries ...models.TableEntry) []models.TableEntry {
	return seed[models.TableEntry](f, models.CatalogTable, filename, nil, entries)
}

// Columns 写入列定义文件
func (f *TestDataFactory) Columns(filename string, mapping *models.CatalogMapping, entries ...models.ColumnEntry) []models.ColumnEntry {
	return seed[models.ColumnEntry](f, models.CatalogColumn, filename, mapping, entries)
}

// StandardCatalogs 写入一组相互一致的标准单词/域/术语
func (f *TestDataFactory) StandardCatalogs() {
	formal := true
	f.Vocabulary("vocabulary.json",
		models.VocabularyEntry{EntryMeta: models.EntryMeta{ID: "v-user"}, StandardName: "사용자", Abbreviation: "USER", EnglishName: "User"},
		models.VocabularyEntry{EntryMeta: models.EntryMeta{ID: "v-name"}, StandardName: "이름", Abbreviation: "NAME", EnglishName: "Name", IsFormalWord: &formal, DomainCategory: "명"},
		models.VocabularyEntry{EntryMeta: models.EntryMeta{ID: "v-cnt"}, StandardName: "수", Abbreviation: "CNT", EnglishName: "Count", IsFormalWord: &formal, DomainCategory: "수량"},
	)
	f.Domains("domain.json",
		models.DomainEntry{EntryMeta: models.EntryMeta{ID: "d-name"}, DomainGroup: "문자", DomainCategory: "명", PhysicalDataType: "VARCHAR", DataLength: "100"},
		models.DomainEntry{EntryMeta: models.EntryMeta{ID: "d-cnt"}, DomainGroup: "숫자", DomainCategory: "수량", PhysicalDataType: "NUMERIC", DataLength: "10"},
	)
	f.Terms("term.json", nil,
		models.TermEntry{EntryMeta: models.EntryMeta{ID: "t-user-name"}, TermName: "사용자_이름", ColumnName: "USER_NAME", DomainName: "명_VARCHAR(100)"},
		models.TermEntry{EntryMeta: models.EntryMeta{ID: "t-user-cnt"}, TermName: "사용자_수", ColumnName: "USER_CNT", DomainName: "수량_NUMERIC(10)"},
	)
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Envelope 统一响应的解码结构
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// DecodeResponse 断言状态码并解码统一响应
func (h *HTTPTestHelper) DecodeResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) Envelope {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, w.Body.String())

	var envelope Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

// DecodeData 解码响应中的 data 字段
func (h *HTTPTestHelper) DecodeData(t *testing.T, envelope Envelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}
