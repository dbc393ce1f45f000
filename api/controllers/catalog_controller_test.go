/*
 * @module api/controllers/catalog_controller_test
 * @description 目录条目、文件管理与术语接口的HTTP测试
 * @architecture 测试层
 * @documentReference .specify/memory/test_plan.md
 * @stateFlow 临时数据目录 -> 路由构建 -> 请求 -> 响应验证
 * @rules 通过真实的目录存储验证统一响应结构与状态码
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"datastandard-service/service/catalog"
	"datastandard-service/service/catalog_sync"
	"datastandard-service/service/history"
	"datastandard-service/service/models"
	"datastandard-service/service/term_validation"
	"datastandard-service/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router  *chi.Mux
	helper  *testutil.HTTPTestHelper
	factory *testutil.TestDataFactory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := testutil.NewTestStore(t)
	factory := testutil.NewTestDataFactory(t, store)
	factory.StandardCatalogs()

	hist := history.NewService(store, 100, nil)
	cats := catalog.NewCatalogs(store, hist)
	syncService := catalog_sync.NewService(store, hist)
	files := NewFileController(store)
	terms := NewTermController(cats.Term, term_validation.NewService(store), syncService)

	r := chi.NewRouter()
	r.Route("/api/vocabulary", func(r chi.Router) {
		r.Route("/files", files.Routes(models.CatalogVocabulary))
		NewCatalogController(cats.Vocabulary, hist).Routes(r)
	})
	r.Route("/api/term", func(r chi.Router) {
		terms.Routes(r)
		NewCatalogController(cats.Term, hist).Routes(r)
	})
	return &testServer{router: r, helper: testutil.NewHTTPTestHelper(), factory: factory}
}

func (s *testServer) do(t *testing.T, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req, err := s.helper.CreateJSONRequest(method, url, body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestCatalogController_CreateThenGet(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/vocabulary", map[string]interface{}{
		"standardName": "주문",
		"abbreviation": "ORD",
		"englishName":  "Order",
		"description":  "주문 정보",
	})
	envelope := s.helper.DecodeResponse(t, w, http.StatusCreated)
	assert.True(t, envelope.Success)

	var created models.VocabularyEntry
	s.helper.DecodeData(t, envelope, &created)
	require.NotEmpty(t, created.ID)

	w = s.do(t, http.MethodGet, "/api/vocabulary/"+created.ID, nil)
	envelope = s.helper.DecodeResponse(t, w, http.StatusOK)
	var got models.VocabularyEntry
	s.helper.DecodeData(t, envelope, &got)
	assert.Equal(t, "주문", got.StandardName)
	assert.Equal(t, "ORD", got.Abbreviation)
	assert.Equal(t, "Order", got.EnglishName)
	assert.Equal(t, "주문 정보", got.Description)
}

func TestCatalogController_UpdateKeepsAbsentFields(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/api/vocabulary", map[string]interface{}{
		"id":          "v-user",
		"description": "변경된 설명",
	})
	envelope := s.helper.DecodeResponse(t, w, http.StatusOK)
	var updated models.VocabularyEntry
	s.helper.DecodeData(t, envelope, &updated)
	assert.Equal(t, "변경된 설명", updated.Description)
	assert.Equal(t, "사용자", updated.StandardName)
	assert.Equal(t, "USER", updated.Abbreviation)
	assert.Equal(t, "User", updated.EnglishName)
}

func TestCatalogController_ErrorStatuses(t *testing.T) {
	s := newTestServer(t)

	t.Run("缺少必填字段", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/vocabulary", map[string]interface{}{"standardName": "주문"})
		envelope := s.helper.DecodeResponse(t, w, http.StatusBadRequest)
		assert.False(t, envelope.Success)
		assert.Contains(t, envelope.Error, "필수 필드가 누락되었습니다")
	})

	t.Run("缩写重复", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/vocabulary", map[string]interface{}{
			"standardName": "유저", "abbreviation": "USER", "englishName": "User",
		})
		s.helper.DecodeResponse(t, w, http.StatusConflict)
	})

	t.Run("更新缺少ID", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/vocabulary", map[string]interface{}{"description": "x"})
		s.helper.DecodeResponse(t, w, http.StatusBadRequest)
	})

	t.Run("删除不存在的条目", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/vocabulary?id=missing", nil)
		s.helper.DecodeResponse(t, w, http.StatusNotFound)
	})

	t.Run("分页参数非法", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/vocabulary?page=0", nil)
		s.helper.DecodeResponse(t, w, http.StatusBadRequest)
	})

	t.Run("请求体不是JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/vocabulary", nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.helper.DecodeResponse(t, w, http.StatusBadRequest)
	})
}

func TestCatalogController_DeleteReturnsWarnings(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodDelete, "/api/vocabulary?id=v-user", nil)
	envelope := s.helper.DecodeResponse(t, w, http.StatusOK)
	var result struct {
		Warnings []string `json:"warnings"`
	}
	s.helper.DecodeData(t, envelope, &result)
	assert.NotEmpty(t, result.Warnings)
}

func TestFileController_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/vocabulary/files", map[string]string{"filename": "draft.json"})
	s.helper.DecodeResponse(t, w, http.StatusCreated)

	w = s.do(t, http.MethodPost, "/api/vocabulary/files", map[string]string{"filename": "draft.json"})
	s.helper.DecodeResponse(t, w, http.StatusConflict)

	w = s.do(t, http.MethodPost, "/api/vocabulary/files", map[string]string{"filename": "../evil.json"})
	s.helper.DecodeResponse(t, w, http.StatusBadRequest)

	w = s.do(t, http.MethodPut, "/api/vocabulary/files", map[string]string{"oldFilename": "draft.json", "newFilename": "final.json"})
	s.helper.DecodeResponse(t, w, http.StatusOK)

	w = s.do(t, http.MethodGet, "/api/vocabulary/files", nil)
	envelope := s.helper.DecodeResponse(t, w, http.StatusOK)
	var files []string
	s.helper.DecodeData(t, envelope, &files)
	assert.Equal(t, []string{"final.json", "vocabulary.json"}, files)

	w = s.do(t, http.MethodDelete, "/api/vocabulary/files?filename=vocabulary.json", nil)
	s.helper.DecodeResponse(t, w, http.StatusBadRequest)

	w = s.do(t, http.MethodDelete, "/api/vocabulary/files?filename=final.json", nil)
	s.helper.DecodeResponse(t, w, http.StatusOK)

	w = s.do(t, http.MethodDelete, "/api/vocabulary/files?filename=final.json", nil)
	s.helper.DecodeResponse(t, w, http.StatusNotFound)
}

func TestCatalogController_CreateInUnknownFile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/vocabulary?filename=missing.json", map[string]interface{}{
		"standardName": "주문", "abbreviation": "ORD", "englishName": "Order",
	})
	s.helper.DecodeResponse(t, w, http.StatusNotFound)
}

func TestTermController_Validate(t *testing.T) {
	s := newTestServer(t)

	t.Run("通过", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/term/validate", models.TermEntry{
			TermName: "이름_수", ColumnName: "NAME_CNT", DomainName: "수량_NUMERIC(10)",
		})
		envelope := s.helper.DecodeResponse(t, w, http.StatusOK)
		assert.True(t, envelope.Success)
	})

	t.Run("重复返回409", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/term/validate", models.TermEntry{
			TermName: "사용자_이름", ColumnName: "USER_NAME", DomainName: "명_VARCHAR(100)",
		})
		envelope := s.helper.DecodeResponse(t, w, http.StatusConflict)
		assert.False(t, envelope.Success)

		var result struct {
			Errors     []models.ValidationError `json:"errors"`
			ErrorCount int                      `json:"errorCount"`
		}
		s.helper.DecodeData(t, envelope, &result)
		require.NotEmpty(t, result.Errors)
		assert.Equal(t, len(result.Errors), result.ErrorCount)
	})

	t.Run("编辑模式跳过重复检查", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/term/validate?entryId=t-user-name", models.TermEntry{
			TermName: "사용자_이름", ColumnName: "USER_NAME", DomainName: "명_VARCHAR(100)",
		})
		s.helper.DecodeResponse(t, w, http.StatusOK)
	})

	t.Run("单个单词返回400", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/term/validate", models.TermEntry{
			TermName: "사용자", ColumnName: "USER", DomainName: "명_VARCHAR(100)",
		})
		envelope := s.helper.DecodeResponse(t, w, http.StatusBadRequest)
		assert.Contains(t, envelope.Error, "2개 이상")
	})
}

func TestTermController_ValidateAll(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/term/validate-all", nil)
	envelope := s.helper.DecodeResponse(t, w, http.StatusOK)
	var summary models.TermValidationSummary
	s.helper.DecodeData(t, envelope, &summary)
	assert.Equal(t, 2, summary.TotalCount)
	assert.Equal(t, summary.TotalCount, summary.PassedCount+summary.FailedCount)
}

func TestTermController_Mapping(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/term/mapping", nil)
	envelope := s.helper.DecodeResponse(t, w, http.StatusOK)
	var mapping models.CatalogMapping
	s.helper.DecodeData(t, envelope, &mapping)
	assert.Equal(t, "vocabulary.json", mapping.Vocabulary)
	assert.Equal(t, "domain.json", mapping.Domain)

	w = s.do(t, http.MethodPut, "/api/term/mapping", map[string]string{"domain": "missing.json"})
	s.helper.DecodeResponse(t, w, http.StatusNotFound)

	s.factory.Domains("domain-2024.json")
	w = s.do(t, http.MethodPut, "/api/term/mapping", map[string]string{"domain": "domain-2024.json"})
	envelope = s.helper.DecodeResponse(t, w, http.StatusOK)
	s.helper.DecodeData(t, envelope, &mapping)
	assert.Equal(t, "domain-2024.json", mapping.Domain)
	assert.Equal(t, "vocabulary.json", mapping.Vocabulary)
}

func TestTermController_SyncPreview(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/term/sync?apply=false", nil)
	envelope := s.helper.DecodeResponse(t, w, http.StatusOK)
	var result catalog_sync.TermSyncResult
	s.helper.DecodeData(t, envelope, &result)
	assert.False(t, result.Applied)
	assert.Equal(t, 2, result.Total)
}
