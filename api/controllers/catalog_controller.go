/*
 * @module api/controllers/catalog_controller
 * @description 目录条目通用控制器：列表、详情、新建、合并补丁更新、删除、表格导入导出、审计日志
 * @architecture MVC架构 - 控制器层，按条目类型参数化
 * @documentReference ai_docs/api_conventions.md
 * @stateFlow HTTP请求 -> 参数校验 -> 目录服务 -> 统一响应
 * @rules 每个目录类型挂载同一组路由；filename 缺省为该类型的默认文件
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/catalog/service.go, api/routes.go
 */

package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"datastandard-service/service/catalog"
	"datastandard-service/service/history"
	"datastandard-service/service/listing"
	"datastandard-service/service/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/spf13/cast"
)

// 上传文件大小上限
const maxUploadSize = 32 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CatalogController 目录条目控制器
type CatalogController[T models.Fielder, P models.Record[T]] struct {
	service *catalog.Service[T, P]
	history *history.Service
}

// NewCatalogController 创建目录条目控制器
func NewCatalogController[T models.Fielder, P models.Record[T]](service *catalog.Service[T, P], history *history.Service) *CatalogController[T, P] {
	return &CatalogController[T, P]{service: service, history: history}
}

// Routes 挂载目录条目路由
func (c *CatalogController[T, P]) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Put("/", c.Update)
	r.Delete("/", c.Delete)
	r.Post("/upload", c.Upload)
	r.Get("/download", c.Download)
	r.Get("/history", c.History)
	r.Get("/{id}", c.Get)
}

// List 条目列表
// @Summary 目录条目列表
// @Description 搜索、过滤(filters[col]=val)、排序、分页
// @Tags 目录
// @Produce json
// @Param catalog path string true "目录类型"
// @Param filename query string false "目录文件"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Param sortBy query string false "排序字段"
// @Param sortOrder query string false "asc|desc"
// @Param query query string false "搜索关键字"
// @Param field query string false "搜索字段"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/{catalog} [get]
func (c *CatalogController[T, P]) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := listing.ParseQuery(values, listing.MaxLimitFor(c.service.CatalogType()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := c.service.List(r.Context(), values.Get("filename"), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", page)
}

// Get 条目详情
// @Summary 目录条目详情
// @Tags 目录
// @Produce json
// @Param catalog path string true "目录类型"
// @Param id path string true "条目ID"
// @Param filename query string false "目录文件"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/{catalog}/{id} [get]
func (c *CatalogController[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := c.service.Get(r.Context(), r.URL.Query().Get("filename"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", entry)
}

// Create 新建条目
// @Summary 新建目录条目
// @Tags 目录
// @Accept json
// @Produce json
// @Param catalog path string true "目录类型"
// @Param filename query string false "目录文件"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/{catalog} [post]
func (c *CatalogController[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	var entry T
	if err := render.DecodeJSON(r.Body, &entry); err != nil {
		writeBadRequest(w, r, msgInvalidBody)
		return
	}
	created, err := c.service.Create(r.Context(), r.URL.Query().Get("filename"), entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, SuccessResponse("등록되었습니다", created))
}

// Update 合并补丁更新
// @Summary 更新目录条目
// @Description 请求体中未出现的字段保持不变
// @Tags 目录
// @Accept json
// @Produce json
// @Param catalog path string true "目录类型"
// @Param filename query string false "目录文件"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/{catalog} [put]
func (c *CatalogController[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, r, msgInvalidBody)
		return
	}
	var target struct {
		ID string `json:"id"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &target); err != nil {
			writeBadRequest(w, r, msgInvalidBody)
			return
		}
	}
	id := target.ID
	if id == "" {
		id = r.URL.Query().Get("id")
	}

	updated, err := c.service.Update(r.Context(), r.URL.Query().Get("filename"), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "수정되었습니다", updated)
}

// Delete 删除条目
// @Summary 删除目录条目
// @Description 未指定 force 时返回引用警告，但不阻止删除
// @Tags 目录
// @Produce json
// @Param catalog path string true "目录类型"
// @Param id query string true "条目ID"
// @Param force query bool false "跳过引用检查"
// @Param filename query string false "目录文件"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/{catalog} [delete]
func (c *CatalogController[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	result, err := c.service.Delete(r.Context(), values.Get("filename"), values.Get("id"), cast.ToBool(values.Get("force")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "삭제되었습니다", result)
}

// Upload 表格导入
// @Summary 表格导入
// @Tags 目录
// @Accept multipart/form-data
// @Produce json
// @Param catalog path string true "目录类型"
// @Param file formData file true "xlsx 文件"
// @Param filename query string false "目录文件"
// @Param replace query bool false "替换全部条目"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/{catalog}/upload [post]
func (c *CatalogController[T, P]) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeBadRequest(w, r, "업로드 파일을 읽을 수 없습니다")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, r, "file 필드가 필요합니다")
		return
	}
	defer file.Close()

	values := r.URL.Query()
	result, err := c.service.Import(r.Context(), values.Get("filename"), file, cast.ToBool(values.Get("replace")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, fmt.Sprintf("%d건을 가져왔습니다", result.Imported), result)
}

// Download 表格导出
// @Summary 表格导出
// @Tags 目录
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param catalog path string true "目录类型"
// @Param filename query string false "目录文件"
// @Success 200 {file} file
// @Router /api/{catalog}/download [get]
func (c *CatalogController[T, P]) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	data, err := c.service.Export(r.Context(), filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if filename == "" {
		filename = models.DefaultFilename(c.service.CatalogType())
	}
	name := strings.TrimSuffix(filename, ".json") + ".xlsx"

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// History 审计日志
// @Summary 目录审计日志
// @Tags 目录
// @Produce json
// @Param catalog path string true "目录类型"
// @Param limit query int false "最多返回条数"
// @Success 200 {object} APIResponse{data=models.HistoryFile}
// @Router /api/{catalog}/history [get]
func (c *CatalogController[T, P]) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := cast.ToIntE(raw)
		if err != nil || v < 0 {
			writeBadRequest(w, r, "limit는 0 이상의 정수여야 합니다")
			return
		}
		limit = v
	}
	logs, err := c.history.List(r.Context(), c.service.CatalogType(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", logs)
}
