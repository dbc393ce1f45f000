/*
 * @module api/controllers/term_controller
 * @description 术语专用接口：单条校验、全量校验、映射同步、术语文件映射关系
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow HTTP请求 -> 术语校验/同步服务 -> 统一响应
 * @rules 单条校验不落盘；校验失败按首个错误规则返回 400 或 409
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/term_validation/service.go, service/catalog_sync/term_sync.go
 */

package controllers

import (
	"net/http"

	"datastandard-service/service/catalog"
	"datastandard-service/service/catalog_sync"
	"datastandard-service/service/models"
	"datastandard-service/service/term_validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// TermController 术语专用控制器
type TermController struct {
	terms     *catalog.Service[models.TermEntry, *models.TermEntry]
	validator *term_validation.Service
	sync      *catalog_sync.Service
}

// NewTermController 创建术语专用控制器
func NewTermController(terms *catalog.Service[models.TermEntry, *models.TermEntry], validator *term_validation.Service, sync *catalog_sync.Service) *TermController {
	return &TermController{terms: terms, validator: validator, sync: sync}
}

// Routes 挂载术语专用路由，需在通用目录路由之前注册
func (c *TermController) Routes(r chi.Router) {
	r.Post("/validate", c.Validate)
	r.Get("/validate-all", c.ValidateAll)
	r.Post("/sync", c.Sync)
	r.Get("/mapping", c.GetMapping)
	r.Put("/mapping", c.UpdateMapping)
}

func termFilename(filename string) string {
	return models.ResolveFilename(filename, "", models.DefaultFilename(models.CatalogTerm))
}

// Validate 单条术语校验
// @Summary 术语校验(不保存)
// @Description entryId 非空为编辑模式，跳过重复检查
// @Tags 术语
// @Accept json
// @Produce json
// @Param filename query string false "术语文件"
// @Param entryId query string false "编辑中的术语ID"
// @Param request body models.TermEntry true "术语"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/term/validate [post]
func (c *TermController) Validate(w http.ResponseWriter, r *http.Request) {
	var entry models.TermEntry
	if err := render.DecodeJSON(r.Body, &entry); err != nil {
		writeBadRequest(w, r, msgInvalidBody)
		return
	}
	values := r.URL.Query()
	result, err := c.validator.ValidateEntry(r.Context(), termFilename(values.Get("filename")), entry, values.Get("entryId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if result.Valid {
		writeSuccess(w, r, "검증을 통과했습니다", result)
		return
	}

	message := result.Errors[0].Message
	writeJSON(w, r, result.Status, ErrorResponse(message, result))
}

// ValidateAll 全量术语校验
// @Summary 术语全量校验
// @Tags 术语
// @Produce json
// @Param filename query string false "术语文件"
// @Success 200 {object} APIResponse{data=models.TermValidationSummary}
// @Router /api/term/validate-all [get]
func (c *TermController) ValidateAll(w http.ResponseWriter, r *http.Request) {
	summary, err := c.validator.ValidateAll(r.Context(), termFilename(r.URL.Query().Get("filename")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", summary)
}

// Sync 重新计算术语映射标记
// @Summary 术语映射同步
// @Tags 术语
// @Produce json
// @Param apply query bool false "是否保存，默认 true"
// @Param filename query string false "术语文件"
// @Param vocabularyFile query string false "标准单词文件"
// @Param domainFile query string false "域文件"
// @Success 200 {object} APIResponse{data=catalog_sync.TermSyncResult}
// @Router /api/term/sync [post]
func (c *TermController) Sync(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	result, err := c.sync.SyncTerms(r.Context(), catalog_sync.TermSyncOptions{
		TermFile:       values.Get("filename"),
		VocabularyFile: values.Get("vocabularyFile"),
		DomainFile:     values.Get("domainFile"),
		Apply:          queryBool(values, "apply", true),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, syncMessage(result.Applied, result.Updated), result)
}

// GetMapping 术语文件映射关系
// @Summary 术语文件映射
// @Tags 术语
// @Produce json
// @Param filename query string false "术语文件"
// @Success 200 {object} APIResponse{data=models.CatalogMapping}
// @Failure 404 {object} APIResponse
// @Router /api/term/mapping [get]
func (c *TermController) GetMapping(w http.ResponseWriter, r *http.Request) {
	mapping, err := c.terms.GetMapping(r.Context(), r.URL.Query().Get("filename"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", mapping)
}

// UpdateMapping 更新术语文件映射关系
// @Summary 更新术语文件映射
// @Tags 术语
// @Accept json
// @Produce json
// @Param filename query string false "术语文件"
// @Param request body models.CatalogMapping true "vocabulary / domain"
// @Success 200 {object} APIResponse{data=models.CatalogMapping}
// @Failure 404 {object} APIResponse
// @Router /api/term/mapping [put]
func (c *TermController) UpdateMapping(w http.ResponseWriter, r *http.Request) {
	var patch models.CatalogMapping
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		writeBadRequest(w, r, msgInvalidBody)
		return
	}
	mapping, err := c.terms.UpdateMapping(r.Context(), r.URL.Query().Get("filename"), models.CatalogMapping{
		Vocabulary: patch.Vocabulary,
		Domain:     patch.Domain,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "매핑이 저장되었습니다", mapping)
}
