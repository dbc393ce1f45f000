/*
 * @module api/controllers/sync_controller
 * @description 目录同步接口：标准单词-域、列-术语、实体关系校验与同步
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow HTTP请求 -> 同步服务(预览/应用) -> 统一响应
 * @rules apply=false 只返回计数不保存；每个同步步骤最多保存一次
 * @dependencies github.com/go-chi/chi/v5
 * @refs service/catalog_sync, service/relation
 */

package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"datastandard-service/service/catalog_sync"
	"datastandard-service/service/relation"
)

// SyncController 目录同步控制器
type SyncController struct {
	sync     *catalog_sync.Service
	relation *relation.Service
}

// NewSyncController 创建目录同步控制器
func NewSyncController(sync *catalog_sync.Service, relation *relation.Service) *SyncController {
	return &SyncController{sync: sync, relation: relation}
}

func syncMessage(applied bool, updated int) string {
	if !applied {
		return fmt.Sprintf("미리보기: %d건 변경 예정", updated)
	}
	return fmt.Sprintf("%d건이 동기화되었습니다", updated)
}

func relationFiles(values url.Values) relation.Files {
	return relation.Files{
		Database:  values.Get("databaseFile"),
		Entity:    values.Get("entityFile"),
		Attribute: values.Get("attributeFile"),
		Table:     values.Get("tableFile"),
		Column:    values.Get("columnFile"),
	}
}

// SyncVocabularyDomain 标准单词-域同步
// @Summary 标准单词-域同步
// @Tags 同步
// @Produce json
// @Param apply query bool false "是否保存，默认 true"
// @Param vocabularyFile query string false "标准单词文件"
// @Param domainFile query string false "域文件"
// @Success 200 {object} APIResponse{data=catalog_sync.VocabularyDomainResult}
// @Router /api/vocabulary/sync-domain [post]
func (c *SyncController) SyncVocabularyDomain(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	result, err := c.sync.SyncVocabularyDomains(r.Context(), catalog_sync.VocabularyDomainOptions{
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

func (c *SyncController) syncColumns(w http.ResponseWriter, r *http.Request, apply bool) {
	values := r.URL.Query()
	result, err := c.sync.SyncColumns(r.Context(), catalog_sync.ColumnSyncOptions{
		ColumnFile: values.Get("columnFile"),
		TermFile:   values.Get("termFile"),
		DomainFile: values.Get("domainFile"),
		Apply:      apply,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, syncMessage(result.Applied, result.Updated), result)
}

// ColumnSyncStatus 列-术语同步预览
// @Summary 列-术语同步状态
// @Tags 同步
// @Produce json
// @Param columnFile query string false "列文件"
// @Param termFile query string false "术语文件"
// @Param domainFile query string false "域文件"
// @Success 200 {object} APIResponse{data=catalog_sync.ColumnSyncResult}
// @Router /api/column/sync-term [get]
func (c *SyncController) ColumnSyncStatus(w http.ResponseWriter, r *http.Request) {
	c.syncColumns(w, r, false)
}

// SyncColumnTerm 列-术语同步
// @Summary 列-术语同步
// @Tags 同步
// @Produce json
// @Param apply query bool false "是否保存，默认 true"
// @Param columnFile query string false "列文件"
// @Param termFile query string false "术语文件"
// @Param domainFile query string false "域文件"
// @Success 200 {object} APIResponse{data=catalog_sync.ColumnSyncResult}
// @Router /api/column/sync-term [post]
func (c *SyncController) SyncColumnTerm(w http.ResponseWriter, r *http.Request) {
	c.syncColumns(w, r, queryBool(r.URL.Query(), "apply", true))
}

// ValidateRelations 实体关系校验
// @Summary 设计套件关系校验
// @Tags 关系
// @Produce json
// @Param databaseFile query string false "数据库文件"
// @Param entityFile query string false "实体文件"
// @Param attributeFile query string false "属性文件"
// @Param tableFile query string false "表文件"
// @Param columnFile query string false "列文件"
// @Success 200 {object} APIResponse{data=models.RelationValidationResult}
// @Router /api/erd/relations/validate [get]
func (c *SyncController) ValidateRelations(w http.ResponseWriter, r *http.Request) {
	result, err := c.relation.Validate(r.Context(), relationFiles(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", result)
}

// SyncRelations 实体关系同步
// @Summary 设计套件关系同步
// @Description 补全空的 table.relatedEntityName 与 column.relatedEntityName
// @Tags 关系
// @Produce json
// @Param apply query bool false "是否保存，默认 true"
// @Param databaseFile query string false "数据库文件"
// @Param entityFile query string false "实体文件"
// @Param attributeFile query string false "属性文件"
// @Param tableFile query string false "表文件"
// @Param columnFile query string false "列文件"
// @Success 200 {object} APIResponse{data=relation.SyncResult}
// @Router /api/erd/relations/sync [post]
func (c *SyncController) SyncRelations(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	result, err := c.relation.Sync(r.Context(), relationFiles(values), queryBool(values, "apply", true))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, syncMessage(result.Applied, result.Updated), result)
}
