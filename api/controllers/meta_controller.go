package controllers

import (
	"net/http"

	"datastandard-service/service/meta"
	"datastandard-service/service/spreadsheet"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type MetaController struct {
}

func NewMetaController() *MetaController {
	return &MetaController{}
}

// @Summary 获取目录类型元数据
// @Description 目录类型、显示名称与默认文件名
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=[]meta.MetaField}
// @Router /api/meta/catalog-types [get]
func (c *MetaController) GetCatalogTypes(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("", meta.CatalogTypeFields))
}

// @Summary 获取术语校验规则元数据
// @Description 规则代码、名称、优先级与报告级别
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=[]meta.TermRuleType}
// @Router /api/meta/term-rules [get]
func (c *MetaController) GetTermRules(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("", meta.TermRuleTypes))
}

// @Summary 获取统一报告级别元数据
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=map[string]int}
// @Router /api/meta/report-levels [get]
func (c *MetaController) GetReportLevels(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("", meta.LevelOrder))
}

// @Summary 获取表格模板列定义
// @Tags 元数据
// @Produce json
// @Param catalog path string true "目录类型"
// @Success 200 {object} APIResponse{data=spreadsheet.SheetSpec}
// @Failure 400 {object} APIResponse
// @Router /api/meta/sheets/{catalog} [get]
func (c *MetaController) GetSheetSpec(w http.ResponseWriter, r *http.Request) {
	spec, ok := spreadsheet.SpecFor(chi.URLParam(r, "catalog"))
	if !ok {
		writeBadRequest(w, r, msgUnknownCatalog)
		return
	}
	render.JSON(w, r, SuccessResponse("", spec))
}
