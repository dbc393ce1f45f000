package controllers

import (
	"log/slog"
	"net/http"

	"datastandard-service/service/catalog_store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// FileController 目录文件管理控制器
type FileController struct {
	store *catalog_store.Store
}

// NewFileController 创建目录文件管理控制器
func NewFileController(store *catalog_store.Store) *FileController {
	return &FileController{store: store}
}

// CreateFileRequest 新建文件请求
type CreateFileRequest struct {
	Filename string `json:"filename" example:"vocabulary-2024.json"`
}

// RenameFileRequest 重命名文件请求
type RenameFileRequest struct {
	OldFilename string `json:"oldFilename" example:"draft.json"`
	NewFilename string `json:"newFilename" example:"final.json"`
}

// Routes 挂载某个目录类型的文件管理路由
func (c *FileController) Routes(catalogType string) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) { c.List(w, r, catalogType) })
		r.Post("/", func(w http.ResponseWriter, r *http.Request) { c.Create(w, r, catalogType) })
		r.Put("/", func(w http.ResponseWriter, r *http.Request) { c.Rename(w, r, catalogType) })
		r.Delete("/", func(w http.ResponseWriter, r *http.Request) { c.Delete(w, r, catalogType) })
	}
}

// List 文件列表
// @Summary 目录文件列表
// @Tags 文件
// @Produce json
// @Param catalog path string true "目录类型"
// @Success 200 {object} APIResponse{data=[]string}
// @Router /api/{catalog}/files [get]
func (c *FileController) List(w http.ResponseWriter, r *http.Request, catalogType string) {
	files, err := c.store.ListFiles(catalogType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", files)
}

// Create 新建文件
// @Summary 新建目录文件
// @Tags 文件
// @Accept json
// @Produce json
// @Param catalog path string true "目录类型"
// @Param request body CreateFileRequest true "文件名"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/{catalog}/files [post]
func (c *FileController) Create(w http.ResponseWriter, r *http.Request, catalogType string) {
	var req CreateFileRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, r, msgInvalidBody)
		return
	}
	if err := c.store.CreateFile(r.Context(), catalogType, req.Filename); err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("目录文件已创建", "catalog", catalogType, "filename", req.Filename)
	writeJSON(w, r, http.StatusCreated, SuccessResponse("파일이 생성되었습니다", map[string]string{"filename": req.Filename}))
}

// Rename 重命名文件
// @Summary 重命名目录文件
// @Description 同时更新其他目录文件中指向旧文件名的映射
// @Tags 文件
// @Accept json
// @Produce json
// @Param catalog path string true "目录类型"
// @Param request body RenameFileRequest true "新旧文件名"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/{catalog}/files [put]
func (c *FileController) Rename(w http.ResponseWriter, r *http.Request, catalogType string) {
	var req RenameFileRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, r, msgInvalidBody)
		return
	}
	if err := c.store.RenameFile(r.Context(), catalogType, req.OldFilename, req.NewFilename); err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("目录文件已重命名", "catalog", catalogType, "from", req.OldFilename, "to", req.NewFilename)
	writeSuccess(w, r, "파일 이름이 변경되었습니다", map[string]string{"filename": req.NewFilename})
}

// Delete 删除文件
// @Summary 删除目录文件
// @Tags 文件
// @Produce json
// @Param catalog path string true "目录类型"
// @Param filename query string true "文件名"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/{catalog}/files [delete]
func (c *FileController) Delete(w http.ResponseWriter, r *http.Request, catalogType string) {
	filename := r.URL.Query().Get("filename")
	if err := c.store.DeleteFile(r.Context(), catalogType, filename); err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("目录文件已删除", "catalog", catalogType, "filename", filename)
	writeSuccess(w, r, "파일이 삭제되었습니다", nil)
}
