package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/distributed_lock"
	"datastandard-service/service/models"

	"github.com/go-chi/render"
	"github.com/spf13/cast"
)

// 通用错误提示
const (
	msgInternalError   = "서버 내부 오류가 발생했습니다"
	msgInvalidBody     = "요청 본문이 올바르지 않습니다"
	msgInvalidFilename = "파일명이 올바르지 않습니다"
	msgUnknownCatalog  = "알 수 없는 카탈로그 유형입니다"
	msgProtectedFile   = "시스템 파일은 변경하거나 삭제할 수 없습니다"
	msgFileExists      = "이미 존재하는 파일입니다"
	msgFileNotFound    = "파일을 찾을 수 없습니다"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty" example:"처리되었습니다"`
}

// SuccessResponse 成功响应
func SuccessResponse(message string, data interface{}) *APIResponse {
	return &APIResponse{Success: true, Message: message, Data: data}
}

// ErrorResponse 失败响应
func ErrorResponse(message string, data interface{}) *APIResponse {
	return &APIResponse{Success: false, Error: message, Data: data}
}

// writeJSON 设置状态码并输出响应
func writeJSON(w http.ResponseWriter, r *http.Request, status int, response *APIResponse) {
	render.Status(r, status)
	render.JSON(w, r, response)
}

func writeSuccess(w http.ResponseWriter, r *http.Request, message string, data interface{}) {
	writeJSON(w, r, http.StatusOK, SuccessResponse(message, data))
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusBadRequest, ErrorResponse(message, nil))
}

// writeError 将服务层错误映射为HTTP状态码和本地化提示
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			slog.Error("请求处理失败", "method", r.Method, "path", r.URL.Path, "error", err)
			writeJSON(w, r, status, ErrorResponse(msgInternalError, nil))
			return
		}
		writeJSON(w, r, status, ErrorResponse(appErr.Message, appErr.Data))
		return
	}

	switch {
	case errors.Is(err, catalog_store.ErrInvalidFilename):
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse(msgInvalidFilename, nil))
	case errors.Is(err, catalog_store.ErrUnknownCatalog):
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse(msgUnknownCatalog, nil))
	case errors.Is(err, catalog_store.ErrProtectedFile):
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse(msgProtectedFile, nil))
	case errors.Is(err, catalog_store.ErrFileExists):
		writeJSON(w, r, http.StatusConflict, ErrorResponse(msgFileExists, nil))
	case errors.Is(err, catalog_store.ErrFileNotFound):
		writeJSON(w, r, http.StatusNotFound, ErrorResponse(msgFileNotFound, nil))
	default:
		var readErr *catalog_store.FileReadError
		if errors.As(err, &readErr) {
			slog.Error("目录文件不可读",
				"path", readErr.Path,
				"recovered_from_backup", readErr.RecoveredFromBackup,
				"error", readErr.Err)
		} else if errors.Is(err, distributed_lock.ErrLockTimeout) {
			slog.Error("获取目录文件锁超时", "method", r.Method, "path", r.URL.Path, "error", err)
		} else {
			slog.Error("请求处理失败", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse(msgInternalError, nil))
	}
}

// queryBool 读取布尔查询参数，缺省或无法解析时使用 fallback
func queryBool(values url.Values, key string, fallback bool) bool {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return fallback
	}
	return v
}
