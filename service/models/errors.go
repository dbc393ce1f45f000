package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind 业务错误分类
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindConflict   ErrorKind = "conflict"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindInternal   ErrorKind = "internal"
)

// AppError 带分类的业务错误，控制器据此映射HTTP状态码
type AppError struct {
	Kind    ErrorKind
	Message string
	Data    interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 错误分类对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrorKindValidation:
		return http.StatusBadRequest
	case ErrorKindConflict:
		return http.StatusConflict
	case ErrorKindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrorKindValidation, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: ErrorKindConflict, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: ErrorKindInternal, Message: message, Err: err}
}

// WithData 附加响应数据
func (e *AppError) WithData(data interface{}) *AppError {
	e.Data = data
	return e
}

// IsKind 判断错误链中是否包含指定分类的 AppError
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
