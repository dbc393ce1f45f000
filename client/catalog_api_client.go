/*
 * @module client/catalog_api_client
 * @description 内部目录接口客户端，编排器和统一校验报告通过它逐步调用同步与校验接口
 * @architecture 适配器模式 - 封装 resty HTTP 请求与统一响应解析
 * @documentReference ai_docs/alignment.md
 * @stateFlow 构造请求(方法/路径/查询参数) -> 发送 -> 解析 {success,data,error} -> StepResult
 * @rules 传输层失败返回 error；业务失败以 Success=false 返回并保留状态码
 * @dependencies github.com/go-resty/resty/v2
 * @refs service/alignment/orchestrator.go, service/validation_report/builder.go
 */

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// StepResult 一次内部接口调用的结果
type StepResult struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// DecodeData 解码 data 字段
func (r *StepResult) DecodeData(target interface{}) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("响应中没有 data 字段")
	}
	return json.Unmarshal(r.Data, target)
}

// StepCaller 内部接口调用能力
type StepCaller interface {
	Call(ctx context.Context, method, path string, query url.Values) (*StepResult, error)
}

// apiEnvelope 统一响应结构
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// CatalogAPIClient 基于 resty 的内部接口客户端
type CatalogAPIClient struct {
	httpClient *resty.Client
}

// NewCatalogAPIClient 创建内部接口客户端
func NewCatalogAPIClient(baseURL string, timeout time.Duration) *CatalogAPIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &CatalogAPIClient{httpClient: httpClient}
}

// Call 调用内部接口
func (c *CatalogAPIClient) Call(ctx context.Context, method, path string, query url.Values) (*StepResult, error) {
	req := c.httpClient.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		slog.Error("内部接口调用失败", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("内部接口调用失败 %s %s: %w", method, path, err)
	}

	result := &StepResult{StatusCode: resp.StatusCode()}
	var envelope apiEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		slog.Warn("内部接口响应无法解析",
			"method", method,
			"path", path,
			"status_code", resp.StatusCode(),
			"error", err)
		result.Error = fmt.Sprintf("응답을 해석할 수 없습니다 (HTTP %d)", resp.StatusCode())
		return result, nil
	}

	result.Success = envelope.Success && !resp.IsError()
	result.Data = envelope.Data
	result.Error = envelope.Error
	if !result.Success && result.Error == "" {
		result.Error = envelope.Message
	}
	return result, nil
}
