/*
 * @module service/alignment/orchestrator
 * @description 对齐编排器：依次执行 标准单词-域同步 -> 术语映射同步 -> 实体关系同步 -> 列-术语同步 -> 统一校验报告
 * @architecture 编排模式 - 每一步是对内部接口的黑盒调用
 * @documentReference ai_docs/alignment.md
 * @stateFlow 逐步调用 -> 遇到第一个失败步骤即停止 -> 汇总各步骤计数
 * @rules 步骤严格顺序执行，后续步骤依赖前序步骤已修正的术语目录；已应用的步骤不回滚
 * @dependencies datastandard-service/client
 * @refs api/controllers/alignment_controller.go, service/scheduler/scheduler_service.go
 */

package alignment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"datastandard-service/client"
	"datastandard-service/service/metrics"
)

// 步骤名称
const (
	StepVocabulary = "vocabulary"
	StepTerm       = "term"
	StepRelation   = "relation"
	StepColumn     = "column"
	StepReport     = "report"
)

// 运行模式
const (
	ModeApply   = "apply"
	ModePreview = "preview"
)

// Files 各目录使用的文件名，空值由各步骤接口回退到默认文件
type Files struct {
	Vocabulary string `json:"vocabulary,omitempty"`
	Domain     string `json:"domain,omitempty"`
	Term       string `json:"term,omitempty"`
	Database   string `json:"database,omitempty"`
	Entity     string `json:"entity,omitempty"`
	Attribute  string `json:"attribute,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
}

// FilesFromQuery 从查询参数读取文件名
func FilesFromQuery(values url.Values) Files {
	return Files{
		Vocabulary: values.Get("vocabularyFile"),
		Domain:     values.Get("domainFile"),
		Term:       values.Get("termFile"),
		Database:   values.Get("databaseFile"),
		Entity:     values.Get("entityFile"),
		Attribute:  values.Get("attributeFile"),
		Table:      values.Get("tableFile"),
		Column:     values.Get("columnFile"),
	}
}

// StepOutcome 单个步骤的结果
type StepOutcome struct {
	Name       string          `json:"name"`
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Result 对齐结果
type Result struct {
	Mode    string                 `json:"mode"`
	Applied bool                   `json:"applied"`
	Steps   []StepOutcome          `json:"steps"`
	Summary map[string]interface{} `json:"summary"`
}

// StepFailure 某一步骤失败
type StepFailure struct {
	FailedStep string
	StatusCode int
	Message    string
	Err        error
}

func (e *StepFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("alignment step %s failed: %v", e.FailedStep, e.Err)
	}
	return fmt.Sprintf("alignment step %s failed: %s", e.FailedStep, e.Message)
}

func (e *StepFailure) Unwrap() error {
	return e.Err
}

type step struct {
	name    string
	method  string
	path    string
	query   func(files Files, apply bool) url.Values
	collect func(data json.RawMessage, summary map[string]interface{})
}

// Orchestrator 对齐编排器
type Orchestrator struct {
	caller client.StepCaller
	steps  []step
}

// NewOrchestrator 创建对齐编排器
func NewOrchestrator(caller client.StepCaller) *Orchestrator {
	return &Orchestrator{caller: caller, steps: pipeline()}
}

func setIf(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func applyQuery(apply bool) url.Values {
	return url.Values{"apply": {strconv.FormatBool(apply)}}
}

func designQuery(values url.Values, files Files) url.Values {
	setIf(values, "databaseFile", files.Database)
	setIf(values, "entityFile", files.Entity)
	setIf(values, "attributeFile", files.Attribute)
	setIf(values, "tableFile", files.Table)
	setIf(values, "columnFile", files.Column)
	return values
}

func pipeline() []step {
	return []step{
		{
			name:   StepVocabulary,
			method: http.MethodPost,
			path:   "/api/vocabulary/sync-domain",
			query: func(files Files, apply bool) url.Values {
				q := applyQuery(apply)
				setIf(q, "vocabularyFile", files.Vocabulary)
				setIf(q, "domainFile", files.Domain)
				return q
			},
			collect: func(data json.RawMessage, summary map[string]interface{}) {
				counters := decodeCounters(data)
				summary["vocabularyDomainUpdated"] = counters.Updated
			},
		},
		{
			name:   StepTerm,
			method: http.MethodPost,
			path:   "/api/term/sync",
			query: func(files Files, apply bool) url.Values {
				q := applyQuery(apply)
				setIf(q, "filename", files.Term)
				setIf(q, "vocabularyFile", files.Vocabulary)
				setIf(q, "domainFile", files.Domain)
				return q
			},
			collect: func(data json.RawMessage, summary map[string]interface{}) {
				summary["termUpdated"] = decodeCounters(data).Updated
			},
		},
		{
			name:   StepRelation,
			method: http.MethodPost,
			path:   "/api/erd/relations/sync",
			query: func(files Files, apply bool) url.Values {
				return designQuery(applyQuery(apply), files)
			},
			collect: func(data json.RawMessage, summary map[string]interface{}) {
				counters := decodeCounters(data)
				summary["relationUpdated"] = counters.Updated
				summary["relationAppliedTotalUpdates"] = counters.AppliedTotalUpdates
				summary["relationUnmatchedCount"] = counters.RelationUnmatchedCount
			},
		},
		{
			name:   StepColumn,
			method: http.MethodPost,
			path:   "/api/column/sync-term",
			query: func(files Files, apply bool) url.Values {
				q := applyQuery(apply)
				setIf(q, "columnFile", files.Column)
				setIf(q, "termFile", files.Term)
				setIf(q, "domainFile", files.Domain)
				return q
			},
			collect: func(data json.RawMessage, summary map[string]interface{}) {
				summary["columnUpdated"] = decodeCounters(data).Updated
			},
		},
		{
			name:   StepReport,
			method: http.MethodGet,
			path:   "/api/validation/report",
			query: func(files Files, _ bool) url.Values {
				q := url.Values{}
				setIf(q, "termFile", files.Term)
				return designQuery(q, files)
			},
			collect: func(data json.RawMessage, summary map[string]interface{}) {
				var report struct {
					Summary counters `json:"summary"`
				}
				_ = json.Unmarshal(data, &report)
				summary["termFailedCount"] = report.Summary.TermFailedCount
				summary["relationUnmatchedCount"] = report.Summary.RelationUnmatchedCount
				summary["totalIssues"] = report.Summary.TotalIssues
			},
		},
	}
}

// counters 各步骤返回的计数字段
type counters struct {
	Updated                int `json:"updated"`
	AppliedTotalUpdates    int `json:"appliedTotalUpdates"`
	RelationUnmatchedCount int `json:"relationUnmatchedCount"`
	TermFailedCount        int `json:"termFailedCount"`
	TotalIssues            int `json:"totalIssues"`
}

func decodeCounters(data json.RawMessage) counters {
	var c counters
	if len(data) > 0 {
		_ = json.Unmarshal(data, &c)
	}
	return c
}

// Run 执行对齐流程，返回的错误为 *StepFailure
func (o *Orchestrator) Run(ctx context.Context, files Files, apply bool) (*Result, error) {
	mode := ModePreview
	if apply {
		mode = ModeApply
	}

	result := &Result{
		Mode:    mode,
		Applied: apply,
		Steps:   make([]StepOutcome, 0, len(o.steps)),
		Summary: map[string]interface{}{},
	}

	for _, s := range o.steps {
		stepResult, err := o.caller.Call(ctx, s.method, s.path, s.query(files, apply))
		if err != nil {
			metrics.AlignmentRuns.WithLabelValues(mode, "error").Inc()
			slog.Error("对齐步骤调用失败", "step", s.name, "mode", mode, "error", err)
			return nil, &StepFailure{
				FailedStep: s.name,
				StatusCode: http.StatusInternalServerError,
				Message:    "단계 호출에 실패했습니다",
				Err:        err,
			}
		}
		if !stepResult.Success {
			status := stepResult.StatusCode
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			message := stepResult.Error
			if message == "" {
				message = fmt.Sprintf("%s 단계가 실패했습니다", s.name)
			}
			metrics.AlignmentRuns.WithLabelValues(mode, "error").Inc()
			slog.Warn("对齐步骤返回失败", "step", s.name, "mode", mode, "status", status, "error", message)
			return nil, &StepFailure{FailedStep: s.name, StatusCode: status, Message: message}
		}

		result.Steps = append(result.Steps, StepOutcome{
			Name:       s.name,
			StatusCode: stepResult.StatusCode,
			Success:    true,
			Data:       stepResult.Data,
		})
		s.collect(stepResult.Data, result.Summary)
	}

	metrics.AlignmentRuns.WithLabelValues(mode, "success").Inc()
	slog.Info("对齐流程完成", "mode", mode, "summary", result.Summary)
	return result, nil
}
