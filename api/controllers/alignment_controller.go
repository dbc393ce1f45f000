/*
 * @module api/controllers/alignment_controller
 * @description 对齐编排与统一校验报告接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow HTTP请求 -> 编排器/报告生成器(经内部HTTP调用各步骤) -> 统一响应
 * @rules 步骤失败时返回该步骤的状态码与 failedStep；报告任一来源失败则整体失败
 * @dependencies github.com/go-chi/chi/v5
 * @refs service/alignment/orchestrator.go, service/validation_report/builder.go
 */

package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"datastandard-service/service/alignment"
	"datastandard-service/service/scheduler"
	"datastandard-service/service/validation_report"
)

// AlignmentRunner 对齐流程执行者
type AlignmentRunner interface {
	Run(ctx context.Context, files alignment.Files, apply bool) (*alignment.Result, error)
}

// ReportGenerator 统一校验报告生成者
type ReportGenerator interface {
	Generate(ctx context.Context, query url.Values) (*validation_report.Report, error)
}

// AlignmentController 对齐与报告控制器
type AlignmentController struct {
	runner    AlignmentRunner
	report    ReportGenerator
	scheduler *scheduler.SchedulerService
}

// NewAlignmentController 创建对齐与报告控制器，scheduler 可为 nil
func NewAlignmentController(runner AlignmentRunner, report ReportGenerator, schedule *scheduler.SchedulerService) *AlignmentController {
	return &AlignmentController{runner: runner, report: report, scheduler: schedule}
}

// Sync 执行对齐流程
// @Summary 目录对齐
// @Description 依次执行 标准单词-域 -> 术语 -> 关系 -> 列 -> 统一报告
// @Tags 对齐
// @Produce json
// @Param apply query bool false "是否保存，默认 true"
// @Param vocabularyFile query string false "标准单词文件"
// @Param domainFile query string false "域文件"
// @Param termFile query string false "术语文件"
// @Param databaseFile query string false "数据库文件"
// @Param entityFile query string false "实体文件"
// @Param attributeFile query string false "属性文件"
// @Param tableFile query string false "表文件"
// @Param columnFile query string false "列文件"
// @Success 200 {object} APIResponse{data=alignment.Result}
// @Failure 500 {object} APIResponse
// @Router /api/alignment/sync [post]
func (c *AlignmentController) Sync(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	apply := queryBool(values, "apply", true)
	result, err := c.runner.Run(r.Context(), alignment.FilesFromQuery(values), apply)
	if err != nil {
		var failure *alignment.StepFailure
		if errors.As(err, &failure) {
			writeJSON(w, r, failure.StatusCode, ErrorResponse(failure.Message, map[string]string{
				"failedStep": failure.FailedStep,
			}))
			return
		}
		writeError(w, r, err)
		return
	}

	message := "정합성 점검이 완료되었습니다"
	if apply {
		message = "정합성 동기화가 완료되었습니다"
	}
	writeSuccess(w, r, message, result)
}

// Report 统一校验报告
// @Summary 统一校验报告
// @Tags 对齐
// @Produce json
// @Param termFile query string false "术语文件"
// @Param databaseFile query string false "数据库文件"
// @Param entityFile query string false "实体文件"
// @Param attributeFile query string false "属性文件"
// @Param tableFile query string false "表文件"
// @Param columnFile query string false "列文件"
// @Success 200 {object} APIResponse{data=validation_report.Report}
// @Failure 500 {object} APIResponse
// @Router /api/validation/report [get]
func (c *AlignmentController) Report(w http.ResponseWriter, r *http.Request) {
	report, err := c.report.Generate(r.Context(), r.URL.Query())
	if err != nil {
		var branch *validation_report.BranchError
		if errors.As(err, &branch) {
			if branch.Err != nil {
				slog.Error("校验报告数据获取失败", "source", branch.Source, "error", branch.Err)
			}
			writeJSON(w, r, branch.StatusCode, ErrorResponse(branch.Message, map[string]string{
				"source": branch.Source,
			}))
			return
		}
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r, "", report)
}

// Schedule 定时对齐状态
// @Summary 定时对齐状态
// @Tags 对齐
// @Produce json
// @Success 200 {object} APIResponse{data=scheduler.ScheduleStatus}
// @Router /api/alignment/schedule [get]
func (c *AlignmentController) Schedule(w http.ResponseWriter, r *http.Request) {
	if c.scheduler == nil {
		writeSuccess(w, r, "", scheduler.ScheduleStatus{})
		return
	}
	writeSuccess(w, r, "", c.scheduler.Status())
}
