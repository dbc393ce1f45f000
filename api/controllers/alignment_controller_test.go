package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"datastandard-service/service/alignment"
	"datastandard-service/service/validation_report"
	"datastandard-service/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, files alignment.Files, apply bool) (*alignment.Result, error) {
	args := m.Called(ctx, files, apply)
	result, _ := args.Get(0).(*alignment.Result)
	return result, args.Error(1)
}

type mockReport struct {
	mock.Mock
}

func (m *mockReport) Generate(ctx context.Context, query url.Values) (*validation_report.Report, error) {
	args := m.Called(ctx, query)
	report, _ := args.Get(0).(*validation_report.Report)
	return report, args.Error(1)
}

func newAlignmentRouter(runner AlignmentRunner, report ReportGenerator) *chi.Mux {
	c := NewAlignmentController(runner, report, nil)
	r := chi.NewRouter()
	r.Post("/api/alignment/sync", c.Sync)
	r.Get("/api/alignment/schedule", c.Schedule)
	r.Get("/api/validation/report", c.Report)
	return r
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestAlignmentController_Success(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, alignment.Files{Term: "term-a.json"}, false).Return(&alignment.Result{
		Mode:    alignment.ModePreview,
		Summary: map[string]interface{}{"termUpdated": 2},
	}, nil)

	w := serve(newAlignmentRouter(runner, new(mockReport)), http.MethodPost, "/api/alignment/sync?apply=false&termFile=term-a.json")
	helper := testutil.NewHTTPTestHelper()
	envelope := helper.DecodeResponse(t, w, http.StatusOK)

	var result alignment.Result
	helper.DecodeData(t, envelope, &result)
	assert.Equal(t, alignment.ModePreview, result.Mode)
	assert.EqualValues(t, 2, result.Summary["termUpdated"])
	runner.AssertExpectations(t)
}

func TestAlignmentController_StepFailure(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, mock.Anything, true).Return(nil, &alignment.StepFailure{
		FailedStep: alignment.StepRelation,
		StatusCode: http.StatusConflict,
		Message:    "관계 동기화 실패",
	})

	w := serve(newAlignmentRouter(runner, new(mockReport)), http.MethodPost, "/api/alignment/sync")
	helper := testutil.NewHTTPTestHelper()
	envelope := helper.DecodeResponse(t, w, http.StatusConflict)
	assert.False(t, envelope.Success)
	assert.Equal(t, "관계 동기화 실패", envelope.Error)

	var data map[string]string
	helper.DecodeData(t, envelope, &data)
	assert.Equal(t, alignment.StepRelation, data["failedStep"])
}

func TestAlignmentController_UnexpectedError(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, mock.Anything, true).Return(nil, errors.New("boom"))

	w := serve(newAlignmentRouter(runner, new(mockReport)), http.MethodPost, "/api/alignment/sync")
	envelope := testutil.NewHTTPTestHelper().DecodeResponse(t, w, http.StatusInternalServerError)
	assert.Equal(t, msgInternalError, envelope.Error)
}

func TestAlignmentController_Report(t *testing.T) {
	t.Run("成功", func(t *testing.T) {
		report := new(mockReport)
		report.On("Generate", mock.Anything, mock.Anything).Return(&validation_report.Report{
			Summary: validation_report.Summary{TotalIssues: 3},
		}, nil)

		w := serve(newAlignmentRouter(new(mockRunner), report), http.MethodGet, "/api/validation/report?termFile=term.json")
		helper := testutil.NewHTTPTestHelper()
		envelope := helper.DecodeResponse(t, w, http.StatusOK)

		var got validation_report.Report
		helper.DecodeData(t, envelope, &got)
		assert.Equal(t, 3, got.Summary.TotalIssues)

		query := report.Calls[0].Arguments.Get(1).(url.Values)
		assert.Equal(t, "term.json", query.Get("termFile"))
	})

	t.Run("来源失败", func(t *testing.T) {
		report := new(mockReport)
		report.On("Generate", mock.Anything, mock.Anything).Return(nil, &validation_report.BranchError{
			Source:     validation_report.SourceRelation,
			StatusCode: http.StatusBadRequest,
			Message:    "관계 검증 결과를 가져오지 못했습니다",
		})

		w := serve(newAlignmentRouter(new(mockRunner), report), http.MethodGet, "/api/validation/report")
		helper := testutil.NewHTTPTestHelper()
		envelope := helper.DecodeResponse(t, w, http.StatusBadRequest)

		var data map[string]string
		helper.DecodeData(t, envelope, &data)
		assert.Equal(t, validation_report.SourceRelation, data["source"])
	})
}

func TestAlignmentController_ScheduleWithoutScheduler(t *testing.T) {
	w := serve(newAlignmentRouter(new(mockRunner), new(mockReport)), http.MethodGet, "/api/alignment/schedule")
	helper := testutil.NewHTTPTestHelper()
	envelope := helper.DecodeResponse(t, w, http.StatusOK)

	var status map[string]interface{}
	helper.DecodeData(t, envelope, &status)
	require.Contains(t, status, "enabled")
	assert.Equal(t, false, status["enabled"])
}
