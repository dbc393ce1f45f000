package validation_report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"datastandard-service/client"
	"datastandard-service/service/meta"
	"datastandard-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCaller struct {
	mock.Mock
}

func (m *mockCaller) Call(ctx context.Context, method, path string, query url.Values) (*client.StepResult, error) {
	args := m.Called(ctx, method, path, query)
	result, _ := args.Get(0).(*client.StepResult)
	return result, args.Error(1)
}

func termSummary() *models.TermValidationSummary {
	return &models.TermValidationSummary{
		Filename:    "term.json",
		TotalCount:  3,
		PassedCount: 1,
		FailedCount: 2,
		FailedEntries: []models.FailedTermEntry{
			{
				Entry: models.TermEntry{EntryMeta: models.EntryMeta{ID: "t1"}, TermName: "방문자_로그아웃_수"},
				Errors: []models.ValidationError{
					{Type: meta.TermColumnOrderMismatch, Code: meta.TermColumnOrderMismatch, Message: "순서 불일치", Priority: 6, Level: meta.LevelError},
				},
				Suggestions: &models.AutoFixSuggestion{ActionType: meta.ActionFixColumnName, ErrorType: meta.TermColumnOrderMismatch},
			},
			{
				Entry: models.TermEntry{EntryMeta: models.EntryMeta{ID: "t2"}, TermName: "사용자"},
				Errors: []models.ValidationError{
					{Code: meta.TermNameLength, Message: "길이", Priority: 1},
					{Code: meta.DomainNameMapping, Message: "도메인", Priority: 8, Level: meta.LevelError},
				},
				Suggestions: &models.AutoFixSuggestion{ActionType: meta.ActionDeleteTerm, ErrorType: meta.TermNameLength},
			},
		},
	}
}

func relationResult() *models.RelationValidationResult {
	return &models.RelationValidationResult{
		Files:                  map[string]string{"table": "table.json"},
		RelationUnmatchedCount: 2,
		ErrorCount:             1,
		WarningCount:           1,
		Issues: []models.RelationIssue{
			{Code: "TABLE_ENTITY_UNMATCHED", Severity: "warning", Catalog: "table", EntryID: "tb1", Label: "TB_A"},
			{Code: "COLUMN_TABLE_UNMATCHED", Severity: "error", Catalog: "column", EntryID: "c1", Label: "TB_X.COL"},
		},
	}
}

func TestBuild_LevelsAndOrdering(t *testing.T) {
	report := Build(termSummary(), relationResult())

	require.Len(t, report.Issues, 5)
	got := make([]string, len(report.Issues))
	for i, issue := range report.Issues {
		got[i] = issue.Level + ":" + issue.Code
	}
	assert.Equal(t, []string{
		"error:COLUMN_TABLE_UNMATCHED",
		"auto-fixable:TERM_NAME_LENGTH",
		"auto-fixable:TERM_COLUMN_ORDER_MISMATCH",
		"auto-fixable:DOMAIN_NAME_MAPPING",
		"warning:TABLE_ENTITY_UNMATCHED",
	}, got)

	assert.Equal(t, meta.RelationErrorPriority, report.Issues[0].Priority)
	assert.Equal(t, meta.ActionDeleteTerm, report.Issues[1].Metadata["actionType"])
	assert.Equal(t, meta.ActionDeleteTerm, report.Issues[3].Metadata["actionType"])

	assert.Equal(t, Summary{
		TotalIssues:            5,
		ErrorCount:             1,
		AutoFixableCount:       3,
		WarningCount:           1,
		TermFailedCount:        2,
		RelationUnmatchedCount: 2,
	}, report.Summary)
	assert.Equal(t, "term.json", report.Files["term"])
	assert.Equal(t, "table.json", report.Files["table"])
	assert.Equal(t, 3, report.Sections.Term.TotalCount)
}

func TestBuild_SuggestionMarksEveryEntryIssue(t *testing.T) {
	term := &models.TermValidationSummary{
		FailedCount: 1,
		FailedEntries: []models.FailedTermEntry{{
			Entry: models.TermEntry{EntryMeta: models.EntryMeta{ID: "t9"}, TermName: "가"},
			Errors: []models.ValidationError{
				{Code: meta.TermNameLength, Priority: 1, Level: meta.LevelError},
				{Code: meta.DomainNameMapping, Priority: 8, Level: meta.LevelError},
			},
			Suggestions: &models.AutoFixSuggestion{ActionType: meta.ActionDeleteTerm, ErrorType: meta.TermNameLength},
		}},
	}
	report := Build(term, &models.RelationValidationResult{})

	require.Len(t, report.Issues, 2)
	for _, issue := range report.Issues {
		assert.Equal(t, meta.LevelAutoFixable, issue.Level, issue.Code)
	}
	assert.Equal(t, 0, report.Summary.ErrorCount)
	assert.Equal(t, 2, report.Summary.AutoFixableCount)
}

func stepOK(t *testing.T, v interface{}) *client.StepResult {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return &client.StepResult{StatusCode: http.StatusOK, Success: true, Data: data}
}

func TestGenerate_FetchesBothBranches(t *testing.T) {
	caller := new(mockCaller)
	caller.On("Call", mock.Anything, http.MethodGet, "/api/term/validate-all", url.Values{"filename": {"t2.json"}}).
		Return(stepOK(t, termSummary()), nil).Once()
	caller.On("Call", mock.Anything, http.MethodGet, "/api/erd/relations/validate", url.Values{"tableFile": {"tb.json"}}).
		Return(stepOK(t, relationResult()), nil).Once()

	report, err := NewBuilder(caller).Generate(context.Background(), url.Values{
		"termFile":  {"t2.json"},
		"tableFile": {"tb.json"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, report.Summary.TotalIssues)
	caller.AssertExpectations(t)
}

func TestGenerate_BranchFailure(t *testing.T) {
	caller := new(mockCaller)
	caller.On("Call", mock.Anything, http.MethodGet, "/api/term/validate-all", mock.Anything).
		Return(stepOK(t, termSummary()), nil)
	caller.On("Call", mock.Anything, http.MethodGet, "/api/erd/relations/validate", mock.Anything).
		Return(&client.StepResult{StatusCode: http.StatusNotFound, Error: "파일 없음"}, nil)

	_, err := NewBuilder(caller).Generate(context.Background(), url.Values{})
	var branchErr *BranchError
	require.True(t, errors.As(err, &branchErr))
	assert.Equal(t, SourceRelation, branchErr.Source)
	assert.Equal(t, http.StatusNotFound, branchErr.StatusCode)
	assert.Contains(t, branchErr.Message, "파일 없음")
}

func TestGenerate_TransportFailure(t *testing.T) {
	caller := new(mockCaller)
	caller.On("Call", mock.Anything, http.MethodGet, "/api/term/validate-all", mock.Anything).
		Return(nil, errors.New("timeout"))
	caller.On("Call", mock.Anything, http.MethodGet, "/api/erd/relations/validate", mock.Anything).
		Return(stepOK(t, relationResult()), nil).Maybe()

	_, err := NewBuilder(caller).Generate(context.Background(), url.Values{})
	var branchErr *BranchError
	require.True(t, errors.As(err, &branchErr))
	assert.Equal(t, SourceTerm, branchErr.Source)
	assert.Equal(t, http.StatusInternalServerError, branchErr.StatusCode)
}
