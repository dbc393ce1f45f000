/*
 * @module service/meta/term_rules
 * @description 术语校验规则、自动修复动作、统一报告级别等常量与元数据
 * @architecture 元数据层
 * @documentReference ai_docs/data_governance_req.md
 * @stateFlow 静态元数据定义
 * @rules 规则优先级固定：TERM_NAME_LENGTH=1 最高 … DOMAIN_NAME_MAPPING=8 最低
 * @dependencies 无
 * @refs service/term_validation/validator.go, service/validation_report/builder.go
 */

package meta

// 术语校验规则类型
const (
	TermNameLength          = "TERM_NAME_LENGTH"
	TermNameDuplicate       = "TERM_NAME_DUPLICATE"
	TermUniqueness          = "TERM_UNIQUENESS"
	TermNameMapping         = "TERM_NAME_MAPPING"
	ColumnNameMapping       = "COLUMN_NAME_MAPPING"
	TermColumnOrderMismatch = "TERM_COLUMN_ORDER_MISMATCH"
	TermNameSuffix          = "TERM_NAME_SUFFIX"
	DomainNameMapping       = "DOMAIN_NAME_MAPPING"
)

// 自动修复动作类型
const (
	ActionDeleteTerm          = "DELETE_TERM"
	ActionDeleteDuplicate     = "DELETE_DUPLICATE"
	ActionSelectSynonym       = "SELECT_SYNONYM"
	ActionAddVocabulary       = "ADD_VOCABULARY"
	ActionFixColumnName       = "FIX_COLUMN_NAME"
	ActionFixVocabularySuffix = "FIX_VOCABULARY_SUFFIX"
	ActionAutoFixTermEditor   = "AUTO_FIX_TERM_EDITOR"
)

// 统一报告问题级别
const (
	LevelError       = "error"
	LevelAutoFixable = "auto-fixable"
	LevelWarning     = "warning"
	LevelInfo        = "info"
)

// LevelOrder 级别序号，越小越靠前
var LevelOrder = map[string]int{
	LevelError:       0,
	LevelAutoFixable: 1,
	LevelWarning:     2,
	LevelInfo:        3,
}

// 关系问题优先级
const (
	RelationErrorPriority   = 100
	RelationWarningPriority = 200
)

// TermRuleType 术语校验规则定义
type TermRuleType struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Level       string `json:"level"`
	Conflict    bool   `json:"conflict"`
}

// TermRuleTypes 术语校验规则元数据，按优先级排列
var TermRuleTypes = []TermRuleType{
	{
		Code:        TermNameLength,
		Name:        "용어명 길이",
		Description: "용어명은 '_'로 구분된 2개 이상의 단어로 구성되어야 합니다",
		Priority:    1,
		Level:       LevelError,
	},
	{
		Code:        TermNameDuplicate,
		Name:        "용어명 중복",
		Description: "동일한 용어명이 이미 존재합니다",
		Priority:    2,
		Level:       LevelError,
		Conflict:    true,
	},
	{
		Code:        TermUniqueness,
		Name:        "용어 유일성",
		Description: "용어명/칼럼명/도메인명 조합이 이미 존재합니다",
		Priority:    3,
		Level:       LevelError,
		Conflict:    true,
	},
	{
		Code:        TermNameMapping,
		Name:        "용어명 매핑",
		Description: "용어명의 모든 단어가 표준단어에 등록되어 있어야 합니다",
		Priority:    4,
		Level:       LevelError,
	},
	{
		Code:        ColumnNameMapping,
		Name:        "칼럼명 매핑",
		Description: "칼럼명의 모든 단어가 표준단어 영문약어에 등록되어 있어야 합니다",
		Priority:    5,
		Level:       LevelError,
	},
	{
		Code:        TermColumnOrderMismatch,
		Name:        "용어-칼럼 순서",
		Description: "칼럼명의 영문약어 순서가 용어명 단어 순서와 일치해야 합니다",
		Priority:    6,
		Level:       LevelError,
	},
	{
		Code:        TermNameSuffix,
		Name:        "용어 접미사",
		Description: "용어명의 마지막 단어는 형식단어여야 합니다",
		Priority:    7,
		Level:       LevelError,
	},
	{
		Code:        DomainNameMapping,
		Name:        "도메인 매핑",
		Description: "도메인명이 도메인 목록에 존재해야 합니다",
		Priority:    8,
		Level:       LevelError,
	},
}

// TermRule 按代码查找规则定义
func TermRule(code string) (TermRuleType, bool) {
	for _, rule := range TermRuleTypes {
		if rule.Code == code {
			return rule, true
		}
	}
	return TermRuleType{}, false
}

// TermRulePriority 规则优先级，未知规则排在最后
func TermRulePriority(code string) int {
	if rule, ok := TermRule(code); ok {
		return rule.Priority
	}
	return len(TermRuleTypes) + 1
}

// IsConflictRule 冲突类规则对应HTTP 409
func IsConflictRule(code string) bool {
	rule, ok := TermRule(code)
	return ok && rule.Conflict
}
