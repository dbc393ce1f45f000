package models

// 审计日志动作
const (
	HistoryActionCreate = "add"
	HistoryActionUpdate = "update"
	HistoryActionDelete = "delete"
	HistoryActionImport = "import"
	HistoryActionSync   = "sync"
)

// HistoryLog 审计日志条目
type HistoryLog struct {
	ID          string                 `json:"id"`
	Action      string                 `json:"action"`
	CatalogType string                 `json:"catalogType"`
	Filename    string                 `json:"filename"`
	TargetID    string                 `json:"targetId,omitempty"`
	TargetName  string                 `json:"targetName,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Timestamp   string                 `json:"timestamp"`
}

// HistoryFile 审计日志文件，最新的在前
type HistoryFile struct {
	Logs        []HistoryLog `json:"logs"`
	LastUpdated string       `json:"lastUpdated"`
	TotalCount  int          `json:"totalCount"`
}
