package domain

// 事件类型
const (
	RWABatchCalculatedEventType = "rwa.batch.calculated"
)

// RWABatchCalculatedEvent 一批 RWA 计算完成事件
type RWABatchCalculatedEvent struct {
	RunID       string   `json:"run_id"`
	Approach    Approach `json:"approach"`
	RecordCount int      `json:"record_count"`
	TotalRWA    string   `json:"total_rwa"`
}
