package domain

// 事件类型
const (
	ReportGeneratedEventType  = "report.generated"
	CapitalShortfallEventType = "report.capital.shortfall"
)

// ReportGeneratedEvent 报告生成完成事件
type ReportGeneratedEvent struct {
	ReportID     string `json:"report_id"`
	AggregateRWA string `json:"aggregate_rwa"`
}

// CapitalShortfallEvent 资本比率低于要求事件
type CapitalShortfallEvent struct {
	ReportID string  `json:"report_id"`
	Tier     string  `json:"tier"`
	Ratio    float64 `json:"ratio"`
	Surplus  float64 `json:"surplus"`
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	PublishReportGenerated(event ReportGeneratedEvent) error
	PublishCapitalShortfall(event CapitalShortfallEvent) error
}
