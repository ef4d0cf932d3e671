package domain

// EventPublisher 领域事件发布接口，由基础设施层实现
type EventPublisher interface {
	PublishRWABatchCalculated(event RWABatchCalculatedEvent) error
}
