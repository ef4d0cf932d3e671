package messaging

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/bankingrisk/internal/reporting/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// OutboxMessage 消息队列
type OutboxMessage struct {
	ID        string    `gorm:"type:varchar(36);primary_key"`
	EventID   string    `gorm:"type:varchar(36);index"`
	EventType string    `gorm:"type:varchar(100);index"`
	Payload   string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);index;default:'pending'"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName 指定表名
func (OutboxMessage) TableName() string {
	return "reporting_outbox_messages"
}

// OutboxEventPublisher 实现 EventPublisher 接口，使用 Outbox 模式
type OutboxEventPublisher struct {
	db *gorm.DB
}

// NewOutboxEventPublisher 创建新的 OutboxEventPublisher 实例
func NewOutboxEventPublisher(db *gorm.DB) *OutboxEventPublisher {
	return &OutboxEventPublisher{db: db}
}

// PublishReportGenerated 发布报告生成完成事件
func (p *OutboxEventPublisher) PublishReportGenerated(event domain.ReportGeneratedEvent) error {
	return p.publishEvent(domain.ReportGeneratedEventType, event)
}

// PublishCapitalShortfall 发布资本缺口事件
func (p *OutboxEventPublisher) PublishCapitalShortfall(event domain.CapitalShortfallEvent) error {
	return p.publishEvent(domain.CapitalShortfallEventType, event)
}

func (p *OutboxEventPublisher) publishEvent(eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	message := OutboxMessage{
		ID:        idgen.GenIDString(),
		EventID:   idgen.GenIDString(),
		EventType: eventType,
		Payload:   string(payload),
		Status:    "pending",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return p.db.Create(&message).Error
}
