// Package domain 监管报告领域模型
package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusGenerated ReportStatus = "GENERATED"
	ReportStatusFailed    ReportStatus = "FAILED"
)

// RegulatoryReport 监管报告聚合根。
// 同时保留标准法与 IRB 的 RWA 总额：CRR3 输出底线（72.5% 混合）当前不实现，
// 留存两套总额使下游可在不重算的前提下补充该口径。
type RegulatoryReport struct {
	gorm.Model
	ReportID          string          `gorm:"column:report_id;type:varchar(64);uniqueIndex;not null" json:"report_id"`
	Status            ReportStatus    `gorm:"column:status;type:varchar(32);not null;default:'PENDING'" json:"status"`
	ExposureCount     int             `gorm:"column:exposure_count" json:"exposure_count"`
	DerivativeCount   int             `gorm:"column:derivative_count" json:"derivative_count"`
	StandardizedRWA   decimal.Decimal `gorm:"column:standardized_rwa;type:decimal(24,4)" json:"standardized_rwa"`
	IRBRWA            decimal.Decimal `gorm:"column:irb_rwa;type:decimal(24,4)" json:"irb_rwa"`
	CounterpartyRWA   decimal.Decimal `gorm:"column:counterparty_rwa;type:decimal(24,4)" json:"counterparty_rwa"`
	AggregateRWA      decimal.Decimal `gorm:"column:aggregate_rwa;type:decimal(24,4)" json:"aggregate_rwa"`
	CET1Ratio         float64         `gorm:"column:cet1_ratio;type:decimal(10,4)" json:"cet1_ratio"`
	Tier1Ratio        float64         `gorm:"column:tier1_ratio;type:decimal(10,4)" json:"tier1_ratio"`
	TotalCapitalRatio float64         `gorm:"column:total_capital_ratio;type:decimal(10,4)" json:"total_capital_ratio"`
	LeverageRatio     float64         `gorm:"column:leverage_ratio;type:decimal(10,4)" json:"leverage_ratio"`
	FailReason        string          `gorm:"column:fail_reason;type:text" json:"fail_reason,omitempty"`
}

func (RegulatoryReport) TableName() string { return "regulatory_reports" }

// ReportRepository 报告仓储接口
type ReportRepository interface {
	Save(ctx context.Context, report *RegulatoryReport) error
	GetByReportID(ctx context.Context, reportID string) (*RegulatoryReport, error)
	List(ctx context.Context, limit int) ([]*RegulatoryReport, error)
}
