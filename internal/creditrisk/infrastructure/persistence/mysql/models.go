package mysql

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/bankingrisk/internal/creditrisk/domain"
	"gorm.io/gorm"
)

// RWAResultModel MySQL RWA 结果表映射
type RWAResultModel struct {
	gorm.Model
	RunID      string          `gorm:"column:run_id;type:varchar(64);index;not null"`
	ExposureID string          `gorm:"column:exposure_id;type:varchar(64);index;not null"`
	EntityID   string          `gorm:"column:entity_id;type:varchar(64);index"`
	Approach   string          `gorm:"column:approach;type:varchar(16);not null"`
	RiskWeight float64         `gorm:"column:risk_weight;type:decimal(10,6);not null"`
	EAD        decimal.Decimal `gorm:"column:ead;type:decimal(24,4);not null"`
	RWAAmount  decimal.Decimal `gorm:"column:rwa_amount;type:decimal(24,4);not null"`
}

func (RWAResultModel) TableName() string { return "rwa_results" }

func toModel(runID string, r domain.RWAResult) RWAResultModel {
	return RWAResultModel{
		RunID:      runID,
		ExposureID: r.ExposureID,
		EntityID:   r.EntityID,
		Approach:   string(r.Approach),
		RiskWeight: r.RiskWeight,
		EAD:        r.EAD,
		RWAAmount:  r.RWAAmount,
	}
}

func toDomain(m RWAResultModel) domain.RWAResult {
	return domain.RWAResult{
		ExposureID: m.ExposureID,
		EntityID:   m.EntityID,
		Approach:   domain.Approach(m.Approach),
		RiskWeight: m.RiskWeight,
		EAD:        m.EAD,
		RWAAmount:  m.RWAAmount,
	}
}
