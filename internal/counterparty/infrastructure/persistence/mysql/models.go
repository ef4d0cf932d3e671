package mysql

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/bankingrisk/internal/counterparty/domain"
	"gorm.io/gorm"
)

// TradeExposureModel MySQL 逐笔交易对手风险表映射
type TradeExposureModel struct {
	gorm.Model
	RunID           string          `gorm:"column:run_id;type:varchar(64);index;not null"`
	DerivativeID    string          `gorm:"column:derivative_id;type:varchar(64);index;not null"`
	EntityID        string          `gorm:"column:entity_id;type:varchar(64);index"`
	CounterpartyID  string          `gorm:"column:counterparty_id;type:varchar(64);index"`
	NettingSetID    string          `gorm:"column:netting_set_id;type:varchar(64);index"`
	ReplacementCost decimal.Decimal `gorm:"column:replacement_cost;type:decimal(24,4);not null"`
	PFE             decimal.Decimal `gorm:"column:pfe;type:decimal(24,4);not null"`
	EAD             decimal.Decimal `gorm:"column:ead;type:decimal(24,4);not null"`
	NetEAD          decimal.Decimal `gorm:"column:net_ead;type:decimal(24,4);not null"`
	CVA             decimal.Decimal `gorm:"column:cva;type:decimal(24,4);not null"`
	DVA             decimal.Decimal `gorm:"column:dva;type:decimal(24,4);not null"`
	FVA             decimal.Decimal `gorm:"column:fva;type:decimal(24,4);not null"`
	RiskWeight      float64         `gorm:"column:risk_weight;type:decimal(10,6);not null"`
	RWA             decimal.Decimal `gorm:"column:rwa;type:decimal(24,4);not null"`
	CapitalRequired decimal.Decimal `gorm:"column:capital_required;type:decimal(24,4);not null"`
}

func (TradeExposureModel) TableName() string { return "counterparty_trade_exposures" }

// NettingSetModel MySQL 净额结算集结果表映射
type NettingSetModel struct {
	gorm.Model
	RunID           string          `gorm:"column:run_id;type:varchar(64);index;not null"`
	NettingSetID    string          `gorm:"column:netting_set_id;type:varchar(64);index;not null"`
	CounterpartyID  string          `gorm:"column:counterparty_id;type:varchar(64);index"`
	TradeCount      int             `gorm:"column:trade_count;not null"`
	ReplacementCost decimal.Decimal `gorm:"column:replacement_cost;type:decimal(24,4);not null"`
	PFE             decimal.Decimal `gorm:"column:pfe;type:decimal(24,4);not null"`
	EAD             decimal.Decimal `gorm:"column:ead;type:decimal(24,4);not null"`
	NetEAD          decimal.Decimal `gorm:"column:net_ead;type:decimal(24,4);not null"`
	CVA             decimal.Decimal `gorm:"column:cva;type:decimal(24,4);not null"`
	DVA             decimal.Decimal `gorm:"column:dva;type:decimal(24,4);not null"`
	FVA             decimal.Decimal `gorm:"column:fva;type:decimal(24,4);not null"`
	RiskWeight      float64         `gorm:"column:risk_weight;type:decimal(10,6);not null"`
	RWA             decimal.Decimal `gorm:"column:rwa;type:decimal(24,4);not null"`
	CapitalRequired decimal.Decimal `gorm:"column:capital_required;type:decimal(24,4);not null"`
}

func (NettingSetModel) TableName() string { return "counterparty_netting_sets" }

func toTradeModel(runID string, t domain.TradeExposure) TradeExposureModel {
	return TradeExposureModel{
		RunID:           runID,
		DerivativeID:    t.DerivativeID,
		EntityID:        t.EntityID,
		CounterpartyID:  t.CounterpartyID,
		NettingSetID:    t.NettingSetID,
		ReplacementCost: t.ReplacementCost,
		PFE:             t.PFE,
		EAD:             t.EAD,
		NetEAD:          t.NetEAD,
		CVA:             t.CVA,
		DVA:             t.DVA,
		FVA:             t.FVA,
		RiskWeight:      t.RiskWeight,
		RWA:             t.RWA,
		CapitalRequired: t.CapitalRequired,
	}
}

func toTradeDomain(m TradeExposureModel) domain.TradeExposure {
	return domain.TradeExposure{
		DerivativeID:    m.DerivativeID,
		EntityID:        m.EntityID,
		CounterpartyID:  m.CounterpartyID,
		NettingSetID:    m.NettingSetID,
		ReplacementCost: m.ReplacementCost,
		PFE:             m.PFE,
		EAD:             m.EAD,
		NetEAD:          m.NetEAD,
		CVA:             m.CVA,
		DVA:             m.DVA,
		FVA:             m.FVA,
		RiskWeight:      m.RiskWeight,
		RWA:             m.RWA,
		CapitalRequired: m.CapitalRequired,
	}
}

func toNettingSetDomain(m NettingSetModel) domain.NettingSetExposure {
	return domain.NettingSetExposure{
		NettingSetID:    m.NettingSetID,
		CounterpartyID:  m.CounterpartyID,
		TradeCount:      m.TradeCount,
		ReplacementCost: m.ReplacementCost,
		PFE:             m.PFE,
		EAD:             m.EAD,
		NetEAD:          m.NetEAD,
		CVA:             m.CVA,
		DVA:             m.DVA,
		FVA:             m.FVA,
		RiskWeight:      m.RiskWeight,
		RWA:             m.RWA,
		CapitalRequired: m.CapitalRequired,
	}
}

func toNettingSetModel(runID string, s domain.NettingSetExposure) NettingSetModel {
	return NettingSetModel{
		RunID:           runID,
		NettingSetID:    s.NettingSetID,
		CounterpartyID:  s.CounterpartyID,
		TradeCount:      s.TradeCount,
		ReplacementCost: s.ReplacementCost,
		PFE:             s.PFE,
		EAD:             s.EAD,
		NetEAD:          s.NetEAD,
		CVA:             s.CVA,
		DVA:             s.DVA,
		FVA:             s.FVA,
		RiskWeight:      s.RiskWeight,
		RWA:             s.RWA,
		CapitalRequired: s.CapitalRequired,
	}
}
