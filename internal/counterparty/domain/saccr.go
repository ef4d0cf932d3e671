// Package domain 交易对手信用风险（SA-CCR）领域模型
// 生成摘要：
// 1) 逐笔计算重置成本 RC、潜在未来敞口 PFE、EAD 与 CVA/DVA/FVA
// 2) 按净额结算集聚合：先求和 RC/PFE，α 只在集合层面放大一次
// 3) 按交易对手评级映射风险权重并计提 8% 资本
package domain

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// 资本计提比例
const capitalChargeRate = 0.08

// CVA 近似系数（简化口径，非完整 ISDA SIMM 定价）
const (
	dvaRatio = 0.3
	fvaRatio = 0.2
)

// TradeExposure 单笔衍生品的交易对手风险结果
type TradeExposure struct {
	DerivativeID    string          `json:"derivative_id"`
	EntityID        string          `json:"entity_id"`
	CounterpartyID  string          `json:"counterparty_id"`
	NettingSetID    string          `json:"netting_set_id"`
	ReplacementCost decimal.Decimal `json:"replacement_cost"`
	PFE             decimal.Decimal `json:"pfe"`
	EAD             decimal.Decimal `json:"ead"`
	NetEAD          decimal.Decimal `json:"net_ead"`
	CVA             decimal.Decimal `json:"cva"`
	DVA             decimal.Decimal `json:"dva"`
	FVA             decimal.Decimal `json:"fva"`
	RiskWeight      float64         `json:"risk_weight"`
	RWA             decimal.Decimal `json:"rwa"`
	CapitalRequired decimal.Decimal `json:"capital_required"`
}

// NettingSetExposure 净额结算集层面的聚合结果
type NettingSetExposure struct {
	NettingSetID    string          `json:"netting_set_id"`
	CounterpartyID  string          `json:"counterparty_id"`
	TradeCount      int             `json:"trade_count"`
	ReplacementCost decimal.Decimal `json:"replacement_cost"`
	PFE             decimal.Decimal `json:"pfe"`
	EAD             decimal.Decimal `json:"ead"`
	NetEAD          decimal.Decimal `json:"net_ead"`
	CVA             decimal.Decimal `json:"cva"`
	DVA             decimal.Decimal `json:"dva"`
	FVA             decimal.Decimal `json:"fva"`
	RiskWeight      float64         `json:"risk_weight"`
	RWA             decimal.Decimal `json:"rwa"`
	CapitalRequired decimal.Decimal `json:"capital_required"`
}

// SACCRCalculator SA-CCR 计算器
type SACCRCalculator struct {
	cfg portfolio.RiskConfig
}

// NewSACCRCalculator 创建 SA-CCR 计算器
func NewSACCRCalculator(cfg portfolio.RiskConfig) *SACCRCalculator {
	return &SACCRCalculator{cfg: cfg}
}

// pfe PFE = delta × notional × 监管因子 × min(1, √maturity) × 监管波动率。
// 负期限按 0 处理，单行坏数据不得中断整批计算。
func (c *SACCRCalculator) pfe(d portfolio.Derivative) decimal.Decimal {
	maturity := d.MaturityYears
	if maturity < 0 {
		maturity = 0
	}
	maturityFactor := math.Min(1, math.Sqrt(maturity))
	factor := c.cfg.DeltaFor(d.DerivativeType) *
		c.cfg.SACCRSupervisoryFactor *
		maturityFactor *
		c.cfg.VolatilityFor(d.DerivativeType)
	return d.NotionalAmount.Abs().Mul(decimal.NewFromFloat(factor))
}

// cva 生存概率法 CVA：survival = e^(−PD·M)，CVA = EAD × (1−survival) × LGD × √M
func cva(netEAD decimal.Decimal, pd, lgd, maturity float64) decimal.Decimal {
	if maturity < 0 {
		maturity = 0
	}
	defaultProb := 1 - math.Exp(-pd*maturity)
	return netEAD.Mul(decimal.NewFromFloat(defaultProb * lgd * math.Sqrt(maturity)))
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// CalculateTrade 逐笔（不净额）计算单笔衍生品的风险结果
func (c *SACCRCalculator) CalculateTrade(d portfolio.Derivative) TradeExposure {
	rc := d.ReplacementCost()
	pfe := c.pfe(d)
	ead := rc.Add(pfe).Mul(decimal.NewFromFloat(c.cfg.SACCRAlpha))

	netEAD := ead
	if d.HasCollateral {
		netEAD = maxZero(ead.Sub(d.CollateralAmount))
	}

	cvaAmount := cva(netEAD, d.CounterpartyPD, d.CounterpartyLGD, d.MaturityYears)
	weight := c.cfg.CounterpartyWeightFor(d.CounterpartyRating)
	rwa := netEAD.Mul(decimal.NewFromFloat(weight))

	return TradeExposure{
		DerivativeID:    d.ID,
		EntityID:        d.EntityID,
		CounterpartyID:  d.CounterpartyID,
		NettingSetID:    d.NettingSetID,
		ReplacementCost: rc,
		PFE:             pfe,
		EAD:             ead,
		NetEAD:          netEAD,
		CVA:             cvaAmount,
		DVA:             cvaAmount.Mul(decimal.NewFromFloat(dvaRatio)),
		FVA:             cvaAmount.Mul(decimal.NewFromFloat(fvaRatio)),
		RiskWeight:      weight,
		RWA:             rwa,
		CapitalRequired: rwa.Mul(decimal.NewFromFloat(capitalChargeRate)),
	}
}

// CalculateBatch 逐笔计算一批衍生品
func (c *SACCRCalculator) CalculateBatch(derivatives []portfolio.Derivative) []TradeExposure {
	results := make([]TradeExposure, 0, len(derivatives))
	for _, d := range derivatives {
		results = append(results, c.CalculateTrade(d))
	}
	return results
}

// CalculateNetted 按净额结算集聚合计算。
// 关键顺序：先在集合内求和 MTM 与 PFE，α 只在集合层面放大一次，不得逐笔放大后再求和。
func (c *SACCRCalculator) CalculateNetted(derivatives []portfolio.Derivative) []NettingSetExposure {
	groups := make(map[string][]portfolio.Derivative)
	ids := make([]string, 0)
	for _, d := range derivatives {
		if _, ok := groups[d.NettingSetID]; !ok {
			ids = append(ids, d.NettingSetID)
		}
		groups[d.NettingSetID] = append(groups[d.NettingSetID], d)
	}
	sort.Strings(ids)

	results := make([]NettingSetExposure, 0, len(ids))
	for _, id := range ids {
		results = append(results, c.calculateSet(id, groups[id]))
	}
	return results
}

func (c *SACCRCalculator) calculateSet(setID string, trades []portfolio.Derivative) NettingSetExposure {
	netMTM := decimal.Zero
	pfeSum := decimal.Zero
	collateral := decimal.Zero
	notionalSum := decimal.Zero
	weightedMaturity := 0.0

	for _, d := range trades {
		netMTM = netMTM.Add(d.MTMValue)
		pfeSum = pfeSum.Add(c.pfe(d))
		if d.HasCollateral {
			collateral = collateral.Add(d.CollateralAmount)
		}
		notionalSum = notionalSum.Add(d.NotionalAmount.Abs())
		notional, _ := d.NotionalAmount.Abs().Float64()
		weightedMaturity += notional * d.MaturityYears
	}

	// 集合层面 RC = max(Σmtm, 0)
	rc := maxZero(netMTM)
	ead := rc.Add(pfeSum).Mul(decimal.NewFromFloat(c.cfg.SACCRAlpha))
	netEAD := maxZero(ead.Sub(collateral))

	// 名义额加权平均期限
	maturity := 0.0
	if total, _ := notionalSum.Float64(); total > 0 {
		maturity = weightedMaturity / total
	}

	first := trades[0]
	cvaAmount := cva(netEAD, first.CounterpartyPD, first.CounterpartyLGD, maturity)
	weight := c.cfg.CounterpartyWeightFor(first.CounterpartyRating)
	rwa := netEAD.Mul(decimal.NewFromFloat(weight))

	return NettingSetExposure{
		NettingSetID:    setID,
		CounterpartyID:  first.CounterpartyID,
		TradeCount:      len(trades),
		ReplacementCost: rc,
		PFE:             pfeSum,
		EAD:             ead,
		NetEAD:          netEAD,
		CVA:             cvaAmount,
		DVA:             cvaAmount.Mul(decimal.NewFromFloat(dvaRatio)),
		FVA:             cvaAmount.Mul(decimal.NewFromFloat(fvaRatio)),
		RiskWeight:      weight,
		RWA:             rwa,
		CapitalRequired: rwa.Mul(decimal.NewFromFloat(capitalChargeRate)),
	}
}

// TotalNetEAD 汇总逐笔结果的净 EAD
func TotalNetEAD(trades []TradeExposure) decimal.Decimal {
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(t.NetEAD)
	}
	return total
}

// TotalRWA 汇总逐笔结果的 RWA
func TotalRWA(trades []TradeExposure) decimal.Decimal {
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(t.RWA)
	}
	return total
}
