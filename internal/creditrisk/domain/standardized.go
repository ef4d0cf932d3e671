package domain

import (
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// 标准法固定权重
const (
	weightSME              = 0.85
	weightInstitution      = 0.20
	weightMortgageSecured  = 0.35
	weightRetail           = 0.75
	weightSovereignRated   = 0.00
	weightSovereignUnrated = 1.00
	weightDefaulted        = 1.50
	weightHighRisk         = 1.50
	weightEquitySpec       = 2.50
	weightEquity           = 1.00
)

// StandardizedCalculator 标准法 RWA 计算器。
// 权重只依赖敞口类别、产品标签与外部评级，与 PD/LGD 无关。
type StandardizedCalculator struct {
	cfg portfolio.RiskConfig
}

// NewStandardizedCalculator 创建标准法计算器
func NewStandardizedCalculator(cfg portfolio.RiskConfig) *StandardizedCalculator {
	return &StandardizedCalculator{cfg: cfg}
}

// RiskWeight 按优先级解析单笔敞口的风险权重
func (c *StandardizedCalculator) RiskWeight(e portfolio.Exposure) float64 {
	switch e.ExposureClass {
	case portfolio.ClassCorporate, portfolio.ClassSME:
		if e.ExposureClass == portfolio.ClassSME || e.HasProductTag("SME") {
			return weightSME
		}
		return c.cfg.BaseWeightFor(portfolio.ClassCorporate)
	case portfolio.ClassBank:
		return weightInstitution
	case portfolio.ClassRetailMortgage:
		if e.HasProductTag("MORTGAGE") {
			return weightMortgageSecured
		}
		return c.cfg.BaseWeightFor(e.ExposureClass)
	case portfolio.ClassRetailOther:
		return weightRetail
	case portfolio.ClassSovereign:
		if e.Rating == "AAA" || e.Rating == "AA" {
			return weightSovereignRated
		}
		return weightSovereignUnrated
	case portfolio.ClassDefaulted:
		return weightDefaulted
	case portfolio.ClassHighRisk:
		return weightHighRisk
	case portfolio.ClassEquity:
		if e.IsSpeculative {
			return weightEquitySpec
		}
		return weightEquity
	default:
		return c.cfg.BaseWeightFor(e.ExposureClass)
	}
}

// Calculate 计算单笔敞口的标准法 RWA
func (c *StandardizedCalculator) Calculate(e portfolio.Exposure) RWAResult {
	return newResult(e.ID, e.EntityID, ApproachStandardized, e.EAD, c.RiskWeight(e))
}

// CalculateBatch 逐笔计算一批敞口，各行相互独立
func (c *StandardizedCalculator) CalculateBatch(exposures []portfolio.Exposure) []RWAResult {
	results := make([]RWAResult, 0, len(exposures))
	for _, e := range exposures {
		results = append(results, c.Calculate(e))
	}
	return results
}
