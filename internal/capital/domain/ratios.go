// Package domain 资本充足率与杠杆率领域模型
// 生成摘要：
// 1) CET1/Tier1/Total 三层资本比率、缓冲叠加后的要求与盈余
// 2) 资本基础缺失项的约定式估算（tier1 缺省取 cet1，total 缺省取 tier1 × 1.25）
// 3) 分母非正时按哨兵值恢复并记录告警，绝不抛除零错误
package domain

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// 最低资本要求（百分点，缓冲前）
const (
	minimumCET1  = 4.5
	minimumTier1 = 6.0
	minimumTotal = 8.0
)

// total_capital 缺省估算系数
const totalCapitalEstimateFactor = 1.25

// RawCapitalBase 外部输入的资本基础，tier1/total 可缺失
type RawCapitalBase struct {
	CET1Capital  decimal.Decimal  `json:"cet1_capital"`
	Tier1Capital *decimal.Decimal `json:"tier1_capital"`
	TotalCapital *decimal.Decimal `json:"total_capital"`
}

// CapitalBase 归一化后的资本基础
type CapitalBase struct {
	CET1Capital  decimal.Decimal `json:"cet1_capital"`
	Tier1Capital decimal.Decimal `json:"tier1_capital"`
	TotalCapital decimal.Decimal `json:"total_capital"`
}

// Normalize 应用缺省估算：tier1 缺省取 cet1，total 缺省取 tier1 × 1.25。
// 这是约定的估算口径，不视为数据错误。
func (r RawCapitalBase) Normalize() CapitalBase {
	base := CapitalBase{CET1Capital: r.CET1Capital}
	if r.Tier1Capital != nil {
		base.Tier1Capital = *r.Tier1Capital
	} else {
		base.Tier1Capital = r.CET1Capital
	}
	if r.TotalCapital != nil {
		base.TotalCapital = *r.TotalCapital
	} else {
		base.TotalCapital = base.Tier1Capital.Mul(decimal.NewFromFloat(totalCapitalEstimateFactor))
	}
	return base
}

// TierRatio 单层级资本比率结果
type TierRatio struct {
	Ratio       float64 `json:"ratio"`
	Requirement float64 `json:"requirement"`
	Surplus     float64 `json:"surplus"`
}

// CapitalRatios 资本充足率计算结果
type CapitalRatios struct {
	RWATotal decimal.Decimal `json:"rwa_total"`
	CET1     TierRatio       `json:"cet1"`
	Tier1    TierRatio       `json:"tier1"`
	Total    TierRatio       `json:"total"`
}

// CapitalRatioCalculator 资本充足率计算器
type CapitalRatioCalculator struct {
	logger *slog.Logger
}

// NewCapitalRatioCalculator 创建资本充足率计算器
func NewCapitalRatioCalculator(logger *slog.Logger) *CapitalRatioCalculator {
	return &CapitalRatioCalculator{logger: logger.With("module", "capital_ratio_calculator")}
}

// Calculate 计算三层资本比率与盈余。
// rwa_total ≤ 0 时比率取 0、盈余取要求的相反数（最大缺口口径）。
func (c *CapitalRatioCalculator) Calculate(
	ctx context.Context,
	rwaTotal decimal.Decimal,
	base CapitalBase,
	buffers portfolio.RegulatoryBuffers,
) CapitalRatios {
	bufferSum := buffers.ConservationBuffer + buffers.CountercyclicalBuffer + buffers.SystemicBuffer

	ratios := CapitalRatios{RWATotal: rwaTotal}
	ratios.CET1.Requirement = minimumCET1 + bufferSum
	ratios.Tier1.Requirement = minimumTier1 + bufferSum
	ratios.Total.Requirement = minimumTotal + bufferSum

	if !rwaTotal.IsPositive() {
		c.logger.WarnContext(ctx, "degenerate rwa total, reporting zero ratios",
			"rwa_total", rwaTotal.String())
		ratios.CET1.Surplus = -ratios.CET1.Requirement
		ratios.Tier1.Surplus = -ratios.Tier1.Requirement
		ratios.Total.Surplus = -ratios.Total.Requirement
		return ratios
	}

	rwa, _ := rwaTotal.Float64()
	cet1, _ := base.CET1Capital.Float64()
	tier1, _ := base.Tier1Capital.Float64()
	total, _ := base.TotalCapital.Float64()

	ratios.CET1.Ratio = cet1 / rwa * 100
	ratios.Tier1.Ratio = tier1 / rwa * 100
	ratios.Total.Ratio = total / rwa * 100
	ratios.CET1.Surplus = ratios.CET1.Ratio - ratios.CET1.Requirement
	ratios.Tier1.Surplus = ratios.Tier1.Ratio - ratios.Tier1.Requirement
	ratios.Total.Surplus = ratios.Total.Ratio - ratios.Total.Requirement
	return ratios
}
