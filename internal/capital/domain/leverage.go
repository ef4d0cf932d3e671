package domain

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// LeverageRatio 杠杆率计算结果
type LeverageRatio struct {
	Tier1Capital  decimal.Decimal `json:"tier1_capital"`
	TotalExposure decimal.Decimal `json:"total_exposure"`
	Ratio         float64         `json:"leverage_ratio"`
	Minimum       float64         `json:"minimum"`
	Surplus       float64         `json:"surplus"`
}

// LeverageCalculator 杠杆率计算器
type LeverageCalculator struct {
	logger *slog.Logger
}

// NewLeverageCalculator 创建杠杆率计算器
func NewLeverageCalculator(logger *slog.Logger) *LeverageCalculator {
	return &LeverageCalculator{logger: logger.With("module", "leverage_calculator")}
}

// Calculate 杠杆率 = tier1 / 总敞口 × 100。总敞口非正时比率取 0。
func (c *LeverageCalculator) Calculate(
	ctx context.Context,
	tier1 decimal.Decimal,
	totalExposure decimal.Decimal,
	minimum float64,
) LeverageRatio {
	result := LeverageRatio{
		Tier1Capital:  tier1,
		TotalExposure: totalExposure,
		Minimum:       minimum,
	}

	if !totalExposure.IsPositive() {
		c.logger.WarnContext(ctx, "degenerate total exposure, reporting zero leverage ratio",
			"total_exposure", totalExposure.String())
		result.Surplus = -minimum
		return result
	}

	t1, _ := tier1.Float64()
	exposure, _ := totalExposure.Float64()
	result.Ratio = t1 / exposure * 100
	result.Surplus = result.Ratio - minimum
	return result
}
