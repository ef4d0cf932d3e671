package domain

import (
	"context"
	"log/slog"
	"math"

	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// IRB 初级法固定参数
const (
	irbConfidence    = 0.999  // 99.9% 置信度
	irbScalingFactor = 12.5   // K → RWA 密度
	smeSupportFactor = 0.7619 // SME 支持因子（−23.81%）
	fallbackDensity  = 1.0    // 域错误兜底：100% 权重
	maturityAdjFloor = 0.5
	maturityAdjCeil  = 3.0
)

// IRB 输入域钳制范围
const (
	pdFloor  = 0.0001
	pdCeil   = 0.9999
	lgdFloor = 0.01
	lgdCeil  = 0.99
	rFloor   = 0.01
	rCeil    = 0.99
	mFloor   = 1.0
	mCeil    = 7.0
)

// IRBCalculator IRB 初级法 RWA 计算器（单因子 Vasicek 模型）。
// 仅适用于零售敞口；is_retail 缺失的记录在入库边界按可参与处理。
type IRBCalculator struct {
	cfg    portfolio.RiskConfig
	logger *slog.Logger
}

// NewIRBCalculator 创建 IRB 计算器
func NewIRBCalculator(cfg portfolio.RiskConfig, logger *slog.Logger) *IRBCalculator {
	return &IRBCalculator{cfg: cfg, logger: logger.With("module", "irb_calculator")}
}

// correlation 资产相关性 R(product, PD)
func (c *IRBCalculator) correlation(e portfolio.Exposure, pd float64) float64 {
	if e.ExposureClass == portfolio.ClassSME {
		// SME 按公司口径的相关性曲线
		return corporateCorrelation(pd)
	}
	switch {
	case e.HasProductTag("MORTGAGE"):
		return 0.15
	case e.HasProductTag("CREDIT_CARD"), e.HasProductTag("REVOLVING"):
		return 0.04
	case e.IsRetail:
		if pd > 0.03 {
			return 0.03 + (pd-0.03)*0.16
		}
		return 0.03
	default:
		return corporateCorrelation(pd)
	}
}

func corporateCorrelation(pd float64) float64 {
	return 0.12 + 0.12*(1-math.Exp(-50*pd))
}

// effectiveMaturity 产品 → 合同期限（年）的固定映射
func effectiveMaturity(e portfolio.Exposure) float64 {
	switch {
	case e.HasProductTag("MORTGAGE"):
		return 15
	case e.HasProductTag("CONSUMER"):
		return 3
	case e.HasProductTag("CREDIT_CARD"), e.HasProductTag("REVOLVING"):
		return 1
	default:
		return 2.5
	}
}

// capitalRequirement 单因子模型资本要求 K：
// K = LGD × Φ( Φ⁻¹(PD)/√(1−R) + √(R/(1−R))·Φ⁻¹(0.999) ) − PD × LGD
func capitalRequirement(pd, lgd, r float64) float64 {
	quantile := normInv(pd)/math.Sqrt(1-r) + math.Sqrt(r/(1-r))*normInv(irbConfidence)
	k := lgd*normCDF(quantile) - pd*lgd
	if k < 0 {
		return 0
	}
	return k
}

// maturityAdjustment 期限调整系数，钳制在 [0.5, 3.0] 保证数值稳定
func maturityAdjustment(pd, m float64) float64 {
	b := math.Pow(0.11852-0.05478*math.Log(pd), 2)
	ma := (1 + (m-2.5)*b) / (1 - 1.5*b)
	return clamp(ma, maturityAdjFloor, maturityAdjCeil)
}

// Density 计算单笔敞口的 RWA 密度（K_adj × 12.5）。
// PD ≤ 0 等不可恢复的域错误按 100% 权重兜底并记录告警，绝不中断整批计算。
func (c *IRBCalculator) Density(ctx context.Context, e portfolio.Exposure) float64 {
	if e.PD <= 0 || e.PD >= 1 || math.IsNaN(e.PD) {
		c.logger.WarnContext(ctx, "irb domain fallback: pd outside (0,1), assigning 100% density",
			"exposure_id", e.ID, "pd", e.PD)
		return fallbackDensity
	}

	// 输入域钳制属于可恢复的域错误，逐行记录被修正的原始值
	pd := clamp(e.PD, pdFloor, pdCeil)
	if pd != e.PD {
		c.logger.WarnContext(ctx, "irb domain recovery: pd clamped",
			"exposure_id", e.ID, "pd", e.PD)
	}
	lgd := clamp(e.LGD, lgdFloor, lgdCeil)
	if lgd != e.LGD {
		c.logger.WarnContext(ctx, "irb domain recovery: lgd clamped",
			"exposure_id", e.ID, "lgd", e.LGD)
	}
	r := clamp(c.correlation(e, pd), rFloor, rCeil)
	m := clamp(effectiveMaturity(e), mFloor, mCeil)

	k := capitalRequirement(pd, lgd, r)
	if m > 1 {
		k *= maturityAdjustment(pd, m)
	}

	density := k * irbScalingFactor
	if e.ExposureClass == portfolio.ClassSME {
		density *= smeSupportFactor
	}

	if math.IsNaN(density) || math.IsInf(density, 0) {
		c.logger.WarnContext(ctx, "irb domain fallback: non-finite density, assigning 100% density",
			"exposure_id", e.ID, "pd", e.PD, "lgd", e.LGD)
		return fallbackDensity
	}
	return density
}

// Calculate 计算单笔敞口的 IRB RWA
func (c *IRBCalculator) Calculate(ctx context.Context, e portfolio.Exposure) RWAResult {
	return newResult(e.ID, e.EntityID, ApproachIRB, e.EAD, c.Density(ctx, e))
}

// CalculateBatch 逐笔计算零售敞口，非零售记录跳过
func (c *IRBCalculator) CalculateBatch(ctx context.Context, exposures []portfolio.Exposure) []RWAResult {
	results := make([]RWAResult, 0, len(exposures))
	for _, e := range exposures {
		if !e.IsRetail {
			continue
		}
		results = append(results, c.Calculate(ctx, e))
	}
	return results
}
