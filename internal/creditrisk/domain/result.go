// Package domain 信用风险 RWA 计算领域模型
// 生成摘要：
// 1) 标准法计算器：按敞口类别与产品标签查表定权重
// 2) IRB 初级法计算器：单因子 Vasicek 模型 + 期限调整
// 3) 计算器均为纯函数，不持有状态、不做 I/O
package domain

import "github.com/shopspring/decimal"

// Approach RWA 计量方法
type Approach string

const (
	ApproachStandardized Approach = "Standardized"
	ApproachIRB          Approach = "IRB"
)

// RWAResult 单笔敞口的 RWA 计算结果
type RWAResult struct {
	ExposureID string          `json:"exposure_id"`
	EntityID   string          `json:"entity_id"`
	Approach   Approach        `json:"approach"`
	// 标准法为风险权重，IRB 为风险密度
	RiskWeight float64         `json:"risk_weight_or_density"`
	EAD        decimal.Decimal `json:"ead"`
	RWAAmount  decimal.Decimal `json:"rwa_amount"`
}

// newResult rwa_amount = ead × weight，保持精确相等
func newResult(exposureID, entityID string, approach Approach, ead decimal.Decimal, weight float64) RWAResult {
	return RWAResult{
		ExposureID: exposureID,
		EntityID:   entityID,
		Approach:   approach,
		RiskWeight: weight,
		EAD:        ead,
		RWAAmount:  ead.Mul(decimal.NewFromFloat(weight)),
	}
}

// TotalRWA 汇总一批结果的 RWA 总额
func TotalRWA(results []RWAResult) decimal.Decimal {
	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.RWAAmount)
	}
	return total
}
