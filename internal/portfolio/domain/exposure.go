// Package domain 资产组合领域模型：风险敞口与衍生品的共享数据契约
// 生成摘要：
// 1) 定义 Exposure（信贷敞口）与 Derivative（场外衍生品）值对象
// 2) 所有计算器共享该契约，记录创建后不可变
// 3) IFRS9 阶段由 PD 阈值推导
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExposureClass 敞口类别
type ExposureClass string

const (
	ClassRetailMortgage ExposureClass = "retail_mortgage"
	ClassRetailOther    ExposureClass = "retail_other"
	ClassCorporate      ExposureClass = "corporate"
	ClassSME            ExposureClass = "sme"
	ClassSovereign      ExposureClass = "sovereign"
	ClassBank           ExposureClass = "bank"
	ClassEquity         ExposureClass = "equity"
	ClassDefaulted      ExposureClass = "exposures_in_default"
	ClassHighRisk       ExposureClass = "high_risk_categories"
	ClassOther          ExposureClass = "other"
)

// IFRS9 阶段
type Stage int

const (
	Stage1 Stage = 1
	Stage2 Stage = 2
	Stage3 Stage = 3
)

// 阶段划分的 PD 阈值
const (
	stage1PDThreshold = 0.005
	stage2PDThreshold = 0.03
)

// Exposure 单笔信贷敞口
type Exposure struct {
	ID               string          `json:"id"`
	EntityID         string          `json:"entity_id"`
	ProductType      string          `json:"product_type"`
	ExposureClass    ExposureClass   `json:"exposure_class"`
	Currency         string          `json:"currency"`
	EAD              decimal.Decimal `json:"ead"`
	PD               float64         `json:"pd"`
	LGD              float64         `json:"lgd"`
	MaturityYears    float64         `json:"maturity_years"`
	Stage            Stage           `json:"stage"`
	CCF              float64         `json:"ccf"`
	CommitmentAmount decimal.Decimal `json:"commitment_amount"`
	DrawnAmount      decimal.Decimal `json:"drawn_amount"`
	IsRetail         bool            `json:"is_retail"`
	Rating           string          `json:"rating"`
	IsSpeculative    bool            `json:"is_speculative"`
}

// StageFromPD 根据 PD 推导 IFRS9 阶段：≤0.005→1，≤0.03→2，否则→3
func StageFromPD(pd float64) Stage {
	switch {
	case pd <= stage1PDThreshold:
		return Stage1
	case pd <= stage2PDThreshold:
		return Stage2
	default:
		return Stage3
	}
}

// EffectiveEAD 当 CCF > 0 时按承诺口径重算 EAD：
// ead = drawn + ccf × max(0, commitment − drawn)
func EffectiveEAD(drawn, commitment decimal.Decimal, ccf float64) decimal.Decimal {
	undrawn := commitment.Sub(drawn)
	if undrawn.IsNegative() {
		undrawn = decimal.Zero
	}
	return drawn.Add(undrawn.Mul(decimal.NewFromFloat(ccf)))
}

// HasProductTag 判断产品类型是否包含指定标签（大小写不敏感）
func (e Exposure) HasProductTag(tag string) bool {
	return strings.Contains(strings.ToUpper(e.ProductType), strings.ToUpper(tag))
}
