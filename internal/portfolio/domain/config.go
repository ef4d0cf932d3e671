// Package domain 监管计算配置
// 配置以值对象形式传入每个计算器入口，任何计算器不得读取全局状态、不得修改配置。
package domain

// RegulatoryBuffers 监管缓冲要求（百分点，叠加计入各层级资本要求）
type RegulatoryBuffers struct {
	ConservationBuffer    float64 `json:"capital_conservation_buffer"`
	CountercyclicalBuffer float64 `json:"countercyclical_buffer"`
	SystemicBuffer        float64 `json:"systemic_buffer"`
}

// RiskConfig 监管计算静态配置
type RiskConfig struct {
	// 敞口类别 → 标准法基础风险权重
	BaseRiskWeights map[ExposureClass]float64

	// 监管缓冲
	Buffers RegulatoryBuffers

	// 杠杆率最低要求（百分点）
	LeverageMinimum float64

	// SA-CCR 参数
	SACCRAlpha             float64
	SACCRSupervisoryFactor float64
	SupervisoryDeltas      map[DerivativeType]float64
	SupervisoryVolatility  map[DerivativeType]float64

	// 交易对手评级 → 风险权重
	CounterpartyRiskWeights map[string]float64
}

// DefaultRiskConfig 返回监管默认参数
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		BaseRiskWeights: map[ExposureClass]float64{
			ClassCorporate: 1.00,
			ClassSME:       1.00,
			ClassOther:     1.00,
		},
		Buffers: RegulatoryBuffers{
			ConservationBuffer:    2.5,
			CountercyclicalBuffer: 0,
			SystemicBuffer:        0,
		},
		LeverageMinimum: 3.0,
		SACCRAlpha:      1.4,
		// 监管因子固定 15%
		SACCRSupervisoryFactor: 0.15,
		SupervisoryDeltas: map[DerivativeType]float64{
			DerivativeIRS:           0.50,
			DerivativeFXForward:     0.80,
			DerivativeCDS:           0.38,
			DerivativeEquityOption:  0.75,
			DerivativeCommoditySwap: 0.40,
		},
		SupervisoryVolatility: map[DerivativeType]float64{
			DerivativeIRS:           0.50,
			DerivativeFXForward:     0.15,
			DerivativeCDS:           1.00,
			DerivativeEquityOption:  1.20,
			DerivativeCommoditySwap: 0.70,
		},
		CounterpartyRiskWeights: map[string]float64{
			"AAA": 0.20,
			"AA":  0.20,
			"A":   0.50,
			"BBB": 1.00,
			"BB":  1.00,
			"B":   1.50,
			"CCC": 1.50,
		},
	}
}

// BaseWeightFor 查找基础风险权重，未配置时默认 100%
func (c RiskConfig) BaseWeightFor(class ExposureClass) float64 {
	if w, ok := c.BaseRiskWeights[class]; ok {
		return w
	}
	return 1.00
}

// DeltaFor 查找监管 Delta，未配置类型默认 1.0
func (c RiskConfig) DeltaFor(t DerivativeType) float64 {
	if d, ok := c.SupervisoryDeltas[t]; ok {
		return d
	}
	return 1.0
}

// VolatilityFor 查找监管波动率因子，未配置类型默认 1.0
func (c RiskConfig) VolatilityFor(t DerivativeType) float64 {
	if v, ok := c.SupervisoryVolatility[t]; ok {
		return v
	}
	return 1.0
}

// CounterpartyWeightFor 按交易对手评级查找风险权重，无评级按 150%
func (c RiskConfig) CounterpartyWeightFor(rating string) float64 {
	if w, ok := c.CounterpartyRiskWeights[rating]; ok {
		return w
	}
	return 1.50
}
