package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func irsTrade(id string, mtm string) portfolio.Derivative {
	return portfolio.Derivative{
		ID:                 id,
		EntityID:           "BANK-A",
		DerivativeType:     portfolio.DerivativeIRS,
		NotionalAmount:     dec("1000"),
		MaturityYears:      4,
		MTMValue:           dec(mtm),
		CounterpartyID:     "CP-1",
		CounterpartyRating: "A",
		CounterpartyPD:     0.01,
		CounterpartyLGD:    0.45,
		NettingSetID:       "NS-1",
	}
}

func TestCalculateTrade(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	got := calc.CalculateTrade(irsTrade("DRV-1", "100"))

	// RC = max(mtm, 0) = 100
	assert.True(t, got.ReplacementCost.Equal(dec("100")), "rc %s", got.ReplacementCost)
	// PFE = 1000 × 0.50 × 0.15 × min(1, √4) × 0.50 = 37.5
	assert.True(t, got.PFE.Equal(dec("37.5")), "pfe %s", got.PFE)
	// EAD = (100 + 37.5) × 1.4 = 192.5
	assert.True(t, got.EAD.Equal(dec("192.5")), "ead %s", got.EAD)
	// 无抵押时 netEAD = EAD
	assert.True(t, got.NetEAD.Equal(got.EAD))
	// rating A → 50% 权重
	assert.InDelta(t, 0.50, got.RiskWeight, 1e-12)
	assert.True(t, got.RWA.Equal(dec("96.25")), "rwa %s", got.RWA)
	assert.True(t, got.CapitalRequired.Equal(dec("7.7")), "capital %s", got.CapitalRequired)
}

func TestNegativeMTMHasZeroReplacementCost(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	got := calc.CalculateTrade(irsTrade("DRV-1", "-50"))
	assert.True(t, got.ReplacementCost.IsZero())
	// EAD 仍含 PFE 部分：37.5 × 1.4 = 52.5
	assert.True(t, got.EAD.Equal(dec("52.5")), "ead %s", got.EAD)
}

func TestCollateralFloorsNetEADAtZero(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	trade := irsTrade("DRV-1", "100")
	trade.HasCollateral = true
	trade.CollateralAmount = dec("1000000")

	got := calc.CalculateTrade(trade)
	assert.True(t, got.NetEAD.IsZero())
	assert.True(t, got.RWA.IsZero())
	assert.True(t, got.CVA.IsZero())
}

func TestDVAAndFVARatios(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	got := calc.CalculateTrade(irsTrade("DRV-1", "100"))
	require.True(t, got.CVA.IsPositive())
	assert.True(t, got.DVA.Equal(got.CVA.Mul(dec("0.3"))), "dva %s", got.DVA)
	assert.True(t, got.FVA.Equal(got.CVA.Mul(dec("0.2"))), "fva %s", got.FVA)
}

func TestCalculateNettedOffsetsMTM(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	trades := []portfolio.Derivative{
		irsTrade("DRV-1", "100"),
		irsTrade("DRV-2", "-40"),
	}

	sets := calc.CalculateNetted(trades)
	require.Len(t, sets, 1)
	set := sets[0]

	assert.Equal(t, "NS-1", set.NettingSetID)
	assert.Equal(t, 2, set.TradeCount)
	// 集合层面 RC = max(100 − 40, 0) = 60
	assert.True(t, set.ReplacementCost.Equal(dec("60")), "rc %s", set.ReplacementCost)
	// PFE 求和：37.5 × 2 = 75
	assert.True(t, set.PFE.Equal(dec("75")), "pfe %s", set.PFE)
	// α 只在集合层面放大一次：EAD = (60 + 75) × 1.4 = 189
	assert.True(t, set.EAD.Equal(dec("189")), "ead %s", set.EAD)

	// 净额结算后的 EAD 必须低于逐笔求和
	gross := TotalNetEAD(calc.CalculateBatch(trades))
	assert.True(t, set.NetEAD.LessThan(gross), "net %s gross %s", set.NetEAD, gross)
}

func TestCalculateNettedGroupsBySetID(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	a := irsTrade("DRV-1", "100")
	b := irsTrade("DRV-2", "50")
	b.NettingSetID = "NS-2"
	c := irsTrade("DRV-3", "-20")

	sets := calc.CalculateNetted([]portfolio.Derivative{b, a, c})
	require.Len(t, sets, 2)
	// 输出按集合 ID 确定性排序
	assert.Equal(t, "NS-1", sets[0].NettingSetID)
	assert.Equal(t, "NS-2", sets[1].NettingSetID)
	assert.Equal(t, 2, sets[0].TradeCount)
	assert.Equal(t, 1, sets[1].TradeCount)
}

func TestUnratedCounterpartyGetsConservativeWeight(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	trade := irsTrade("DRV-1", "100")
	trade.CounterpartyRating = ""

	got := calc.CalculateTrade(trade)
	assert.InDelta(t, 1.50, got.RiskWeight, 1e-12)
}

func TestNegativeMaturityDoesNotAbortBatch(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	bad := irsTrade("DRV-1", "100")
	bad.MaturityYears = -1
	good := irsTrade("DRV-2", "50")

	var results []TradeExposure
	require.NotPanics(t, func() {
		results = calc.CalculateBatch([]portfolio.Derivative{bad, good})
	})
	require.Len(t, results, 2)

	// 负期限按 0 处理：PFE 与 CVA 归零，RC 口径不受影响
	assert.True(t, results[0].PFE.IsZero(), "pfe %s", results[0].PFE)
	assert.True(t, results[0].CVA.IsZero(), "cva %s", results[0].CVA)
	assert.True(t, results[0].EAD.Equal(dec("140")), "ead %s", results[0].EAD)
	assert.True(t, results[1].PFE.IsPositive())

	require.NotPanics(t, func() {
		calc.CalculateNetted([]portfolio.Derivative{bad, good})
	})
}

func TestPFEUsesMaturityFactorCap(t *testing.T) {
	calc := NewSACCRCalculator(portfolio.DefaultRiskConfig())

	short := irsTrade("DRV-1", "0")
	short.MaturityYears = 0.25
	long := irsTrade("DRV-2", "0")
	long.MaturityYears = 9

	// 期限因子 min(1, √m)：短期折减，长期封顶在 1
	shortPFE := calc.CalculateTrade(short).PFE
	longPFE := calc.CalculateTrade(long).PFE
	assert.True(t, shortPFE.Equal(dec("18.75")), "short pfe %s", shortPFE)
	assert.True(t, longPFE.Equal(dec("37.5")), "long pfe %s", longPFE)
}
