package domain

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

func newTestIRBCalculator() *IRBCalculator {
	return NewIRBCalculator(portfolio.DefaultRiskConfig(), slog.Default())
}

func TestIRBCorrelation(t *testing.T) {
	calc := newTestIRBCalculator()

	tests := []struct {
		name     string
		exposure portfolio.Exposure
		pd       float64
		want     float64
	}{
		{"mortgage fixed", portfolio.Exposure{ProductType: "RESIDENTIAL_MORTGAGE", IsRetail: true}, 0.01, 0.15},
		{"credit card fixed", portfolio.Exposure{ProductType: "CREDIT_CARD", IsRetail: true}, 0.01, 0.04},
		{"revolving fixed", portfolio.Exposure{ProductType: "REVOLVING_FACILITY", IsRetail: true}, 0.01, 0.04},
		{"other retail low pd", portfolio.Exposure{ProductType: "CONSUMER_LOAN", IsRetail: true}, 0.01, 0.03},
		{"other retail sloped", portfolio.Exposure{ProductType: "CONSUMER_LOAN", IsRetail: true}, 0.05, 0.03 + 0.02*0.16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, calc.correlation(tt.exposure, tt.pd), 1e-12)
		})
	}

	t.Run("sme uses corporate curve", func(t *testing.T) {
		e := portfolio.Exposure{ExposureClass: portfolio.ClassSME, IsRetail: true}
		assert.InDelta(t, corporateCorrelation(0.02), calc.correlation(e, 0.02), 1e-12)
	})
}

func TestIRBDensityFallback(t *testing.T) {
	calc := newTestIRBCalculator()
	ctx := context.Background()

	tests := []struct {
		name string
		pd   float64
	}{
		{"zero pd", 0},
		{"negative pd", -0.5},
		{"pd of one", 1},
		{"pd above one", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := portfolio.Exposure{ID: "EXP-1", ProductType: "CONSUMER_LOAN", IsRetail: true, PD: tt.pd, LGD: 0.45}
			assert.InDelta(t, 1.0, calc.Density(ctx, e), 1e-12)
		})
	}
}

func TestIRBDensityIsPositiveAndFinite(t *testing.T) {
	calc := newTestIRBCalculator()
	ctx := context.Background()

	for _, pd := range []float64{0.0001, 0.001, 0.01, 0.05, 0.2, 0.9, 0.9999} {
		e := portfolio.Exposure{ProductType: "CONSUMER_LOAN", IsRetail: true, PD: pd, LGD: 0.45}
		density := calc.Density(ctx, e)
		assert.Greater(t, density, 0.0, "pd=%v", pd)
		assert.Less(t, density, 12.5, "pd=%v", pd)
	}
}

func TestIRBMaturityAdjustment(t *testing.T) {
	// 同等 PD 下期限越长调整系数越大
	assert.Greater(t, maturityAdjustment(0.02, 5), maturityAdjustment(0.02, 1.5))
	// 钳制范围 [0.5, 3.0]
	assert.GreaterOrEqual(t, maturityAdjustment(0.0001, 7), 0.5)
	assert.LessOrEqual(t, maturityAdjustment(0.0001, 7), 3.0)
	assert.GreaterOrEqual(t, maturityAdjustment(0.9, 1), 0.5)
}

func TestIRBSMESupportFactor(t *testing.T) {
	calc := newTestIRBCalculator()
	ctx := context.Background()

	sme := portfolio.Exposure{ExposureClass: portfolio.ClassSME, ProductType: "SME_LOAN", IsRetail: true, PD: 0.02, LGD: 0.45}
	corporate := portfolio.Exposure{ExposureClass: portfolio.ClassCorporate, ProductType: "SME_LOAN", IsRetail: false, PD: 0.02, LGD: 0.45}

	// 两者都走公司相关性曲线、期限一致，仅支持因子不同
	assert.InDelta(t, calc.Density(ctx, corporate)*0.7619, calc.Density(ctx, sme), 1e-9)
}

func TestIRBInputClamping(t *testing.T) {
	var buf bytes.Buffer
	calc := NewIRBCalculator(portfolio.DefaultRiskConfig(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	// LGD 超出 [0.01, 0.99] 时按边界处理，结果与取边界值一致
	high := portfolio.Exposure{ID: "EXP-9", ProductType: "CONSUMER_LOAN", IsRetail: true, PD: 0.02, LGD: 1.5}
	capped := portfolio.Exposure{ProductType: "CONSUMER_LOAN", IsRetail: true, PD: 0.02, LGD: 0.99}
	assert.InDelta(t, calc.Density(ctx, capped), calc.Density(ctx, high), 1e-12)

	// 钳制属于可恢复域错误，须记录行号与原始值
	assert.Contains(t, buf.String(), "lgd clamped")
	assert.Contains(t, buf.String(), "EXP-9")
	assert.Contains(t, buf.String(), "1.5")

	// 域内输入不产生钳制告警
	buf.Reset()
	calc.Density(ctx, portfolio.Exposure{ID: "EXP-10", ProductType: "CONSUMER_LOAN", IsRetail: true, PD: 0.02, LGD: 0.45})
	assert.NotContains(t, buf.String(), "clamped")
}

func TestIRBCalculateBatchSkipsNonRetail(t *testing.T) {
	calc := newTestIRBCalculator()
	ctx := context.Background()

	exposures := []portfolio.Exposure{
		{ID: "EXP-1", ProductType: "CONSUMER_LOAN", IsRetail: true, PD: 0.02, LGD: 0.45, EAD: decimal.RequireFromString("1000")},
		{ID: "EXP-2", ProductType: "TERM_LOAN", IsRetail: false, PD: 0.02, LGD: 0.45, EAD: decimal.RequireFromString("1000")},
	}

	results := calc.CalculateBatch(ctx, exposures)
	require.Len(t, results, 1)
	assert.Equal(t, "EXP-1", results[0].ExposureID)
	assert.Equal(t, ApproachIRB, results[0].Approach)
}

func TestIRBBatchIsIdempotent(t *testing.T) {
	calc := newTestIRBCalculator()
	ctx := context.Background()

	exposures := []portfolio.Exposure{
		{ID: "EXP-1", ProductType: "RESIDENTIAL_MORTGAGE", IsRetail: true, PD: 0.004, LGD: 0.25, EAD: decimal.RequireFromString("250000")},
		{ID: "EXP-2", ProductType: "CREDIT_CARD", IsRetail: true, PD: 0.06, LGD: 0.75, EAD: decimal.RequireFromString("5000")},
	}

	first := calc.CalculateBatch(ctx, exposures)
	second := calc.CalculateBatch(ctx, exposures)
	assert.Equal(t, first, second)
}
