package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

func TestStandardizedRiskWeight(t *testing.T) {
	calc := NewStandardizedCalculator(portfolio.DefaultRiskConfig())

	tests := []struct {
		name     string
		exposure portfolio.Exposure
		want     float64
	}{
		{"sme class", portfolio.Exposure{ExposureClass: portfolio.ClassSME}, 0.85},
		{"corporate with sme tag", portfolio.Exposure{ExposureClass: portfolio.ClassCorporate, ProductType: "SME_LOAN"}, 0.85},
		{"plain corporate", portfolio.Exposure{ExposureClass: portfolio.ClassCorporate, ProductType: "TERM_LOAN"}, 1.00},
		{"bank", portfolio.Exposure{ExposureClass: portfolio.ClassBank}, 0.20},
		{"secured mortgage", portfolio.Exposure{ExposureClass: portfolio.ClassRetailMortgage, ProductType: "RESIDENTIAL_MORTGAGE"}, 0.35},
		{"retail other", portfolio.Exposure{ExposureClass: portfolio.ClassRetailOther}, 0.75},
		{"sovereign AAA", portfolio.Exposure{ExposureClass: portfolio.ClassSovereign, Rating: "AAA"}, 0.00},
		{"sovereign AA", portfolio.Exposure{ExposureClass: portfolio.ClassSovereign, Rating: "AA"}, 0.00},
		{"sovereign unrated", portfolio.Exposure{ExposureClass: portfolio.ClassSovereign}, 1.00},
		{"defaulted", portfolio.Exposure{ExposureClass: portfolio.ClassDefaulted}, 1.50},
		{"high risk", portfolio.Exposure{ExposureClass: portfolio.ClassHighRisk}, 1.50},
		{"speculative equity", portfolio.Exposure{ExposureClass: portfolio.ClassEquity, IsSpeculative: true}, 2.50},
		{"listed equity", portfolio.Exposure{ExposureClass: portfolio.ClassEquity}, 1.00},
		{"unknown class falls back to 100%", portfolio.Exposure{ExposureClass: portfolio.ClassOther}, 1.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, calc.RiskWeight(tt.exposure), 1e-12)
		})
	}
}

func TestStandardizedCalculate(t *testing.T) {
	calc := NewStandardizedCalculator(portfolio.DefaultRiskConfig())

	e := portfolio.Exposure{
		ID:            "EXP-1",
		EntityID:      "BANK-A",
		ExposureClass: portfolio.ClassRetailOther,
		EAD:           decimal.RequireFromString("100000"),
	}

	got := calc.Calculate(e)
	assert.Equal(t, ApproachStandardized, got.Approach)
	assert.InDelta(t, 0.75, got.RiskWeight, 1e-12)
	// rwa = ead × weight，保持精确相等
	assert.True(t, got.RWAAmount.Equal(decimal.RequireFromString("75000")), "got %s", got.RWAAmount)
}

func TestStandardizedBatchIsDeterministic(t *testing.T) {
	calc := NewStandardizedCalculator(portfolio.DefaultRiskConfig())
	exposures := []portfolio.Exposure{
		{ID: "EXP-1", ExposureClass: portfolio.ClassCorporate, EAD: decimal.RequireFromString("100")},
		{ID: "EXP-2", ExposureClass: portfolio.ClassBank, EAD: decimal.RequireFromString("200")},
		{ID: "EXP-3", ExposureClass: portfolio.ClassSME, EAD: decimal.RequireFromString("300")},
	}

	first := calc.CalculateBatch(exposures)
	second := calc.CalculateBatch(exposures)
	assert.Equal(t, first, second)
	assert.True(t, TotalRWA(first).Equal(TotalRWA(second)))
}
